package mail

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrevoClient_UnconfiguredSkipsSend(t *testing.T) {
	t.Parallel()

	c := NewBrevoClient("", "", "", "http://localhost:3000", time.Second)
	assert.False(t, c.configured)

	// No API key: sends are skipped, not failed, so local setups work.
	assert.NoError(t, c.SendVerification(context.Background(), "alice@x.com", "tok"))
	assert.NoError(t, c.SendPasswordReset(context.Background(), "alice@x.com", "tok"))
}

func TestBrevoClient_Configured(t *testing.T) {
	t.Parallel()

	c := NewBrevoClient("key", "noreply@x.com", "Identity", "https://app.x.com", time.Second)
	assert.True(t, c.configured)
}

func TestTemplatesRenderLink(t *testing.T) {
	t.Parallel()

	var verify bytes.Buffer
	require.NoError(t, verifyTemplate.Execute(&verify, map[string]string{
		"URL": "https://app.x.com/verify-email?token=abc",
	}))
	assert.Contains(t, verify.String(), "verify-email?token=abc")

	var reset bytes.Buffer
	require.NoError(t, resetTemplate.Execute(&reset, map[string]string{
		"URL": "https://app.x.com/reset-password?token=abc",
	}))
	assert.Contains(t, reset.String(), "reset-password?token=abc")
}

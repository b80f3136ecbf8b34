package security

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_IssueAndParse(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer("super-secret", time.Hour)
	userID := uuid.New()

	token, err := issuer.Issue(userID, "alice@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	gotID, gotEmail, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, "alice@x.com", gotEmail)
}

func TestTokenIssuer_Expired(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer("secret", -time.Second)
	token, err := issuer.Issue(uuid.New(), "alice@x.com")
	require.NoError(t, err)

	_, _, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer("right-secret", time.Hour)
	token, err := issuer.Issue(uuid.New(), "alice@x.com")
	require.NoError(t, err)

	other := NewTokenIssuer("wrong-secret", time.Hour)
	_, _, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}

func TestTokenIssuer_Malformed(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer("secret", time.Hour)
	_, _, err := issuer.Parse("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}

package validation

import (
	"testing"

	"github.com/emreacar/identity-backend/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_Valid(t *testing.T) {
	t.Parallel()

	req := dto.RegisterRequest{Name: "Alice", Email: "alice@x.com", Password: "secret1"}
	assert.Nil(t, Check(&req))
}

func TestCheck_CollectsFailures(t *testing.T) {
	t.Parallel()

	req := dto.RegisterRequest{Name: "Alice", Email: "not-an-email", Password: "short"}
	fields := Check(&req)
	require.Len(t, fields, 2)

	byField := map[string]FieldError{}
	for _, f := range fields {
		byField[f.Field] = f
	}
	assert.Equal(t, "email", byField["Email"].Tag)
	assert.Equal(t, "min", byField["Password"].Tag)
	assert.Contains(t, byField["Password"].Message, "at least 6")
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
	assert.Equal(t, 24*time.Hour, cfg.VerifyTokenExpiry)
	assert.Equal(t, time.Hour, cfg.ResetTokenExpiry)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.False(t, cfg.RequireVerifiedEmail)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_ACCESS_EXPIRY", "30m")
	t.Setenv("VERIFY_TOKEN_EXPIRY", "48h")
	t.Setenv("RESET_TOKEN_EXPIRY", "30m")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("REQUIRE_VERIFIED_EMAIL", "true")

	cfg := Load()

	assert.Equal(t, 30*time.Minute, cfg.JWTAccessExpiry)
	assert.Equal(t, 48*time.Hour, cfg.VerifyTokenExpiry)
	assert.Equal(t, 30*time.Minute, cfg.ResetTokenExpiry)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.True(t, cfg.RequireVerifiedEmail)
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("JWT_ACCESS_EXPIRY", "not-a-duration")
	t.Setenv("BCRYPT_COST", "not-a-number")

	cfg := Load()

	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
	assert.Equal(t, 10, cfg.BcryptCost)
}

func TestDSN(t *testing.T) {
	t.Setenv("DB_PASSWORD", "pw")
	cfg := Load()

	assert.Contains(t, cfg.DSN(), "host=localhost")
	assert.Contains(t, cfg.DSN(), "password=pw")
	assert.Contains(t, cfg.DSN(), "sslmode=disable")
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("SESSION_BACKEND", "")
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("SESSION_MAX_AGE", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("MAIL_DRIVER", "")

	cfg := Load()
	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, SessionBackendCookie, cfg.SessionBackend)
	assert.Equal(t, StoreBackendMemory, cfg.StoreBackend)
	assert.Equal(t, 7200, cfg.SessionMaxAge)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "8081")
	t.Setenv("SESSION_MAX_AGE", "60")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg := Load()
	assert.Equal(t, "8081", cfg.AppPort)
	assert.Equal(t, 60, cfg.SessionMaxAge)
	assert.InDelta(t, 2.5, cfg.RateLimitRPS, 0.0001)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	t.Setenv("SESSION_MAX_AGE", "soon")
	assert.Equal(t, 7200, Load().SessionMaxAge)
}

func TestValidate_ProductionNeedsSecret(t *testing.T) {
	t.Setenv("APP_ENV", EnvProduction)
	t.Setenv("SESSION_SECRET", "")
	assert.ErrorContains(t, Load().Validate(), "SESSION_SECRET")

	t.Setenv("SESSION_SECRET", "0123456789abcdef0123456789abcdef")
	assert.NoError(t, Load().Validate())
}

func TestValidate_ShortSecretRejected(t *testing.T) {
	t.Setenv("SESSION_SECRET", "too-short")
	assert.ErrorContains(t, Load().Validate(), "at least 32")
}

func TestLoad_TrustProxy(t *testing.T) {
	t.Setenv("TRUST_PROXY", "")
	assert.False(t, Load().TrustProxy)
	t.Setenv("TRUST_PROXY", "true")
	assert.True(t, Load().TrustProxy)
}

func TestValidate_UnknownBackends(t *testing.T) {
	cfg := Load()
	cfg.SessionBackend = "memcached"
	assert.ErrorContains(t, cfg.Validate(), "SESSION_BACKEND")

	cfg = Load()
	cfg.StoreBackend = "mongo"
	assert.ErrorContains(t, cfg.Validate(), "STORE_BACKEND")

	cfg = Load()
	cfg.MailDriver = "carrier-pigeon"
	assert.ErrorContains(t, cfg.Validate(), "MAIL_DRIVER")
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultAddress, cfg.Server.Address)
	assert.Equal(t, DefaultRequestTimeout, cfg.Server.RequestTimeout)
	assert.Equal(t, DefaultDatabaseURL, cfg.Database.URL)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.RateLimit.Enabled)
	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("TODOS_PRIMARY__ENV", "production")
	t.Setenv("TODOS_SERVER__ADDRESS", "0.0.0.0:8080")
	t.Setenv("TODOS_SERVER__REQUEST_TIMEOUT", "2s")
	t.Setenv("TODOS_SERVER__CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("TODOS_DATABASE__URL", "postgres://app@db:5432/app")
	t.Setenv("TODOS_DATABASE__MAX_CONNS", "25")
	t.Setenv("TODOS_REDIS__ADDRESS", "redis:6379")
	t.Setenv("TODOS_RATE_LIMIT__ENABLED", "true")
	t.Setenv("TODOS_OBSERVABILITY__LOGGING__LEVEL", "warn")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Address)
	assert.Equal(t, 2*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, "postgres://app@db:5432/app", cfg.Database.URL)
	assert.Equal(t, int32(25), cfg.Database.MaxConns)
	assert.True(t, cfg.Redis.Enabled())
	assert.True(t, cfg.RateLimit.Enabled)

	// untouched keys keep their defaults
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)

	assert.Equal(t, "production", cfg.Observability.Environment)
	assert.Equal(t, "warn", cfg.Observability.GetLogLevel())
	assert.True(t, cfg.Observability.IsProduction())
}

func TestLoadConfig_DatabaseURLFallback(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://fallback@localhost:5432/todos")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "postgres://fallback@localhost:5432/todos", cfg.Database.URL)
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "unknown env", key: "TODOS_PRIMARY__ENV", val: "moon"},
		{name: "bad address", key: "TODOS_SERVER__ADDRESS", val: "not an address"},
		{name: "bad log level", key: "TODOS_OBSERVABILITY__LOGGING__LEVEL", val: "loud"},
		{name: "zero pool", key: "TODOS_DATABASE__MAX_CONNS", val: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestObservabilityConfig_HealthCheckEnabled(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	assert.True(t, cfg.HealthCheckEnabled("database"))
	assert.False(t, cfg.HealthCheckEnabled("kafka"))

	cfg.HealthChecks.Enabled = false
	assert.False(t, cfg.HealthCheckEnabled("database"))
}

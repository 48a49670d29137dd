package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "DATABASE_DSN", "RUN_MIGRATIONS", "RABBITMQ_URL", "PERMISSIONS_FILE", "REQUEST_TIMEOUT", "SHUTDOWN_TIMEOUT", "CORS_ALLOW_ORIGINS"} {
		t.Setenv(k, "")
	}

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.True(t, cfg.RunMigrations)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigins)
}

func TestLoad_EnvThenFlags(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("RUN_MIGRATIONS", "false")
	t.Setenv("REQUEST_TIMEOUT", "not-a-duration")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load([]string{"--http-addr", ":9100", "--shutdown-timeout", "3s"})
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.HTTPAddr)
	assert.False(t, cfg.RunMigrations)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowOrigins)
}

func TestLoad_UnknownFlag(t *testing.T) {
	_, err := Load([]string{"--no-such-flag"})
	require.Error(t, err)
}

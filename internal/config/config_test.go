package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/social")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, "social.events", cfg.EventsExchange)
	assert.Equal(t, "social-service", cfg.ServiceName)
	assert.Equal(t, "local", cfg.Environment)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, ":8085", cfg.GRPCAddr)
	assert.Empty(t, cfg.AMQPURL)
}

func TestLoadFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	content := "DATABASE_DRIVER=sqlite\nDATABASE_URL=/tmp/social.db\nJWT_SECRET=from-file\nHTTP_PORT=9090\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "/tmp/social.db", cfg.DatabaseURL)
	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, "9090", cfg.HTTPPort)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	content := "DATABASE_URL=/tmp/social.db\nJWT_SECRET=from-file\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o644))
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.JWTSecret)
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")

	_, err := Load(t.TempDir())
	assert.Error(t, err)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "BACKEND_URL", "TOAST_TTL", "PRICE_PUSH_INTERVAL", "DATABASE_URL", "DB_HOST"} {
		t.Setenv(key, "")
	}

	cfg, loaded, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.False(t, loaded)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:5000", cfg.BackendURL)
	assert.Equal(t, 3*time.Second, cfg.ToastTTL)
	assert.Equal(t, time.Minute, cfg.PricePushInterval)
	assert.False(t, cfg.Database.Enabled())
}

func TestLoad_DotEnvFile(t *testing.T) {
	t.Setenv("BACKEND_URL", "")
	t.Setenv("TOAST_TTL", "")
	os.Unsetenv("BACKEND_URL")
	os.Unsetenv("TOAST_TTL")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("BACKEND_URL=http://gold:5000\nTOAST_TTL=5\n"), 0o600))

	cfg, loaded, err := Load(path)
	require.NoError(t, err)

	assert.True(t, loaded)
	assert.Equal(t, "http://gold:5000", cfg.BackendURL)
	assert.Equal(t, 5*time.Second, cfg.ToastTTL)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("TOAST_TTL", "soon")

	_, _, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestDatabaseConfig_ConnString(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "n"}
	assert.True(t, d.Enabled())
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", d.ConnString())

	d.URL = "postgres://x"
	assert.Equal(t, "postgres://x", d.ConnString())
}

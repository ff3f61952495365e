package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("APP_CONFIG", filepath.Join(t.TempDir(), "missing.env"))
	for _, k := range []string{
		"PORT", "BASE_URL", "APP_ENV", "APP_TIMEZONE", "SESSION_TIMEOUT",
		"OTP_EXPIRY_MINUTES", "HISTORY_TRUNCATE", "HISTORY_PAGE_SIZE",
		"CORS_ORIGINS", "COOKIE_SECURE",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("DATABASE_URL", "postgres://localhost/docreader")
	t.Setenv("AUTH_SECRET", "s3cret")
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 30*time.Minute, cfg.SessionTimeout)
	assert.Equal(t, 10*time.Minute, cfg.OTPExpiry)
	assert.Equal(t, 60, cfg.HistoryTruncate)
	assert.Equal(t, 20, cfg.HistoryPageSize)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "Asia/Ho_Chi_Minh", cfg.Timezone.String())
	assert.False(t, cfg.CookieSecure)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_TIMEOUT", "600")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("APP_TIMEZONE", "UTC")
	t.Setenv("COOKIE_SECURE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 10*time.Minute, cfg.SessionTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, time.UTC, cfg.Timezone)
	assert.True(t, cfg.CookieSecure)
}

func TestLoad_DotenvFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "app.env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=7000\nHISTORY_PAGE_SIZE=50\n"), 0o600))
	t.Setenv("APP_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, 50, cfg.HistoryPageSize)
}

func TestLoad_RequiredKeys(t *testing.T) {
	isolate(t)
	os.Unsetenv("DATABASE_URL")

	_, err := Load()
	assert.EqualError(t, err, "DATABASE_URL is not set")

	t.Setenv("DATABASE_URL", "postgres://localhost/docreader")
	os.Unsetenv("AUTH_SECRET")
	_, err = Load()
	assert.EqualError(t, err, "AUTH_SECRET is not set")
}

func TestLoad_BadTimezone(t *testing.T) {
	isolate(t)
	t.Setenv("APP_TIMEZONE", "Mars/Olympus")

	_, err := Load()
	assert.Error(t, err)
}

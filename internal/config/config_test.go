package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"SERVER_PORT", "CORS_ALLOW_ORIGIN", "LOG_LEVEL", "STRIPE_SECRET_KEY", "STRIPE_API_URL", "PAYMENT_TIMEOUT"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "*", cfg.AllowOrigin)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DefaultPaymentTimeout, cfg.PaymentTimeout)
	assert.Empty(t, cfg.StripeSecretKey)
	assert.True(t, cfg.TestMode())
}

func TestLoadConfigFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_env")
	t.Setenv("PAYMENT_TIMEOUT", "3s")
	t.Setenv("CORS_ALLOW_ORIGIN", "https://example.com")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "sk_test_env", cfg.StripeSecretKey)
	assert.False(t, cfg.TestMode())
	assert.Equal(t, 3*time.Second, cfg.PaymentTimeout)
	assert.Equal(t, "https://example.com", cfg.AllowOrigin)
}

func TestLoadConfigFromDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	content := "STRIPE_SECRET_KEY=sk_test_file\nSERVER_PORT=9090\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "sk_test_file", cfg.StripeSecretKey)
	assert.Equal(t, "9090", cfg.ServerPort)
}

func TestLoadConfigEnvOverridesDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SERVER_PORT=9090\n"), 0o600))
	t.Setenv("SERVER_PORT", "7070")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.ServerPort)
}

func TestLoadConfigNonPositiveTimeoutFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("PAYMENT_TIMEOUT", "0s")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultPaymentTimeout, cfg.PaymentTimeout)
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("MARKETBAY_JWT_SECRET", "test-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, "User", cfg.Auth.DefaultRole)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("MARKETBAY_JWT_SECRET", "test-secret")
	t.Setenv("MARKETBAY_PORT", "9999")
	t.Setenv("MARKETBAY_TOKEN_TTL", "30m")
	t.Setenv("MARKETBAY_BCRYPT_COST", "10")
	t.Setenv("MARKETBAY_DEFAULT_ROLE", "Seller")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, "Seller", cfg.Auth.DefaultRole)
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	t.Setenv("MARKETBAY_JWT_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MARKETBAY_JWT_SECRET")
}

func TestValidate_BcryptCostRange(t *testing.T) {
	t.Setenv("MARKETBAY_JWT_SECRET", "test-secret")
	t.Setenv("MARKETBAY_BCRYPT_COST", "99")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bcrypt cost")
}

func TestLoadConfig_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("MARKETBAY_JWT_SECRET", "test-secret")
	t.Setenv("MARKETBAY_TOKEN_TTL", "not-a-duration")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
}

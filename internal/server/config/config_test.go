package config

import (
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GOPHAUTH_ADDR", "DATABASE_URL", "JWT_SECRET", "JWT_TTL", "JWT_ISSUER",
		"HASH_CONCURRENCY", "OTEL_ENDPOINT", "LOG_LEVEL", "GOPHAUTH_CONFIG"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":50051", c.EndpointAddrGRPC)
	assert.Empty(t, c.DatabaseDSN)
	assert.Empty(t, c.SecretKey)
	assert.Equal(t, 1*time.Hour, c.AccessTokenValidityDuration)
	assert.Equal(t, "gophauth", c.TokenIssuer)
	assert.Equal(t, runtime.NumCPU(), c.HashConcurrency)
	assert.Empty(t, c.OTelEndpoint)
	assert.Equal(t, "info", c.LogLevel)
}

func TestValidate(t *testing.T) {
	t.Run("missing secret is fatal", func(t *testing.T) {
		c := Config{DatabaseDSN: "postgres://x", AccessTokenValidityDuration: time.Minute}
		err := c.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMissingSecret))
		assert.False(t, errors.Is(err, ErrMissingDSN))
	})

	t.Run("missing dsn", func(t *testing.T) {
		c := Config{SecretKey: "s", AccessTokenValidityDuration: time.Minute}
		assert.ErrorIs(t, c.Validate(), ErrMissingDSN)
	})

	t.Run("both missing are reported together", func(t *testing.T) {
		c := Config{AccessTokenValidityDuration: time.Minute}
		err := c.Validate()
		assert.ErrorIs(t, err, ErrMissingSecret)
		assert.ErrorIs(t, err, ErrMissingDSN)
	})

	t.Run("non-positive ttl", func(t *testing.T) {
		c := Config{SecretKey: "s", DatabaseDSN: "d"}
		assert.Error(t, c.Validate())
	})

	t.Run("ok", func(t *testing.T) {
		c := Config{SecretKey: "s", DatabaseDSN: "d", AccessTokenValidityDuration: time.Minute}
		assert.NoError(t, c.Validate())
	})
}

func TestLoad_RefusesWithoutSecret(t *testing.T) {
	clearEnv(t)

	_, err := Load([]string{"-d", "postgres://localhost/db"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)

	path := writeTempJSON(t, t.TempDir(), "cfg.json", map[string]any{
		"database_dsn": "postgres://from-json/db",
		"secret_key":   "json-secret",
		"log_level":    "debug",
	})
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("JWT_TTL", "30m")

	c, err := Load([]string{"-c", path, "-a", "127.0.0.1:7000"})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:7000", c.EndpointAddrGRPC, "flag wins")
	assert.Equal(t, "postgres://from-json/db", c.DatabaseDSN, "json applies when nothing overrides it")
	assert.Equal(t, "env-secret", c.SecretKey, "env beats json")
	assert.Equal(t, 30*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestLoad_BadEnvValue(t *testing.T) {
	clearEnv(t)
	t.Setenv("HASH_CONCURRENCY", "many")

	_, err := Load([]string{"-s", "x", "-d", "y"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

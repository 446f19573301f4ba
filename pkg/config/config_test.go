package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/diillson/restaurante-api/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenExpiration)
	assert.Equal(t, 10, cfg.Auth.LoginRateLimit)
	assert.Equal(t, "memory", cfg.Cache.Type)
	assert.False(t, cfg.Events.Enabled)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
server:
  port: 9090
database:
  driver: postgres
  dsn: postgres://u:p@localhost/restaurante
auth:
  tokenExpiration: 1h
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o600))

	t.Setenv("RA_SERVER_PORT", "7070")

	cfg, err := config.LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, time.Hour, cfg.Auth.TokenExpiration)
}

func TestValidate(t *testing.T) {
	base := func() *config.Config {
		return &config.Config{
			Database: config.DatabaseConfig{Driver: "sqlite"},
			Cache:    config.CacheConfig{Enabled: true, Type: "memory"},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, config.Validate(base()))
	})

	t.Run("invalid driver", func(t *testing.T) {
		cfg := base()
		cfg.Database.Driver = "oracle"
		assert.Error(t, config.Validate(cfg))
	})

	t.Run("short jwt secret", func(t *testing.T) {
		cfg := base()
		cfg.Auth.JWTSecret = "curta"
		assert.Error(t, config.Validate(cfg))
	})

	t.Run("redis without address", func(t *testing.T) {
		cfg := base()
		cfg.Cache.Type = "redis"
		assert.Error(t, config.Validate(cfg))
	})

	t.Run("events without brokers", func(t *testing.T) {
		cfg := base()
		cfg.Events.Enabled = true
		assert.Error(t, config.Validate(cfg))
	})
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithMemoryDriver(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "does-not-exist.yaml")
	t.Setenv("DATABASE_DRIVER", "memory")
	t.Setenv("JWT_EXPIRE", "2h")
	t.Setenv("CACHE_SIZE", "64")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, 2*time.Hour, cfg.Auth.JWTExpire)
	assert.Equal(t, 64, cfg.Cache.Size)
	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, devJWTSecret, cfg.Auth.JWTSecret)
}

func TestLoadReleaseRequiresSecret(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "does-not-exist.yaml")
	t.Setenv("DATABASE_DRIVER", "memory")
	t.Setenv("GIN_MODE", "release")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"postgres without url", func(c *Config) { c.Database.URL = "" }, "DATABASE_URL"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mongo" }, "unknown DATABASE_DRIVER"},
		{"zero cache", func(c *Config) { c.Cache.Size = 0 }, "CACHE_SIZE"},
		{"valid", func(c *Config) {}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.Auth.JWTSecret = "secret"
			cfg.Database.URL = "postgres://localhost/recipes"
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	assert.Equal(t, "database.url", envTransformFunc("DATABASE_URL"))
	assert.Equal(t, "auth.jwt_secret", envTransformFunc("JWT_SECRET"))
	assert.Equal(t, "", envTransformFunc("HOME"))
}

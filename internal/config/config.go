// Package config loads service configuration from defaults, an optional
// YAML file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	// devJWTSecret is only accepted outside release mode.
	devJWTSecret = "recipeshare-dev-secret"
)

// ConfigPathEnvVar overrides the config file search.
const ConfigPathEnvVar = "CONFIG_PATH"

var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
}

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Auth     AuthConfig     `koanf:"auth"`
	Cache    CacheConfig    `koanf:"cache"`
	Logging  LoggingConfig  `koanf:"logging"`
}

type ServerConfig struct {
	Port            string        `koanf:"port"`
	GinMode         string        `koanf:"gin_mode"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver          string        `koanf:"driver"`
	URL             string        `koanf:"url"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}

type AuthConfig struct {
	JWTSecret  string        `koanf:"jwt_secret"`
	JWTExpire  time.Duration `koanf:"jwt_expire"`
	BcryptCost int           `koanf:"bcrypt_cost"`
}

// CacheConfig sizes the recipe detail cache.
type CacheConfig struct {
	Size int           `koanf:"size"`
	TTL  time.Duration `koanf:"ttl"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "5000",
			GinMode:         "debug",
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:          DriverPostgres,
			URL:             "",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Auth: AuthConfig{
			JWTSecret:  "",
			JWTExpire:  24 * time.Hour,
			BcryptCost: 10,
		},
		Cache: CacheConfig{
			Size: 500,
			TTL:  5 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load layers defaults, the config file (if any) and environment variables.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if cfg.Auth.JWTSecret == "" && !cfg.IsRelease() {
		cfg.Auth.JWTSecret = devJWTSecret
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envTransformFunc maps the flat env names used in deployments onto
// nested keys. Unmapped variables are dropped.
func envTransformFunc(key string) string {
	envMappings := map[string]string{
		"port":                 "server.port",
		"gin_mode":             "server.gin_mode",
		"shutdown_timeout":     "server.shutdown_timeout",
		"database_driver":      "database.driver",
		"database_url":         "database.url",
		"db_max_open_conns":    "database.max_open_conns",
		"db_max_idle_conns":    "database.max_idle_conns",
		"db_conn_max_lifetime": "database.conn_max_lifetime",
		"jwt_secret":           "auth.jwt_secret",
		"jwt_expire":           "auth.jwt_expire",
		"bcrypt_cost":          "auth.bcrypt_cost",
		"cache_size":           "cache.size",
		"cache_ttl":            "cache.ttl",
		"log_level":            "logging.level",
		"log_format":           "logging.format",
	}
	return envMappings[strings.ToLower(key)]
}

func (c *Config) IsRelease() bool {
	return c.Server.GinMode == "release"
}

func (c *Config) Validate() error {
	var errs []error
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required in release mode"))
	}
	if c.Auth.JWTExpire <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRE must be positive"))
	}
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.URL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown DATABASE_DRIVER %q", c.Database.Driver))
	}
	if c.Cache.Size <= 0 {
		errs = append(errs, errors.New("CACHE_SIZE must be positive"))
	}
	if c.Server.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	return errors.Join(errs...)
}

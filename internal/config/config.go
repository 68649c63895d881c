// Package config loads the server configuration from defaults, an optional
// YAML file, a .env file and TODOLIST_* environment variables, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g.
// TODOLIST_STORE_DRIVER overrides store.driver.
const EnvPrefix = "TODOLIST"

// DefaultJWTSecret is the placeholder secret. The server warns when it is in use.
const DefaultJWTSecret = "change-me"

// Store drivers.
const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

// Config is the full server configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Store   StoreConfig   `mapstructure:"store"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type StoreConfig struct {
	Driver  string        `mapstructure:"driver"`
	Timeout time.Duration `mapstructure:"timeout"`
	SQLite  SQLiteConfig  `mapstructure:"sqlite"`
	Mongo   MongoConfig   `mapstructure:"mongo"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

type MongoConfig struct {
	URI          string `mapstructure:"uri"`
	Database     string `mapstructure:"database"`
	Transactions bool   `mapstructure:"transactions"`
}

type AuthConfig struct {
	JWTSecret    string        `mapstructure:"jwt_secret"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
	RequireToken bool          `mapstructure:"require_token"`
	BcryptCost   int           `mapstructure:"bcrypt_cost"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// defaultConfigPaths are tried in order when no explicit path is given.
var defaultConfigPaths = []string{
	"./config.yaml",
	"./configs/config.yaml",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("store.driver", DriverSQLite)
	v.SetDefault("store.timeout", 5*time.Second)
	v.SetDefault("store.sqlite.path", "./data/todolist.db")
	v.SetDefault("store.mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("store.mongo.database", "todolist")
	v.SetDefault("store.mongo.transactions", false)

	v.SetDefault("auth.jwt_secret", DefaultJWTSecret)
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.require_token", false)
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("metrics.enabled", true)
}

// Load reads the configuration. configPath may be empty, in which case the
// default locations are tried and a missing file is not an error.
func Load(configPath string) (*Config, error) {
	// A missing .env is normal outside development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := readConfigFile(v, configPath); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func readConfigFile(v *viper.Viper, configPath string) error {
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
		return nil
	}

	for _, path := range defaultConfigPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		return nil
	}
	return nil
}

// Validate checks the values that would otherwise fail late at runtime.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverSQLite:
		if c.Store.SQLite.Path == "" {
			return errors.New("store.sqlite.path is required")
		}
	case DriverMongo:
		if c.Store.Mongo.URI == "" || c.Store.Mongo.Database == "" {
			return errors.New("store.mongo.uri and store.mongo.database are required")
		}
	default:
		return fmt.Errorf("unknown store.driver %q", c.Store.Driver)
	}

	if c.Store.Timeout <= 0 {
		return errors.New("store.timeout must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return errors.New("server.shutdown_timeout must be positive")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth.token_ttl must be positive")
	}
	if c.Auth.RequireToken && c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required when auth.require_token is set")
	}
	return nil
}

// Package config provides configuration management for userhub
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host" yaml:"host"`
	Port            int           `mapstructure:"port" yaml:"port" validate:"min=1,max=65535"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// DatabaseConfig holds persistence settings
type DatabaseConfig struct {
	Type string `mapstructure:"type" yaml:"type" validate:"oneof=sqlite"`
	Path string `mapstructure:"path" yaml:"path"`
}

// AuthConfig holds authentication settings. The JWT secret is process-wide
// configuration; rotating it invalidates all outstanding tokens.
type AuthConfig struct {
	JWTSecret        string        `mapstructure:"jwt_secret" yaml:"jwt_secret" validate:"required"`
	TokenExpiry      time.Duration `mapstructure:"token_expiry" yaml:"token_expiry" validate:"gt=0"`
	BcryptCost       int           `mapstructure:"bcrypt_cost" yaml:"bcrypt_cost" validate:"min=4,max=31"`
	EnforceOwnership bool          `mapstructure:"enforce_ownership" yaml:"enforce_ownership"`
}

// Config is the root configuration for the service
type Config struct {
	LogLevel string         `mapstructure:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Auth     AuthConfig     `mapstructure:"auth" yaml:"auth"`

	v *viper.Viper
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			AllowedOrigins:  []string{"*"},
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Type: "sqlite",
			Path: "./data/userhub.db",
		},
		Auth: AuthConfig{
			TokenExpiry:      24 * time.Hour,
			BcryptCost:       10,
			EnforceOwnership: true,
		},
	}
}

// Load reads configuration from an optional YAML file and the environment.
// Environment variables use the USERHUB_ prefix with underscores, e.g.
// USERHUB_AUTH_JWT_SECRET overrides auth.jwt_secret.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetEnvPrefix("USERHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, cfg)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.v = v
	return cfg, nil
}

// setDefaults registers every key with viper so env overrides are picked up
// even without a config file.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("server.host", cfg.Server.Host)
	v.SetDefault("server.port", cfg.Server.Port)
	v.SetDefault("server.allowed_origins", cfg.Server.AllowedOrigins)
	v.SetDefault("server.read_timeout", cfg.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", cfg.Server.WriteTimeout)
	v.SetDefault("server.idle_timeout", cfg.Server.IdleTimeout)
	v.SetDefault("server.shutdown_timeout", cfg.Server.ShutdownTimeout)
	v.SetDefault("database.type", cfg.Database.Type)
	v.SetDefault("database.path", cfg.Database.Path)
	v.SetDefault("auth.jwt_secret", cfg.Auth.JWTSecret)
	v.SetDefault("auth.token_expiry", cfg.Auth.TokenExpiry)
	v.SetDefault("auth.bcrypt_cost", cfg.Auth.BcryptCost)
	v.SetDefault("auth.enforce_ownership", cfg.Auth.EnforceOwnership)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if c.Database.Type == "sqlite" && c.Database.Path == "" {
		return fmt.Errorf("database.path is required for sqlite")
	}

	return nil
}

// Save writes the effective configuration to a YAML file
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// Watch re-reads the config file on change and invokes onChange with the
// freshly loaded configuration. Only effective when loaded from a file.
func (c *Config) Watch(onChange func(*Config)) {
	if c.v == nil || c.v.ConfigFileUsed() == "" {
		return
	}

	c.v.OnConfigChange(func(e fsnotify.Event) {
		fresh := DefaultConfig()
		if err := c.v.Unmarshal(fresh); err != nil {
			return
		}
		if err := fresh.Validate(); err != nil {
			return
		}
		fresh.v = c.v
		onChange(fresh)
	})
	c.v.WatchConfig()
}

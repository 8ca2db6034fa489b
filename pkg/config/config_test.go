package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenExpiry)
	assert.True(t, cfg.Auth.EnforceOwnership)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
log_level: debug
server:
  port: 9090
  allowed_origins:
    - http://localhost:3000
database:
  type: sqlite
  path: /tmp/test.db
auth:
  jwt_secret: file-secret
  token_expiry: 1h
  bcrypt_cost: 4
  enforce_ownership: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
	assert.Equal(t, "file-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, time.Hour, cfg.Auth.TokenExpiry)
	assert.False(t, cfg.Auth.EnforceOwnership)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("USERHUB_AUTH_JWT_SECRET", "env-secret")
	t.Setenv("USERHUB_SERVER_PORT", "7070")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) { c.Auth.JWTSecret = "secret" }, false},
		{"missing jwt secret", func(c *Config) {}, true},
		{"bad port", func(c *Config) {
			c.Auth.JWTSecret = "secret"
			c.Server.Port = 0
		}, true},
		{"bad log level", func(c *Config) {
			c.Auth.JWTSecret = "secret"
			c.LogLevel = "verbose"
		}, true},
		{"bcrypt cost too low", func(c *Config) {
			c.Auth.JWTSecret = "secret"
			c.Auth.BcryptCost = 2
		}, true},
		{"sqlite without path", func(c *Config) {
			c.Auth.JWTSecret = "secret"
			c.Database.Path = ""
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Save(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "config.yaml")

	cfg := DefaultConfig()
	cfg.Auth.JWTSecret = "secret"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Server.Port, loaded.Server.Port)
	assert.Equal(t, "secret", loaded.Auth.JWTSecret)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.App.Env)
	assert.Equal(t, ":8080", cfg.Server.GRPCAddr)
	assert.Equal(t, ":8081", cfg.Server.HTTPAddr)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 30*time.Minute, cfg.DB.ConnMaxLifetime)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.False(t, cfg.DB.UseMemory)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TJ_SERVER_GRPC_ADDR", ":9090")
	t.Setenv("TJ_DB_USE_MEMORY", "true")
	t.Setenv("TJ_AUTH_JWT_SECRET", "from-env")
	t.Setenv("TJ_AUTH_TOKEN_TTL", "1h")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.GRPCAddr)
	assert.True(t, cfg.DB.UseMemory)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TJ_LOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("TJ_LOG_LEVEL") })

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  http_addr: \":9999\"\ndb:\n  name: journal_test\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.HTTPAddr)
	assert.Equal(t, "journal_test", cfg.DB.Name)
}

func TestLoad_MissingYAMLFile(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		Server: ServerConfig{GRPCAddr: ":8080"},
		Auth:   AuthConfig{JWTSecret: "secret", TokenTTL: time.Hour},
	}

	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectedErr string
	}{
		{name: "Valid", mutate: func(c *Config) {}},
		{name: "Empty secret", mutate: func(c *Config) { c.Auth.JWTSecret = "" }, expectedErr: "auth.jwt_secret must be set"},
		{name: "Zero TTL", mutate: func(c *Config) { c.Auth.TokenTTL = 0 }, expectedErr: "auth.token_ttl must be positive"},
		{
			name:        "No listeners",
			mutate:      func(c *Config) { c.Server = ServerConfig{} },
			expectedErr: "at least one of server.grpc_addr or server.http_addr must be set",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()

			if tt.expectedErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.expectedErr)
			}
		})
	}
}

func TestDBConfig_ConnectionString(t *testing.T) {
	tests := []struct {
		name     string
		cfg      DBConfig
		expected string
	}{
		{
			name:     "Explicit DSN wins",
			cfg:      DBConfig{DSN: "postgres://u:p@db:5432/x", Host: "ignored"},
			expected: "postgres://u:p@db:5432/x",
		},
		{
			name: "Built from individual fields",
			cfg: DBConfig{
				Host: "db", Port: 5433, User: "u", Password: "p", Name: "journal", SSLMode: "disable",
			},
			expected: "host=db port=5433 user=u password=p dbname=journal sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cfg.ConnectionString())
		})
	}
}

// chdir changes the working directory for the duration of the test
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

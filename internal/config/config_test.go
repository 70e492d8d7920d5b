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
	for _, key := range []string{EnvAPIURL, EnvAPIKey, EnvTimeout, EnvLogLevel, EnvStrictSwap} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(Sources{File: filepath.Join(t.TempDir(), "missing.yaml"), EnvFile: filepath.Join(t.TempDir(), ".env")})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingRequiredFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(Sources{File: filepath.Join(t.TempDir(), "missing.yaml"), Required: true})
	assert.Error(t, err)
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)

	file := writeFile(t, "portfolio-mcp.yaml", `
api_url: http://tracker.lan:3000
api_key: from-file
timeout: 10s
log_level: debug
strict_swap: true
transport: sse
port: 9090
`)
	env := writeFile(t, ".env", "PORTFOLIO_API_KEY=from-dotenv\nPORTFOLIO_TIMEOUT=15\n")
	t.Setenv(EnvAPIKey, "from-env")

	cfg, err := Load(Sources{File: file, EnvFile: env})
	require.NoError(t, err)

	assert.Equal(t, "http://tracker.lan:3000", cfg.BaseURL)
	assert.Equal(t, "from-env", cfg.APIKey, "the environment wins over the dotenv file")
	assert.Equal(t, 15*time.Second, cfg.Timeout, "the dotenv file wins over the YAML file")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.StrictSwap)
	assert.Equal(t, TransportSSE, cfg.Transport)
	assert.Equal(t, 9090, cfg.Port)
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	_, err := Load(Sources{File: writeFile(t, "bad.yaml", "timeout: [")})
	assert.Error(t, err)
}

func TestApplyEnv_EmptyValuesKeepFileSettings(t *testing.T) {
	lookup := func(k string) (string, bool) { return "", true }

	cfg := Default()
	cfg.APIKey = "from-file"
	cfg.BaseURL = "http://tracker.lan:3000"
	require.NoError(t, cfg.applyEnv(lookup))

	assert.Equal(t, "from-file", cfg.APIKey)
	assert.Equal(t, "http://tracker.lan:3000", cfg.BaseURL)
	assert.Equal(t, Default().Timeout, cfg.Timeout)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvAPIURL:     "https://tracker.example.com",
		EnvTimeout:    "1m30s",
		EnvLogLevel:   "warn",
		EnvStrictSwap: "1",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, cfg.applyEnv(lookup))
	assert.Equal(t, "https://tracker.example.com", cfg.BaseURL)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.StrictSwap)

	env[EnvStrictSwap] = "maybe"
	assert.Error(t, cfg.applyEnv(lookup))

	env[EnvStrictSwap] = "false"
	env[EnvTimeout] = "soon"
	assert.Error(t, cfg.applyEnv(lookup))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"relative url", func(c *Config) { c.BaseURL = "localhost:3000" }},
		{"unsupported scheme", func(c *Config) { c.BaseURL = "ftp://tracker" }},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }},
		{"log level", func(c *Config) { c.LogLevel = "chatty" }},
		{"transport", func(c *Config) { c.Transport = "grpc" }},
		{"port", func(c *Config) { c.Port = 70000 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

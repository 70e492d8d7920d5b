// Package config resolves the server settings from defaults, a YAML file,
// a .env file, the environment and command-line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/portfolio-mcp/internal/logging"
)

// Environment variables read by Load.
const (
	EnvAPIURL     = "PORTFOLIO_API_URL"
	EnvAPIKey     = "PORTFOLIO_API_KEY"
	EnvTimeout    = "PORTFOLIO_TIMEOUT"
	EnvLogLevel   = "PORTFOLIO_LOG_LEVEL"
	EnvStrictSwap = "PORTFOLIO_STRICT_SWAP"
)

// Transports accepted by the mcp command.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
	TransportHTTP  = "http"
)

// DefaultFile is the config file looked up when --config is not given.
const DefaultFile = "portfolio-mcp.yaml"

// Config holds every setting of the server.
type Config struct {
	BaseURL    string        `yaml:"api_url"`
	APIKey     string        `yaml:"api_key"`
	Timeout    time.Duration `yaml:"timeout"`
	LogLevel   string        `yaml:"log_level"`
	StrictSwap bool          `yaml:"strict_swap"`
	Transport  string        `yaml:"transport"`
	Port       int           `yaml:"port"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		BaseURL:   "http://localhost:3000",
		Timeout:   30 * time.Second,
		LogLevel:  "info",
		Transport: TransportStdio,
		Port:      8080,
	}
}

// Sources names the files Load reads.
type Sources struct {
	// File is the YAML config file. A missing file is an error only when Required is set.
	File     string
	Required bool
	// EnvFile is a dotenv file preloaded into the environment. Missing is fine.
	EnvFile string
}

// Load resolves the configuration from defaults, the YAML file, the dotenv
// file and the environment. Flags are applied by the caller afterwards.
func Load(src Sources) (Config, error) {
	cfg := Default()

	if src.File != "" {
		if err := cfg.readFile(src.File, src.Required); err != nil {
			return cfg, err
		}
	}

	if src.EnvFile != "" {
		// godotenv.Load never overrides variables that are already set.
		if err := godotenv.Load(src.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("failed to load env file %s: %w", src.EnvFile, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAPIURL); ok && v != "" {
		c.BaseURL = v
	}
	if v, ok := lookup(EnvAPIKey); ok && v != "" {
		c.APIKey = v
	}
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvStrictSwap); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvStrictSwap, err)
		}
		c.StrictSwap = b
	}
	return nil
}

// parseTimeout accepts a Go duration or a bare number of seconds.
func parseTimeout(v string) (time.Duration, error) {
	if secs, err := strconv.ParseFloat(v, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	return time.ParseDuration(v)
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid api url %q: %w", c.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api url %q: must be an absolute http or https URL", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.Transport {
	case TransportStdio, TransportSSE, TransportHTTP:
	default:
		return fmt.Errorf("unknown transport %q (want stdio, sse or http)", c.Transport)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	return nil
}

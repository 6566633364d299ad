package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings the waitline client needs.
type Config struct {
	// APIURL is the base address of the waitlist API. Empty or a
	// placeholder value puts the client in demo mode.
	APIURL string
	// Stage and Region are informational deployment labels.
	Stage  string
	Region string
	// RefreshIntervalMS is the auto-refresh cadence in milliseconds.
	RefreshIntervalMS int
	// MaxRetries is declared for parity with the API deployment config;
	// the reload logic deliberately does not retry (the next poll tick is
	// the retry).
	MaxRetries int
	// RequestTimeoutMS bounds a single API request in milliseconds.
	RequestTimeoutMS int
}

const (
	defaultConfigPath        = "~/.config/waitline/config.toml"
	defaultStage             = "dev"
	defaultRegion            = "us-east-1"
	defaultRefreshIntervalMS = 30000
	defaultMaxRetries        = 3
	defaultRequestTimeoutMS  = 10000
)

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

// Environment variable names recognized as overrides.
const (
	EnvAPIURL            = "WAITLINE_API_URL"
	EnvStage             = "WAITLINE_STAGE"
	EnvRegion            = "WAITLINE_REGION"
	EnvRefreshIntervalMS = "WAITLINE_REFRESH_INTERVAL_MS"
	EnvRequestTimeoutMS  = "WAITLINE_REQUEST_TIMEOUT_MS"
)

// Load reads the TOML config file and applies environment overrides on top.
// A missing config file is not an error; defaults apply. When envPath is
// non-empty the file is loaded into the environment first (variables already
// set in the real environment win, per godotenv semantics).
func Load(path, envPath string) (Config, error) {
	if strings.TrimSpace(envPath) != "" {
		if err := godotenv.Load(envPath); err != nil {
			return Config{}, fmt.Errorf("load env file: %w", err)
		}
	} else {
		// Best effort: pick up a .env in the working directory if present.
		_ = godotenv.Load()
	}

	cfg := Config{
		Stage:             defaultStage,
		Region:            defaultRegion,
		RefreshIntervalMS: defaultRefreshIntervalMS,
		MaxRetries:        defaultMaxRetries,
		RequestTimeoutMS:  defaultRequestTimeoutMS,
	}

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnvOverrides(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL            string `toml:"api_url"`
		Stage             string `toml:"stage"`
		Region            string `toml:"region"`
		RefreshIntervalMS int    `toml:"refresh_interval_ms"`
		MaxRetries        int    `toml:"max_retries"`
		RequestTimeoutMS  int    `toml:"request_timeout_ms"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(raw.Stage); v != "" {
		cfg.Stage = v
	}
	if v := strings.TrimSpace(raw.Region); v != "" {
		cfg.Region = v
	}
	if raw.RefreshIntervalMS > 0 {
		cfg.RefreshIntervalMS = raw.RefreshIntervalMS
	}
	if raw.MaxRetries > 0 {
		cfg.MaxRetries = raw.MaxRetries
	}
	if raw.RequestTimeoutMS > 0 {
		cfg.RequestTimeoutMS = raw.RequestTimeoutMS
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvStage)); v != "" {
		cfg.Stage = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvRegion)); v != "" {
		cfg.Region = v
	}
	if v := envInt(EnvRefreshIntervalMS); v > 0 {
		cfg.RefreshIntervalMS = v
	}
	if v := envInt(EnvRequestTimeoutMS); v > 0 {
		cfg.RequestTimeoutMS = v
	}
}

func envInt(name string) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

// DemoMode reports whether the client should run against the built-in demo
// dataset: the API URL is unset or still the deployment placeholder.
func (c Config) DemoMode() bool {
	url := strings.ToLower(strings.TrimSpace(c.APIURL))
	if url == "" {
		return true
	}
	return strings.Contains(url, "your-api")
}

// RefreshInterval returns the auto-refresh cadence as a duration.
func (c Config) RefreshInterval() time.Duration {
	if c.RefreshIntervalMS <= 0 {
		return defaultRefreshIntervalMS * time.Millisecond
	}
	return time.Duration(c.RefreshIntervalMS) * time.Millisecond
}

// RequestTimeout returns the per-request bound as a duration.
func (c Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutMS <= 0 {
		return defaultRequestTimeoutMS * time.Millisecond
	}
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

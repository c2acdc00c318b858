// Package config loads the service configuration from a YAML file, a .env
// file and environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the complete application configuration
type Config struct {
	// HTTP server settings
	HTTP struct {
		Address string `yaml:"address"`
		Port    string `yaml:"port"`
	} `yaml:"http"`

	// Database settings
	DB struct {
		Path string `yaml:"path"`
	} `yaml:"db"`

	// Cache settings
	Cache struct {
		Dir string `yaml:"dir"`
	} `yaml:"cache"`

	// Playlist download settings
	Fetch struct {
		UserAgent    string        `yaml:"user_agent"`
		Timeout      time.Duration `yaml:"timeout"`
		MaxBodyBytes int64         `yaml:"max_body_bytes"`
	} `yaml:"fetch"`

	// Logo cache settings
	Logos struct {
		Timeout      time.Duration `yaml:"timeout"`
		MaxDimension int           `yaml:"max_dimension"`
	} `yaml:"logos"`

	// Program guide settings
	EPG struct {
		Window  time.Duration `yaml:"window"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"epg"`

	// Logging settings
	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	cfg := &Config{}

	cfg.HTTP.Address = "127.0.0.1"
	cfg.HTTP.Port = "8080"

	cfg.DB.Path = "tvdesk.db"

	cfg.Cache.Dir = defaultCacheDir()

	cfg.Fetch.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	cfg.Fetch.Timeout = 30 * time.Second
	cfg.Fetch.MaxBodyBytes = 64 << 20

	cfg.Logos.Timeout = 10 * time.Second
	cfg.Logos.MaxDimension = 0

	cfg.EPG.Window = 8 * time.Hour
	cfg.EPG.Timeout = 60 * time.Second

	cfg.Log.Level = "info"

	return cfg
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "tvdesk")
	}
	return ".cache"
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	var errs []string

	if c.HTTP.Address == "" {
		errs = append(errs, "HTTP address is required")
	}
	if port, err := strconv.Atoi(c.HTTP.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("HTTP port must be between 1 and 65535, got %q", c.HTTP.Port))
	}

	if c.DB.Path == "" {
		errs = append(errs, "Database path is required")
	}
	if c.Cache.Dir == "" {
		errs = append(errs, "Cache directory is required")
	}

	if c.Fetch.UserAgent == "" {
		errs = append(errs, "Fetch user agent is required")
	}
	if c.Fetch.Timeout <= 0 {
		errs = append(errs, "Fetch timeout must be positive")
	}
	if c.Fetch.MaxBodyBytes <= 0 {
		errs = append(errs, "Fetch max body bytes must be positive")
	}

	if c.Logos.Timeout <= 0 {
		errs = append(errs, "Logo timeout must be positive")
	}
	if c.Logos.MaxDimension < 0 {
		errs = append(errs, "Logo max dimension cannot be negative")
	}

	if c.EPG.Window <= 0 {
		errs = append(errs, "EPG window must be positive")
	}
	if c.EPG.Timeout <= 0 {
		errs = append(errs, "EPG timeout must be positive")
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// LogLevel returns the parsed log level, or info if it is invalid.
func (c *Config) LogLevel() slog.Level {
	level, err := ParseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// ParseLevel converts debug, info, warn or error (any case) into a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "", "INFO":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Load reads a .env file if present, then the YAML file named by CONFIG_FILE
// (default config.yaml) if present, applies environment variable overrides
// and validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	configPath := os.Getenv("CONFIG_FILE")
	if configPath == "" {
		configPath = "config.yaml"
	}

	var cfg *Config

	if _, err := os.Stat(configPath); err == nil {
		cfg, err = LoadFromFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg = Default()
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration
func applyEnvOverrides(cfg *Config) error {
	if val := os.Getenv("HTTP_ADDRESS"); val != "" {
		cfg.HTTP.Address = val
	}
	if val := os.Getenv("HTTP_PORT"); val != "" {
		cfg.HTTP.Port = val
	}

	if val := os.Getenv("DB_PATH"); val != "" {
		cfg.DB.Path = val
	}

	if val := os.Getenv("CACHE_DIR"); val != "" {
		absPath, err := filepath.Abs(val)
		if err != nil {
			return fmt.Errorf("failed to resolve absolute path for cache dir: %w", err)
		}
		cfg.Cache.Dir = absPath
	}

	if val := os.Getenv("USER_AGENT"); val != "" {
		cfg.Fetch.UserAgent = val
	}
	if err := envDuration("FETCH_TIMEOUT", &cfg.Fetch.Timeout); err != nil {
		return err
	}
	if val := os.Getenv("FETCH_MAX_BODY_BYTES"); val != "" {
		size, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid FETCH_MAX_BODY_BYTES: %w", err)
		}
		cfg.Fetch.MaxBodyBytes = size
	}

	if err := envDuration("LOGO_TIMEOUT", &cfg.Logos.Timeout); err != nil {
		return err
	}
	if val := os.Getenv("LOGO_MAX_DIMENSION"); val != "" {
		dim, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid LOGO_MAX_DIMENSION: %w", err)
		}
		cfg.Logos.MaxDimension = dim
	}

	if err := envDuration("EPG_WINDOW", &cfg.EPG.Window); err != nil {
		return err
	}
	if err := envDuration("EPG_TIMEOUT", &cfg.EPG.Timeout); err != nil {
		return err
	}

	if val := os.Getenv("LOG_LEVEL"); val != "" {
		cfg.Log.Level = val
	}
	if val := os.Getenv("LOG_FILE"); val != "" {
		cfg.Log.File = val
	}

	return nil
}

func envDuration(name string, dst *time.Duration) error {
	val := os.Getenv(name)
	if val == "" {
		return nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return fmt.Errorf("invalid %s format (expected duration like '30s', '8h'): %w", name, err)
	}
	*dst = d
	return nil
}

// Addr returns the listen address of the HTTP server.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.HTTP.Address, c.HTTP.Port)
}

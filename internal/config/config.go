package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds process settings. Zero FetchTimeout and MaxImageBytes mean
// unbounded.
type Config struct {
	Port            string
	LogLevel        string
	LogFormat       string
	GinMode         string
	FetchTimeout    time.Duration
	MaxImageBytes   int64
	ShutdownTimeout time.Duration
}

func Default() Config {
	return Config{
		Port:            "8080",
		LogLevel:        "info",
		LogFormat:       "json",
		GinMode:         "release",
		ShutdownTimeout: 15 * time.Second,
	}
}

// Load reads an optional .env file and then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, falling back to defaults.
func FromEnv(getenv func(string) string) (Config, error) {
	c := Default()
	c.Port = envOr(getenv, "PORT", c.Port)
	c.LogLevel = strings.ToLower(envOr(getenv, "LOG_LEVEL", c.LogLevel))
	c.LogFormat = strings.ToLower(envOr(getenv, "LOG_FORMAT", c.LogFormat))
	c.GinMode = envOr(getenv, "GIN_MODE", c.GinMode)

	var err error
	if c.FetchTimeout, err = durationEnv(getenv, "FETCH_TIMEOUT", c.FetchTimeout); err != nil {
		return Config{}, err
	}
	if c.ShutdownTimeout, err = durationEnv(getenv, "SHUTDOWN_TIMEOUT", c.ShutdownTimeout); err != nil {
		return Config{}, err
	}
	if v := getenv("MAX_IMAGE_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("MAX_IMAGE_BYTES: %w", err)
		}
		c.MaxImageBytes = n
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port must not be empty")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unknown gin mode %q", c.GinMode)
	}
	if c.FetchTimeout < 0 {
		return fmt.Errorf("fetch timeout must not be negative")
	}
	if c.MaxImageBytes < 0 {
		return fmt.Errorf("max image bytes must not be negative")
	}
	return nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}

func envOr(getenv func(string) string, key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}

func durationEnv(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

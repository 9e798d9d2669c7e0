package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Backend names
const (
	BackendSelenium   = "selenium"
	BackendPlaywright = "playwright"
	BackendHTML       = "html"
)

// Config is the runtime configuration, read from the environment
type Config struct {
	Backend      string
	DriverPath   string
	ChromeBinary string
	DriverPort   int
	Headless     bool
	WaitTimeout  time.Duration
	WaitInterval time.Duration
	StartURL     string
	LogLevel     logrus.Level
}

// Load - loads .env if present, then reads the environment
func Load() (*Config, error) {
	envErr := godotenv.Load()

	cfg, err := FromEnv(os.Getenv)
	if err != nil {
		return nil, err
	}
	if envErr != nil && !os.IsNotExist(envErr) {
		return nil, fmt.Errorf("failed to load .env: %w", envErr)
	}
	return cfg, nil
}

// FromEnv - builds the configuration from a lookup function
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Backend:      strings.ToLower(orDefault(getenv("BROWSER_BACKEND"), BackendHTML)),
		DriverPath:   getenv("BROWSER_DRIVER_PATH"),
		ChromeBinary: getenv("CHROME_BINARY_PATH"),
		StartURL:     getenv("START_URL"),
	}

	var err error
	if cfg.DriverPort, err = strconv.Atoi(orDefault(getenv("DRIVER_PORT"), "9515")); err != nil {
		return nil, fmt.Errorf("invalid DRIVER_PORT: %w", err)
	}
	if cfg.Headless, err = strconv.ParseBool(orDefault(getenv("BROWSER_HEADLESS"), "true")); err != nil {
		return nil, fmt.Errorf("invalid BROWSER_HEADLESS: %w", err)
	}
	if cfg.WaitTimeout, err = time.ParseDuration(orDefault(getenv("WAIT_TIMEOUT"), "5s")); err != nil {
		return nil, fmt.Errorf("invalid WAIT_TIMEOUT: %w", err)
	}
	if cfg.WaitInterval, err = time.ParseDuration(orDefault(getenv("WAIT_INTERVAL"), "250ms")); err != nil {
		return nil, fmt.Errorf("invalid WAIT_INTERVAL: %w", err)
	}
	if cfg.LogLevel, err = logrus.ParseLevel(orDefault(getenv("LOG_LEVEL"), "info")); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate - checks values that cannot be checked while parsing
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSelenium, BackendPlaywright, BackendHTML:
	default:
		return fmt.Errorf("unknown browser backend %q (expected %s, %s or %s)",
			c.Backend, BackendSelenium, BackendPlaywright, BackendHTML)
	}
	if c.WaitTimeout <= 0 || c.WaitInterval <= 0 {
		return fmt.Errorf("wait timeout and interval must be positive")
	}
	return nil
}

// NewLogger - builds the logger the way every component expects it
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(c.LogLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return logger
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

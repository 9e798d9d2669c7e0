package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(env(nil))
	require.NoError(t, err)

	assert.Equal(t, BackendHTML, cfg.Backend)
	assert.Equal(t, 9515, cfg.DriverPort)
	assert.True(t, cfg.Headless)
	assert.Equal(t, 5*time.Second, cfg.WaitTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.WaitInterval)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
	assert.Empty(t, cfg.StartURL)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"BROWSER_BACKEND":     "Selenium",
		"BROWSER_DRIVER_PATH": "/opt/chromedriver",
		"DRIVER_PORT":         "4444",
		"BROWSER_HEADLESS":    "false",
		"WAIT_TIMEOUT":        "10s",
		"WAIT_INTERVAL":       "100ms",
		"START_URL":           "https://example.com",
		"LOG_LEVEL":           "debug",
	}))
	require.NoError(t, err)

	assert.Equal(t, BackendSelenium, cfg.Backend)
	assert.Equal(t, "/opt/chromedriver", cfg.DriverPath)
	assert.Equal(t, 4444, cfg.DriverPort)
	assert.False(t, cfg.Headless)
	assert.Equal(t, 10*time.Second, cfg.WaitTimeout)
	assert.Equal(t, 100*time.Millisecond, cfg.WaitInterval)
	assert.Equal(t, "https://example.com", cfg.StartURL)
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	cases := map[string]map[string]string{
		"backend":  {"BROWSER_BACKEND": "lynx"},
		"port":     {"DRIVER_PORT": "http"},
		"headless": {"BROWSER_HEADLESS": "maybe"},
		"timeout":  {"WAIT_TIMEOUT": "soon"},
		"interval": {"WAIT_INTERVAL": "-1s"},
		"level":    {"LOG_LEVEL": "loud"},
	}
	for name, values := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(env(values))
			assert.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{"LOG_LEVEL": "warn"}))
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, cfg.NewLogger().GetLevel())
}

package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stepwise/config"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, time.Second, cfg.BaseFrameDuration)
	assert.Equal(t, 0.3, cfg.MinSpeed)
	assert.Equal(t, 2.0, cfg.MaxSpeed)
	assert.Equal(t, 1.0, cfg.DefaultSpeed)
	assert.Equal(t, 14, cfg.RatePerMinute)
	assert.Equal(t, 1400, cfg.RatePerDay)
	assert.Empty(t, cfg.StorePath)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{
		"STEPWISE_ADDR":                "127.0.0.1:9000",
		"STEPWISE_LOG_LEVEL":           "debug",
		"STEPWISE_LOG_FORMAT":          "json",
		"STEPWISE_BASE_FRAME_DURATION": "250ms",
		"STEPWISE_MIN_SPEED":           "0.5",
		"STEPWISE_MAX_SPEED":           "4",
		"STEPWISE_DEFAULT_SPEED":       "2",
		"STEPWISE_STORE_PATH":          "/tmp/stepwise.db",
		"STEPWISE_GIT_COMMANDS":        "/etc/stepwise/git.yaml",
	})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, 250*time.Millisecond, cfg.BaseFrameDuration)
	assert.Equal(t, 4.0, cfg.MaxSpeed)
	assert.Equal(t, "/tmp/stepwise.db", cfg.StorePath)
	assert.Equal(t, "/etc/stepwise/git.yaml", cfg.GitCommandsPath)
	lvl, _ := cfg.Level()
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestLoadFrom_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"ZeroDuration":    {"STEPWISE_BASE_FRAME_DURATION": "0s"},
		"InvertedBounds":  {"STEPWISE_MIN_SPEED": "3", "STEPWISE_MAX_SPEED": "1"},
		"DefaultOutside":  {"STEPWISE_DEFAULT_SPEED": "5"},
		"BadLevel":        {"STEPWISE_LOG_LEVEL": "loud"},
		"BadFormat":       {"STEPWISE_LOG_FORMAT": "xml"},
		"ZeroRate":        {"STEPWISE_RATE_PER_MINUTE": "0"},
		"NegativeSpeed":   {"STEPWISE_MIN_SPEED": "-1"},
		"EmptyAddr":       {"STEPWISE_ADDR": " "},
		"ZeroShutdownTTL": {"STEPWISE_SHUTDOWN_TIMEOUT": "0s"},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.LoadFrom(vars)
			assert.ErrorIs(t, err, config.ErrInvalid)
		})
	}
}

func TestLoadFrom_ParseError(t *testing.T) {
	_, err := config.LoadFrom(map[string]string{"STEPWISE_MIN_SPEED": "fast"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, config.ErrInvalid)
}

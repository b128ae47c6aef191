// Package config loads the stepwise server settings from STEPWISE_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the process configuration.
type Config struct {
	Addr            string        `env:"STEPWISE_ADDR"                envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"STEPWISE_SHUTDOWN_TIMEOUT"    envDefault:"10s"`
	LogLevel        string        `env:"STEPWISE_LOG_LEVEL"           envDefault:"info"`
	LogFormat       string        `env:"STEPWISE_LOG_FORMAT"          envDefault:"text"`

	BaseFrameDuration time.Duration `env:"STEPWISE_BASE_FRAME_DURATION" envDefault:"1s"`
	MinSpeed          float64       `env:"STEPWISE_MIN_SPEED"           envDefault:"0.3"`
	MaxSpeed          float64       `env:"STEPWISE_MAX_SPEED"           envDefault:"2.0"`
	DefaultSpeed      float64       `env:"STEPWISE_DEFAULT_SPEED"       envDefault:"1.0"`

	// CatalogPath replaces the embedded scenario catalog when set.
	CatalogPath string `env:"STEPWISE_CATALOG"`
	// GitCommandsPath adds the git walkthroughs of a `commands:` file.
	GitCommandsPath string `env:"STEPWISE_GIT_COMMANDS"`
	// StorePath selects the SQLite store; empty keeps everything in memory.
	StorePath string `env:"STEPWISE_STORE_PATH"`

	RatePerMinute int `env:"STEPWISE_RATE_PER_MINUTE" envDefault:"14"`
	RatePerDay    int `env:"STEPWISE_RATE_PER_DAY"    envDefault:"1400"`
}

// Load parses the process environment and validates the result.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	if vars == nil {
		vars = map[string]string{}
	}
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, fmt.Errorf("%w: STEPWISE_ADDR is empty", ErrInvalid))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: shutdown timeout must be positive", ErrInvalid))
	}
	if c.BaseFrameDuration <= 0 {
		errs = append(errs, fmt.Errorf("%w: base frame duration must be positive", ErrInvalid))
	}
	if !finitePositive(c.MinSpeed) || !finitePositive(c.MaxSpeed) || c.MinSpeed > c.MaxSpeed {
		errs = append(errs, fmt.Errorf("%w: speed bounds [%v, %v]", ErrInvalid, c.MinSpeed, c.MaxSpeed))
	} else if c.DefaultSpeed < c.MinSpeed || c.DefaultSpeed > c.MaxSpeed {
		errs = append(errs, fmt.Errorf("%w: default speed %v outside [%v, %v]", ErrInvalid, c.DefaultSpeed, c.MinSpeed, c.MaxSpeed))
	}
	if c.RatePerMinute < 1 || c.RatePerDay < 1 {
		errs = append(errs, fmt.Errorf("%w: rate caps must be positive", ErrInvalid))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: log format %q", ErrInvalid, c.LogFormat))
	}

	return errors.Join(errs...)
}

// Level maps LogLevel onto a slog.Level.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalid, c.LogLevel)
	}
	return lvl, nil
}

func finitePositive(f float64) bool {
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}

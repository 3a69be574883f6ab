// ABOUTME: Runtime settings for the editor: defaults, then BIM_* environment, then CLI overrides
// ABOUTME: Validate bounds the read timeout to what termios VTIME can express

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/mauromedda/bim-go/internal/log"
)

// Environment variables read by Load.
const (
	EnvReadTimeout = "BIM_READ_TIMEOUT"
	EnvLogFile     = "BIM_LOG_FILE"
	EnvLogLevel    = "BIM_LOG_LEVEL"
)

// Read timeout bounds: one decisecond up to the largest VTIME.
const (
	DefaultReadTimeout = 100 * time.Millisecond
	MinReadTimeout     = 100 * time.Millisecond
	MaxReadTimeout     = 25500 * time.Millisecond
)

// ErrInvalid marks a setting that failed validation.
var ErrInvalid = errors.New("invalid setting")

// Settings holds everything the editor reads at startup.
type Settings struct {
	ReadTimeout time.Duration // per-read key timeout
	LogFile     string        // empty discards logs
	LogLevel    slog.Level
}

// Overrides carries values given on the command line. Nil fields keep the
// environment or default value.
type Overrides struct {
	ReadTimeout *time.Duration
	LogFile     *string
	Verbose     bool // forces debug logging
}

// lookupEnv is swapped in tests.
var lookupEnv = os.LookupEnv

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		ReadTimeout: DefaultReadTimeout,
		LogLevel:    log.LevelInfo,
	}
}

// Load layers defaults, environment and overrides, expands ${VAR}
// references in the log path, and validates the result.
func Load(o Overrides) (Settings, error) {
	s := Defaults()

	if v, ok := lookupEnv(EnvReadTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Settings{}, fmt.Errorf("%w: %s=%q: %w", ErrInvalid, EnvReadTimeout, v, err)
		}
		s.ReadTimeout = d
	}
	if v, ok := lookupEnv(EnvLogFile); ok {
		s.LogFile = v
	}
	if v, ok := lookupEnv(EnvLogLevel); ok {
		l, err := log.ParseLevel(v)
		if err != nil {
			return Settings{}, fmt.Errorf("%w: %s: %w", ErrInvalid, EnvLogLevel, err)
		}
		s.LogLevel = l
	}

	if o.ReadTimeout != nil {
		s.ReadTimeout = *o.ReadTimeout
	}
	if o.LogFile != nil {
		s.LogFile = *o.LogFile
	}
	if o.Verbose {
		s.LogLevel = log.LevelDebug
	}

	ResolveEnvVars(&s)
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks the settings for values the terminal cannot honour.
func (s Settings) Validate() error {
	if s.ReadTimeout < MinReadTimeout || s.ReadTimeout > MaxReadTimeout {
		return fmt.Errorf("%w: read timeout %v outside [%v, %v]",
			ErrInvalid, s.ReadTimeout, MinReadTimeout, MaxReadTimeout)
	}
	return nil
}

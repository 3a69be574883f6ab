// ABOUTME: Tests for settings layering (defaults, env, overrides) and validation
// ABOUTME: Uses t.Setenv, so tests in this file do not run in parallel

package config

import (
	"errors"
	"testing"
	"time"

	"github.com/mauromedda/bim-go/internal/log"
)

func ptr[T any](v T) *T { return &v }

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvReadTimeout, "")
	t.Setenv(EnvLogFile, "")
	t.Setenv(EnvLogLevel, "")

	s, err := Load(Overrides{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s != Defaults() {
		t.Errorf("Load = %+v, want defaults %+v", s, Defaults())
	}
}

func TestLoad_EnvironmentThenOverrides(t *testing.T) {
	t.Setenv(EnvReadTimeout, "300ms")
	t.Setenv(EnvLogFile, "/tmp/env.log")
	t.Setenv(EnvLogLevel, "warn")

	s, err := Load(Overrides{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.ReadTimeout != 300*time.Millisecond || s.LogFile != "/tmp/env.log" || s.LogLevel != log.LevelWarn {
		t.Errorf("env layer = %+v", s)
	}

	s, err = Load(Overrides{
		ReadTimeout: ptr(2 * time.Second),
		LogFile:     ptr("/tmp/flag.log"),
		Verbose:     true,
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.ReadTimeout != 2*time.Second || s.LogFile != "/tmp/flag.log" || s.LogLevel != log.LevelDebug {
		t.Errorf("override layer = %+v", s)
	}
}

func TestLoad_ExpandsLogPath(t *testing.T) {
	t.Setenv("BIM_TEST_DIR", "/var/tmp")
	t.Setenv(EnvLogFile, "${BIM_TEST_DIR}/bim.log")

	s, err := Load(Overrides{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.LogFile != "/var/tmp/bim.log" {
		t.Errorf("LogFile = %q, want expanded path", s.LogFile)
	}
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	tests := []struct {
		name, env, value string
	}{
		{name: "bad duration", env: EnvReadTimeout, value: "soon"},
		{name: "timeout too short", env: EnvReadTimeout, value: "10ms"},
		{name: "timeout too long", env: EnvReadTimeout, value: "1m"},
		{name: "bad level", env: EnvLogLevel, value: "chatty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)
			if _, err := Load(Overrides{}); !errors.Is(err, ErrInvalid) {
				t.Errorf("Load err = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestValidate_Bounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		d       time.Duration
		wantErr bool
	}{
		{d: 99 * time.Millisecond, wantErr: true},
		{d: MinReadTimeout},
		{d: time.Second},
		{d: MaxReadTimeout},
		{d: MaxReadTimeout + time.Millisecond, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			t.Parallel()
			s := Defaults()
			s.ReadTimeout = tt.d
			if err := s.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate(%v) err = %v, wantErr %v", tt.d, err, tt.wantErr)
			}
		})
	}
}

// Package config loads wmproj's own settings file.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/1broseidon/wmproj/internal/actionlog"
	"github.com/1broseidon/wmproj/internal/runtimepath"
)

// Config is the effective settings after defaults and the settings file.
type Config struct {
	// Xdotool is the automation tool used for exec entries.
	Xdotool string `yaml:"xdotool"`
	// DefaultExecTimeout applies to exec entries without a timeout.
	DefaultExecTimeout Duration `yaml:"default_exec_timeout"`
	// I3Socket forces the IPC socket path and skips discovery.
	I3Socket string `yaml:"i3_socket,omitempty"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel  string          `yaml:"log_level"`
	ActionLog ActionLogConfig `yaml:"action_log"`
	// LocalFile is the file `wmproj local` starts when -f is not given.
	LocalFile string `yaml:"local_file"`
}

// ActionLogConfig controls the rotating action log.
type ActionLogConfig struct {
	Enabled   bool   `yaml:"enabled"`
	File      string `yaml:"file,omitempty"`
	Level     string `yaml:"level"`
	MaxSizeMB int    `yaml:"max_size_mb"`
	MaxFiles  int    `yaml:"max_files"`
}

// Duration is a time.Duration written as a Go duration string ("5s").
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Xdotool:            "xdotool",
		DefaultExecTimeout: Duration(5 * time.Second),
		LogLevel:           "warn",
		ActionLog: ActionLogConfig{
			Enabled:   false,
			Level:     "info",
			MaxSizeMB: 10,
			MaxFiles:  3,
		},
		LocalFile: "wmproj.toml",
	}
}

// ValidationError points at the offending setting.
type ValidationError struct {
	Path   string
	File   string
	Line   int
	Column int
	Err    error
}

func (e *ValidationError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.File, e.Line, e.Column, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

var logLevels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// Validate checks the effective settings.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Xdotool) == "" {
		return &ValidationError{Path: "xdotool", Err: fmt.Errorf("xdotool must not be empty")}
	}
	if c.DefaultExecTimeout <= 0 {
		return &ValidationError{Path: "default_exec_timeout", Err: fmt.Errorf("default_exec_timeout must be > 0")}
	}
	if _, ok := logLevels[c.LogLevel]; !ok {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}
	if _, ok := logLevels[c.ActionLog.Level]; !ok {
		return &ValidationError{Path: "action_log.level", Err: fmt.Errorf("action_log.level must be one of: debug, info, warn, error")}
	}
	if c.ActionLog.MaxSizeMB < 0 {
		return &ValidationError{Path: "action_log.max_size_mb", Err: fmt.Errorf("max_size_mb must be >= 0")}
	}
	if c.ActionLog.MaxFiles < 0 {
		return &ValidationError{Path: "action_log.max_files", Err: fmt.Errorf("max_files must be >= 0")}
	}
	if strings.TrimSpace(c.LocalFile) == "" {
		return &ValidationError{Path: "local_file", Err: fmt.Errorf("local_file must not be empty")}
	}
	return nil
}

// SlogLevel returns LogLevel as a slog level.
func (c *Config) SlogLevel() slog.Level {
	if lvl, ok := logLevels[c.LogLevel]; ok {
		return lvl
	}
	return slog.LevelWarn
}

// ActionLogSettings converts the action_log section, filling in the default
// file location.
func (c *Config) ActionLogSettings() (actionlog.Config, error) {
	path := c.ActionLog.File
	if path == "" {
		p, err := runtimepath.ActionLogPath()
		if err != nil {
			return actionlog.Config{}, err
		}
		path = p
	}
	return actionlog.Config{
		Enabled:   c.ActionLog.Enabled,
		Level:     actionlog.ParseLevel(c.ActionLog.Level),
		FilePath:  path,
		MaxSizeMB: c.ActionLog.MaxSizeMB,
		MaxFiles:  c.ActionLog.MaxFiles,
	}, nil
}

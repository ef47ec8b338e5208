// Package runtimepath resolves the XDG directories wmproj reads and writes.
package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "wmproj"

// Dir returns the directory for transient files such as materialized inline
// layouts. $XDG_RUNTIME_DIR wins; otherwise /run/user/<uid> when it exists,
// and as a last resort a private directory under /tmp that is created on
// demand.
func Dir() (string, error) {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir, nil
	}

	uid := os.Getuid()
	if dir := fmt.Sprintf("/run/user/%d", uid); isDir(dir) {
		return dir, nil
	}

	fallback := filepath.Join(os.TempDir(), fmt.Sprintf("%s-runtime-%d", appName, uid))
	if err := os.MkdirAll(fallback, 0700); err != nil {
		return "", fmt.Errorf("failed to create runtime dir: %w", err)
	}
	return fallback, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// xdgDir returns $env/wmproj, or ~/<homeRel...>/wmproj when env is unset.
func xdgDir(env string, homeRel ...string) (string, error) {
	if dir := os.Getenv(env); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	parts := append([]string{home}, homeRel...)
	return filepath.Join(append(parts, appName)...), nil
}

// ConfigDir is the base directory holding projects, layouts and the settings
// file.
func ConfigDir() (string, error) { return xdgDir("XDG_CONFIG_HOME", ".config") }

// StateDir holds the action log.
func StateDir() (string, error) { return xdgDir("XDG_STATE_HOME", ".local", "state") }

// SettingsPath returns the path of the settings file.
func SettingsPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// ActionLogPath returns the default action log location.
func ActionLogPath() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "actions.log"), nil
}

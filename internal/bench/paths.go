// Package bench persists a local history of "benchmark" CLI runs in a
// small BadgerDB database, so repeated benchmark invocations can be
// compared over time.
package bench

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "kestrel"

// dataDir returns the platform-specific data directory for the
// application.
//   - macOS: ~/Library/Application Support/kestrel/
//   - Linux: ~/.local/share/kestrel/ (or $XDG_DATA_HOME/kestrel/)
//   - Windows: %APPDATA%/kestrel/
func dataDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(homeDir, "Library", "Application Support")

	case "windows":
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, "AppData", "Roaming")
		}

	default:
		baseDir = os.Getenv("XDG_DATA_HOME")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, ".local", "share")
		}
	}

	dir := filepath.Join(baseDir, appName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// databaseDir returns the directory for the benchmark history database.
func databaseDir() (string, error) {
	base, err := dataDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, "bench")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// Package store persists magic tables and perft results in BadgerDB.
package store

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "chesscore"

// DefaultDir given to OpenDir selects the per-user database directory.
const DefaultDir = "default"

// userDataBase is the per-OS root for application data:
// ~/Library/Application Support on macOS, %APPDATA% on Windows and
// $XDG_DATA_HOME (or ~/.local/share) elsewhere.
func userDataBase() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		return underHome("Library", "Application Support")
	case "windows":
		if dir := os.Getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		return underHome("AppData", "Roaming")
	}
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir, nil
	}
	return underHome(".local", "share")
}

func underHome(elem ...string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{home}, elem...)...), nil
}

// GetDataDir returns the chesscore data directory, creating it if needed.
func GetDataDir() (string, error) {
	base, err := userDataBase()
	if err != nil {
		return "", err
	}
	return ensureDir(filepath.Join(base, appName))
}

// GetDatabaseDir returns the BadgerDB directory inside GetDataDir.
func GetDatabaseDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return ensureDir(filepath.Join(dataDir, "db"))
}

func ensureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

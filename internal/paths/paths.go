// Package paths resolves the per-user config directory (~/.config/healthmesh) and the files in it.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	dotConfig = ".config"
	appName   = "healthmesh"
	dbName    = "healthmesh.db"
	logName   = "healthmesh.log"
	postsName = "posts"
)

func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, dotConfig, appName), nil
}

func EnsureDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create %s directory: %w", appName, err)
	}
	return dir, nil
}

func DB() (string, error) {
	return file(dbName)
}

// Log is where the TUI writes its logs while it owns the terminal.
func Log() (string, error) {
	return file(logName)
}

// Posts is the default blog directory when POSTS_DIR is unset.
func Posts() (string, error) {
	return file(postsName)
}

func file(name string) (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

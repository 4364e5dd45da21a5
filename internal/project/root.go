// Package project provides project discovery and loading functionality.
package project

import (
	"errors"
	"os"
	"path/filepath"
)

// ConfigDirName is the name of the unitrun configuration directory.
const ConfigDirName = ".unitrun"

// ConfigFileName is the name of the configuration file.
const ConfigFileName = "config.json"

// StateFileName is the name of the task signature database inside ConfigDirName.
const StateFileName = "state.db"

// ErrNoProjectRoot is returned when .unitrun/config.json is not found.
var ErrNoProjectRoot = errors.New(".unitrun/config.json not found: not a unitrun project (or any parent up to the root)")

// FindRoot walks up from the current working directory until it finds .unitrun/config.json.
func FindRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return FindRootFrom(cwd)
}

// FindRootFrom walks up from the given directory until it finds .unitrun/config.json.
func FindRootFrom(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		configPath := filepath.Join(dir, ConfigDirName, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoProjectRoot
		}
		dir = parent
	}
}

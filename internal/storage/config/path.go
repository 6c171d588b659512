// Package config handles the persisted JSON configuration and its presets.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"a3mm/internal/domain"
)

const (
	appDirName            = "arma3-mod-manager-console"
	configFileName        = "config.json"
	windowsConfigFileName = "arma3-mod-manager-console-config.json"
)

// Path returns the config file location for a platform and home directory
func Path(goos, home string) (string, error) {
	if home == "" {
		return "", domain.ErrInvalidHomePath
	}
	switch goos {
	case "windows":
		return filepath.Join(home, windowsConfigFileName), nil
	case "darwin", "linux":
		return filepath.Join(home, ".config", appDirName, configFileName), nil
	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedPlatform, goos)
	}
}

// DefaultPath returns the config file location for the running platform
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidHomePath, err)
	}
	return Path(runtime.GOOS, home)
}

// ParseConfigPath validates a user-supplied config file path and returns the
// cleaned path if valid. The file itself may not exist yet. It returns an
// error if:
//   - The path is empty
//   - The path is not absolute
//   - The path contains parent directory traversal (..)
//   - The path points to a directory instead of a file
//   - The file does not have a .json extension
func ParseConfigPath(path string) (string, error) {
	if path == "" {
		return "", errors.New("config path cannot be empty")
	}

	if !filepath.IsAbs(path) {
		return "", errors.New("config path must be absolute")
	}

	if strings.Contains(path, "..") {
		return "", errors.New("config path contains invalid traversal")
	}

	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return "", errors.New("config path is a directory, not a file")
	}
	if err != nil && !os.IsNotExist(err) {
		return "", err
	}

	if strings.ToLower(filepath.Ext(path)) != ".json" {
		return "", errors.New("config file must have .json extension")
	}

	return filepath.Clean(path), nil
}

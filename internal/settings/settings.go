// Package settings reads runtime options from the environment.
package settings

import (
	"fmt"
	"path/filepath"
	"time"

	"a3mm/internal/source/workshop"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
)

const (
	appName      = "a3mm"
	databaseFile = "a3mm.db"
)

// Settings are runtime options that do not belong in the persisted config
type Settings struct {
	PageSize     int           `env:"A3MM_PAGE_SIZE" envDefault:"15"`
	DepsCacheTTL time.Duration `env:"A3MM_DEPS_CACHE_TTL" envDefault:"24h"`
	HTTPTimeout  time.Duration `env:"A3MM_HTTP_TIMEOUT" envDefault:"15s"`
	WorkshopURL  string        `env:"A3MM_WORKSHOP_URL"`
	DataDir      string        `env:"A3MM_DATA_DIR"`
	Keymap       string        `env:"A3MM_KEYMAP" envDefault:"vim"`
}

// Load parses settings from the environment
func Load() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	if s.PageSize < 1 {
		return Settings{}, fmt.Errorf("A3MM_PAGE_SIZE must be positive, got %d", s.PageSize)
	}
	if s.DepsCacheTTL < 0 {
		return Settings{}, fmt.Errorf("A3MM_DEPS_CACHE_TTL must not be negative, got %s", s.DepsCacheTTL)
	}
	if s.Keymap != "vim" && s.Keymap != "standard" {
		return Settings{}, fmt.Errorf("A3MM_KEYMAP must be vim or standard, got %q", s.Keymap)
	}
	if s.WorkshopURL == "" {
		s.WorkshopURL = workshop.DefaultBaseURL
	}
	return s, nil
}

// DatabasePath returns where the SQLite database lives. A3MM_DATA_DIR wins
// over the XDG data directory.
func (s Settings) DatabasePath() (string, error) {
	if s.DataDir != "" {
		return filepath.Join(s.DataDir, databaseFile), nil
	}
	path, err := xdg.DataFile(filepath.Join(appName, databaseFile))
	if err != nil {
		return "", fmt.Errorf("resolving data dir: %w", err)
	}
	return path, nil
}

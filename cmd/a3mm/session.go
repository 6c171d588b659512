package main

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"runtime"
	"time"

	"a3mm/internal/core"
	"a3mm/internal/domain"
	"a3mm/internal/logging"
	"a3mm/internal/settings"
	"a3mm/internal/source/workshop"
	"a3mm/internal/storage/config"
	"a3mm/internal/storage/db"
)

// session holds what every command needs: settings, the loaded config, the
// database and a refreshed manager
type session struct {
	settings   settings.Settings
	home       string
	configPath string
	cfg        *config.Config
	db         *db.DB
	manager    *core.Manager
}

// openSession loads settings and configuration. A missing config file yields
// an empty one, so the interactive session can run the setup wizard; a
// corrupt one is an error.
func openSession() (*session, error) {
	logger := logging.GetLogger("cli")

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidHomePath, err)
	}

	s, err := settings.Load()
	if err != nil {
		return nil, err
	}

	path, err := resolveConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Info().Str("path", path).Msg("No config yet, starting empty")
		cfg = config.New("", "", nil)
	case err != nil:
		return nil, err
	}

	dbPath, err := s.DatabasePath()
	if err != nil {
		return nil, fmt.Errorf("resolving database path: %w", err)
	}
	database, err := db.New(dbPath)
	if err != nil {
		return nil, err
	}

	manager := core.NewManager(cfg, core.ManagerOptions{
		ConfigPath: path,
		PageSize:   s.PageSize,
		GOOS:       runtime.GOOS,
		Home:       home,
		History:    database,
	})
	if cfg.IsValid() {
		done := logging.LogOperationStart(logger, "discover")
		manager.Refresh()
		done()
	}

	return &session{
		settings:   s,
		home:       home,
		configPath: path,
		cfg:        cfg,
		db:         database,
		manager:    manager,
	}, nil
}

func resolveConfigPath() (string, error) {
	if configPath != "" {
		path, err := config.ParseConfigPath(configPath)
		if err != nil {
			return "", fmt.Errorf("invalid --config: %w", err)
		}
		return path, nil
	}
	return config.DefaultPath()
}

// Close releases the database
func (s *session) Close() error {
	return s.db.Close()
}

// requireValid fails unless the game and workshop paths are usable
func (s *session) requireValid() error {
	if s.cfg.IsValid() {
		return nil
	}
	return fmt.Errorf("%w: game or workshop directory is not set up; run 'a3mm' to configure them", domain.ErrInvalidPath)
}

// lookup returns the workshop client behind the SQLite cache
func (s *session) lookup(ttl time.Duration) core.DependencyLookup {
	client := workshop.NewClient(&http.Client{Timeout: s.settings.HTTPTimeout}, s.settings.WorkshopURL)
	return core.NewCachedLookup(client, s.db, ttl)
}

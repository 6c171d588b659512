package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"a3mm/internal/domain"
	"a3mm/internal/linker"
	"a3mm/internal/logging"
	"a3mm/internal/paginator"
	"a3mm/internal/storage/config"
	"a3mm/internal/storage/db"

	"github.com/rs/zerolog"
)

var errEmptyPresetName = errors.New("preset name cannot be empty")

// LaunchRecorder stores launch history
type LaunchRecorder interface {
	RecordLaunch(l *db.Launch) error
}

// ManagerOptions configures a Manager
type ManagerOptions struct {
	ConfigPath string         // Where Save writes the configuration
	PageSize   int            // Mods per page
	Linker     linker.Linker  // Defaults to a symlink linker
	GOOS       string         // Platform used for executable and overlay lookup
	Home       string         // User home used for the overlay lookup
	History    LaunchRecorder // Optional
}

// Manager owns the session state: the configuration and the paged mod list
type Manager struct {
	cfg        *config.Config
	configPath string
	pageSize   int
	mods       *paginator.Paginator[domain.Mod]
	linker     linker.Linker
	goos       string
	home       string
	history    LaunchRecorder
	now        func() time.Time
	logger     zerolog.Logger
}

// NewManager creates a manager with an empty mod list. Call Refresh to
// discover mods.
func NewManager(cfg *config.Config, opts ManagerOptions) *Manager {
	if opts.Linker == nil {
		opts.Linker = linker.NewSymlink()
	}
	return &Manager{
		cfg:        cfg,
		configPath: opts.ConfigPath,
		pageSize:   opts.PageSize,
		mods:       paginator.New([]domain.Mod{}, opts.PageSize),
		linker:     opts.Linker,
		goos:       opts.GOOS,
		home:       opts.Home,
		history:    opts.History,
		now:        time.Now,
		logger:     logging.GetLogger("manager"),
	}
}

// Config returns the live configuration
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// Mods returns the paged mod list
func (m *Manager) Mods() *paginator.Paginator[domain.Mod] {
	return m.mods
}

// Save persists the configuration
func (m *Manager) Save() error {
	if err := m.cfg.Save(m.configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	m.logger.Debug().Str("path", m.configPath).Msg("Saved config")
	return nil
}

// Refresh rediscovers mods and stamps the active preset onto them. Unsaved
// toggles are discarded.
func (m *Manager) Refresh() {
	m.mods = paginator.New(DiscoverMods(m.cfg), m.pageSize)
	m.ApplyActivePreset()
}

// ApplyActivePreset sets each mod's enabled flag from the active preset
func (m *Manager) ApplyActivePreset() {
	enabled := make(map[string]bool)
	for _, id := range m.cfg.EnabledMods() {
		enabled[id] = true
	}
	for i := range m.mods.AllItems() {
		mod := m.mods.Item(i)
		mod.Enabled = enabled[mod.Identifier]
	}
}

// ToggleAt flips the enabled flag of the mod at absolute index i and
// returns the new value. Out of range indexes are ignored.
func (m *Manager) ToggleAt(i int) bool {
	mod := m.mods.Item(i)
	if mod == nil {
		return false
	}
	mod.Enabled = !mod.Enabled
	return mod.Enabled
}

// ToggleAll enables every mod unless all are already enabled, in which case
// it disables every mod. It returns the value applied.
func (m *Manager) ToggleAll() bool {
	items := m.mods.AllItems()
	value := !m.AllEnabled()
	for i := range items {
		items[i].Enabled = value
	}
	return value
}

// AllEnabled reports whether every mod is enabled
func (m *Manager) AllEnabled() bool {
	for _, mod := range m.mods.AllItems() {
		if !mod.Enabled {
			return false
		}
	}
	return true
}

// EnabledMods returns the enabled mods in list order
func (m *Manager) EnabledMods() []domain.Mod {
	return m.mods.Filter(func(mod domain.Mod) bool { return mod.Enabled })
}

// EnabledIDs returns the identifiers of the enabled mods in list order
func (m *Manager) EnabledIDs() []string {
	enabled := m.EnabledMods()
	ids := make([]string, len(enabled))
	for i, mod := range enabled {
		ids[i] = mod.Identifier
	}
	return ids
}

// SwitchPreset activates a preset and re-stamps enabled flags
func (m *Manager) SwitchPreset(name string) error {
	if !m.cfg.SetActivePreset(name) {
		return fmt.Errorf("%w: %s", domain.ErrPresetNotFound, name)
	}
	m.ApplyActivePreset()
	return m.Save()
}

// CreatePreset saves the current enabled set under name and persists it.
// An existing preset with that name is overwritten.
func (m *Manager) CreatePreset(name string) error {
	if name == "" {
		return errEmptyPresetName
	}
	m.cfg.SavePreset(name, m.EnabledIDs())
	return m.Save()
}

// ImportPreset stores a preset read from elsewhere and persists it
func (m *Manager) ImportPreset(name string, mods []string) error {
	m.cfg.SavePreset(name, mods)
	if name == m.cfg.ActivePreset {
		m.ApplyActivePreset()
	}
	return m.Save()
}

// SaveActivePreset writes the current enabled set into the active preset and
// persists it
func (m *Manager) SaveActivePreset() error {
	m.cfg.UpdateMods(m.EnabledIDs())
	return m.Save()
}

// RenamePreset renames a preset and persists the change
func (m *Manager) RenamePreset(old, newName string) error {
	if newName == "" {
		return errEmptyPresetName
	}
	if old == newName {
		return nil
	}
	if !m.cfg.RenamePreset(old, newName) {
		return fmt.Errorf("%w: %s", domain.ErrPresetNotFound, old)
	}
	return m.Save()
}

// DeletePreset removes a preset and persists the change. If the active
// preset is removed, the newly active one is applied.
func (m *Manager) DeletePreset(name string) error {
	if !m.cfg.HasPreset(name) {
		return fmt.Errorf("%w: %s", domain.ErrPresetNotFound, name)
	}
	wasActive := m.cfg.ActivePreset == name
	if !m.cfg.DeletePreset(name) {
		return domain.ErrLastPreset
	}
	if wasActive {
		m.ApplyActivePreset()
	}
	return m.Save()
}

// SetPaths validates and stores the workshop and game paths, persists them
// and refreshes the mod list
func (m *Manager) SetPaths(workshopPath, gamePath string) error {
	for _, p := range []string{workshopPath, gamePath} {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("%w: %q is not a directory", domain.ErrInvalidPath, p)
		}
	}

	m.cfg.WorkshopPath = workshopPath
	m.cfg.GamePath = gamePath
	if err := m.Save(); err != nil {
		return err
	}
	m.Refresh()
	return nil
}

// SetDefaultArgs stores the extra launch arguments and persists them
func (m *Manager) SetDefaultArgs(args string) error {
	m.cfg.DefaultArgs = args
	return m.Save()
}

// SetExecutableName stores the game executable name and persists it
func (m *Manager) SetExecutableName(name string) error {
	if name == "" {
		return errors.New("executable name cannot be empty")
	}
	m.cfg.ExecutableName = name
	return m.Save()
}

// ExecutablePath returns the resolved game binary for the current config
func (m *Manager) ExecutablePath() string {
	return ExecutablePath(m.goos, m.cfg.GamePath, m.cfg.ExecutableName)
}

// PrepareLaunch readies the game directory for a launch: it checks the
// executable exists, links every enabled non-CDLC mod into the game
// directory and persists the enabled set into the active preset if it
// changed. Link failures abort the launch.
func (m *Manager) PrepareLaunch() (*LaunchPlan, error) {
	exe := m.ExecutablePath()
	if info, err := os.Stat(exe); err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: executable not found: %s", domain.ErrInvalidPath, exe)
	}

	enabled := m.EnabledMods()
	var sources []string
	ids := make([]string, 0, len(enabled))
	for _, mod := range enabled {
		ids = append(ids, mod.Identifier)
		switch {
		case mod.IsCDLC:
		case mod.IsCustom:
			if custom := m.cfg.CustomPath(); custom != "" {
				sources = append(sources, mod.Path(custom))
			}
		default:
			sources = append(sources, mod.Path(m.cfg.WorkshopPath))
		}
	}

	if err := m.linker.Sync(m.cfg.GamePath, sources); err != nil {
		return nil, fmt.Errorf("linking mods: %w", err)
	}
	m.logger.Info().Int("links", len(sources)).Str("gamePath", m.cfg.GamePath).Msg("Linked mods")

	if !slices.Equal(ids, m.cfg.EnabledMods()) {
		m.cfg.UpdateMods(ids)
		if err := m.Save(); err != nil {
			return nil, err
		}
	}

	return &LaunchPlan{
		Executable: exe,
		Dir:        m.cfg.GamePath,
		Args:       BuildArgs(m.cfg.DefaultArgs, ids),
		Env:        OverlayEnv(m.goos, m.home),
		ModIDs:     ids,
		Sources:    sources,
	}, nil
}

// RecordLaunch adds a launch to the history, if one is configured. Failures
// are logged only.
func (m *Manager) RecordLaunch(plan *LaunchPlan) {
	if m.history == nil || plan == nil {
		return
	}
	err := m.history.RecordLaunch(&db.Launch{
		Preset:     m.cfg.ActivePreset,
		Executable: plan.Executable,
		ModIDs:     plan.ModIDs,
		Args:       plan.Args,
		LaunchedAt: m.now(),
	})
	if err != nil {
		m.logger.Warn().Err(err).Msg("Recording launch failed")
	}
}

// CheckDependencies looks up the dependencies of a workshop mod and
// classifies them against the current mod list
func (m *Manager) CheckDependencies(ctx context.Context, lookup DependencyLookup, mod domain.Mod) ([]domain.DependencyStatus, error) {
	if !mod.HasWorkshopPage() {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoWorkshopPage, mod.Name)
	}
	deps, err := lookup.FetchDependencies(ctx, mod.Identifier)
	if err != nil {
		return nil, err
	}
	m.logger.Debug().Str("mod", mod.Identifier).Int("dependencies", len(deps)).Msg("Fetched dependencies")
	return ClassifyDependencies(deps, m.mods.AllItems()), nil
}

// EnableDependencies enables every installed but disabled dependency in
// statuses and returns how many were enabled. Nothing is persisted.
func (m *Manager) EnableDependencies(statuses []domain.DependencyStatus) int {
	wanted := make(map[string]bool)
	for _, s := range statuses {
		if s.State == domain.DependencyDisabled {
			wanted[s.ID] = true
		}
	}

	count := 0
	items := m.mods.AllItems()
	for i := range items {
		if wanted[items[i].Identifier] && !items[i].Enabled {
			items[i].Enabled = true
			count++
		}
	}
	return count
}

// ModByID returns the mod with the given identifier
func (m *Manager) ModByID(id string) (domain.Mod, bool) {
	for _, mod := range m.mods.AllItems() {
		if mod.Identifier == id {
			return mod, true
		}
	}
	return domain.Mod{}, false
}

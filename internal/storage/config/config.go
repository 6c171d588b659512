package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"a3mm/internal/domain"
)

const (
	DefaultExecutableName = "arma3"
	DefaultArgs           = "-noSplash -skipIntro -world=empty"
)

// Config is the persisted mod manager configuration
type Config struct {
	GamePath       string              `json:"game_path"`
	WorkshopPath   string              `json:"workshop_path"`
	CustomModsPath *string             `json:"custom_mods_path"`
	ExecutableName string              `json:"executable_name"`
	Enabled        ModIDList           `json:"enabled_mods"` // Mirror of the active preset for older versions
	DefaultArgs    string              `json:"default_args"`
	Presets        map[string][]string `json:"presets"`
	ActivePreset   string              `json:"active_preset"`
}

// New creates a configuration with a single empty "Default" preset
func New(gamePath, workshopPath string, customModsPath *string) *Config {
	return &Config{
		GamePath:       gamePath,
		WorkshopPath:   workshopPath,
		CustomModsPath: customModsPath,
		ExecutableName: DefaultExecutableName,
		Enabled:        ModIDList{},
		DefaultArgs:    DefaultArgs,
		Presets:        map[string][]string{domain.DefaultPresetName: {}},
		ActivePreset:   domain.DefaultPresetName,
	}
}

// Load reads the configuration at path and migrates legacy layouts.
// A missing file yields an error matching fs.ErrNotExist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := &Config{
		ExecutableName: DefaultExecutableName,
		ActivePreset:   domain.DefaultPresetName,
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", domain.ErrCorruptConfig, path, err)
	}

	cfg.migrate()
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.json")
	if err != nil {
		return fmt.Errorf("creating temp config: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replacing config: %w", err)
	}

	return nil
}

// migrate upgrades configs written before presets existed and repairs a
// dangling active preset.
func (c *Config) migrate() {
	if len(c.Presets) == 0 {
		mods := make([]string, len(c.Enabled))
		copy(mods, c.Enabled)
		c.Presets = map[string][]string{domain.DefaultPresetName: mods}
	}
	for name, mods := range c.Presets {
		if mods == nil {
			c.Presets[name] = []string{}
		}
	}

	if _, ok := c.Presets[c.ActivePreset]; !ok {
		c.ActivePreset = c.firstPresetName()
	}
	c.Enabled = c.EnabledMods()
}

// IsValid reports whether both the workshop and game paths exist
func (c *Config) IsValid() bool {
	return dirExists(c.WorkshopPath) && dirExists(c.GamePath)
}

// CustomPath returns the custom mods path, or "" when unset
func (c *Config) CustomPath() string {
	if c.CustomModsPath == nil {
		return ""
	}
	return *c.CustomModsPath
}

// SetCustomPath sets the custom mods path; "" clears it
func (c *Config) SetCustomPath(path string) {
	if path == "" {
		c.CustomModsPath = nil
		return
	}
	c.CustomModsPath = &path
}

func dirExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

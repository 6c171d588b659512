package config

import (
	"sort"

	"a3mm/internal/domain"
)

// EnabledMods returns a copy of the active preset's mod identifiers
func (c *Config) EnabledMods() []string {
	return cloneMods(c.Presets[c.ActivePreset])
}

// UpdateMods replaces the active preset's mods
func (c *Config) UpdateMods(mods []string) {
	if c.Presets == nil {
		c.Presets = make(map[string][]string)
	}
	c.Presets[c.ActivePreset] = cloneMods(mods)
	c.Enabled = cloneMods(mods)
}

// PresetNames returns all preset names, sorted
func (c *Config) PresetNames() []string {
	names := make([]string, 0, len(c.Presets))
	for name := range c.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasPreset reports whether a preset exists
func (c *Config) HasPreset(name string) bool {
	_, ok := c.Presets[name]
	return ok
}

// PresetMods returns a copy of a preset's mods
func (c *Config) PresetMods(name string) ([]string, bool) {
	mods, ok := c.Presets[name]
	if !ok {
		return nil, false
	}
	return cloneMods(mods), true
}

// PresetModCount returns the number of mods in a preset (0 if unknown)
func (c *Config) PresetModCount(name string) int {
	return len(c.Presets[name])
}

// SetActivePreset switches to name and mirrors its mods. Unknown names are
// ignored; the return value reports whether the switch happened.
func (c *Config) SetActivePreset(name string) bool {
	if !c.HasPreset(name) {
		return false
	}
	c.ActivePreset = name
	c.Enabled = c.EnabledMods()
	return true
}

// SavePreset creates or overwrites a preset
func (c *Config) SavePreset(name string, mods []string) {
	if c.Presets == nil {
		c.Presets = make(map[string][]string)
	}
	c.Presets[name] = cloneMods(mods)
	if name == c.ActivePreset {
		c.Enabled = cloneMods(mods)
	}
}

// RenamePreset moves old's mods under newName, following the active preset.
// An existing preset called newName is overwritten. It returns false if old
// does not exist.
func (c *Config) RenamePreset(old, newName string) bool {
	mods, ok := c.Presets[old]
	if !ok {
		return false
	}
	delete(c.Presets, old)
	c.Presets[newName] = mods
	if c.ActivePreset == old {
		c.ActivePreset = newName
	}
	c.Enabled = c.EnabledMods()
	return true
}

// DeletePreset removes a preset. The last remaining preset cannot be deleted.
// If the active preset is removed, the lexicographically smallest remaining
// name becomes active.
func (c *Config) DeletePreset(name string) bool {
	if len(c.Presets) <= 1 {
		return false
	}
	if _, ok := c.Presets[name]; !ok {
		return false
	}
	delete(c.Presets, name)
	if c.ActivePreset == name {
		c.ActivePreset = c.firstPresetName()
		c.Enabled = c.EnabledMods()
	}
	return true
}

func (c *Config) firstPresetName() string {
	names := c.PresetNames()
	if len(names) == 0 {
		return domain.DefaultPresetName
	}
	return names[0]
}

func cloneMods(mods []string) []string {
	out := make([]string, len(mods))
	copy(out, mods)
	return out
}

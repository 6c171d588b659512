package config

import (
	"errors"
	"fmt"

	"a3mm/internal/domain"

	"gopkg.in/yaml.v3"
)

// ExportedPreset is the YAML-serializable format for sharing presets
type ExportedPreset struct {
	Name string   `yaml:"name"`
	Mods []string `yaml:"mods"`
}

// ExportPreset exports a preset to a portable format
func (c *Config) ExportPreset(name string) ([]byte, error) {
	mods, ok := c.PresetMods(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPresetNotFound, name)
	}

	data, err := yaml.Marshal(&ExportedPreset{Name: name, Mods: mods})
	if err != nil {
		return nil, fmt.Errorf("marshaling exported preset: %w", err)
	}
	return data, nil
}

// ImportPreset parses an exported preset
func ImportPreset(data []byte) (*ExportedPreset, error) {
	var exported ExportedPreset
	if err := yaml.Unmarshal(data, &exported); err != nil {
		return nil, fmt.Errorf("parsing exported preset: %w", err)
	}
	if exported.Name == "" {
		return nil, errors.New("exported preset has no name")
	}
	if exported.Mods == nil {
		exported.Mods = []string{}
	}
	return &exported, nil
}

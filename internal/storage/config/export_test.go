package config_test

import (
	"testing"

	"a3mm/internal/domain"
	"a3mm/internal/storage/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportImportPreset(t *testing.T) {
	cfg := config.New("/g", "/w", nil)
	cfg.SavePreset("Coop", []string{"463939057", "@local"})

	data, err := cfg.ExportPreset("Coop")
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: Coop")

	imported, err := config.ImportPreset(data)
	require.NoError(t, err)
	assert.Equal(t, "Coop", imported.Name)
	assert.Equal(t, []string{"463939057", "@local"}, imported.Mods)
}

func TestExportPreset_Unknown(t *testing.T) {
	cfg := config.New("/g", "/w", nil)

	_, err := cfg.ExportPreset("Missing")
	assert.ErrorIs(t, err, domain.ErrPresetNotFound)
}

func TestImportPreset_Invalid(t *testing.T) {
	_, err := config.ImportPreset([]byte("mods: [1]"))
	assert.Error(t, err)

	_, err = config.ImportPreset([]byte("{{{"))
	assert.Error(t, err)

	imported, err := config.ImportPreset([]byte("name: Empty"))
	require.NoError(t, err)
	assert.Empty(t, imported.Mods)
	assert.NotNil(t, imported.Mods)
}

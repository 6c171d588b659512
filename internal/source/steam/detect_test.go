package steam

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"a3mm/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLibraryFolders(t *testing.T, steamRoot string, libs ...string) {
	t.Helper()
	content := "\"libraryfolders\"\n{\n"
	for i, lib := range libs {
		content += fmt.Sprintf("\t\"%d\"\n\t{\n\t\t\"path\"\t\t\"%s\"\n\t}\n", i, lib)
	}
	content += "}\n"
	dir := filepath.Join(steamRoot, "steamapps")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "libraryfolders.vdf"), []byte(content), 0644))
}

func installArma3(t *testing.T, lib, installDir string) {
	t.Helper()
	steamapps := filepath.Join(lib, "steamapps")
	require.NoError(t, os.MkdirAll(filepath.Join(steamapps, "common", installDir), 0755))
	manifest := fmt.Sprintf("\"AppState\"\n{\n\t\"appid\"\t\t\"107410\"\n\t\"installdir\"\t\t\"%s\"\n}\n", installDir)
	require.NoError(t, os.WriteFile(filepath.Join(steamapps, "appmanifest_107410.acf"), []byte(manifest), 0644))
}

func TestDefaultPaths(t *testing.T) {
	linux, err := DefaultPaths("linux", "/home/u")
	require.NoError(t, err)
	assert.Equal(t, "/home/u/.local/share/Steam/steamapps/common/Arma 3", linux.GamePath)
	assert.Equal(t, "/home/u/.local/share/Steam/steamapps/workshop/content/107410", linux.WorkshopPath)

	mac, err := DefaultPaths("darwin", "/Users/u")
	require.NoError(t, err)
	assert.Equal(t, "/Users/u/Library/Application Support/Steam/steamapps/common/Arma 3", mac.GamePath)
	assert.Equal(t, "/Users/u/Library/Application Support/Steam/steamapps/workshop/content/107410", mac.WorkshopPath)

	_, err = DefaultPaths("windows", "/c/u")
	assert.ErrorIs(t, err, domain.ErrUnsupportedPlatform)

	_, err = DefaultPaths("linux", "")
	assert.ErrorIs(t, err, domain.ErrInvalidHomePath)
}

func TestGetLibraryPaths_NoVDF(t *testing.T) {
	root := t.TempDir()
	paths, err := GetLibraryPaths(root)
	require.NoError(t, err)
	assert.Equal(t, []string{root}, paths)
}

func TestFindArma3_SecondaryLibrary(t *testing.T) {
	steamRoot := t.TempDir()
	games := t.TempDir()
	writeLibraryFolders(t, steamRoot, steamRoot, games)
	installArma3(t, games, "Arma 3")

	paths, ok := FindArma3([]string{steamRoot})
	require.True(t, ok)
	assert.Equal(t, filepath.Join(games, "steamapps", "common", "Arma 3"), paths.GamePath)
	assert.Equal(t, filepath.Join(games, "steamapps", "workshop", "content", "107410"), paths.WorkshopPath)
}

func TestFindArma3_CustomInstallDir(t *testing.T) {
	steamRoot := t.TempDir()
	installArma3(t, steamRoot, "Arma3Alt")

	paths, ok := FindArma3([]string{steamRoot})
	require.True(t, ok)
	assert.Equal(t, filepath.Join(steamRoot, "steamapps", "common", "Arma3Alt"), paths.GamePath)
}

func TestFindArma3_NotInstalled(t *testing.T) {
	steamRoot := t.TempDir()
	writeLibraryFolders(t, steamRoot, steamRoot)

	_, ok := FindArma3([]string{steamRoot})
	assert.False(t, ok)

	_, ok = FindArma3(nil)
	assert.False(t, ok)
}

func TestDetectArma3Paths_UsesSteamRoot(t *testing.T) {
	steamRoot := t.TempDir()
	installArma3(t, steamRoot, "Arma 3")
	t.Setenv("STEAM_ROOT", steamRoot)

	paths, err := DetectArma3Paths("linux", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(steamRoot, "steamapps", "common", "Arma 3"), paths.GamePath)
}

func TestDetectArma3Paths_FallsBackToDefaults(t *testing.T) {
	t.Setenv("STEAM_ROOT", "")
	home := t.TempDir()

	paths, err := DetectArma3Paths("linux", home)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local", "share", "Steam", "steamapps", "common", "Arma 3"), paths.GamePath)
}

func TestFindSteamRoots_SkipsMissing(t *testing.T) {
	t.Setenv("STEAM_ROOT", "")
	home := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".local", "share", "Steam"), 0755))

	assert.Equal(t, []string{filepath.Join(home, ".local", "share", "Steam")}, FindSteamRoots("linux", home))
	assert.Empty(t, FindSteamRoots("darwin", home))
}

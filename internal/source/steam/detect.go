// Package steam locates the Arma 3 install and its Workshop content inside
// Steam libraries.
package steam

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"a3mm/internal/domain"
)

// Paths are the two directories the mod manager needs from Steam
type Paths struct {
	GamePath     string
	WorkshopPath string
}

const (
	arma3InstallDir = "Arma 3"
	manifestName    = "appmanifest_" + domain.Arma3AppID + ".acf"
)

// DefaultPaths returns the stock Steam locations for a platform, whether or
// not they exist.
func DefaultPaths(goos, home string) (Paths, error) {
	if home == "" {
		return Paths{}, domain.ErrInvalidHomePath
	}

	var base string
	switch goos {
	case "darwin":
		base = filepath.Join(home, "Library", "Application Support")
	case "linux":
		base = filepath.Join(home, ".local", "share")
	default:
		return Paths{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedPlatform, goos)
	}

	return libraryPathsFor(filepath.Join(base, "Steam"), arma3InstallDir), nil
}

// FindSteamRoots returns existing Steam installation roots in search order.
// $STEAM_ROOT, when set, is tried first.
func FindSteamRoots(goos, home string) []string {
	var candidates []string
	if p := os.Getenv("STEAM_ROOT"); p != "" {
		candidates = append(candidates, p)
	}
	switch goos {
	case "darwin":
		candidates = append(candidates, filepath.Join(home, "Library", "Application Support", "Steam"))
	case "linux":
		candidates = append(candidates,
			filepath.Join(home, ".steam", "steam"),
			filepath.Join(home, ".local", "share", "Steam"),
			filepath.Join(home, ".var", "app", "com.valvesoftware.Steam", ".local", "share", "Steam"),
		)
	}

	var out []string
	for _, p := range candidates {
		if isDir(p) {
			out = append(out, p)
		}
	}
	return out
}

// GetLibraryPaths returns all Steam library paths from a Steam root (reading libraryfolders.vdf).
func GetLibraryPaths(steamRoot string) ([]string, error) {
	vdfPath := filepath.Join(steamRoot, "steamapps", "libraryfolders.vdf")
	data, err := os.ReadFile(vdfPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Single library: the steam root itself is the library
			return []string{steamRoot}, nil
		}
		return nil, fmt.Errorf("reading libraryfolders: %w", err)
	}

	root, err := ParseVDF(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("parsing libraryfolders: %w", err)
	}
	paths := libraryPaths(root)
	if len(paths) == 0 {
		return []string{steamRoot}, nil
	}
	return paths, nil
}

// FindArma3 scans the libraries of each Steam root for an installed Arma 3.
// The workshop path is taken from the same library as the game.
func FindArma3(steamRoots []string) (Paths, bool) {
	seen := make(map[string]bool)
	for _, steamRoot := range steamRoots {
		libraries, err := GetLibraryPaths(steamRoot)
		if err != nil {
			continue
		}
		for _, lib := range libraries {
			if seen[lib] {
				continue
			}
			seen[lib] = true

			installDir := arma3InstallDir
			data, err := os.ReadFile(filepath.Join(lib, "steamapps", manifestName))
			if err != nil {
				continue
			}
			if m, err := ParseAppManifest(string(data)); err == nil && m.InstallDir != "" {
				installDir = m.InstallDir
			}

			paths := libraryPathsFor(lib, installDir)
			if isDir(paths.GamePath) {
				return paths, true
			}
		}
	}
	return Paths{}, false
}

// DetectArma3Paths looks for an installed Arma 3 and falls back to the
// platform defaults when none is found.
func DetectArma3Paths(goos, home string) (Paths, error) {
	if paths, ok := FindArma3(FindSteamRoots(goos, home)); ok {
		return paths, nil
	}
	return DefaultPaths(goos, home)
}

func libraryPathsFor(library, installDir string) Paths {
	steamapps := filepath.Join(library, "steamapps")
	return Paths{
		GamePath:     filepath.Join(steamapps, "common", installDir),
		WorkshopPath: filepath.Join(steamapps, "workshop", "content", domain.Arma3AppID),
	}
}

func isDir(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

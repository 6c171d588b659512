package core

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"a3mm/internal/domain"
)

// LaunchPlan is everything needed to start the game
type LaunchPlan struct {
	Executable string
	Dir        string
	Args       []string
	Env        []string // Added to the inherited environment
	ModIDs     []string
	Sources    []string // Directories linked into Dir
}

// ExecutablePath resolves the game binary for a platform. On macOS the
// executable lives inside an application bundle.
func ExecutablePath(goos, gamePath, name string) string {
	if goos == "darwin" {
		return filepath.Join(gamePath, name+".app", "Contents", "MacOS", name)
	}
	return filepath.Join(gamePath, name)
}

// BuildArgs returns the game arguments: defaultArgs as a single argument when
// non-empty, then -mod= with modIDs when there are any.
func BuildArgs(defaultArgs string, modIDs []string) []string {
	var args []string
	if defaultArgs != "" {
		args = append(args, defaultArgs)
	}
	if len(modIDs) > 0 {
		args = append(args, "-mod="+strings.Join(modIDs, domain.ModArgSeparator))
	}
	return args
}

// OverlayCandidates returns the places the Steam overlay library may live on macOS
func OverlayCandidates(home string) []string {
	steam := filepath.Join(home, "Library", "Application Support", "Steam")
	return []string{
		filepath.Join(steam, "Steam.AppBundle", "Steam", "Contents", "MacOS", "gameoverlayrenderer.dylib"),
		filepath.Join(steam, "Contents", "MacOS", "gameoverlayrenderer.dylib"),
		"/Applications/Steam.app/Contents/MacOS/gameoverlayrenderer.dylib",
	}
}

// OverlayEnv returns the variables that inject the Steam overlay into the
// game process. It is empty off macOS or when no overlay library exists.
func OverlayEnv(goos, home string) []string {
	if goos != "darwin" {
		return nil
	}
	for _, path := range OverlayCandidates(home) {
		if _, err := os.Stat(path); err == nil {
			return []string{
				"DYLD_INSERT_LIBRARIES=" + path,
				"SteamAppId=" + domain.Arma3AppID,
			}
		}
	}
	return nil
}

// Command builds the process for the plan
func (p *LaunchPlan) Command(ctx context.Context) *exec.Cmd {
	cmd := exec.CommandContext(ctx, p.Executable, p.Args...)
	cmd.Dir = p.Dir
	if len(p.Env) > 0 {
		cmd.Env = append(os.Environ(), p.Env...)
	}
	return cmd
}

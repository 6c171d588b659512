package core

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"unicode"
	"unicode/utf8"

	"a3mm/internal/domain"
	"a3mm/internal/logging"
	"a3mm/internal/storage/config"
)

const (
	metaFile = "meta.cpp"
	modFile  = "mod.cpp"
)

var metaNameRe = regexp.MustCompile(`name\s*=\s*"([^"]+)"`)

// DiscoverMods scans the workshop, custom and game directories of cfg and
// returns the mods found, sorted by name. Unreadable directories contribute
// nothing. Identifiers are unique: the first occurrence wins in the order
// workshop, custom, CDLC. Enabled flags are left false.
func DiscoverMods(cfg *config.Config) []domain.Mod {
	logger := logging.GetLogger("discovery")
	done := logging.LogOperationStart(logger, "discover")
	defer done()

	var found []domain.Mod
	found = append(found, scanModDirs(cfg.WorkshopPath, false, metaFile)...)
	if custom := cfg.CustomPath(); custom != "" {
		found = append(found, scanModDirs(custom, true, metaFile, modFile)...)
	}
	found = append(found, scanCreatorDLCs(cfg.GamePath)...)

	seen := make(map[string]bool, len(found))
	mods := make([]domain.Mod, 0, len(found))
	for _, m := range found {
		if seen[m.Identifier] {
			logger.Debug().Str("mod", m.Identifier).Msg("Skipping duplicate identifier")
			continue
		}
		seen[m.Identifier] = true
		mods = append(mods, m)
	}

	sort.SliceStable(mods, func(i, j int) bool {
		return mods[i].Name < mods[j].Name
	})

	logger.Debug().Int("count", len(mods)).Msg("Discovered mods")
	return mods
}

// scanModDirs returns a mod for every subdirectory of base holding one of
// metaFiles
func scanModDirs(base string, isCustom bool, metaFiles ...string) []domain.Mod {
	var mods []domain.Mod
	for _, dir := range subdirs(base) {
		name, ok := ReadModName(filepath.Join(base, dir), metaFiles...)
		if !ok {
			continue
		}
		mods = append(mods, domain.NewMod(dir, name, false, isCustom))
	}
	return mods
}

func scanCreatorDLCs(gamePath string) []domain.Mod {
	var mods []domain.Mod
	for _, dir := range subdirs(gamePath) {
		if name, ok := domain.CreatorDLCName(dir); ok {
			mods = append(mods, domain.NewMod(dir, name, true, false))
		}
	}
	return mods
}

// ReadModName reads the display name of the mod in dir from the first
// readable metadata file. It returns false when none can be read. A file
// without a name assignment falls back to the directory name.
func ReadModName(dir string, metaFiles ...string) (string, bool) {
	for _, file := range metaFiles {
		data, err := os.ReadFile(filepath.Join(dir, file))
		if err != nil {
			continue
		}
		if m := metaNameRe.FindSubmatch(data); m != nil {
			return titleize(string(m[1])), true
		}
		return titleize(filepath.Base(dir)), true
	}
	return "", false
}

// subdirs lists the names of directories (or links to directories) in base
func subdirs(base string) []string {
	if base == "" {
		return nil
	}
	entries, err := os.ReadDir(base)
	if err != nil {
		logger := logging.GetLogger("discovery")
		logger.Debug().Err(err).Str("path", base).Msg("Skipping unreadable directory")
		return nil
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
			continue
		}
		if e.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(filepath.Join(base, e.Name())); err == nil && info.IsDir() {
				dirs = append(dirs, e.Name())
			}
		}
	}
	return dirs
}

// titleize upper-cases the first rune only
func titleize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

package domain

import (
	"path/filepath"
	"sort"
)

// Arma3AppID is the Steam App ID of Arma 3. Workshop content lives under
// steamapps/workshop/content/<Arma3AppID>.
const Arma3AppID = "107410"

// DefaultPresetName is the preset every fresh configuration starts with
const DefaultPresetName = "Default"

// ModArgSeparator joins mod identifiers in the -mod= launch argument
const ModArgSeparator = ";"

// creatorDLCs maps Creator DLC folder names to their display names.
// Unlike base game DLCs, CDLCs must be passed in the -mod= argument.
var creatorDLCs = map[string]string{
	"GM":   "Global Mobilization",
	"VN":   "S.O.G. Prairie Fire",
	"CSLA": "CSLA Iron Curtain",
	"WS":   "Western Sahara",
	"SPE":  "Spearhead 1944",
	"RF":   "Reaction Forces",
	"EF":   "Expeditionary Forces",
}

// CreatorDLCName returns the display name for a CDLC folder name
func CreatorDLCName(code string) (string, bool) {
	name, ok := creatorDLCs[code]
	return name, ok
}

// CreatorDLCCodes returns all known CDLC folder names, sorted
func CreatorDLCCodes() []string {
	codes := make([]string, 0, len(creatorDLCs))
	for code := range creatorDLCs {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Mod is a unit of optional content discovered on disk
type Mod struct {
	Identifier string // Directory name: workshop ID, custom folder name or CDLC code
	Name       string // Display name
	Enabled    bool   // User intent: load this mod at launch
	IsCDLC     bool   // Ships inside the game installation, never symlinked
	IsCustom   bool   // Lives under the custom mods path
}

// NewMod creates a disabled mod
func NewMod(identifier, name string, isCDLC, isCustom bool) Mod {
	return Mod{
		Identifier: identifier,
		Name:       name,
		IsCDLC:     isCDLC,
		IsCustom:   isCustom && !isCDLC,
	}
}

// Path returns the mod's directory under base
func (m Mod) Path(base string) string {
	return filepath.Join(base, m.Identifier)
}

// HasWorkshopPage reports whether the mod has a canonical Steam Workshop listing
func (m Mod) HasWorkshopPage() bool {
	return !m.IsCDLC && !m.IsCustom
}

// Dependency is a required item listed on a mod's workshop page
type Dependency struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// DependencyState describes a dependency relative to the local mod set
type DependencyState int

const (
	DependencyMissing  DependencyState = iota // Not installed
	DependencyDisabled                        // Installed but not enabled
	DependencyEnabled                         // Installed and enabled
)

func (s DependencyState) String() string {
	switch s {
	case DependencyMissing:
		return "missing"
	case DependencyDisabled:
		return "disabled"
	case DependencyEnabled:
		return "enabled"
	default:
		return "unknown"
	}
}

// DependencyStatus pairs a dependency with its local state
type DependencyStatus struct {
	Dependency
	State DependencyState
}

package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines keybindings for the TUI. Arrows and WASD work in every
// mode; vim mode adds hjkl.
type KeyMap struct {
	mode string
}

// NewKeyMap creates a new keymap for the given mode
func NewKeyMap(mode string) *KeyMap {
	if mode == "" {
		mode = "vim"
	}
	return &KeyMap{mode: mode}
}

// Mode returns the current keybinding mode
func (k *KeyMap) Mode() string {
	return k.mode
}

// IsUp returns true if the key moves the cursor up
func (k *KeyMap) IsUp(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeyUp || msg.String() == "w" {
		return true
	}
	return k.mode == "vim" && msg.String() == "k"
}

// IsDown returns true if the key moves the cursor down
func (k *KeyMap) IsDown(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeyDown || msg.String() == "s" {
		return true
	}
	return k.mode == "vim" && msg.String() == "j"
}

// IsPrevPage returns true if the key goes to the previous page
func (k *KeyMap) IsPrevPage(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeyLeft || msg.String() == "a" {
		return true
	}
	return k.mode == "vim" && msg.String() == "h"
}

// IsNextPage returns true if the key goes to the next page
func (k *KeyMap) IsNextPage(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeyRight || msg.String() == "d" {
		return true
	}
	return k.mode == "vim" && msg.String() == "l"
}

// IsToggle returns true if the key toggles the selected mod
func (k *KeyMap) IsToggle(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeySpace || msg.String() == " "
}

// IsToggleAll returns true for ctrl+space, which terminals report as ctrl+@
func (k *KeyMap) IsToggleAll(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyCtrlAt
}

// IsQuit returns true if the key leaves the main list
func (k *KeyMap) IsQuit(msg tea.KeyMsg) bool {
	return msg.String() == "q" || msg.Type == tea.KeyEsc || msg.Type == tea.KeyCtrlC
}

// NavigationHelp returns help text for navigation keys
func (k *KeyMap) NavigationHelp() string {
	if k.mode == "vim" {
		return "w/s j/k: move  a/d h/l: page"
	}
	return "↑/↓ w/s: move  ←/→ a/d: page"
}

// ActionHelp returns help text for the main list actions
func (k *KeyMap) ActionHelp() string {
	return "space: toggle  ctrl+space: toggle all  r: refresh  f: args  e: executable  c: dependencies  o: presets  p: launch  q: quit"
}

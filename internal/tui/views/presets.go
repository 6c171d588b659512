package views

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PresetItem is a preset as shown in the list
type PresetItem struct {
	Name string
	Mods int
}

// SwitchPresetMsg is sent to activate a preset
type SwitchPresetMsg struct {
	Name string
}

// CreatePresetMsg is sent to save the current selection as a new preset
type CreatePresetMsg struct {
	Name string
}

// RenamePresetMsg is sent to rename a preset
type RenamePresetMsg struct {
	Old string
	New string
}

// DeletePresetMsg is sent to delete a preset
type DeletePresetMsg struct {
	Name string
}

// SaveActivePresetMsg is sent to store the current selection in the active preset
type SaveActivePresetMsg struct{}

// BackMsg is sent when a screen is closed
type BackMsg struct{}

type presetMode int

const (
	presetBrowse presetMode = iota
	presetCreate
	presetRename
)

// Presets is the preset management view
type Presets struct {
	items    []PresetItem
	active   string
	selected int
	mode     presetMode
	editor   TextEdit
	width    int
	height   int
}

// NewPresets creates a presets view with the active preset selected
func NewPresets(items []PresetItem, active string) Presets {
	p := Presets{
		items:  items,
		active: active,
		width:  80,
		height: 24,
	}
	return p.Select(active)
}

// Select moves the selection to the named preset, if present
func (p Presets) Select(name string) Presets {
	for i, item := range p.items {
		if item.Name == name {
			p.selected = i
		}
	}
	return p
}

// Selected returns the currently selected index
func (p Presets) Selected() int {
	return p.selected
}

// PresetCount returns the number of presets
func (p Presets) PresetCount() int {
	return len(p.items)
}

// IsEditing returns whether a preset name is being entered
func (p Presets) IsEditing() bool {
	return p.mode != presetBrowse
}

// SelectedPreset returns the currently selected preset name
func (p Presets) SelectedPreset() string {
	if len(p.items) == 0 || p.selected >= len(p.items) {
		return ""
	}
	return p.items[p.selected].Name
}

// Init implements tea.Model
func (p Presets) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (p Presets) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil

	case TextEditDoneMsg:
		return p.finishEdit(msg.Value)

	case TextEditCanceledMsg:
		p.mode = presetBrowse
		return p, nil

	case tea.KeyMsg:
		if p.mode == presetBrowse {
			return p.handleKeyPress(msg)
		}
	}

	if p.mode != presetBrowse {
		m, cmd := p.editor.Update(msg)
		p.editor = m.(TextEdit)
		return p, cmd
	}
	return p, nil
}

func (p Presets) finishEdit(name string) (tea.Model, tea.Cmd) {
	mode := p.mode
	p.mode = presetBrowse

	switch mode {
	case presetCreate:
		return p, func() tea.Msg {
			return CreatePresetMsg{Name: name}
		}
	case presetRename:
		old := p.SelectedPreset()
		return p, func() tea.Msg {
			return RenamePresetMsg{Old: old, New: name}
		}
	}
	return p, nil
}

func (p Presets) startEdit(mode presetMode, title, value string) (tea.Model, tea.Cmd) {
	p.mode = mode
	p.editor = NewTextEdit(TextEditOptions{
		Title:     title,
		Prompt:    "Name: ",
		Value:     value,
		CharLimit: 50,
		Validate:  validatePresetName,
	})
	return p, p.editor.Init()
}

func validatePresetName(name string) error {
	if name == "" {
		return errors.New("preset name cannot be empty")
	}
	return nil
}

func (p Presets) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return p, func() tea.Msg {
			return BackMsg{}
		}

	case "up", "k":
		if len(p.items) > 0 {
			p.selected--
			if p.selected < 0 {
				p.selected = len(p.items) - 1
			}
		}
		return p, nil

	case "down", "j":
		if len(p.items) > 0 {
			p.selected++
			if p.selected >= len(p.items) {
				p.selected = 0
			}
		}
		return p, nil

	case "enter", " ":
		if name := p.SelectedPreset(); name != "" {
			return p, func() tea.Msg {
				return SwitchPresetMsg{Name: name}
			}
		}
		return p, nil

	case "n":
		return p.startEdit(presetCreate, "New preset from current selection", "")

	case "r":
		if name := p.SelectedPreset(); name != "" {
			return p.startEdit(presetRename, fmt.Sprintf("Rename preset %q", name), name)
		}
		return p, nil

	case "d", "delete":
		if name := p.SelectedPreset(); name != "" {
			return p, func() tea.Msg {
				return DeletePresetMsg{Name: name}
			}
		}
		return p, nil

	case "s":
		return p, func() tea.Msg {
			return SaveActivePresetMsg{}
		}

	case "home", "g":
		p.selected = 0
		return p, nil

	case "end", "G":
		if len(p.items) > 0 {
			p.selected = len(p.items) - 1
		}
		return p, nil
	}

	return p, nil
}

// View implements tea.Model
func (p Presets) View() string {
	if p.mode != presetBrowse {
		return p.editor.View()
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("69")).
		MarginBottom(1)

	itemStyle := lipgloss.NewStyle().
		PaddingLeft(2)

	selectedStyle := lipgloss.NewStyle().
		PaddingLeft(2).
		Foreground(lipgloss.Color("205")).
		Bold(true)

	activeStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("82"))

	infoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	output := titleStyle.Render("Presets") + "\n"

	if len(p.items) == 0 {
		output += itemStyle.Render("No presets configured.") + "\n\n"
		output += infoStyle.Render("Press 'n' to create a new preset.") + "\n"
		return output
	}

	for i, item := range p.items {
		cursor := "  "
		style := itemStyle
		if i == p.selected {
			cursor = "▸ "
			style = selectedStyle
		}

		status := ""
		if item.Name == p.active {
			status = activeStyle.Render(" [active]")
		}

		line := fmt.Sprintf("%s%s %s%s", cursor, item.Name, infoStyle.Render(fmt.Sprintf("(%d mods)", item.Mods)), status)
		output += style.Render(line) + "\n"
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		MarginTop(1)
	output += helpStyle.Render("enter: switch  n: new  r: rename  d: delete  s: save selection  esc: back")

	return output
}

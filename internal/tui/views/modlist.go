package views

import (
	"fmt"

	"a3mm/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

// ModList renders one page of the mod list. The session owns the cursor
// and the pages; this only draws them.
type ModList struct {
	Mods    []domain.Mod // Items on the current page
	Cursor  int          // Row on the current page
	Page    int          // Zero-based
	Pages   int
	Total   int
	Enabled int
	Preset  string
}

// View renders the list
func (l ModList) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("69")).
		MarginBottom(1)

	infoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	itemStyle := lipgloss.NewStyle().
		PaddingLeft(2)

	selectedStyle := lipgloss.NewStyle().
		PaddingLeft(2).
		Foreground(lipgloss.Color("205")).
		Bold(true)

	disabledStyle := lipgloss.NewStyle().
		PaddingLeft(2).
		Foreground(lipgloss.Color("241"))

	tagStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("214"))

	output := titleStyle.Render("Mods") + "\n"
	output += infoStyle.Render(fmt.Sprintf("Preset: %s  Enabled: %d/%d", l.Preset, l.Enabled, l.Total)) + "\n\n"

	if l.Total == 0 {
		output += itemStyle.Render("No mods found.") + "\n\n"
		output += infoStyle.Render("Subscribe to mods on the Steam Workshop, then press 'r' to refresh.") + "\n"
		return output
	}

	for i, mod := range l.Mods {
		cursor := "  "
		style := itemStyle
		if i == l.Cursor {
			cursor = "▸ "
			style = selectedStyle
		} else if !mod.Enabled {
			style = disabledStyle
		}

		status := "[✓]"
		if !mod.Enabled {
			status = "[ ]"
		}

		tag := ""
		switch {
		case mod.IsCDLC:
			tag = tagStyle.Render(" [CDLC]")
		case mod.IsCustom:
			tag = tagStyle.Render(" [custom]")
		}

		line := fmt.Sprintf("%s%s %s%s", cursor, status, mod.Name, tag)
		output += style.Render(line) + "\n"
	}

	output += "\n" + infoStyle.Render(fmt.Sprintf("Page %d/%d", l.Page+1, max(l.Pages, 1)))
	return output
}

package views

import (
	"fmt"

	"a3mm/internal/domain"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DependenciesLoadedMsg carries the classified dependencies of a mod
type DependenciesLoadedMsg struct {
	ModID    string
	Statuses []domain.DependencyStatus
	Err      error
}

// EnableDependenciesMsg is sent to enable every installed but disabled dependency
type EnableDependenciesMsg struct {
	Statuses []domain.DependencyStatus
}

// Dependencies is the dependency review view
type Dependencies struct {
	mod      domain.Mod
	statuses []domain.DependencyStatus
	selected int
	loading  bool
	err      error
	width    int
	height   int
}

// NewDependencies creates a dependency view waiting for its lookup
func NewDependencies(mod domain.Mod) Dependencies {
	return Dependencies{
		mod:     mod,
		loading: true,
		width:   80,
		height:  24,
	}
}

// Mod returns the mod whose dependencies are shown
func (d Dependencies) Mod() domain.Mod {
	return d.mod
}

// IsLoading returns whether the lookup is still running
func (d Dependencies) IsLoading() bool {
	return d.loading
}

// Statuses returns the loaded dependencies
func (d Dependencies) Statuses() []domain.DependencyStatus {
	return d.statuses
}

// Err returns the lookup error, if any
func (d Dependencies) Err() error {
	return d.err
}

// Selected returns the currently selected row
func (d Dependencies) Selected() int {
	return d.selected
}

func (d Dependencies) countState(state domain.DependencyState) int {
	n := 0
	for _, s := range d.statuses {
		if s.State == state {
			n++
		}
	}
	return n
}

// Init implements tea.Model
func (d Dependencies) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (d Dependencies) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return d.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.height = msg.Height
		return d, nil

	case DependenciesLoadedMsg:
		if msg.ModID != d.mod.Identifier {
			return d, nil
		}
		d.loading = false
		d.err = msg.Err
		d.statuses = msg.Statuses
		if d.selected >= len(d.statuses) {
			d.selected = 0
		}
		return d, nil
	}

	return d, nil
}

func (d Dependencies) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return d, func() tea.Msg {
			return BackMsg{}
		}

	case "up", "k", "w":
		if len(d.statuses) > 0 {
			d.selected--
			if d.selected < 0 {
				d.selected = len(d.statuses) - 1
			}
		}
		return d, nil

	case "down", "j", "s":
		if len(d.statuses) > 0 {
			d.selected++
			if d.selected >= len(d.statuses) {
				d.selected = 0
			}
		}
		return d, nil

	case "a":
		if d.loading || d.countState(domain.DependencyDisabled) == 0 {
			return d, nil
		}
		statuses := d.statuses
		return d, func() tea.Msg {
			return EnableDependenciesMsg{Statuses: statuses}
		}
	}

	return d, nil
}

// View implements tea.Model
func (d Dependencies) View() string {
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

	loadingStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("214"))

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("196"))

	stateStyles := map[domain.DependencyState]lipgloss.Style{
		domain.DependencyMissing:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		domain.DependencyDisabled: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		domain.DependencyEnabled:  lipgloss.NewStyle().Foreground(lipgloss.Color("82")),
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		MarginTop(1)

	output := titleStyle.Render(fmt.Sprintf("Dependencies of %s", d.mod.Name)) + "\n"
	output += infoStyle.Render(fmt.Sprintf("Workshop item %s", d.mod.Identifier)) + "\n\n"

	if d.loading {
		output += loadingStyle.Render("Loading dependencies from the Steam Workshop...") + "\n"
		output += helpStyle.Render("esc: back")
		return output
	}

	if d.err != nil {
		output += errorStyle.Render(fmt.Sprintf("Error: %v", d.err)) + "\n"
		output += helpStyle.Render("esc: back")
		return output
	}

	if len(d.statuses) == 0 {
		output += itemStyle.Render("No dependencies.") + "\n"
		output += helpStyle.Render("esc: back")
		return output
	}

	for i, s := range d.statuses {
		cursor := "  "
		style := itemStyle
		if i == d.selected {
			cursor = "▸ "
			style = selectedStyle
		}
		state := stateStyles[s.State].Render(fmt.Sprintf("[%s]", s.State))
		line := fmt.Sprintf("%s%-12s %s %s", cursor, s.ID, s.Name, state)
		output += style.Render(line) + "\n"
	}

	output += "\n" + infoStyle.Render(fmt.Sprintf("%d missing, %d disabled, %d enabled",
		d.countState(domain.DependencyMissing),
		d.countState(domain.DependencyDisabled),
		d.countState(domain.DependencyEnabled))) + "\n"

	output += helpStyle.Render("a: enable installed  esc: back")
	return output
}

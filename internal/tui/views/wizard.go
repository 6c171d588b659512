package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// WizardSubmitMsg is sent when the user confirms both paths
type WizardSubmitMsg struct {
	WorkshopPath string
	GamePath     string
}

// WizardErrorMsg reports why the submitted paths were rejected
type WizardErrorMsg struct {
	Err error
}

const (
	wizardWorkshop = iota
	wizardGame
	wizardFields
)

// Wizard asks for the workshop and game directories
type Wizard struct {
	inputs   [wizardFields]textinput.Model
	focus    int
	detected bool
	err      error
	width    int
	height   int
}

// NewWizard creates the setup form seeded with the given paths. detected
// marks the seed as coming from the Steam library scan.
func NewWizard(workshopPath, gamePath string, detected bool) Wizard {
	w := Wizard{
		detected: detected,
		width:    80,
		height:   24,
	}

	for i, value := range []string{workshopPath, gamePath} {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 4096
		ti.Width = 60
		ti.SetValue(value)
		w.inputs[i] = ti
	}
	w.inputs[wizardWorkshop].Placeholder = ".../steamapps/workshop/content/107410"
	w.inputs[wizardGame].Placeholder = ".../steamapps/common/Arma 3"
	w.inputs[wizardWorkshop].Focus()

	return w
}

// Focused returns the index of the focused field: 0 workshop, 1 game
func (w Wizard) Focused() int {
	return w.focus
}

// WorkshopPath returns the entered workshop directory
func (w Wizard) WorkshopPath() string {
	return w.inputs[wizardWorkshop].Value()
}

// GamePath returns the entered game directory
func (w Wizard) GamePath() string {
	return w.inputs[wizardGame].Value()
}

// Err returns the last rejection
func (w Wizard) Err() error {
	return w.err
}

// Init implements tea.Model
func (w Wizard) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (w Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return w, tea.Quit

		case "tab", "down":
			return w.focusField((w.focus + 1) % wizardFields)

		case "shift+tab", "up":
			return w.focusField((w.focus + wizardFields - 1) % wizardFields)

		case "enter":
			workshop, game := w.WorkshopPath(), w.GamePath()
			return w, func() tea.Msg {
				return WizardSubmitMsg{WorkshopPath: workshop, GamePath: game}
			}
		}

	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
		return w, nil

	case WizardErrorMsg:
		w.err = msg.Err
		return w, nil
	}

	var cmd tea.Cmd
	w.inputs[w.focus], cmd = w.inputs[w.focus].Update(msg)
	return w, cmd
}

func (w Wizard) focusField(i int) (tea.Model, tea.Cmd) {
	w.inputs[w.focus].Blur()
	w.focus = i
	return w, w.inputs[w.focus].Focus()
}

// View implements tea.Model
func (w Wizard) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("69")).
		MarginBottom(1)

	infoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	labelStyle := lipgloss.NewStyle().
		PaddingLeft(2)

	focusedStyle := lipgloss.NewStyle().
		PaddingLeft(2).
		Foreground(lipgloss.Color("205")).
		Bold(true)

	errStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("196"))

	output := titleStyle.Render("Setup") + "\n"
	if w.detected {
		output += infoStyle.Render("Found an Arma 3 installation in your Steam libraries.") + "\n\n"
	} else {
		output += infoStyle.Render("Arma 3 was not found automatically. Enter its directories.") + "\n\n"
	}

	labels := [wizardFields]string{"Workshop directory", "Game directory"}
	for i, label := range labels {
		cursor := "  "
		style := labelStyle
		if i == w.focus {
			cursor = "▸ "
			style = focusedStyle
		}
		output += style.Render(fmt.Sprintf("%s%s", cursor, label)) + "\n"
		output += "    " + w.inputs[i].View() + "\n\n"
	}

	if w.err != nil {
		output += errStyle.Render(fmt.Sprintf("Error: %v", w.err)) + "\n"
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		MarginTop(1)
	output += helpStyle.Render("tab/↑/↓: switch field  enter: save  esc: quit")

	return output
}

package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TextEditDoneMsg is sent when the user commits a valid value
type TextEditDoneMsg struct {
	Value string
}

// TextEditCanceledMsg is sent when the user discards the edit
type TextEditCanceledMsg struct{}

// TextEditOptions configures a TextEdit
type TextEditOptions struct {
	Title       string
	Prompt      string
	Hint        string
	Value       string // Initial value
	Placeholder string
	CharLimit   int
	Validate    func(string) error // Optional; runs on the trimmed value
}

// TextEdit is a single line edit modal
type TextEdit struct {
	title    string
	hint     string
	input    textinput.Model
	validate func(string) error
	err      error
	width    int
}

// NewTextEdit creates a focused text edit modal
func NewTextEdit(opts TextEditOptions) TextEdit {
	ti := textinput.New()
	ti.Prompt = opts.Prompt
	ti.Placeholder = opts.Placeholder
	ti.CharLimit = opts.CharLimit
	ti.Width = 50
	ti.SetValue(opts.Value)
	ti.Focus()

	return TextEdit{
		title:    opts.Title,
		hint:     opts.Hint,
		input:    ti,
		validate: opts.Validate,
		width:    80,
	}
}

// Value returns the current trimmed input
func (e TextEdit) Value() string {
	return strings.TrimSpace(e.input.Value())
}

// Err returns the last validation error
func (e TextEdit) Err() error {
	return e.err
}

// Init implements tea.Model
func (e TextEdit) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (e TextEdit) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			value := e.Value()
			if e.validate != nil {
				if err := e.validate(value); err != nil {
					e.err = err
					return e, nil
				}
			}
			e.err = nil
			return e, func() tea.Msg {
				return TextEditDoneMsg{Value: value}
			}

		case tea.KeyEsc:
			return e, func() tea.Msg {
				return TextEditCanceledMsg{}
			}
		}
		e.err = nil

	case tea.WindowSizeMsg:
		e.width = msg.Width
		return e, nil
	}

	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return e, cmd
}

// View implements tea.Model
func (e TextEdit) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("69")).
		MarginBottom(1)

	hintStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	errStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("196"))

	output := titleStyle.Render(e.title) + "\n"
	output += e.input.View() + "\n\n"
	if e.err != nil {
		output += errStyle.Render(e.err.Error()) + "\n"
	}
	if e.hint != "" {
		output += hintStyle.Render(e.hint) + "\n"
	}
	output += hintStyle.Render("enter: save  esc: cancel")
	return output
}

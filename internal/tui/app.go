package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"a3mm/internal/core"
	"a3mm/internal/domain"
	"a3mm/internal/logging"
	"a3mm/internal/source/steam"
	"a3mm/internal/tui/views"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// State is the screen the session is on
type State int

const (
	StateSetupWizard State = iota
	StateMainList
	StateEditCustomArgs
	StateEditExecutableName
	StateDependencyReview
	StatePresets
)

func (s State) String() string {
	switch s {
	case StateSetupWizard:
		return "setup"
	case StateMainList:
		return "main"
	case StateEditCustomArgs:
		return "edit-args"
	case StateEditExecutableName:
		return "edit-executable"
	case StateDependencyReview:
		return "dependencies"
	case StatePresets:
		return "presets"
	default:
		return "unknown"
	}
}

// DependenciesFetchedMsg carries the result of a workshop lookup
type DependenciesFetchedMsg struct {
	ModID string
	Deps  []domain.Dependency
	Err   error
}

// LaunchFinishedMsg is sent when the game process exits
type LaunchFinishedMsg struct {
	Plan *core.LaunchPlan
	Err  error
}

// Options configures an App
type Options struct {
	Lookup        core.DependencyLookup       // nil disables dependency review
	LookupTimeout time.Duration               // Zero means no timeout
	Keymap        string                      // "vim" or "standard"
	Home          string                      // Expands ~ in wizard paths
	Detect        func() (steam.Paths, error) // Seeds the setup wizard
}

// App is the main TUI application model
type App struct {
	manager   *core.Manager
	opts      Options
	keys      *KeyMap
	state     State
	cursor    int
	status    string
	statusErr bool
	width     int
	height    int
	logger    zerolog.Logger

	wizard  views.Wizard
	editor  views.TextEdit
	deps    views.Dependencies
	presets views.Presets
}

// NewApp creates the session. It starts in the setup wizard when the
// configured paths are unusable. The manager should already be refreshed.
func NewApp(manager *core.Manager, opts Options) App {
	a := App{
		manager: manager,
		opts:    opts,
		keys:    NewKeyMap(opts.Keymap),
		state:   StateMainList,
		width:   80,
		height:  24,
		logger:  logging.GetLogger("tui"),
	}
	if !manager.Config().IsValid() {
		a.state = StateSetupWizard
		a.wizard = a.newWizard()
	}
	return a
}

func (a App) newWizard() views.Wizard {
	cfg := a.manager.Config()
	workshop, game := cfg.WorkshopPath, cfg.GamePath

	if a.opts.Detect != nil {
		paths, err := a.opts.Detect()
		switch {
		case err != nil:
			a.logger.Warn().Err(err).Msg("Steam detection failed")
		case isDir(paths.GamePath):
			return views.NewWizard(paths.WorkshopPath, paths.GamePath, true)
		case workshop == "" && game == "":
			workshop, game = paths.WorkshopPath, paths.GamePath
		}
	}
	return views.NewWizard(workshop, game, false)
}

// State returns the current screen
func (a App) State() State {
	return a.state
}

// Cursor returns the selected row on the current page
func (a App) Cursor() int {
	return a.cursor
}

// Status returns the last info or error message
func (a App) Status() string {
	return a.status
}

// Manager returns the session state
func (a App) Manager() *core.Manager {
	return a.manager
}

func (a *App) setInfo(msg string) {
	a.status = msg
	a.statusErr = false
}

func (a *App) setError(err error) {
	a.status = err.Error()
	a.statusErr = true
	a.logger.Error().Err(err).Str("state", a.state.String()).Msg("Session error")
}

// Init implements tea.Model
func (a App) Init() tea.Cmd {
	if a.state == StateSetupWizard {
		return a.wizard.Init()
	}
	return nil
}

// Update implements tea.Model
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		if a.state == StateMainList {
			return a.handleMainListKey(msg)
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case views.WizardSubmitMsg:
		return a.submitWizard(msg)

	case views.TextEditDoneMsg:
		switch a.state {
		case StateEditCustomArgs:
			return a.finishEdit(a.manager.SetDefaultArgs(msg.Value), "Launch arguments saved")
		case StateEditExecutableName:
			return a.finishEdit(a.manager.SetExecutableName(msg.Value), "Executable name saved")
		}

	case views.TextEditCanceledMsg:
		if a.state == StateEditCustomArgs || a.state == StateEditExecutableName {
			a.state = StateMainList
			return a, nil
		}

	case DependenciesFetchedMsg:
		return a.dependenciesFetched(msg)

	case views.EnableDependenciesMsg:
		return a.enableDependencies(msg)

	case views.SwitchPresetMsg:
		if err := a.manager.SwitchPreset(msg.Name); err != nil {
			a.setError(err)
			return a, nil
		}
		a.state = StateMainList
		a.clampCursor()
		a.setInfo(fmt.Sprintf("Switched to preset %q", msg.Name))
		return a, nil

	case views.CreatePresetMsg:
		return a.presetResult(a.manager.CreatePreset(msg.Name), msg.Name, fmt.Sprintf("Saved preset %q", msg.Name))

	case views.RenamePresetMsg:
		return a.presetResult(a.manager.RenamePreset(msg.Old, msg.New), msg.New, fmt.Sprintf("Renamed preset %q to %q", msg.Old, msg.New))

	case views.DeletePresetMsg:
		err := a.manager.DeletePreset(msg.Name)
		if errors.Is(err, domain.ErrLastPreset) {
			err = fmt.Errorf("cannot delete %q: it is the only preset", msg.Name)
		}
		return a.presetResult(err, a.manager.Config().ActivePreset, fmt.Sprintf("Deleted preset %q", msg.Name))

	case views.SaveActivePresetMsg:
		active := a.manager.Config().ActivePreset
		return a.presetResult(a.manager.SaveActivePreset(), active, fmt.Sprintf("Saved selection to preset %q", active))

	case views.BackMsg:
		a.state = StateMainList
		return a, nil

	case LaunchFinishedMsg:
		return a.launchFinished(msg)
	}

	return a.updateCurrentView(msg)
}

func (a App) updateCurrentView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var m tea.Model
	var cmd tea.Cmd

	switch a.state {
	case StateSetupWizard:
		m, cmd = a.wizard.Update(msg)
		a.wizard = m.(views.Wizard)
	case StateEditCustomArgs, StateEditExecutableName:
		m, cmd = a.editor.Update(msg)
		a.editor = m.(views.TextEdit)
	case StateDependencyReview:
		m, cmd = a.deps.Update(msg)
		a.deps = m.(views.Dependencies)
	case StatePresets:
		m, cmd = a.presets.Update(msg)
		a.presets = m.(views.Presets)
	}

	return a, cmd
}

func (a App) handleMainListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	mods := a.manager.Mods()

	switch {
	case a.keys.IsQuit(msg):
		return a, tea.Quit

	case a.keys.IsUp(msg):
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil

	case a.keys.IsDown(msg):
		if a.cursor < len(mods.CurrentPageItems())-1 {
			a.cursor++
		}
		return a, nil

	case a.keys.IsPrevPage(msg):
		mods.PrevPage()
		a.cursor = 0
		return a, nil

	case a.keys.IsNextPage(msg):
		mods.NextPage()
		a.cursor = 0
		return a, nil

	case a.keys.IsToggleAll(msg):
		if a.manager.ToggleAll() {
			a.setInfo("Enabled all mods")
		} else {
			a.setInfo("Disabled all mods")
		}
		return a, nil

	case a.keys.IsToggle(msg):
		i := mods.IndexOf(a.cursor)
		if mod := mods.Item(i); mod != nil {
			a.manager.ToggleAt(i)
			a.setInfo(fmt.Sprintf("%s %s", onOff(mod.Enabled), mod.Name))
		}
		return a, nil
	}

	switch msg.String() {
	case "r":
		done := logging.LogOperationStart(a.logger, "refresh")
		a.manager.Refresh()
		done()
		a.cursor = 0
		a.setInfo(fmt.Sprintf("Found %d mods", a.manager.Mods().Len()))
		return a, nil

	case "f":
		return a.openEditor(StateEditCustomArgs, views.TextEditOptions{
			Title:       "Default launch arguments",
			Prompt:      "Args: ",
			Hint:        "Passed to the game before -mod=, e.g. -noSplash -skipIntro",
			Value:       a.manager.Config().DefaultArgs,
			Placeholder: "-noSplash",
		})

	case "e":
		return a.openEditor(StateEditExecutableName, views.TextEditOptions{
			Title:    "Game executable",
			Prompt:   "Name: ",
			Hint:     fmt.Sprintf("Resolves to %s", a.manager.ExecutablePath()),
			Value:    a.manager.Config().ExecutableName,
			Validate: validateExecutableName,
		})

	case "c":
		return a.reviewDependencies()

	case "o":
		a.presets = views.NewPresets(a.presetItems(), a.manager.Config().ActivePreset)
		a.state = StatePresets
		return a, nil

	case "p":
		return a.launch()
	}

	return a, nil
}

func onOff(enabled bool) string {
	if enabled {
		return "Enabled"
	}
	return "Disabled"
}

func validateExecutableName(name string) error {
	if name == "" {
		return errors.New("executable name cannot be empty")
	}
	if strings.ContainsRune(name, filepath.Separator) {
		return errors.New("enter a file name, not a path")
	}
	return nil
}

func (a *App) clampCursor() {
	n := len(a.manager.Mods().CurrentPageItems())
	if a.cursor >= n {
		a.cursor = max(n-1, 0)
	}
}

func (a App) openEditor(state State, opts views.TextEditOptions) (tea.Model, tea.Cmd) {
	a.editor = views.NewTextEdit(opts)
	a.state = state
	return a, a.editor.Init()
}

func (a App) finishEdit(err error, success string) (tea.Model, tea.Cmd) {
	a.state = StateMainList
	if err != nil {
		a.setError(err)
	} else {
		a.setInfo(success)
	}
	return a, nil
}

func (a App) submitWizard(msg views.WizardSubmitMsg) (tea.Model, tea.Cmd) {
	workshop := expandHome(strings.TrimSpace(msg.WorkshopPath), a.opts.Home)
	game := expandHome(strings.TrimSpace(msg.GamePath), a.opts.Home)

	if err := a.manager.SetPaths(workshop, game); err != nil {
		m, _ := a.wizard.Update(views.WizardErrorMsg{Err: err})
		a.wizard = m.(views.Wizard)
		return a, nil
	}

	a.logger.Info().Str("workshop", workshop).Str("game", game).Msg("Setup complete")
	a.state = StateMainList
	a.cursor = 0
	a.setInfo(fmt.Sprintf("Found %d mods", a.manager.Mods().Len()))
	return a, nil
}

func expandHome(path, home string) string {
	if home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		return filepath.Join(home, rest)
	}
	return path
}

func (a App) reviewDependencies() (tea.Model, tea.Cmd) {
	mods := a.manager.Mods()
	mod := mods.Item(mods.IndexOf(a.cursor))
	if mod == nil {
		return a, nil
	}

	switch {
	case mod.IsCDLC:
		a.setInfo(fmt.Sprintf("%s is a Creator DLC and has no Workshop dependencies", mod.Name))
		return a, nil
	case mod.IsCustom:
		a.setInfo(fmt.Sprintf("%s is a custom mod and has no Workshop page", mod.Name))
		return a, nil
	case a.opts.Lookup == nil:
		a.setError(errors.New("dependency lookup is not available"))
		return a, nil
	}

	a.deps = views.NewDependencies(*mod)
	a.state = StateDependencyReview
	return a, fetchDependencies(a.opts.Lookup, mod.Identifier, a.opts.LookupTimeout)
}

// fetchDependencies runs the lookup off the event loop. Classification
// happens in Update against the live mod list.
func fetchDependencies(lookup core.DependencyLookup, id string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		deps, err := lookup.FetchDependencies(ctx, id)
		return DependenciesFetchedMsg{ModID: id, Deps: deps, Err: err}
	}
}

func (a App) dependenciesFetched(msg DependenciesFetchedMsg) (tea.Model, tea.Cmd) {
	if a.state != StateDependencyReview || msg.ModID != a.deps.Mod().Identifier {
		return a, nil
	}

	loaded := views.DependenciesLoadedMsg{ModID: msg.ModID, Err: msg.Err}
	if msg.Err != nil {
		a.setError(fmt.Errorf("looking up dependencies: %w", msg.Err))
	} else {
		loaded.Statuses = core.ClassifyDependencies(msg.Deps, a.manager.Mods().AllItems())
		a.setInfo(fmt.Sprintf("%s has %d dependencies", a.deps.Mod().Name, len(msg.Deps)))
	}

	m, cmd := a.deps.Update(loaded)
	a.deps = m.(views.Dependencies)
	return a, cmd
}

func (a App) enableDependencies(msg views.EnableDependenciesMsg) (tea.Model, tea.Cmd) {
	n := a.manager.EnableDependencies(msg.Statuses)

	deps := make([]domain.Dependency, len(msg.Statuses))
	for i, s := range msg.Statuses {
		deps[i] = s.Dependency
	}
	m, _ := a.deps.Update(views.DependenciesLoadedMsg{
		ModID:    a.deps.Mod().Identifier,
		Statuses: core.ClassifyDependencies(deps, a.manager.Mods().AllItems()),
	})
	a.deps = m.(views.Dependencies)
	a.setInfo(fmt.Sprintf("Enabled %d dependencies", n))
	return a, nil
}

func (a App) presetItems() []views.PresetItem {
	cfg := a.manager.Config()
	names := cfg.PresetNames()
	items := make([]views.PresetItem, len(names))
	for i, name := range names {
		items[i] = views.PresetItem{Name: name, Mods: cfg.PresetModCount(name)}
	}
	return items
}

// presetResult reports a preset operation and redraws the preset list
// with selected highlighted
func (a App) presetResult(err error, selected, success string) (tea.Model, tea.Cmd) {
	if err != nil {
		a.setError(err)
	} else {
		a.setInfo(success)
	}
	a.presets = views.NewPresets(a.presetItems(), a.manager.Config().ActivePreset).Select(selected)
	a.clampCursor()
	return a, nil
}

func (a App) launch() (tea.Model, tea.Cmd) {
	plan, err := a.manager.PrepareLaunch()
	if err != nil {
		a.setError(fmt.Errorf("launch failed: %w", err))
		return a, nil
	}

	a.logger.Info().
		Str("executable", plan.Executable).
		Strs("args", plan.Args).
		Msg("Launching game")
	a.setInfo(fmt.Sprintf("Launched %s with %d mods", filepath.Base(plan.Executable), len(plan.ModIDs)))

	return a, tea.ExecProcess(plan.Command(context.Background()), func(err error) tea.Msg {
		return LaunchFinishedMsg{Plan: plan, Err: err}
	})
}

func (a App) launchFinished(msg LaunchFinishedMsg) (tea.Model, tea.Cmd) {
	var exitErr *exec.ExitError
	if msg.Err != nil && !errors.As(msg.Err, &exitErr) {
		a.setError(fmt.Errorf("launch failed: %w", msg.Err))
		return a, nil
	}

	a.manager.RecordLaunch(msg.Plan)
	if exitErr != nil {
		a.setInfo(fmt.Sprintf("Game exited with code %d", exitErr.ExitCode()))
	} else {
		a.setInfo("Game exited")
	}
	return a, nil
}

// View implements tea.Model
func (a App) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205")).
		MarginBottom(1)

	header := titleStyle.Render("a3mm - Arma 3 Mod Manager")
	content := a.renderCurrentView()

	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("82"))
	if a.statusErr {
		statusStyle = statusStyle.Foreground(lipgloss.Color("196"))
	}
	status := statusStyle.Render(a.status)

	footer := ""
	if a.state == StateMainList {
		footerStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
		footer = footerStyle.Render(a.keys.NavigationHelp() + "\n" + a.keys.ActionHelp())
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s\n%s", header, content, status, footer)
}

func (a App) renderCurrentView() string {
	switch a.state {
	case StateSetupWizard:
		return a.wizard.View()
	case StateMainList:
		return a.renderModList()
	case StateEditCustomArgs, StateEditExecutableName:
		return a.editor.View()
	case StateDependencyReview:
		return a.deps.View()
	case StatePresets:
		return a.presets.View()
	default:
		return "Unknown view"
	}
}

func (a App) renderModList() string {
	mods := a.manager.Mods()
	return views.ModList{
		Mods:    mods.CurrentPageItems(),
		Cursor:  a.cursor,
		Page:    mods.CurrentPage(),
		Pages:   mods.TotalPages(),
		Total:   mods.Len(),
		Enabled: len(a.manager.EnabledMods()),
		Preset:  a.manager.Config().ActivePreset,
	}.View()
}

func isDir(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Run starts the TUI application
func Run(manager *core.Manager, opts Options) error {
	p := tea.NewProgram(NewApp(manager, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

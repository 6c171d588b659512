package tui_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"a3mm/internal/core"
	"a3mm/internal/domain"
	"a3mm/internal/source/steam"
	"a3mm/internal/storage/config"
	"a3mm/internal/storage/db"
	"a3mm/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHistory struct {
	launches []db.Launch
}

func (r *recordingHistory) RecordLaunch(l *db.Launch) error {
	r.launches = append(r.launches, *l)
	return nil
}

type fakeLookup struct {
	deps map[string][]domain.Dependency
	err  error
}

func (f *fakeLookup) FetchDependencies(ctx context.Context, id string) ([]domain.Dependency, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.deps[id], nil
}

type session struct {
	root       string
	workshop   string
	game       string
	custom     string
	configPath string
	cfg        *config.Config
	history    *recordingHistory
}

// newSession creates count workshop mods with ids 1001.. named "Mod 1".. and
// a manager paging three mods at a time
func newSession(t *testing.T, count int) *session {
	t.Helper()
	root := t.TempDir()
	s := &session{
		root:       root,
		workshop:   filepath.Join(root, "workshop"),
		game:       filepath.Join(root, "game"),
		custom:     filepath.Join(root, "custom"),
		configPath: filepath.Join(root, "config", "a3mm.json"),
		history:    &recordingHistory{},
	}
	for _, dir := range []string{s.workshop, s.game, s.custom} {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}
	for i := 1; i <= count; i++ {
		writeMod(t, s.workshop, fmt.Sprintf("100%d", i), fmt.Sprintf("Mod %d", i))
	}
	s.cfg = config.New(s.game, s.workshop, &s.custom)
	return s
}

func writeMod(t *testing.T, base, id, name string) {
	t.Helper()
	dir := filepath.Join(base, id)
	require.NoError(t, os.MkdirAll(dir, 0755))
	meta := fmt.Sprintf("name = %q;\n", name)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "meta.cpp"), []byte(meta), 0644))
}

func (s *session) manager(t *testing.T) *core.Manager {
	t.Helper()
	m := core.NewManager(s.cfg, core.ManagerOptions{
		ConfigPath: s.configPath,
		PageSize:   3,
		GOOS:       "linux",
		Home:       s.root,
		History:    s.history,
	})
	m.Refresh()
	return m
}

func (s *session) app(t *testing.T, opts tui.Options) tui.App {
	t.Helper()
	return tui.NewApp(s.manager(t), opts)
}

func press(m tea.Model, keys ...tea.KeyMsg) tea.Model {
	for _, k := range keys {
		m, _ = m.Update(k)
	}
	return m
}

func typeText(m tea.Model, s string) tea.Model {
	for _, r := range s {
		m, _ = m.Update(runes(string(r)))
	}
	return m
}

// feed runs cmd and delivers its messages until the chain ends
func feed(t *testing.T, m tea.Model, cmd tea.Cmd) tea.Model {
	t.Helper()
	for i := 0; cmd != nil; i++ {
		require.Less(t, i, 5, "command chain did not settle")
		m, cmd = m.Update(cmd())
	}
	return m
}

func app(m tea.Model) tui.App {
	return m.(tui.App)
}

var (
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
)

func TestNewApp_StartsInMainList(t *testing.T) {
	s := newSession(t, 2)
	a := s.app(t, tui.Options{})

	assert.Equal(t, tui.StateMainList, a.State())
	assert.Equal(t, 0, a.Cursor())
	view := a.View()
	assert.Contains(t, view, "Mod 1")
	assert.Contains(t, view, "Preset: Default")
}

func TestNewApp_InvalidConfigStartsWizard(t *testing.T) {
	s := newSession(t, 2)
	s.cfg = config.New(filepath.Join(s.root, "missing-game"), filepath.Join(s.root, "missing-ws"), nil)

	a := s.app(t, tui.Options{
		Detect: func() (steam.Paths, error) {
			return steam.Paths{GamePath: s.game, WorkshopPath: s.workshop}, nil
		},
	})
	require.Equal(t, tui.StateSetupWizard, a.State())
	assert.Contains(t, a.View(), "Found an Arma 3 installation")

	m, cmd := a.Update(keyEnter)
	m = feed(t, m, cmd)

	assert.Equal(t, tui.StateMainList, app(m).State())
	assert.Equal(t, s.game, s.cfg.GamePath)
	assert.Equal(t, s.workshop, s.cfg.WorkshopPath)
	assert.Equal(t, 2, app(m).Manager().Mods().Len())
	assert.Equal(t, "Found 2 mods", app(m).Status())
	assert.FileExists(t, s.configPath)
}

func TestWizard_RejectsMissingPaths(t *testing.T) {
	s := newSession(t, 0)
	s.cfg = config.New("", "", nil)

	a := s.app(t, tui.Options{
		Detect: func() (steam.Paths, error) {
			return steam.Paths{}, domain.ErrUnsupportedPlatform
		},
	})
	require.Equal(t, tui.StateSetupWizard, a.State())

	var m tea.Model = a
	m = typeText(m, filepath.Join(s.root, "nope"))
	m, cmd := m.Update(keyEnter)
	m = feed(t, m, cmd)

	assert.Equal(t, tui.StateSetupWizard, app(m).State())
	assert.Contains(t, m.View(), "invalid path")
	assert.NoFileExists(t, s.configPath)
}

func TestWizard_ExpandsHome(t *testing.T) {
	s := newSession(t, 1)
	s.cfg = config.New("", "", nil)

	a := s.app(t, tui.Options{Home: s.root})
	var m tea.Model = a
	m = typeText(m, "~/workshop")
	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, "~/game")
	m, cmd := m.Update(keyEnter)
	m = feed(t, m, cmd)

	require.Equal(t, tui.StateMainList, app(m).State())
	assert.Equal(t, s.workshop, s.cfg.WorkshopPath)
	assert.Equal(t, s.game, s.cfg.GamePath)
}

func TestMainList_CursorStaysOnPage(t *testing.T) {
	s := newSession(t, 5)
	var m tea.Model = s.app(t, tui.Options{})

	m = press(m, keyDown, runes("s"), runes("j"), keyDown)
	assert.Equal(t, 2, app(m).Cursor(), "cursor must not leave the page")
	assert.Equal(t, 0, app(m).Manager().Mods().CurrentPage())

	m = press(m, keyUp, runes("w"), runes("k"))
	assert.Equal(t, 0, app(m).Cursor())

	m = press(m, keyDown, runes("d"))
	assert.Equal(t, 1, app(m).Manager().Mods().CurrentPage())
	assert.Equal(t, 0, app(m).Cursor(), "changing page resets the cursor")

	m = press(m, keyDown, keyDown, keyDown)
	assert.Equal(t, 1, app(m).Cursor(), "last page has two mods")

	m = press(m, runes("l"))
	assert.Equal(t, 1, app(m).Manager().Mods().CurrentPage(), "no page past the last")

	m = press(m, runes("a"))
	assert.Equal(t, 0, app(m).Manager().Mods().CurrentPage())
	m = press(m, runes("h"))
	assert.Equal(t, 0, app(m).Manager().Mods().CurrentPage())
}

func TestMainList_Toggle(t *testing.T) {
	s := newSession(t, 5)
	var m tea.Model = s.app(t, tui.Options{})

	m = press(m, runes("d"), keyDown, keySpace)

	mods := app(m).Manager().Mods().AllItems()
	assert.True(t, mods[4].Enabled)
	assert.Equal(t, "Enabled Mod 5", app(m).Status())

	m = press(m, keySpace)
	assert.False(t, app(m).Manager().Mods().AllItems()[4].Enabled)
	assert.Equal(t, "Disabled Mod 5", app(m).Status())
}

func TestMainList_ToggleAll(t *testing.T) {
	s := newSession(t, 4)
	var m tea.Model = s.app(t, tui.Options{})
	ctrlSpace := tea.KeyMsg{Type: tea.KeyCtrlAt}

	m = press(m, keySpace, ctrlSpace)
	assert.True(t, app(m).Manager().AllEnabled())

	m = press(m, ctrlSpace)
	assert.Empty(t, app(m).Manager().EnabledMods())
	assert.Equal(t, "Disabled all mods", app(m).Status())
}

func TestMainList_RefreshDiscardsUnsavedToggles(t *testing.T) {
	s := newSession(t, 5)
	s.cfg.UpdateMods([]string{"1002"})
	var m tea.Model = s.app(t, tui.Options{})

	m = press(m, keySpace, runes("d"), keyDown)
	writeMod(t, s.workshop, "1006", "Mod 6")
	m = press(m, runes("r"))

	a := app(m)
	assert.Equal(t, 0, a.Cursor())
	assert.Equal(t, 0, a.Manager().Mods().CurrentPage())
	assert.Equal(t, []string{"1002"}, a.Manager().EnabledIDs())
	assert.Equal(t, "Found 6 mods", a.Status())
}

func TestMainList_EditDefaultArgs(t *testing.T) {
	s := newSession(t, 1)
	var m tea.Model = s.app(t, tui.Options{})

	m = press(m, runes("f"))
	require.Equal(t, tui.StateEditCustomArgs, app(m).State())
	assert.Contains(t, m.View(), "Default launch arguments")

	m = typeText(m, " -world=Altis")
	m, cmd := m.Update(keyEnter)
	m = feed(t, m, cmd)

	assert.Equal(t, tui.StateMainList, app(m).State())
	assert.Equal(t, "-noSplash -skipIntro -world=empty -world=Altis", s.cfg.DefaultArgs)

	saved, err := config.Load(s.configPath)
	require.NoError(t, err)
	assert.Equal(t, s.cfg.DefaultArgs, saved.DefaultArgs)
}

func TestMainList_EditCanceled(t *testing.T) {
	s := newSession(t, 1)
	var m tea.Model = s.app(t, tui.Options{})

	m = press(m, runes("f"))
	m = typeText(m, " -x")
	m, cmd := m.Update(keyEsc)
	m = feed(t, m, cmd)

	assert.Equal(t, tui.StateMainList, app(m).State())
	assert.Equal(t, config.DefaultArgs, s.cfg.DefaultArgs)
	assert.NoFileExists(t, s.configPath)
}

func TestMainList_EditExecutableRejectsEmpty(t *testing.T) {
	s := newSession(t, 1)
	var m tea.Model = s.app(t, tui.Options{})

	m = press(m, runes("e"))
	require.Equal(t, tui.StateEditExecutableName, app(m).State())

	m = press(m, tea.KeyMsg{Type: tea.KeyCtrlU})
	m, cmd := m.Update(keyEnter)

	assert.Nil(t, cmd)
	assert.Equal(t, tui.StateEditExecutableName, app(m).State())
	assert.Contains(t, m.View(), "cannot be empty")

	m = typeText(m, "arma3_x64")
	m, cmd = m.Update(keyEnter)
	m = feed(t, m, cmd)

	assert.Equal(t, tui.StateMainList, app(m).State())
	assert.Equal(t, "arma3_x64", s.cfg.ExecutableName)
}

func TestDependencyReview(t *testing.T) {
	s := newSession(t, 3)
	lookup := &fakeLookup{deps: map[string][]domain.Dependency{
		"1001": {
			{ID: "1002", Name: "Mod 2"},
			{ID: "9999", Name: "Not Installed"},
		},
	}}
	var m tea.Model = s.app(t, tui.Options{Lookup: lookup})

	m, cmd := m.Update(runes("c"))
	require.Equal(t, tui.StateDependencyReview, app(m).State())
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Loading")

	m = feed(t, m, cmd)
	view := m.View()
	assert.Contains(t, view, "Not Installed")
	assert.Contains(t, view, "1 missing, 1 disabled, 0 enabled")

	m, cmd = m.Update(runes("a"))
	m = feed(t, m, cmd)
	assert.Equal(t, "Enabled 1 dependencies", app(m).Status())
	assert.Equal(t, []string{"1002"}, app(m).Manager().EnabledIDs())
	assert.Contains(t, m.View(), "1 missing, 0 disabled, 1 enabled")
	assert.NoFileExists(t, s.configPath, "enabling dependencies is not persisted")

	m, cmd = m.Update(keyEsc)
	m = feed(t, m, cmd)
	assert.Equal(t, tui.StateMainList, app(m).State())
}

func TestDependencyReview_LookupError(t *testing.T) {
	s := newSession(t, 1)
	lookup := &fakeLookup{err: domain.ErrNetwork}
	var m tea.Model = s.app(t, tui.Options{Lookup: lookup})

	m, cmd := m.Update(runes("c"))
	m = feed(t, m, cmd)

	assert.Equal(t, tui.StateDependencyReview, app(m).State())
	assert.Contains(t, app(m).Status(), "network")
	assert.Contains(t, m.View(), "Error")
}

func TestDependencyReview_RefusesCustomAndCDLC(t *testing.T) {
	s := newSession(t, 0)
	writeMod(t, s.custom, "@local", "Local Mod")
	require.NoError(t, os.MkdirAll(filepath.Join(s.game, "GM"), 0755))
	lookup := &fakeLookup{}
	var m tea.Model = s.app(t, tui.Options{Lookup: lookup})
	require.Equal(t, 2, app(m).Manager().Mods().Len())

	for row := 0; row < 2; row++ {
		m = press(m, runes("c"))
		assert.Equal(t, tui.StateMainList, app(m).State())
		assert.Contains(t, app(m).Status(), "no Workshop", "row %d", row)
		m = press(m, keyDown)
	}
}

func TestDependencyReview_StaleResultIgnored(t *testing.T) {
	s := newSession(t, 1)
	var m tea.Model = s.app(t, tui.Options{Lookup: &fakeLookup{}})

	m, _ = m.Update(tui.DependenciesFetchedMsg{ModID: "1001", Err: errors.New("late")})
	assert.Equal(t, tui.StateMainList, app(m).State())
	assert.Empty(t, app(m).Status())
}

func TestPresets_CreateAndSwitch(t *testing.T) {
	s := newSession(t, 3)
	var m tea.Model = s.app(t, tui.Options{})

	m = press(m, keySpace, runes("o"))
	require.Equal(t, tui.StatePresets, app(m).State())

	m = press(m, runes("n"))
	m = typeText(m, "Zeus")
	m, cmd := m.Update(keyEnter)
	m = feed(t, m, cmd)

	mods, ok := s.cfg.PresetMods("Zeus")
	require.True(t, ok)
	assert.Equal(t, []string{"1001"}, mods)
	assert.Equal(t, tui.StatePresets, app(m).State())
	assert.Contains(t, m.View(), "Zeus")

	m, cmd = m.Update(keyEnter)
	m = feed(t, m, cmd)

	assert.Equal(t, tui.StateMainList, app(m).State())
	assert.Equal(t, "Zeus", s.cfg.ActivePreset)
	assert.Equal(t, []string{"1001"}, app(m).Manager().EnabledIDs())

	saved, err := config.Load(s.configPath)
	require.NoError(t, err)
	assert.Equal(t, "Zeus", saved.ActivePreset)
}

func TestPresets_RenameAndDelete(t *testing.T) {
	s := newSession(t, 1)
	s.cfg.SavePreset("Liberation", []string{"1001"})
	var m tea.Model = s.app(t, tui.Options{})

	m = press(m, runes("o"), keyDown, runes("r"))
	m = press(m, tea.KeyMsg{Type: tea.KeyCtrlU})
	m = typeText(m, "Antistasi")
	m, cmd := m.Update(keyEnter)
	m = feed(t, m, cmd)

	assert.Equal(t, []string{"Antistasi", "Default"}, s.cfg.PresetNames())

	// The renamed preset stays selected
	m, cmd = m.Update(runes("d"))
	m = feed(t, m, cmd)
	assert.Equal(t, []string{"Default"}, s.cfg.PresetNames())
	assert.Equal(t, `Deleted preset "Antistasi"`, app(m).Status())

	m, cmd = m.Update(runes("d"))
	m = feed(t, m, cmd)
	assert.Equal(t, []string{"Default"}, s.cfg.PresetNames())
	assert.Contains(t, app(m).Status(), "only preset")
}

func TestPresets_SaveSelection(t *testing.T) {
	s := newSession(t, 2)
	var m tea.Model = s.app(t, tui.Options{})

	m = press(m, tea.KeyMsg{Type: tea.KeyCtrlAt}, runes("o"))
	m, cmd := m.Update(runes("s"))
	m = feed(t, m, cmd)

	assert.Equal(t, []string{"1001", "1002"}, s.cfg.EnabledMods())
	assert.Contains(t, m.View(), "(2 mods)")

	m, cmd = m.Update(keyEsc)
	m = feed(t, m, cmd)
	assert.Equal(t, tui.StateMainList, app(m).State())
}

func TestLaunch(t *testing.T) {
	s := newSession(t, 2)
	require.NoError(t, os.WriteFile(filepath.Join(s.game, "arma3"), []byte("#!/bin/sh\n"), 0755))
	var m tea.Model = s.app(t, tui.Options{})

	m, cmd := m.Update(keySpace)
	m, cmd = m.Update(runes("p"))
	require.NotNil(t, cmd)

	target, err := os.Readlink(filepath.Join(s.game, "1001"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.workshop, "1001"), target)
	assert.Equal(t, []string{"1001"}, s.cfg.EnabledMods())
	assert.Equal(t, "Launched arma3 with 1 mods", app(m).Status())

	plan := &core.LaunchPlan{Executable: filepath.Join(s.game, "arma3"), ModIDs: []string{"1001"}}
	m, _ = m.Update(tui.LaunchFinishedMsg{Plan: plan})

	require.Len(t, s.history.launches, 1)
	assert.Equal(t, "Default", s.history.launches[0].Preset)
	assert.Equal(t, []string{"1001"}, s.history.launches[0].ModIDs)
	assert.Equal(t, "Game exited", app(m).Status())
}

func TestLaunch_MissingExecutable(t *testing.T) {
	s := newSession(t, 1)
	var m tea.Model = s.app(t, tui.Options{})

	m, cmd := m.Update(runes("p"))

	assert.Nil(t, cmd)
	assert.Contains(t, app(m).Status(), "executable not found")
	assert.Equal(t, tui.StateMainList, app(m).State())
}

func TestLaunch_StartFailureNotRecorded(t *testing.T) {
	s := newSession(t, 1)
	var m tea.Model = s.app(t, tui.Options{})

	m, _ = m.Update(tui.LaunchFinishedMsg{Plan: &core.LaunchPlan{}, Err: errors.New("permission denied")})

	assert.Empty(t, s.history.launches)
	assert.Contains(t, app(m).Status(), "permission denied")
}

func TestApp_Quit(t *testing.T) {
	s := newSession(t, 1)
	a := s.app(t, tui.Options{})

	for _, k := range []tea.KeyMsg{runes("q"), keyEsc, {Type: tea.KeyCtrlC}} {
		_, cmd := a.Update(k)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "setup", tui.StateSetupWizard.String())
	assert.Equal(t, "presets", tui.StatePresets.String())
	assert.Equal(t, "unknown", tui.State(99).String())
}

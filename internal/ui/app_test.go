package ui

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tempohq/daybrief/internal/prefs"
	"github.com/tempohq/daybrief/internal/state"
	"github.com/tempohq/daybrief/internal/tempo"
)

// runCmd executes a command, expanding batches, and returns every message
// produced.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, sub := range batch {
			out = append(out, runCmd(sub)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func keyMsg(s string) tea.KeyMsg {
	if s == "tab" {
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testModel(t *testing.T) Model {
	t.Helper()
	var loaded []string
	return testModelWithLoad(t, &loaded)
}

func testModelWithLoad(t *testing.T, loaded *[]string) Model {
	t.Helper()
	m := New(Options{
		Context: context.Background(),
		Store:   &state.Store{},
		Load: func(_ context.Context, date string) error {
			*loaded = append(*loaded, date)
			return nil
		},
		Date:      state.NewSelectedDate("2026-08-30"),
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	})
	m.ready = true
	m.width = 120
	return m
}

func TestNextDayKeyShiftsDateAndLoads(t *testing.T) {
	var loaded []string
	m := testModelWithLoad(t, &loaded)

	next, cmd := m.Update(keyMsg("]"))
	m = next.(Model)
	if got := m.date.Get(); got != "2026-08-31" {
		t.Fatalf("date after ] = %q, want 2026-08-31", got)
	}
	if !m.loading {
		t.Fatalf("expected loading flag after date change")
	}
	if cmd == nil {
		t.Fatalf("expected a load command")
	}
	if msgs := runCmd(cmd); len(msgs) == 0 {
		t.Fatalf("load command produced no messages")
	}
	if len(loaded) != 1 || loaded[0] != "2026-08-31" {
		t.Fatalf("loaded dates = %v, want [2026-08-31]", loaded)
	}
}

func TestPrevDayKeyShiftsDateBack(t *testing.T) {
	var loaded []string
	m := testModelWithLoad(t, &loaded)

	next, cmd := m.Update(keyMsg("["))
	m = next.(Model)
	if got := m.date.Get(); got != "2026-08-29" {
		t.Fatalf("date after [ = %q, want 2026-08-29", got)
	}
	if cmd == nil {
		t.Fatalf("expected a load command")
	}
}

func TestRefreshKeepsDate(t *testing.T) {
	var loaded []string
	m := testModelWithLoad(t, &loaded)

	next, cmd := m.Update(keyMsg("r"))
	m = next.(Model)
	if got := m.date.Get(); got != "2026-08-30" {
		t.Fatalf("date after r = %q, want unchanged", got)
	}
	if cmd == nil {
		t.Fatalf("expected a load command")
	}
	runCmd(cmd)
	if len(loaded) != 1 || loaded[0] != "2026-08-30" {
		t.Fatalf("loaded dates = %v, want [2026-08-30]", loaded)
	}
}

func TestTabCyclesViews(t *testing.T) {
	m := testModel(t)
	if m.currentView != ViewBriefing {
		t.Fatalf("start view = %v, want ViewBriefing", m.currentView)
	}

	for i, want := range []View{ViewTimeline, ViewTasks, ViewHealth, ViewWeek, ViewBriefing} {
		next, _ := m.Update(keyMsg("tab"))
		m = next.(Model)
		if m.currentView != want {
			t.Fatalf("view after %d tabs = %v, want %v", i+1, m.currentView, want)
		}
	}
}

func TestThemeCyclePersistsPrefs(t *testing.T) {
	m := testModel(t)

	next, _ := m.Update(keyMsg("T"))
	m = next.(Model)
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme after T = %q, want Kanagawa", m.theme.Name)
	}

	saved := prefs.Load(m.prefsPath)
	if saved.Theme != "Kanagawa" {
		t.Fatalf("persisted theme = %q, want Kanagawa", saved.Theme)
	}
}

func TestSnapshotMsgClampsSelection(t *testing.T) {
	m := testModel(t)
	m.currentView = ViewTasks
	m.selectedRow = 5

	snap := state.DaySnapshot{
		Date:  "2026-08-30",
		Tasks: []tempo.Task{{ID: "t-1", Title: "one"}, {ID: "t-2", Title: "two"}},
	}
	next, _ := m.Update(snapshotMsg(snap))
	m = next.(Model)

	if m.selectedRow != 1 {
		t.Fatalf("selectedRow after snapshot = %d, want 1", m.selectedRow)
	}
	if len(m.snapshot.Tasks) != 2 {
		t.Fatalf("snapshot tasks = %d, want 2", len(m.snapshot.Tasks))
	}
}

func TestHelpOverlayTogglesAndCloses(t *testing.T) {
	m := testModel(t)

	next, _ := m.Update(keyMsg("?"))
	m = next.(Model)
	if !m.showHelp {
		t.Fatalf("expected help overlay after ?")
	}
	if out := m.View(); out == "" {
		t.Fatalf("help view rendered nothing")
	}

	next, _ = m.Update(keyMsg("x"))
	m = next.(Model)
	if m.showHelp {
		t.Fatalf("any key should close help")
	}
}

func TestViewRendersWithoutData(t *testing.T) {
	m := testModel(t)
	if out := m.View(); out == "" {
		t.Fatalf("empty-state view rendered nothing")
	}
}

// Package ui provides the Bubble Tea TUI for daybrief.
package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tempohq/daybrief/internal/prefs"
	"github.com/tempohq/daybrief/internal/state"
	"github.com/tempohq/daybrief/internal/tempo"
)

// View represents the current active view.
type View int

const (
	ViewBriefing View = iota
	ViewTimeline
	ViewTasks
	ViewHealth
	ViewWeek
)

var viewOrder = []View{ViewBriefing, ViewTimeline, ViewTasks, ViewHealth, ViewWeek}

// Name returns the view's tab label.
func (v View) Name() string {
	switch v {
	case ViewTimeline:
		return "Timeline"
	case ViewTasks:
		return "Tasks"
	case ViewHealth:
		return "Health"
	case ViewWeek:
		return "Week"
	default:
		return "Briefing"
	}
}

// Key returns the view's preference key.
func (v View) Key() string {
	return strings.ToLower(v.Name())
}

// ViewForKey resolves a preference key back to a view, defaulting to the
// briefing.
func ViewForKey(key string) View {
	for _, v := range viewOrder {
		if v.Key() == key {
			return v
		}
	}
	return ViewBriefing
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Load      func(ctx context.Context, date string) error
	Date      *state.SelectedDate
	PollTick  time.Duration
	ThemeName string
	StartView string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	load      func(ctx context.Context, date string) error
	date      *state.SelectedDate
	prefsPath string
	pollTick  time.Duration

	// UI state
	theme       Theme
	styles      Styles
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Data state
	snapshot state.DaySnapshot
	loading  bool
	spin     spinner.Model

	// Per-list selection, shared by timeline and tasks
	selectedRow int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 || pollTick > time.Second {
		// Snapshot reads are in-memory; tick at least once a second so
		// background refreshes show up promptly.
		pollTick = time.Second
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	theme := GetTheme(themeName)
	styles := theme.Styles()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styles.InfoText

	return Model{
		ctx:         ctx,
		store:       opts.Store,
		load:        opts.Load,
		date:        opts.Date,
		prefsPath:   prefsPath,
		pollTick:    pollTick,
		theme:       theme,
		styles:      styles,
		spin:        spin,
		currentView: ViewForKey(opts.StartView),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
	}
	// Fetch snapshot immediately on start
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.DaySnapshot(msg)
		m.clampSelection()
		return m, nil

	case loadDoneMsg:
		// Errors land in the store; the snapshot carries them to the view.
		m.loading = false
		if m.store != nil {
			return m, fetchSnapshotCmd(m.store)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "?":
		m.showHelp = true
		return m, nil

	case "T":
		// Cycle theme
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.styles = m.theme.Styles()
		m.spin.Style = m.styles.InfoText
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{
				Theme:       m.theme.Name,
				DefaultView: m.currentView.Key(),
			})
		}
		return m, nil

	case "tab":
		m.setView(m.nextView(1))
		return m, nil

	case "shift+tab":
		m.setView(m.nextView(-1))
		return m, nil

	case "1":
		m.setView(ViewBriefing)
		return m, nil
	case "2":
		m.setView(ViewTimeline)
		return m, nil
	case "3":
		m.setView(ViewTasks)
		return m, nil
	case "4":
		m.setView(ViewHealth)
		return m, nil
	case "5":
		m.setView(ViewWeek)
		return m, nil

	case "[", "left":
		return m.shiftDate(-1)
	case "]", "right":
		return m.shiftDate(1)
	case "t":
		return m.gotoDate(time.Now().Format("2006-01-02"))
	case "r":
		return m.refresh()

	case "j", "down":
		if m.selectedRow < m.rowCount()-1 {
			m.selectedRow++
		}
		return m, nil
	case "k", "up":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
		return m, nil
	case "g", "home":
		m.selectedRow = 0
		return m, nil
	case "G", "end":
		if n := m.rowCount(); n > 0 {
			m.selectedRow = n - 1
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) setView(v View) {
	if m.currentView != v {
		m.currentView = v
		m.selectedRow = 0
	}
}

func (m Model) nextView(step int) View {
	for i, v := range viewOrder {
		if v == m.currentView {
			return viewOrder[(i+step+len(viewOrder))%len(viewOrder)]
		}
	}
	return ViewBriefing
}

// shiftDate moves the selection by days and reloads. An unparseable current
// selection snaps back to today.
func (m Model) shiftDate(days int) (tea.Model, tea.Cmd) {
	if m.date == nil {
		return m, nil
	}
	current, ok := tempo.ParseDate(m.date.Get())
	if !ok {
		return m.gotoDate(time.Now().Format("2006-01-02"))
	}
	return m.gotoDate(current.AddDate(0, 0, days).Format("2006-01-02"))
}

func (m Model) gotoDate(date string) (tea.Model, tea.Cmd) {
	if m.date == nil || m.load == nil {
		return m, nil
	}
	m.date.Set(date)
	m.selectedRow = 0
	m.loading = true
	return m, tea.Batch(loadCmd(m.ctx, m.load, date), m.spin.Tick)
}

// refresh reloads the current date without changing it.
func (m Model) refresh() (tea.Model, tea.Cmd) {
	if m.date == nil || m.load == nil {
		return m, nil
	}
	m.loading = true
	return m, tea.Batch(loadCmd(m.ctx, m.load, m.date.Get()), m.spin.Tick)
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Fetch latest snapshot
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}

	// Schedule next tick
	cmds = append(cmds, tickCmd(m.pollTick))

	return m, tea.Batch(cmds...)
}

// rowCount is the number of selectable rows in the current view.
func (m Model) rowCount() int {
	switch m.currentView {
	case ViewTimeline:
		if m.snapshot.Timeline != nil {
			return len(m.snapshot.Timeline.Items)
		}
	case ViewTasks:
		return len(m.snapshot.Tasks)
	}
	return 0
}

func (m *Model) clampSelection() {
	if n := m.rowCount(); m.selectedRow >= n {
		if n == 0 {
			m.selectedRow = 0
		} else {
			m.selectedRow = n - 1
		}
	}
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	if !m.snapshot.HasData() {
		return m.renderEmpty()
	}
	switch m.currentView {
	case ViewTimeline:
		return m.renderTimeline()
	case ViewTasks:
		return m.renderTasks()
	case ViewHealth:
		return m.renderHealth()
	case ViewWeek:
		return m.renderWeek()
	default:
		return m.renderBriefing()
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.DaySnapshot

type loadDoneMsg struct{ err error }

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func loadCmd(ctx context.Context, load func(context.Context, string) error, date string) tea.Cmd {
	return func() tea.Msg {
		return loadDoneMsg{err: load(ctx, date)}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jswitzer/pulse/internal/prefs"
	"github.com/jswitzer/pulse/internal/report"
	"github.com/jswitzer/pulse/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewOverview View = iota
	ViewActivities
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Builder   *report.Builder
	PollTick  time.Duration
	ThemeName string
	Units     string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	builder   *report.Builder
	prefsPath string
	pollTick  time.Duration
	units     string

	// UI state
	theme       Theme
	styles      Styles
	keys        keyMap
	spinner     spinner.Model
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Data state
	snapshot    state.Snapshot
	lastUpdated time.Time

	// Date browsing state. viewDate empty means "track the store".
	viewDate string
	dayCache map[string]*report.Snapshot
	fetching bool
	dayErr   error

	// Activity list state
	selectedRow int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = time.Second
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	units := opts.Units
	if units != "statute" {
		units = "metric"
	}

	theme := GetTheme(themeName)
	spin := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))),
	)
	return Model{
		ctx:         ctx,
		store:       opts.Store,
		builder:     opts.Builder,
		prefsPath:   prefsPath,
		pollTick:    pollTick,
		units:       units,
		theme:       theme,
		styles:      theme.Styles(),
		keys:        DefaultKeyMap(),
		spinner:     spin,
		currentView: ViewOverview,
		dayCache:    make(map[string]*report.Snapshot),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
		m.spinner.Tick,
	}
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
		m.snapshot = state.Snapshot(msg)
		m.lastUpdated = time.Now()
		m.clampSelection()
		return m, nil

	case daySnapshotMsg:
		m.fetching = false
		m.dayErr = nil
		m.dayCache[msg.date] = msg.snapshot
		return m, nil

	case dayErrorMsg:
		m.fetching = false
		m.dayErr = msg.err
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
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

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.styles = m.theme.Styles()
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, Units: m.units})
		}
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		if m.currentView == ViewOverview {
			m.currentView = ViewActivities
		} else {
			m.currentView = ViewOverview
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevDay):
		return m.shiftDay(-1)

	case key.Matches(msg, m.keys.NextDay):
		return m.shiftDay(1)

	case key.Matches(msg, m.keys.Today):
		m.viewDate = ""
		m.dayErr = nil
		return m, nil
	}

	if m.currentView == ViewActivities {
		return m.handleActivityKey(msg)
	}
	return m, nil
}

func (m Model) handleActivityKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.selectedRow--
	case key.Matches(msg, m.keys.Down):
		m.selectedRow++
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = len(m.snapshot.Activities) - 1
	}
	m.clampSelection()
	return m, nil
}

func (m *Model) clampSelection() {
	if m.selectedRow >= len(m.snapshot.Activities) {
		m.selectedRow = len(m.snapshot.Activities) - 1
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
}

// shiftDay moves the viewed date by delta days, fetching the day's report if
// it is not already cached. Moving past the store's current date snaps back
// to tracking the store.
func (m Model) shiftDay(delta int) (tea.Model, tea.Cmd) {
	current := m.currentDate()
	day, err := time.Parse("2006-01-02", current)
	if err != nil {
		return m, nil
	}
	target := day.AddDate(0, 0, delta).Format("2006-01-02")

	if target >= m.storeDate() {
		m.viewDate = ""
		m.dayErr = nil
		return m, nil
	}

	m.viewDate = target
	m.dayErr = nil
	if _, ok := m.dayCache[target]; ok || m.builder == nil {
		return m, nil
	}
	m.fetching = true
	return m, fetchDayCmd(m.ctx, m.builder, target)
}

// currentDate is the date the dashboard is showing.
func (m Model) currentDate() string {
	if m.viewDate != "" {
		return m.viewDate
	}
	return m.storeDate()
}

func (m Model) storeDate() string {
	if m.snapshot.Date != "" {
		return m.snapshot.Date
	}
	return time.Now().Format("2006-01-02")
}

// health returns the report for the viewed date, nil while loading.
func (m Model) health() *report.Snapshot {
	if m.viewDate != "" {
		return m.dayCache[m.viewDate]
	}
	return m.snapshot.Health
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type daySnapshotMsg struct {
	date     string
	snapshot *report.Snapshot
}

type dayErrorMsg struct {
	err error
}

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

func fetchDayCmd(ctx context.Context, builder *report.Builder, date string) tea.Cmd {
	return func() tea.Msg {
		snap, err := builder.Snapshot(ctx, date)
		if err != nil {
			return dayErrorMsg{err: err}
		}
		return daySnapshotMsg{date: date, snapshot: snap}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

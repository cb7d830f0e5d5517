package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/cpumon/internal/config"
	apperrors "github.com/agbru/cpumon/internal/errors"
	"github.com/agbru/cpumon/internal/metrics"
)

// displayRefreshRate is how often the dashboard redraws. Samples arrive at
// the monitor interval; the chart ignores repeats.
const displayRefreshRate = 500 * time.Millisecond

// Layout constants for the dashboard.
const (
	headerHeight       = 1
	footerHeight       = 1
	minBodyHeight      = 8
	MetricsPanelHeight = 5 // title + 2 rows + borders
)

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

// bodyHeight returns the height available between header and footer.
func (l LayoutManager) bodyHeight() int {
	return max(l.height-headerHeight-footerHeight, minBodyHeight)
}

// chartHeight returns the height of the system panel.
func (l LayoutManager) chartHeight() int {
	return l.bodyHeight() - MetricsPanelHeight
}

// Model is the root bubbletea model for the dashboard.
type Model struct {
	header  HeaderModel
	metrics MetricsModel
	chart   ChartModel
	footer  FooterModel

	keymap KeyMap

	LayoutManager

	ctx      context.Context
	cancel   context.CancelFunc
	source   metrics.Snapshotter
	runtime  *metrics.RuntimeCollector
	config   config.AppConfig
	paused   bool
	exitCode int
}

// NewModel creates a dashboard that reads from source.
func NewModel(parentCtx context.Context, source metrics.Snapshotter, cfg config.AppConfig, version string) Model {
	ctx, cancel := context.WithCancel(parentCtx)
	keys := DefaultKeyMap()
	return Model{
		header:   NewHeaderModel(version, cfg.Interval),
		metrics:  NewMetricsModel(),
		chart:    NewChartModel(cfg.Threshold),
		footer:   NewFooterModel(keys),
		keymap:   keys,
		ctx:      ctx,
		cancel:   cancel,
		source:   source,
		runtime:  metrics.NewRuntimeCollector(),
		config:   cfg,
		exitCode: apperrors.ExitSuccess,
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		snapshotCmd(m.source),
		runtimeCmd(m.runtime),
		tickCmd(),
		watchContextCmd(m.ctx),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case TickMsg:
		m.header.SetNow(time.Time(msg))
		if m.paused {
			return m, tickCmd()
		}
		return m, tea.Batch(snapshotCmd(m.source), runtimeCmd(m.runtime), tickCmd())

	case SnapshotMsg:
		if !m.paused {
			m.chart.AddHistory(msg.History)
		}
		return m, nil

	case RuntimeMsg:
		m.metrics.UpdateRuntime(msg)
		return m, nil

	case ContextCancelledMsg:
		m.exitCode = m.finalExitCode()
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.cancel()
		m.exitCode = m.finalExitCode()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		m.footer.SetPaused(m.paused)
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		m.chart.Reset()
		return m, nil

	case key.Matches(msg, m.keymap.Help):
		m.footer.ToggleHelp()
		return m, nil
	}

	return m, nil
}

// finalExitCode maps the last history to an exit code.
func (m Model) finalExitCode() int {
	if m.config.FailOnOverload && m.chart.Overloaded() {
		return apperrors.ExitOverloaded
	}
	return apperrors.ExitSuccess
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		m.chart.View(),
		m.metrics.View(),
		m.footer.View(),
	)
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.chart.SetSize(m.width, m.chartHeight())
	m.metrics.SetSize(m.width, MetricsPanelHeight)
}

// Run is the public entry point for the dashboard mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, source metrics.Snapshotter, cfg config.AppConfig, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, source, cfg, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// tickCmd schedules the next redraw.
func tickCmd() tea.Cmd {
	return tea.Tick(displayRefreshRate, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// snapshotCmd reads the monitor history.
func snapshotCmd(source metrics.Snapshotter) tea.Cmd {
	return func() tea.Msg {
		return SnapshotMsg{History: source.Snapshot()}
	}
}

// runtimeCmd reads the process runtime statistics.
func runtimeCmd(rc *metrics.RuntimeCollector) tea.Cmd {
	return func() tea.Msg {
		return RuntimeMsg(rc.Snapshot())
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}

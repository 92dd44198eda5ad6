// Package tui is the terminal front end: a knob, its value gauge and a trace
// of recent values.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alkime/knob/internal/tui/components/knob"
	"github.com/alkime/knob/internal/tui/components/trace"
	"github.com/alkime/knob/internal/tui/style"
	core "github.com/alkime/knob/pkg/knob"
	"github.com/alkime/knob/pkg/uictl"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultRows = 10
	traceRows   = 3

	// The knob is drawn inside a Panel below the title line and a blank
	// line: one border row and one border column plus one padding column.
	knobX = 2
	knobY = 3
)

// Syncer receives the knob state after every update.
type Syncer interface {
	Sync(core.Snapshot)
}

// Config configures the application model.
type Config struct {
	Cancel context.CancelFunc

	Knob  core.Config
	Value float64

	// Rows is the knob height in terminal rows. The knob is twice as many
	// columns wide.
	Rows int

	// Observer receives the knob's value changes and transitions.
	Observer core.Observer
	Sync     Syncer
	History  uictl.Levels[float64]
	Logger   *slog.Logger
}

type model struct {
	config   Config
	keys     KeyMap
	knob     knob.Model
	progress progress.Model
	trace    trace.Model
	help     help.Model
	err      error
}

// New creates the application model.
func New(config Config) (tea.Model, error) {
	if config.Rows <= 0 {
		config.Rows = defaultRows
	}

	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	rows := config.Rows
	cols := rows * 2

	opts := []knob.Option{
		knob.WithValue(config.Value),
		knob.WithLogger(config.Logger),
	}
	if config.Observer != nil {
		opts = append(opts, knob.WithObserver(config.Observer))
	}

	k, err := knob.New(config.Knob, cols, rows, opts...)
	if err != nil {
		return nil, err
	}

	k = k.SetOrigin(knobX, knobY)

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(cols+2),
		progress.WithoutPercentage(),
	)

	m := &model{
		config:   config,
		keys:     DefaultKeyMap(),
		knob:     k,
		progress: p,
		trace:    trace.New(config.History, k.Dial(), cols+2, traceRows),
		help:     help.New(),
	}
	m.sync()

	return m, nil
}

// Init returns the initial command.
func (m *model) Init() tea.Cmd {
	return tea.Batch(m.knob.Init(), m.trace.Init())
}

// Update handles all messages.
func (m *model) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := teaMsg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.ForceQuit), key.Matches(msg, m.keys.Quit):
			if m.config.Cancel != nil {
				m.config.Cancel()
			}

			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll

			return m, nil
		}

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case knob.ConfigErrorMsg:
		m.err = msg.Err
		m.config.Logger.Warn("Rejected knob configuration", "error", msg.Err)

		return m, nil

	case knob.ValueChangedMsg:
		m.err = nil
		m.config.Logger.Debug("Knob value changed", "old", msg.Old, "new", msg.New)

		return m, nil

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model) //nolint:forcetypeassert // bubbles library contract

		return m, cmd

	case trace.TickMsg:
		var cmd tea.Cmd
		m.trace, cmd = m.trace.Update(msg)

		return m, cmd
	}

	var cmd tea.Cmd
	m.knob, cmd = m.knob.Update(teaMsg)
	cmds = append(cmds, cmd)

	m.sync()

	return m, tea.Batch(cmds...)
}

func (m *model) sync() {
	if m.config.Sync != nil {
		m.config.Sync.Sync(m.knob.Snapshot())
	}
}

// View renders the current UI.
func (m *model) View() string {
	var sb strings.Builder

	snap := m.knob.Snapshot()

	sb.WriteString(style.Title.Render("Knob"))
	sb.WriteString(" ")
	sb.WriteString(style.Subtitle.Render(describe(snap)))
	sb.WriteString("\n\n")

	sb.WriteString(style.Panel.Render(m.knob.View()))
	sb.WriteString("\n")

	sb.WriteString(style.Label.Render("Value: "))
	sb.WriteString(fmt.Sprintf("%.3f", snap.Value))
	sb.WriteString(style.Muted.Render(fmt.Sprintf("  [%g, %g]", snap.Min, snap.Max)))
	sb.WriteString("\n")
	sb.WriteString(m.progress.ViewAs(uictl.Fraction[float64](m.knob.Dial())))
	sb.WriteString("\n\n")

	sb.WriteString(m.trace.View())
	sb.WriteString("\n\n")

	if m.err != nil {
		sb.WriteString(style.Error.Render("Error: " + m.err.Error()))
		sb.WriteString("\n")
	}

	sb.WriteString(m.help.View(helpKeys{global: m.keys, knob: m.knob.KeyMap()}))

	return sb.String()
}

func describe(s core.Snapshot) string {
	parts := []string{s.Style.String()}

	if s.Continuous {
		parts = append(parts, "continuous")
	}

	if s.Tracking {
		parts = append(parts, "dragging")
	}

	return strings.Join(parts, " · ")
}

// Package trace provides a TUI component that plots recent knob values.
package trace

import (
	"strings"
	"time"

	"github.com/alkime/knob/internal/tui/style"
	"github.com/alkime/knob/pkg/uictl"
	tea "github.com/charmbracelet/bubbletea"
)

// Block characters for bar heights (8 levels, bottom to top).
// Index 0 = empty (space), 1-8 = increasing fill levels.
const blockChars = " ▁▂▃▄▅▆▇█"

// TickMsg triggers a trace redraw.
type TickMsg struct{}

// Scale supplies the bounds values are plotted against.
type Scale interface {
	Range() (lo, hi float64)
}

// Model draws a bar per recorded value, oldest on the left.
// When there are more values than columns only the newest are shown,
// right-aligned so the latest value is always in the last column.
type Model struct {
	levels uictl.Levels[float64]
	scale  Scale
	width  int
	height int
}

// New creates a trace width columns wide and height rows tall.
func New(levels uictl.Levels[float64], scale Scale, width, height int) Model {
	if height < 1 {
		height = 1
	}

	return Model{
		levels: levels,
		scale:  scale,
		width:  width,
		height: height,
	}
}

// SetWidth changes the number of columns.
func (m Model) SetWidth(width int) Model {
	m.width = width
	return m
}

// Init returns the initial tick command.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles tick messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return m, m.tick()
	}

	return m, nil
}

// View renders the trace.
func (m Model) View() string {
	if m.levels == nil || m.scale == nil {
		return m.renderEmpty()
	}

	values := m.levels.Read()
	if len(values) == 0 {
		return m.renderEmpty()
	}

	return m.renderBars(values)
}

// tick schedules the next redraw at ~20 FPS.
func (m Model) tick() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

func (m Model) renderBars(values []float64) string {
	levels := m.calculateLevels(values)
	runes := []rune(blockChars)

	var sb strings.Builder

	for row := 0; row < m.height; row++ {
		if row > 0 {
			sb.WriteString("\n")
		}

		var rowSB strings.Builder

		for col := 0; col < m.width; col++ {
			rowSB.WriteRune(runes[m.blockIndexForRow(levels[col], row)])
		}

		sb.WriteString(style.Progress.Render(rowSB.String()))
	}

	return sb.String()
}

// calculateLevels maps the newest values to bar levels from 0 to height*8.
// Columns with no value are -1.
func (m Model) calculateLevels(values []float64) []int {
	levels := make([]int, m.width)
	for i := range levels {
		levels[i] = -1
	}

	if len(values) > m.width {
		values = values[len(values)-m.width:]
	}

	offset := m.width - len(values)
	maxLevel := m.height * 8

	for i, v := range values {
		f := uictl.Fraction[float64](reading{value: v, scale: m.scale})

		// one eighth of a row even at the minimum so the bar is visible
		levels[offset+i] = max(1, min(int(f*float64(maxLevel)+0.5), maxLevel))
	}

	return levels
}

// blockIndexForRow returns the block character index (0-8) for a column
// level at a row. Row 0 is the top.
func (m Model) blockIndexForRow(level, row int) int {
	baseLevel := (m.height - 1 - row) * 8
	fill := level - baseLevel

	switch {
	case fill <= 0:
		return 0
	case fill >= 8:
		return 8
	default:
		return fill
	}
}

func (m Model) renderEmpty() string {
	var sb strings.Builder

	for row := 0; row < m.height; row++ {
		if row > 0 {
			sb.WriteString("\n")
		}

		fill := " "
		if row == m.height-1 {
			fill = "▁"
		}

		sb.WriteString(style.Muted.Render(strings.Repeat(fill, max(m.width, 0))))
	}

	return sb.String()
}

// reading pairs one recorded value with the current scale.
type reading struct {
	value float64
	scale Scale
}

func (r reading) Read() float64 { return r.value }

func (r reading) Range() (lo, hi float64) { return r.scale.Range() }

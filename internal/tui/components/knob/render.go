package knob

import (
	"math"
	"strings"

	"github.com/alkime/knob/internal/tui/style"
	core "github.com/alkime/knob/pkg/knob"
	"github.com/charmbracelet/lipgloss"
)

const (
	fillRune   = '●'
	trackRune  = '·'
	needleRune = '•'
	hubRune    = 'o'

	// ring band, as fractions of the radius
	ringInner = 0.72
	ringOuter = 1.0

	needleLength = 0.6
	needleWidth  = 14.0 // degrees either side of the needle

	hubRadius = 0.6 * cellHeight // points
)

// View renders the knob.
func (m Model) View() string {
	if m.cols <= 0 || m.rows <= 0 {
		return ""
	}

	styles := m.theme.For(m.state())

	var sb strings.Builder

	for row := 0; row < m.rows; row++ {
		if row > 0 {
			sb.WriteString("\n")
		}

		for col := 0; col < m.cols; col++ {
			r, s := m.glyph(col, row, styles)
			if r == ' ' {
				sb.WriteRune(r)
				continue
			}

			sb.WriteString(s.Render(string(r)))
		}
	}

	return sb.String()
}

func (m Model) state() style.KnobState {
	switch {
	case m.disabled:
		return style.KnobDisabled
	case m.tracker.Highlighted():
		return style.KnobHighlighted
	default:
		return style.KnobNormal
	}
}

// glyph picks the rune drawn at a cell relative to the knob's origin.
func (m Model) glyph(col, row int, styles style.KnobStyles) (rune, lipgloss.Style) {
	b := bounds(m.cols, m.rows)
	center := b.Center()
	radius := b.Radius()

	p := core.Point{
		X: float64(col*cellWidth + cellWidth/2),
		Y: float64(row*cellHeight + cellHeight/2),
	}

	px := math.Hypot(p.X-center.X, p.Y-center.Y)
	dist := px / radius

	if px < hubRadius {
		return hubRune, styles.Hub
	}

	bearing := core.Bearing(center, p)
	maxAngle := m.tracker.Config().MaxAngle

	switch {
	case dist >= ringInner && dist <= ringOuter:
		if math.Abs(bearing) > maxAngle {
			return ' ', styles.Track
		}

		if bearing <= m.display {
			return fillRune, styles.Fill
		}

		return trackRune, styles.Track

	case dist < needleLength && angleDiff(bearing, m.display) <= needleWidth:
		return needleRune, styles.Indicator
	}

	return ' ', styles.Track
}

// angleDiff is the absolute difference between two bearings, accounting
// for the wrap at ±180.
func angleDiff(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}

	return d
}

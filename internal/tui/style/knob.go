package style

import "github.com/charmbracelet/lipgloss"

// KnobState selects how the knob is drawn.
type KnobState int

const (
	KnobNormal KnobState = iota
	KnobHighlighted
	KnobDisabled
)

// KnobStyles are the styles for the parts of a knob drawing.
type KnobStyles struct {
	Track     lipgloss.Style // unfilled part of the arc
	Fill      lipgloss.Style // arc from the minimum to the current angle
	Indicator lipgloss.Style
	Hub       lipgloss.Style
}

// KnobTheme maps states to styles. A state without an entry is drawn with
// the KnobNormal entry.
type KnobTheme map[KnobState]KnobStyles

// For returns the styles for state.
func (t KnobTheme) For(state KnobState) KnobStyles {
	if s, ok := t[state]; ok {
		return s
	}

	return t[KnobNormal]
}

// DefaultKnobTheme returns the built-in knob theme.
func DefaultKnobTheme() KnobTheme {
	normal := KnobStyles{
		Track:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Fill:      lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
		Indicator: lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Hub:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}

	highlighted := normal
	highlighted.Fill = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	highlighted.Indicator = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	return KnobTheme{
		KnobNormal:      normal,
		KnobHighlighted: highlighted,
		KnobDisabled: {
			Track:     muted,
			Fill:      muted,
			Indicator: muted,
			Hub:       muted,
		},
	}
}

package knob

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the knob.
type KeyMap struct {
	Increase         key.Binding
	Decrease         key.Binding
	Reset            key.Binding
	CycleStyle       key.Binding
	ToggleContinuous key.Binding
	Cancel           key.Binding
}

// DefaultKeyMap returns the default key bindings for the knob.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Increase: key.NewBinding(
			key.WithKeys("right", "up", "l", "k", "+"),
			key.WithHelp("→/↑", "increase"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("left", "down", "h", "j", "-"),
			key.WithHelp("←/↓", "decrease"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		CycleStyle: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "style"),
		),
		ToggleContinuous: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "continuous"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel drag"),
		),
	}
}

// ShortHelp returns the short help bindings for the knob.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Increase, k.Decrease, k.Reset, k.CycleStyle}
}

// FullHelp returns the full help bindings for the knob.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Increase, k.Decrease, k.Reset},
		{k.CycleStyle, k.ToggleContinuous, k.Cancel},
	}
}

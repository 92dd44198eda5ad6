package tui

import (
	"github.com/alkime/knob/internal/tui/components/knob"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the application-wide key bindings.
type KeyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding
}

// DefaultKeyMap returns the default application key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
	}
}

// helpKeys merges the knob bindings with the global ones for the help view.
type helpKeys struct {
	global KeyMap
	knob   knob.KeyMap
}

func (h helpKeys) ShortHelp() []key.Binding {
	return append(h.knob.ShortHelp(), h.global.Help, h.global.Quit)
}

func (h helpKeys) FullHelp() [][]key.Binding {
	return append(h.knob.FullHelp(), []key.Binding{h.global.Help, h.global.Quit, h.global.ForceQuit})
}

package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines key bindings for the status screen.
type KeyMap struct {
	Toggle      key.Binding
	ToggleSpace key.Binding
	ToggleHelp  key.Binding
	Quit        key.Binding
}

// DefaultKeys returns the default key bindings. The space shortcut is only
// live when shortcut is true.
func DefaultKeys(shortcut bool) KeyMap {
	k := KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start/stop"),
		),
		ToggleSpace: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "start/stop"),
		),
		ToggleHelp: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
	k.ToggleSpace.SetEnabled(shortcut)
	return k
}

// NewHelpModel returns a configured help model.
func NewHelpModel() help.Model {
	h := help.New()
	h.ShortSeparator = " • "
	return h
}

// stateKeyMap labels the toggle bindings for the coordinator's current state.
type stateKeyMap struct {
	keys   KeyMap
	active bool
}

// ForState returns a contextual key map implementing help.KeyMap.
func (k KeyMap) ForState(active bool) help.KeyMap {
	verb := "start"
	if active {
		verb = "stop"
	}
	k.Toggle.SetHelp("enter", verb)
	k.ToggleSpace.SetHelp("space", verb)
	return stateKeyMap{keys: k, active: active}
}

// ShortHelp implements help.KeyMap.
func (s stateKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{s.keys.Toggle, s.keys.ToggleSpace, s.keys.ToggleHelp, s.keys.Quit}
}

// FullHelp implements help.KeyMap.
func (s stateKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{s.keys.Toggle, s.keys.ToggleSpace},
		{s.keys.ToggleHelp, s.keys.Quit},
	}
}

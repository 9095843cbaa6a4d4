package tui

import "github.com/charmbracelet/bubbles/key"

// Letters are never bound: every printable key belongs to the input.
type keyMap struct {
	Search     key.Binding
	AirQuality key.Binding
	Dismiss    key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Search:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		AirQuality: key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "air quality")),
		Dismiss:    key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter", "ok")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.AirQuality, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Search, k.AirQuality, k.Quit}}
}

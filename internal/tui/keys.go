package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines key bindings used across the TUI.
type KeyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Quit     key.Binding

	// Dashboard controls
	CycleMarket    key.Binding
	CycleTimeframe key.Binding
	Generate       key.Binding
	EditSymbol     key.Binding

	// Log view
	Export key.Binding
}

// DefaultKeyMap provides the default key bindings for the TUI.
var DefaultKeyMap = KeyMap{
	Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
	ShiftTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

	CycleMarket:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "cycle market")),
	CycleTimeframe: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "cycle timeframe")),
	Generate:       key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "generate signal")),
	EditSymbol:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "edit forex symbol")),

	Export: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "download log")),
}

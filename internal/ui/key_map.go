package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	focus     key.Binding
	translate key.Binding
	cancel    key.Binding
	reset     key.Binding
	language  key.Binding
	preview   key.Binding
	swap      key.Binding
	export    key.Binding
	enter     key.Binding
	back      key.Binding
	quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		focus:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch field")),
		translate: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "translate")),
		cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		reset:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset")),
		language:  key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "language")),
		preview:   key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "merge")),
		swap:      key.NewBinding(key.WithKeys("s", "ctrl+s"), key.WithHelp("s", "swap")),
		export:    key.NewBinding(key.WithKeys("e", "ctrl+e"), key.WithHelp("e", "export")),
		enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.focus, k.translate, k.cancel, k.reset},
		{k.language, k.preview, k.swap, k.export},
		{k.enter, k.back, k.quit},
	}
}

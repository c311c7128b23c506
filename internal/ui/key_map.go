package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	filter  key.Binding
	choose  key.Binding
	confirm key.Binding
	cancel  key.Binding
	restart key.Binding
	quit    key.Binding
}

func binding(help string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(keys[0], help))
}

func newKeyMap() keyMap {
	return keyMap{
		filter:  binding("filter", "/"),
		choose:  binding("choose playlist", "enter"),
		confirm: binding("add songs", "y"),
		cancel:  binding("cancel", "n", "esc"),
		restart: binding("start over", "r"),
		quit:    binding("quit", "q", "ctrl+c"),
	}
}

// forView returns the bindings shown in the help line of view v.
func (k keyMap) forView(v ViewState) []key.Binding {
	switch v {
	case PlaylistListView:
		return []key.Binding{k.choose, k.filter, k.quit}
	case ConfirmView:
		return []key.Binding{k.confirm, k.cancel, k.quit}
	case ResultView:
		return []key.Binding{k.restart, k.quit}
	default:
		return []key.Binding{k.quit}
	}
}

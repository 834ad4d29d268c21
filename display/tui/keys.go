package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings for the TUI application.
type keyMap struct {
	Quit       key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	Tab1       key.Binding
	Tab2       key.Binding
	Tab3       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	SortCPU    key.Binding
	SortMemory key.Binding
	Kill       key.Binding
}

// ShortHelp returns the compact set of keybindings shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.ScrollDown, k.Quit}
}

// FullHelp returns the expanded keybinding groups.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Tab1, k.Tab2, k.Tab3},
		{k.ScrollUp, k.ScrollDown, k.PageUp, k.PageDown},
		{k.SortCPU, k.SortMemory, k.Kill, k.Quit},
	}
}

// keys holds the default key bindings used by the application. Sort
// and kill bindings only act on the Processes tab.
var keys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	NextTab:    key.NewBinding(key.WithKeys("tab", "right"), key.WithHelp("tab", "next tab")),
	PrevTab:    key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("shift+tab", "prev tab")),
	Tab1:       key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "overview")),
	Tab2:       key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "processes")),
	Tab3:       key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "logs")),
	ScrollUp:   key.NewBinding(key.WithKeys("up"), key.WithHelp("up", "scroll up")),
	ScrollDown: key.NewBinding(key.WithKeys("down"), key.WithHelp("down", "scroll down")),
	PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
	PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
	SortCPU:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "sort by cpu")),
	SortMemory: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "sort by memory")),
	Kill:       key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "kill selected")),
}

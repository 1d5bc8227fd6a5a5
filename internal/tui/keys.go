package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the table view bindings.
type KeyMap struct {
	Next        key.Binding
	Previous    key.Binding
	First       key.Binding
	Last        key.Binding
	Larger      key.Binding
	Smaller     key.Binding
	Filter      key.Binding
	NextColumn  key.Binding
	PrevColumn  key.Binding
	Commit      key.Binding
	Cancel      key.Binding
	ClearFilter key.Binding
	Narrower    key.Binding
	Wider       key.Binding
	Reload      key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next:        key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n/→", "next page")),
		Previous:    key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("p/←", "prev page")),
		First:       key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first")),
		Last:        key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last")),
		Larger:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "bigger pages")),
		Smaller:     key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "smaller pages")),
		Filter:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter column")),
		NextColumn:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next column")),
		PrevColumn:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev column")),
		Commit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		ClearFilter: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear filters")),
		Narrower:    key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "narrow column")),
		Wider:       key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "widen column")),
		Reload:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Previous, k.Filter, k.Commit, k.Reload, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Previous, k.First, k.Last},
		{k.Larger, k.Smaller, k.Reload},
		{k.Filter, k.NextColumn, k.PrevColumn, k.Commit, k.ClearFilter},
		{k.Narrower, k.Wider, k.Cancel, k.Help, k.Quit},
	}
}

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Tab      key.Binding
	Use      key.Binding
	Delete   key.Binding
	Category key.Binding
	Location key.Binding
	Expiry   key.Binding
	Sort     key.Binding
	Refresh  key.Binding
	Yes      key.Binding
	No       key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "move up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "move down")),
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "pantry/scores")),
		Use:      key.NewBinding(key.WithKeys("u", " "), key.WithHelp("u", "use one")),
		Delete:   key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
		Category: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category")),
		Location: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "location")),
		Expiry:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "expiring/expired")),
		Sort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Yes:      key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
		No:       key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "no")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) pantryHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Use, k.Delete, k.Category, k.Location, k.Expiry, k.Sort, k.Tab, k.Refresh, k.Quit}
}

func (k keyMap) scoresHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Delete, k.Tab, k.Refresh, k.Quit}
}

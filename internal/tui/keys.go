package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit    key.Binding
	Draw    key.Binding
	Edit    key.Binding
	View    key.Binding
	Press   key.Binding
	Escape  key.Binding
	Delete  key.Binding
	ZoomIn  key.Binding
	ZoomOut key.Binding
	Fit     key.Binding
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Sidebar key.Binding
	Open    key.Binding
	Paste   key.Binding
	Attrs   key.Binding
	Inspect key.Binding
	Points  key.Binding
	Lines   key.Binding
	Polys   key.Binding
	Help    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Draw:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "draw")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		View:    key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "view")),
		Press:   key.NewBinding(key.WithKeys(" ", "space", "enter"), key.WithHelp("space/rclick", "press")),
		Escape:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Delete:  key.NewBinding(key.WithKeys("backspace", "delete"), key.WithHelp("⌫", "delete")),
		ZoomIn:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "zoom")),
		ZoomOut: key.NewBinding(key.WithKeys("-", "_")),
		Fit:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fit")),
		Up:      key.NewBinding(key.WithKeys("up"), key.WithHelp("↑↓←→", "pan")),
		Down:    key.NewBinding(key.WithKeys("down")),
		Left:    key.NewBinding(key.WithKeys("left")),
		Right:   key.NewBinding(key.WithKeys("right")),
		Sidebar: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "files")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Paste:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paste wkt")),
		Attrs:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "attrs")),
		Inspect: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "inspect")),
		Points:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1/2/3", "layers")),
		Lines:   key.NewBinding(key.WithKeys("2")),
		Polys:   key.NewBinding(key.WithKeys("3")),
		Help:    key.NewBinding(key.WithKeys("h", "?"), key.WithHelp("h", "help")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Draw, k.Edit, k.View, k.Press, k.Delete, k.Escape, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Draw, k.Edit, k.View, k.Press, k.Delete, k.Escape},
		{k.ZoomIn, k.Up, k.Fit, k.Sidebar, k.Open},
		{k.Paste, k.Attrs, k.Inspect, k.Points, k.Help, k.Quit},
	}
}

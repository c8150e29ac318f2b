package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the board key bindings. It implements help.KeyMap.
type keyMap struct {
	Left     key.Binding
	Right    key.Binding
	FarLeft  key.Binding
	FarRight key.Binding
	Up       key.Binding
	Down     key.Binding
	Add      key.Binding
	Move     key.Binding
	Delete   key.Binding
	Next     key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
	Save     key.Binding
	Coverage key.Binding
	Open     key.Binding
	Prompt   key.Binding
	Help     key.Binding
	Quit     key.Binding

	Confirm key.Binding
	Cancel  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:     key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/l", "time")),
		Right:    key.NewBinding(key.WithKeys("l", "right")),
		FarLeft:  key.NewBinding(key.WithKeys("H", "shift+left"), key.WithHelp("H/L", "jump")),
		FarRight: key.NewBinding(key.WithKeys("L", "shift+right")),
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("j/k", "slot")),
		Down:     key.NewBinding(key.WithKeys("j", "down")),
		Add:      key.NewBinding(key.WithKeys("a", "enter"), key.WithHelp("a", "add")),
		Move:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		Delete:   key.NewBinding(key.WithKeys("d", "x", "delete"), key.WithHelp("d", "delete")),
		Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		ZoomIn:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "zoom")),
		ZoomOut:  key.NewBinding(key.WithKeys("-", "_")),
		Save:     key.NewBinding(key.WithKeys("s", "ctrl+s"), key.WithHelp("s", "save")),
		Coverage: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "coverage")),
		Open:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
		Prompt:   key.NewBinding(key.WithKeys("/", ":"), key.WithHelp("/", "command")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),

		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "commit")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Move, k.Delete, k.Save, k.Coverage, k.Prompt, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the help modal.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.FarLeft, k.Up, k.Next, k.ZoomIn},
		{k.Add, k.Move, k.Delete, k.Save, k.Open},
		{k.Coverage, k.Prompt, k.Help, k.Quit},
	}
}

// placeHelp lists the bindings active while placing or moving.
type placeHelp struct{ k keyMap }

func (p placeHelp) ShortHelp() []key.Binding {
	return []key.Binding{p.k.Left, p.k.FarLeft, p.k.Confirm, p.k.Cancel}
}

func (p placeHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{p.ShortHelp()}
}

package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	FastLeft  key.Binding
	FastRight key.Binding
	Min       key.Binding
	Max       key.Binding
	Edit      key.Binding
	Reset     key.Binding
	Help      key.Binding
	Quit      key.Binding

	// view of the focused surface
	ZoomIn      key.Binding
	ZoomOut     key.Binding
	PanLeft     key.Binding
	PanRight    key.Binding
	PanUp       key.Binding
	PanDown     key.Binding
	NextPlot    key.Binding
	CursorLeft  key.Binding
	CursorRight key.Binding
	ViewReset   key.Binding

	// active while editing a value
	Submit key.Binding
	Cancel key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "shift+tab"),
			key.WithHelp("↑/k", "prev"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "tab"),
			key.WithHelp("↓/j", "next"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "decrease"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "increase"),
		),
		FastLeft: key.NewBinding(
			key.WithKeys("shift+left", "H"),
			key.WithHelp("shift+←", "-10 steps"),
		),
		FastRight: key.NewBinding(
			key.WithKeys("shift+right", "L"),
			key.WithHelp("shift+→", "+10 steps"),
		),
		Min: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home", "min"),
		),
		Max: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end", "max"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e/enter", "edit value"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "zoom out"),
		),
		PanLeft: key.NewBinding(
			key.WithKeys("ctrl+left", "a"),
			key.WithHelp("a", "pan left"),
		),
		PanRight: key.NewBinding(
			key.WithKeys("ctrl+right", "d"),
			key.WithHelp("d", "pan right"),
		),
		PanUp: key.NewBinding(
			key.WithKeys("ctrl+up", "w"),
			key.WithHelp("w", "pan up"),
		),
		PanDown: key.NewBinding(
			key.WithKeys("ctrl+down", "s"),
			key.WithHelp("s", "pan down"),
		),
		NextPlot: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "next plot"),
		),
		CursorLeft: key.NewBinding(
			key.WithKeys(",", "<"),
			key.WithHelp(",", "cursor left"),
		),
		CursorRight: key.NewBinding(
			key.WithKeys(".", ">"),
			key.WithHelp(".", "cursor right"),
		),
		ViewReset: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "reset view"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Left, k.Right, k.Edit, k.Reset, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Left, k.Right, k.FastLeft, k.FastRight},
		{k.Min, k.Max, k.Edit},
		{k.ZoomIn, k.ZoomOut, k.PanLeft, k.PanRight, k.PanUp, k.PanDown},
		{k.NextPlot, k.CursorLeft, k.CursorRight, k.ViewReset},
		{k.Reset, k.Help, k.Quit},
	}
}

// editHelp is shown while a value is being typed.
type editHelp struct{ k keyMap }

func (e editHelp) ShortHelp() []key.Binding  { return []key.Binding{e.k.Submit, e.k.Cancel} }
func (e editHelp) FullHelp() [][]key.Binding { return [][]key.Binding{e.ShortHelp()} }

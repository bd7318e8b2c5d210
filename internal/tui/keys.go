package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap covers every mouse operation with a keyboard fallback.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Indent   key.Binding
	Outdent  key.Binding

	Add      key.Binding
	AddChild key.Binding
	Edit     key.Binding
	Delete   key.Binding

	Complete key.Binding
	Schedule key.Binding
	Collapse key.Binding

	Open       key.Binding
	Back       key.Binding
	ToggleView key.Binding
	Groups     key.Binding
	Move       key.Binding

	PrevPeriod key.Binding
	NextPeriod key.Binding
	Today      key.Binding

	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
		MoveUp:   key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
		MoveDown: key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
		Indent:   key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "indent")),
		Outdent:  key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "outdent")),

		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
		AddChild: key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "add subtask")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:   key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete")),

		Complete: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "complete")),
		Schedule: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "schedule now")),
		Collapse: key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "fold")),

		Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		ToggleView: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "board/week")),
		Groups:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "groups")),
		Move:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move to group")),

		PrevPeriod: key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h", "prev week")),
		NextPeriod: key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l", "next week")),
		Today:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),

		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Complete, k.Schedule, k.ToggleView, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.MoveUp, k.MoveDown, k.Indent, k.Outdent},
		{k.Add, k.AddChild, k.Edit, k.Delete, k.Collapse},
		{k.Complete, k.Schedule, k.Open, k.Groups, k.Move},
		{k.ToggleView, k.PrevPeriod, k.NextPeriod, k.Today, k.Reload, k.Quit},
	}
}

package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	PrevPage  key.Binding
	NextPage  key.Binding
	FirstPage key.Binding
	LastPage  key.Binding
	Open      key.Binding
	Add       key.Binding
	Edit      key.Binding
	Toggle    key.Binding
	Delete    key.Binding
	PrevDay   key.Binding
	NextDay   key.Binding
	ClearDay  key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Completed key.Binding
	Calendar  key.Binding
	Layout    key.Binding
	Refresh   key.Binding
	Close     key.Binding
	Quit      key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		PrevPage:  key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("←/h", "prev page")),
		NextPage:  key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("→/l", "next page")),
		FirstPage: key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first page")),
		LastPage:  key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last page")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "preview")),
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Toggle:    key.NewBinding(key.WithKeys("x", " "), key.WithHelp("x", "done")),
		Delete:    key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete")),
		PrevDay:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev day")),
		NextDay:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next day")),
		ClearDay:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "all days")),
		PrevMonth: key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "prev month")),
		NextMonth: key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "next month")),
		Completed: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter done")),
		Calendar:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "calendar")),
		Layout:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "layout")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp lists the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PrevPage, k.NextPage, k.Open, k.Add, k.Toggle, k.PrevDay, k.NextDay, k.Quit}
}

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit    key.Binding
	Help    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Up      key.Binding
	Down    key.Binding
	Top     key.Binding
	Bottom  key.Binding

	Dec    key.Binding
	Inc    key.Binding
	DecBig key.Binding
	IncBig key.Binding
	MaxDec key.Binding
	MaxInc key.Binding

	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Toggle key.Binding

	NewScenario key.Binding
	Rename      key.Binding
	Use         key.Binding
	Ask         key.Binding
	Cancel      key.Binding
}

var keys = keyMap{
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	NextTab: key.NewBinding(key.WithKeys("tab", "right"), key.WithHelp("tab →", "next tab")),
	PrevTab: key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("⇧tab ←", "previous tab")),
	Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k ↑", "up")),
	Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j ↓", "down")),
	Top:     key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first")),
	Bottom:  key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last")),

	Dec:    key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "value -10")),
	Inc:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "value +10")),
	DecBig: key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "value -100")),
	IncBig: key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "value +100")),
	MaxDec: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "max -100")),
	MaxInc: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "max +100")),

	Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add category")),
	Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Delete: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
	Toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle active")),

	NewScenario: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new scenario")),
	Rename:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename scenario")),
	Use:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "switch / ask")),
	Ask:         key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "ask the advisor")),
	Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}

// helpSections groups bindings for the help overlay.
func (k keyMap) helpSections() []struct {
	title    string
	bindings []key.Binding
} {
	return []struct {
		title    string
		bindings []key.Binding
	}{
		{"Navigation", []key.Binding{k.NextTab, k.PrevTab, k.Up, k.Down, k.Top, k.Bottom}},
		{"Values", []key.Binding{k.Dec, k.Inc, k.DecBig, k.IncBig, k.MaxDec, k.MaxInc}},
		{"Categories", []key.Binding{k.Add, k.Edit, k.Delete, k.Toggle}},
		{"Scenarios & advisor", []key.Binding{k.NewScenario, k.Rename, k.Delete, k.Use, k.Ask}},
		{"General", []key.Binding{k.Cancel, k.Help, k.Quit}},
	}
}

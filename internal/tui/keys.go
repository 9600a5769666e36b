package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Run       key.Binding
	NewTab    key.Binding
	CloseTab  key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	Reset     key.Binding
	NextView  key.Binding
	PrevView  key.Binding
	ScrollUp  key.Binding
	ScrollDn  key.Binding
	Quit      key.Binding
	ShowLog   key.Binding
	ShowTime  key.Binding
	ShowGraph key.Binding
	ShowMap   key.Binding
	ShowLanes key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Run:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run intent")),
		NewTab:    key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new project")),
		CloseTab:  key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "close project")),
		NextTab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next project")),
		PrevTab:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev project")),
		Reset:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset")),
		NextView:  key.NewBinding(key.WithKeys("ctrl+right"), key.WithHelp("ctrl+→", "next view")),
		PrevView:  key.NewBinding(key.WithKeys("ctrl+left"), key.WithHelp("ctrl+←", "prev view")),
		ScrollUp:  key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		ScrollDn:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
		ShowLog:   key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "log")),
		ShowTime:  key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "timeline")),
		ShowGraph: key.NewBinding(key.WithKeys("f3"), key.WithHelp("f3", "graph")),
		ShowMap:   key.NewBinding(key.WithKeys("f4"), key.WithHelp("f4", "map")),
		ShowLanes: key.NewBinding(key.WithKeys("f5"), key.WithHelp("f5", "lanes")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Run, k.NewTab, k.CloseTab, k.NextTab, k.NextView, k.Reset, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Run, k.Reset},
		{k.NewTab, k.CloseTab, k.NextTab, k.PrevTab},
		{k.ShowLog, k.ShowTime, k.ShowGraph, k.ShowMap, k.ShowLanes, k.NextView, k.PrevView},
		{k.ScrollUp, k.ScrollDn, k.Quit},
	}
}

package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up        key.Binding
	down      key.Binding
	enter     key.Binding
	back      key.Binding
	like      key.Binding
	dislike   key.Binding
	subscribe key.Binding
	history   key.Binding
	playlists key.Binding
	clear     key.Binding
	quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		like:      key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "like")),
		dislike:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dislike")),
		subscribe: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "subscribe")),
		history:   key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "history")),
		playlists: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "playlists")),
		clear:     key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear history")),
		quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.like, k.dislike, k.subscribe, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.like, k.dislike, k.subscribe},
		{k.history, k.playlists, k.clear, k.quit},
	}
}

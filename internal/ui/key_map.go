package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the player.
type keyMap struct {
	playPause key.Binding
	next      key.Binding
	prev      key.Binding
	shuffle   key.Binding
	repeat    key.Binding
	screens   key.Binding
	search    key.Binding
	volume    key.Binding
	up        key.Binding
	down      key.Binding
	enter     key.Binding
	back      key.Binding
	quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		playPause: key.NewBinding(key.WithKeys(" "), key.WithHelp("espacio", "play/pause")),
		next:      key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("→/n", "siguiente")),
		prev:      key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("←/p", "anterior")),
		shuffle:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "shuffle")),
		repeat:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "repeat")),
		screens:   key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "vista")),
		search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "buscar")),
		volume:    key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "volumen")),
		up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "subir")),
		down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "bajar")),
		enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "reproducir")),
		back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancelar")),
		quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "salir")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.playPause, k.search, k.volume, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.playPause, k.next, k.prev},
		{k.shuffle, k.repeat, k.screens},
		{k.search, k.volume, k.up, k.down},
		{k.enter, k.back, k.quit},
	}
}

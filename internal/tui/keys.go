// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	up           key.Binding
	down         key.Binding
	top          key.Binding
	bottom       key.Binding
	search       key.Binding
	newEntry     key.Binding
	edit         key.Binding
	open         key.Binding
	delete       key.Binding
	copyPassword key.Binding
	copyUsername key.Binding
	command      key.Binding
	quit         key.Binding
	back         key.Binding
	lock         key.Binding
	interrupt    key.Binding

	enter     key.Binding
	tab       key.Binding
	backtab   key.Binding
	backspace key.Binding
	save      key.Binding
	generate  key.Binding
	reveal    key.Binding
}

var keys = keyMap{
	up:           key.NewBinding(key.WithKeys("up", "k")),
	down:         key.NewBinding(key.WithKeys("down", "j")),
	top:          key.NewBinding(key.WithKeys("g", "home")),
	bottom:       key.NewBinding(key.WithKeys("G", "end")),
	search:       key.NewBinding(key.WithKeys("/")),
	newEntry:     key.NewBinding(key.WithKeys("n")),
	edit:         key.NewBinding(key.WithKeys("e")),
	open:         key.NewBinding(key.WithKeys("enter")),
	delete:       key.NewBinding(key.WithKeys("d")),
	copyPassword: key.NewBinding(key.WithKeys("y")),
	copyUsername: key.NewBinding(key.WithKeys("Y")),
	command:      key.NewBinding(key.WithKeys(":")),
	quit:         key.NewBinding(key.WithKeys("q")),
	back:         key.NewBinding(key.WithKeys("esc")),
	lock:         key.NewBinding(key.WithKeys("ctrl+l")),
	interrupt:    key.NewBinding(key.WithKeys("ctrl+c")),

	enter:     key.NewBinding(key.WithKeys("enter")),
	tab:       key.NewBinding(key.WithKeys("tab")),
	backtab:   key.NewBinding(key.WithKeys("shift+tab")),
	backspace: key.NewBinding(key.WithKeys("backspace")),
	save:      key.NewBinding(key.WithKeys("ctrl+s")),
	generate:  key.NewBinding(key.WithKeys("ctrl+g")),
	reveal:    key.NewBinding(key.WithKeys("ctrl+r")),
}

// typedRunes returns the characters a key press inserts, if any.
func typedRunes(msg tea.KeyMsg) []rune {
	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace:
		return msg.Runes
	}
	return nil
}

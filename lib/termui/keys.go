// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package termui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the shell. Keys not bound here
// edit the input line.
type KeyMap struct {
	Submit   key.Binding
	Complete key.Binding

	// History navigation.
	HistoryUp   key.Binding
	HistoryDown key.Binding

	ClearScreen key.Binding
	ClearInput  key.Binding

	// Transcript scrolling.
	PageUp   key.Binding
	PageDown key.Binding

	Quit key.Binding
}

// DefaultKeyMap matches the shortcuts listed by the help command.
var DefaultKeyMap = KeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "run"),
	),
	Complete: key.NewBinding(
		key.WithKeys("tab", "ctrl+i"),
		key.WithHelp("Tab", "complete"),
	),
	HistoryUp: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous command"),
	),
	HistoryDown: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next command"),
	),
	ClearScreen: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("C-l", "clear"),
	),
	ClearInput: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("C-u", "clear input"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("PgUp", "scroll up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("PgDn", "scroll down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "quit"),
	),
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package trackerui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the atom tracker TUI. Text cells
// receive every key that is not bound here, so bindings avoid plain
// letters.
type KeyMap struct {
	// Cell navigation. Moving off a table cell commits its record.
	Up        key.Binding
	Down      key.Binding
	NextField key.Binding
	PrevField key.Binding

	// Activate a cell: open the status selector, press the add
	// button, or leave a text cell downward.
	Confirm key.Binding

	// Open the status selector or press the add button. On text cells
	// space is typed instead.
	Toggle key.Binding

	// Filter.
	FilterActivate key.Binding

	// Cancel closes the status selector or the filter. With nothing
	// open it quits.
	Cancel key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "down"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-Tab", "previous field"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "select/add"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("Space", "select"),
	),
	FilterActivate: key.NewBinding(
		key.WithKeys("ctrl+f"),
		key.WithHelp("C-f", "filter"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "close/quit"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "quit"),
	),
}

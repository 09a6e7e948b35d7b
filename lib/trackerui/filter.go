// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package trackerui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/util"

	"github.com/bureau-foundation/atomtracker/lib/atom"
)

// FilterModel narrows the visible table rows by fuzzy matching the
// query against each atom's name and developer. It selects rows for
// display only; the controller's list and its order are untouched.
type FilterModel struct {
	// Input is the current filter query text.
	Input string

	// Active is true when the filter input has keyboard focus.
	Active bool

	slab *util.Slab
}

// Matches reports whether record matches the current query. An empty
// query matches everything.
func (filter *FilterModel) Matches(record atom.Record) bool {
	if filter.Input == "" {
		return true
	}
	if filter.slab == nil {
		filter.slab = util.MakeSlab(100*1024, 2048)
	}
	pattern := []rune(filter.Input)
	if fuzzyMatch(record.Name, pattern, filter.slab).Score > 0 {
		return true
	}
	return fuzzyMatch(record.DevelopedBy, pattern, filter.slab).Score > 0
}

// Apply returns the positions in records that match, in their original
// order.
func (filter *FilterModel) Apply(records []atom.Record) []int {
	visible := make([]int, 0, len(records))
	for index, record := range records {
		if filter.Matches(record) {
			visible = append(visible, index)
		}
	}
	return visible
}

// HandleRune processes a character typed while the filter is active.
func (filter *FilterModel) HandleRune(character rune) {
	filter.Input += string(character)
}

// HandleBackspace removes the last character from the filter input.
// Returns true if the input changed.
func (filter *FilterModel) HandleBackspace() bool {
	if len(filter.Input) == 0 {
		return false
	}
	runes := []rune(filter.Input)
	filter.Input = string(runes[:len(runes)-1])
	return true
}

// Clear resets the filter input and deactivates it.
func (filter *FilterModel) Clear() {
	filter.Input = ""
	filter.Active = false
}

// View renders the filter bar: the input with a cursor while active,
// a dim indicator while inactive with text, and nothing otherwise.
func (filter *FilterModel) View(theme Theme, width int) string {
	if !filter.Active && filter.Input == "" {
		return ""
	}

	if filter.Active {
		cursor := lipgloss.NewStyle().
			Foreground(theme.HeaderForeground).
			Bold(true).
			Render("▎")
		return lipgloss.NewStyle().
			Foreground(theme.NormalText).
			Width(width).
			Render(" filter: " + filter.Input + cursor)
	}

	return lipgloss.NewStyle().
		Foreground(theme.FaintText).
		Width(width).
		Render(" filter: " + filter.Input)
}

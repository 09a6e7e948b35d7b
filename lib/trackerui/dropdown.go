// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package trackerui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/atomtracker/lib/atom"
)

// DropdownOverlay is the status selector: a floating menu listing the
// three statuses below the focused status cell. It captures all
// keyboard input while open. The model owns the instance and positions
// it at render time.
type DropdownOverlay struct {
	Options []atom.Status
	Cursor  int
}

// newStatusDropdown opens the selector with the cursor on current.
func newStatusDropdown(current atom.Status) *DropdownOverlay {
	dropdown := &DropdownOverlay{Options: atom.Statuses()}
	for index, status := range dropdown.Options {
		if status == current {
			dropdown.Cursor = index
		}
	}
	return dropdown
}

// MoveUp moves the cursor up by one, wrapping to the bottom.
func (dropdown *DropdownOverlay) MoveUp() {
	dropdown.Cursor--
	if dropdown.Cursor < 0 {
		dropdown.Cursor = len(dropdown.Options) - 1
	}
}

// MoveDown moves the cursor down by one, wrapping to the top.
func (dropdown *DropdownOverlay) MoveDown() {
	dropdown.Cursor++
	if dropdown.Cursor >= len(dropdown.Options) {
		dropdown.Cursor = 0
	}
}

// Selected returns the highlighted status.
func (dropdown *DropdownOverlay) Selected() atom.Status {
	return dropdown.Options[dropdown.Cursor]
}

// Width returns the visible width of the rendered dropdown.
func (dropdown *DropdownOverlay) Width() int {
	maxLabelWidth := 0
	for _, status := range dropdown.Options {
		maxLabelWidth = max(maxLabelWidth, ansi.StringWidth(string(status)))
	}
	// " > LABEL " : padding, marker, space, label, padding.
	return 3 + maxLabelWidth + 2
}

// Render produces the dropdown lines for overlay splicing. Every line
// has the same visible width. Labels are colored by status; the
// highlighted option uses the selection background.
func (dropdown *DropdownOverlay) Render(theme Theme) []string {
	innerWidth := dropdown.Width() - 2

	var lines []string
	for index, status := range dropdown.Options {
		background := theme.OverlayBackground
		marker := " "
		if index == dropdown.Cursor {
			background = theme.SelectedBackground
			marker = ">"
		}
		content := marker + " " + string(status)
		content += strings.Repeat(" ", max(innerWidth-ansi.StringWidth(content), 0))

		line := lipgloss.NewStyle().
			Background(background).
			Foreground(theme.StatusColor(status)).
			Render(" " + content + " ")
		lines = append(lines, line)
	}
	return lines
}

// spliceOverlay replaces a rectangular region of a rendered view with
// overlay lines placed at (anchorX, anchorY). ANSI-aware truncation
// keeps escape sequences on both sides of the overlay intact. Lines
// outside the view are dropped.
func spliceOverlay(view string, overlayLines []string, anchorX, anchorY int) string {
	if len(overlayLines) == 0 {
		return view
	}

	viewLines := strings.Split(view, "\n")
	overlayWidth := ansi.StringWidth(overlayLines[0])

	for index, overlayLine := range overlayLines {
		viewLineIndex := anchorY + index
		if viewLineIndex < 0 || viewLineIndex >= len(viewLines) {
			continue
		}

		viewLine := viewLines[viewLineIndex]
		viewLineWidth := ansi.StringWidth(viewLine)

		var result strings.Builder
		if anchorX > 0 {
			prefix := ansi.Truncate(viewLine, anchorX, "")
			result.WriteString(prefix)
			if pad := anchorX - ansi.StringWidth(prefix); pad > 0 {
				result.WriteString(strings.Repeat(" ", pad))
			}
		}
		result.WriteString("\x1b[0m")
		result.WriteString(overlayLine)
		result.WriteString("\x1b[0m")

		suffixStart := anchorX + overlayWidth
		if suffixStart < viewLineWidth {
			result.WriteString(ansi.TruncateLeft(viewLine, suffixStart, ""))
		}

		viewLines[viewLineIndex] = result.String()
	}

	return strings.Join(viewLines, "\n")
}

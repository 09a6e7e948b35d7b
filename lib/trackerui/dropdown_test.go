// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package trackerui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/atomtracker/lib/atom"
)

func TestStatusDropdownStartsOnCurrent(t *testing.T) {
	dropdown := newStatusDropdown(atom.StatusInDevelopment)
	if dropdown.Selected() != atom.StatusInDevelopment {
		t.Errorf("Selected = %q, want In Development", dropdown.Selected())
	}

	// An unknown current status leaves the cursor on the first option.
	if got := newStatusDropdown("Archived").Selected(); got != atom.StatusNotStarted {
		t.Errorf("Selected for unknown status = %q, want Not Started", got)
	}
}

func TestDropdownWraps(t *testing.T) {
	dropdown := newStatusDropdown(atom.StatusNotStarted)

	dropdown.MoveUp()
	if dropdown.Selected() != atom.StatusDeveloped {
		t.Errorf("MoveUp from the top = %q, want Developed", dropdown.Selected())
	}
	dropdown.MoveDown()
	if dropdown.Selected() != atom.StatusNotStarted {
		t.Errorf("MoveDown from the bottom = %q, want Not Started", dropdown.Selected())
	}
}

func TestDropdownRender(t *testing.T) {
	dropdown := newStatusDropdown(atom.StatusDeveloped)
	lines := dropdown.Render(DefaultTheme)

	if len(lines) != 3 {
		t.Fatalf("rendered %d lines, want 3", len(lines))
	}
	for index, line := range lines {
		if width := ansi.StringWidth(line); width != dropdown.Width() {
			t.Errorf("line %d width = %d, want %d", index, width, dropdown.Width())
		}
	}
	if !strings.HasPrefix(ansi.Strip(lines[2]), " > Developed") {
		t.Errorf("highlighted line = %q", ansi.Strip(lines[2]))
	}
	if !strings.HasPrefix(ansi.Strip(lines[0]), "   Not Started") {
		t.Errorf("plain line = %q", ansi.Strip(lines[0]))
	}
}

func TestSpliceOverlay(t *testing.T) {
	view := "0123456789\nabcdefghij\nKLMNOPQRST"
	spliced := spliceOverlay(view, []string{"XX", "YY", "ZZ"}, 3, 1)

	want := []string{"0123456789", "abcXXfghij", "KLMYYPQRST"}
	got := strings.Split(ansi.Strip(spliced), "\n")
	if len(got) != len(want) {
		t.Fatalf("spliced into %d lines, want %d", len(got), len(want))
	}
	for index := range want {
		if got[index] != want[index] {
			t.Errorf("line %d = %q, want %q", index, got[index], want[index])
		}
	}
}

func TestSpliceOverlayPadsShortLines(t *testing.T) {
	spliced := ansi.Strip(spliceOverlay("ab", []string{"XY"}, 4, 0))
	if spliced != "ab  XY" {
		t.Errorf("spliced = %q, want %q", spliced, "ab  XY")
	}
}

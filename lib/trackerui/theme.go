// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package trackerui

import (
	"log/slog"

	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/atomtracker/lib/atom"
)

// Theme defines the color palette for the tracker TUI. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Focused cell.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Status colors, keyed by the status style class.
	StatusNotStarted    lipgloss.Color
	StatusInDevelopment lipgloss.Color
	StatusDeveloped     lipgloss.Color

	// UI chrome.
	TitleForeground  lipgloss.Color
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Add button.
	ButtonForeground lipgloss.Color
	ButtonBackground lipgloss.Color

	// Status bar notices.
	WarningText lipgloss.Color
	ErrorText   lipgloss.Color

	// HotAccent tints rows whose store response was just merged.
	HotAccent lipgloss.Color

	// Dropdown overlay.
	OverlayBackground lipgloss.Color
}

// StatusColor returns the color for a status, chosen through its
// style class. Unknown statuses return FaintText.
func (theme Theme) StatusColor(status atom.Status) lipgloss.Color {
	switch atom.StyleClass(status) {
	case "not-started":
		return theme.StatusNotStarted
	case "in-development":
		return theme.StatusInDevelopment
	case "developed":
		return theme.StatusDeveloped
	default:
		return theme.FaintText
	}
}

// LevelColor returns the status bar color for a log level.
func (theme Theme) LevelColor(level slog.Level) lipgloss.Color {
	switch {
	case level >= slog.LevelError:
		return theme.ErrorText
	case level >= slog.LevelWarn:
		return theme.WarningText
	default:
		return theme.HelpText
	}
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	StatusNotStarted:    lipgloss.Color("245"), // gray
	StatusInDevelopment: lipgloss.Color("220"), // amber
	StatusDeveloped:     lipgloss.Color("114"), // green

	TitleForeground:  lipgloss.Color("75"),
	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	ButtonForeground: lipgloss.Color("255"),
	ButtonBackground: lipgloss.Color("25"),

	WarningText: lipgloss.Color("214"),
	ErrorText:   lipgloss.Color("196"),

	HotAccent: lipgloss.Color("58"), // dark amber background tint

	OverlayBackground: lipgloss.Color("237"),
}

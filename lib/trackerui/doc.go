// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package trackerui implements the terminal interface of the atom
// tracker: a bubbletea model with a draft row for new atoms above an
// editable table of committed atoms.
//
// The model holds no atom state of its own. Every keystroke in a text
// cell becomes a [tracker.Controller] edit; leaving a table cell
// commits that record; Enter on the draft row submits it. Calls the
// controller hands back run as bubbletea commands and their results
// are merged on the event loop, so the controller only ever sees one
// goroutine.
//
// Layout, top to bottom: title, draft header and row, the table (or a
// loading spinner, load error, or empty-state line), the optional
// filter bar, and a status bar that shows either key help or the
// latest notice. Notices come from refused input, failed store calls,
// and warn/error log records routed in by [TUILogHandler].
package trackerui

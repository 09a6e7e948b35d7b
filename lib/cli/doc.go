// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli holds the pieces shared by the atom-tracker and
// atom-store entry points: categorized errors with exit codes
// ([ToolError], [FileError], [ExitCode]) and logging setup
// ([NewCommandLogger], [OpenFileLogHandler], [FanoutHandler]).
package cli

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package atom defines the tracked record type shared by the tracker
// client, its terminal UI, and the reference persistence service.
//
// An atom is a named design-system component with a development
// [Status] and a free-text developer. The display order of a list of
// atoms is fixed by [Sort]: Developed, then In Development, then Not
// Started, with equal statuses keeping their relative order.
//
// This package depends on no other tracker packages.
package atom

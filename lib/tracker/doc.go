// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tracker implements the state controller of the atom
// tracker: the in-memory atom list, the entry draft, and the
// synchronization contract with the remote atom store.
//
// The [Controller] is owned by a single goroutine. Operations that
// reach the store return a [Call]; the owner runs it elsewhere (a
// bubbletea command in the terminal UI) and passes the [Result] back
// to [Controller.Apply]. Responses are therefore merged in arrival
// order, never concurrently with edits.
//
// Edits to committed records are optimistic: they change memory at
// once and are sent to the store only when the record is committed
// (the UI commits when a field loses focus). Each record carries a
// revision that every edit and commit advances; an update response
// whose revision is no longer current is discarded, so an old
// response can never overwrite a newer local edit.
//
// The list is kept in the order defined by [atom.Sort] after every
// merged response and after every status edit.
package tracker

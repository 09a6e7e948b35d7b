// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package atomstore is a small reference implementation of the remote
// atom collection the tracker talks to. It exists for local
// development and end-to-end tests: [Store] keeps the records (in
// memory, optionally mirrored to a JSON file written atomically), and
// [Handler] exposes them over the same REST surface the atomapi client
// expects.
//
// The store does only the validation it needs to keep its own data
// sane (a name and a known status). It does not sort; ordering is the
// client's concern.
//
// [NewMetrics] and [WithMetrics] add Prometheus request and collection
// metrics, served at /metrics.
package atomstore

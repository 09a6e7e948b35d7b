// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package atomapi is the HTTP client for the atom persistence service.
//
// The service exposes one collection with three operations:
//
//	GET  /atoms       list every atom (each carries an _id)
//	POST /atoms       create from a record without _id, returns it with _id
//	PUT  /atoms/{id}  replace with the full record, returns the stored copy
//
// There is no delete, no partial update, no pagination and no
// authentication. [Client] performs exactly one request per call and
// never retries; failures surface as errors (non-2xx responses as
// [*APIError]) for the caller to report.
package atomapi

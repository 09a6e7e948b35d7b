// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for atom-tracker
// and atom-store.
//
// Configuration is loaded from a single file named by either the
// ATOM_TRACKER_CONFIG environment variable (via [Load]) or a --config
// flag (via [LoadFile]). [Resolve] applies that precedence and falls
// back to [Default] when neither is given. There is no ~/.config
// discovery and no automatic file search.
//
// The file may carry environment-specific sections (development,
// staging, production) that override base values when
// [Config].Environment matches.
//
// After loading, ${VAR} and ${VAR:-default} patterns are expanded in
// api.base_url and the store fields. Flags passed to the binaries
// override config values; environment variables do not, except
// through explicit expansion.
//
// Key exports:
//
//   - [Config] -- master struct with API, Store, Log
//   - [Default] -- returns a Config with development defaults
//   - [Load], [LoadFile], [Resolve] -- the entry points for loading
//
// This package depends on no other packages in this module.
package config

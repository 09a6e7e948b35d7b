// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source.
//
// The tracker UI decides how a row looks from how long ago its store
// response arrived. Reading time through a Clock lets tests fix that
// answer:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	model := trackerui.NewModel(controller, trackerui.WithClock(fake))
//	fake.Advance(5 * time.Second) // every glow has decayed
package clock

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package trackerui

import (
	"time"
)

// heatDecayDuration is how long a row glows after its store response
// is merged. Heat starts at 1.0 and decays linearly to 0.0.
const heatDecayDuration = 2 * time.Second

// heatTickInterval is the re-render interval while any rows are hot.
const heatTickInterval = 100 * time.Millisecond

// HeatTracker maps atom IDs to ignition timestamps for animated
// change highlighting.
type HeatTracker struct {
	ignitions map[string]time.Time
}

// NewHeatTracker creates an empty heat tracker.
func NewHeatTracker() *HeatTracker {
	return &HeatTracker{
		ignitions: make(map[string]time.Time),
	}
}

// Ignite records a merged response for an atom. Resets the decay
// timer if the atom was already hot.
func (tracker *HeatTracker) Ignite(atomID string, now time.Time) {
	if atomID == "" {
		return
	}
	tracker.ignitions[atomID] = now
}

// Heat returns the current intensity for an atom: 1.0 at ignition,
// linearly decaying to 0.0 over [heatDecayDuration].
func (tracker *HeatTracker) Heat(atomID string, now time.Time) float64 {
	ignition, exists := tracker.ignitions[atomID]
	if !exists {
		return 0.0
	}
	elapsed := now.Sub(ignition)
	if elapsed >= heatDecayDuration {
		return 0.0
	}
	return 1.0 - float64(elapsed)/float64(heatDecayDuration)
}

// HasHot returns true if any atom still has heat, meaning the tick
// timer should keep running.
func (tracker *HeatTracker) HasHot(now time.Time) bool {
	hot := false
	for atomID, ignition := range tracker.ignitions {
		if now.Sub(ignition) < heatDecayDuration {
			hot = true
			continue
		}
		delete(tracker.ignitions, atomID)
	}
	return hot
}

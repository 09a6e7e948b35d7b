// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package trackerui

import (
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

func init() {
	// Populates fzf's character class and bonus tables.
	algo.Init("default")
}

// fuzzyResult is the outcome of matching one string against a filter
// pattern. A zero Score means no match.
type fuzzyResult struct {
	Score     int
	Positions []int
}

// fuzzyMatch runs fzf's V2 algorithm over text. Both sides are
// lowercased, so matching is case-insensitive regardless of pattern
// case. A nil slab allocates per call.
func fuzzyMatch(text string, pattern []rune, slab *util.Slab) fuzzyResult {
	if len(pattern) == 0 || text == "" {
		return fuzzyResult{}
	}
	lowered := []rune(strings.ToLower(string(pattern)))
	chars := util.ToChars([]byte(strings.ToLower(text)))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, lowered, true, slab)
	if result.Start < 0 || result.Score <= 0 {
		return fuzzyResult{}
	}
	match := fuzzyResult{Score: result.Score}
	if positions != nil {
		match.Positions = append([]int(nil), (*positions)...)
	}
	return match
}

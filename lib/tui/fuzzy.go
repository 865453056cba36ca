// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"slices"
	"strings"
	"sync"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// FuzzyResult is the outcome of one fuzzy match. Score is zero when
// the pattern does not match. Positions are rune indexes into the
// matched text, ascending.
type FuzzyResult struct {
	Score     int
	Positions []int
}

var fuzzyInitOnce sync.Once

// FuzzyMatch scores text against pattern with fzf's V2 algorithm,
// ignoring case. slab may be nil; callers matching many texts in a
// loop should share one from util.MakeSlab.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 || text == "" {
		return FuzzyResult{}
	}
	fuzzyInitOnce.Do(func() {
		algo.Init("default")
	})

	// Case-insensitive matching in fzf expects a lowercase pattern.
	lowered := []rune(strings.ToLower(string(pattern)))
	chars := util.ToChars([]byte(text))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, lowered, true, slab)
	if result.Start < 0 || result.Score <= 0 {
		return FuzzyResult{}
	}

	var sorted []int
	if positions != nil {
		sorted = slices.Clone(*positions)
		slices.Sort(sorted)
	}
	return FuzzyResult{Score: result.Score, Positions: sorted}
}

// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"testing"

	"github.com/junegunn/fzf/src/util"
)

func TestFuzzyMatchSubstring(t *testing.T) {
	result := FuzzyMatch("Understanding the Go memory model", []rune("memory"), nil)
	if result.Score <= 0 {
		t.Fatal("expected positive score for substring match")
	}
	if len(result.Positions) != len("memory") {
		t.Fatalf("positions = %v, want %d entries", result.Positions, len("memory"))
	}
	for index := 1; index < len(result.Positions); index++ {
		if result.Positions[index] <= result.Positions[index-1] {
			t.Fatalf("positions not ascending: %v", result.Positions)
		}
	}
}

func TestFuzzyMatchNonContiguous(t *testing.T) {
	result := FuzzyMatch("rust async runtime", []rune("rar"), nil)
	if result.Score <= 0 {
		t.Fatal("expected positive score for non-contiguous match")
	}
}

func TestFuzzyMatchIgnoresCase(t *testing.T) {
	for _, pattern := range []string{"GO", "go", "Go"} {
		if FuzzyMatch("Effective go", []rune(pattern), nil).Score <= 0 {
			t.Errorf("pattern %q did not match", pattern)
		}
	}
}

func TestFuzzyMatchNoMatch(t *testing.T) {
	result := FuzzyMatch("Understanding the Go memory model", []rune("xyz"), nil)
	if result.Score != 0 || len(result.Positions) != 0 {
		t.Errorf("result = %+v, want zero", result)
	}
}

func TestFuzzyMatchEmpty(t *testing.T) {
	if FuzzyMatch("anything", nil, nil).Score != 0 {
		t.Error("empty pattern matched")
	}
	if FuzzyMatch("", []rune("a"), nil).Score != 0 {
		t.Error("empty text matched")
	}
}

func TestFuzzyMatchSharedSlab(t *testing.T) {
	slab := util.MakeSlab(100*1024, 2048)
	better := FuzzyMatch("memory model", []rune("memory"), slab)
	worse := FuzzyMatch("my event more or yes", []rune("memory"), slab)
	if better.Score <= worse.Score {
		t.Errorf("contiguous score %d should beat scattered score %d", better.Score, worse.Score)
	}
}

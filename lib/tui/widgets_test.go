// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestRenderHintsWraps(t *testing.T) {
	hints := []string{"about-me.md", "blog/", "bookmarks/", "projects/"}
	got := ansi.Strip(RenderHints(DefaultTheme(), hints, 1, 28))
	rows := strings.Split(got, "\n")
	if len(rows) < 2 {
		t.Fatalf("expected wrapping at width 28, got %q", got)
	}
	for _, row := range rows {
		if ansi.StringWidth(row) > 28 {
			t.Errorf("row %q exceeds width", row)
		}
	}
	for _, hint := range hints {
		if !strings.Contains(got, hint) {
			t.Errorf("hint %q missing from %q", hint, got)
		}
	}
}

func TestRenderHintsEmpty(t *testing.T) {
	if RenderHints(DefaultTheme(), nil, 0, 80) != "" {
		t.Error("empty hints rendered something")
	}
}

func TestRenderScrollbar(t *testing.T) {
	bar := strings.Split(ansi.Strip(RenderScrollbar(DefaultTheme(), 10, 100, 10, 90)), "\n")
	if len(bar) != 10 {
		t.Fatalf("height = %d, want 10", len(bar))
	}
	if bar[9] != "┃" || bar[0] != "│" {
		t.Errorf("thumb not at bottom: %q", bar)
	}

	fits := ansi.Strip(RenderScrollbar(DefaultTheme(), 3, 2, 10, 0))
	if strings.TrimSpace(fits) != "" {
		t.Errorf("fitting content drew a scrollbar: %q", fits)
	}
}

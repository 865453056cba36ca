// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderScrollbar produces a one-column scrollbar of the given height
// for a transcript of totalLines of which visibleLines are shown
// starting at offset. When everything fits the result is blank so the
// column does not draw attention.
func RenderScrollbar(theme Theme, height, totalLines, visibleLines, offset int) string {
	if height <= 0 {
		return ""
	}
	lines := make([]string, height)
	if totalLines <= visibleLines || totalLines <= 0 {
		for index := range lines {
			lines[index] = " "
		}
		return strings.Join(lines, "\n")
	}

	thumbSize := max(height*visibleLines/totalLines, 1)
	scrollable := totalLines - visibleLines
	track := height - thumbSize
	thumbStart := 0
	if track > 0 {
		thumbStart = min(offset*track/scrollable, track)
	}

	thumb := lipgloss.NewStyle().Foreground(theme.Secondary).Render("┃")
	rail := lipgloss.NewStyle().Foreground(theme.BorderColor).Render("│")
	for index := range lines {
		if index >= thumbStart && index < thumbStart+thumbSize {
			lines[index] = thumb
		} else {
			lines[index] = rail
		}
	}
	return strings.Join(lines, "\n")
}

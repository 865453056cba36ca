// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// RenderHints lays out the candidates of an active Tab cycle as rows
// of cells no wider than width. The selected candidate is drawn with
// the selection colors. Returns "" when there are no hints.
func RenderHints(theme Theme, hints []string, selected, width int) string {
	if len(hints) == 0 {
		return ""
	}
	normal := lipgloss.NewStyle().Foreground(theme.FaintText)
	highlighted := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)

	var rows []string
	var row strings.Builder
	rowWidth := 0
	for index, hint := range hints {
		cell := " " + hint + " "
		if width > 2 && ansi.StringWidth(cell) > width {
			cell = ansi.Truncate(cell, width-1, "…") + " "
		}
		cellWidth := ansi.StringWidth(cell)
		if rowWidth > 0 && width > 0 && rowWidth+1+cellWidth > width {
			rows = append(rows, row.String())
			row.Reset()
			rowWidth = 0
		}
		if rowWidth > 0 {
			row.WriteString(" ")
			rowWidth++
		}
		if index == selected {
			row.WriteString(highlighted.Render(cell))
		} else {
			row.WriteString(normal.Render(cell))
		}
		rowWidth += cellWidth
	}
	rows = append(rows, row.String())
	return strings.Join(rows, "\n")
}

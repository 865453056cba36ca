// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package termui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/ndp190/termfolio/lib/shell"
	"github.com/ndp190/termfolio/lib/tui"
)

const helpLine = " Tab complete  ↑↓ history  C-l clear  C-u clear input  PgUp/PgDn scroll  C-c quit"

func (model Model) theme() tui.Theme {
	theme, ok := tui.LookupTheme(model.workspace.Theme())
	if !ok {
		return tui.DefaultTheme()
	}
	return theme
}

// transcriptWidth leaves one column for the scrollbar.
func (model Model) transcriptWidth() int {
	return max(model.width-1, 1)
}

// layout re-renders the transcript into the viewport and applies the
// pending scroll request.
func (model *Model) layout() {
	if !model.ready {
		return
	}
	theme := model.theme()
	width := model.transcriptWidth()

	content, offsets := model.renderTranscript(theme, width)
	chrome := 1 + lipgloss.Height(model.renderInput(theme)) + model.hintsHeight(theme)
	model.viewport.Width = width
	model.viewport.Height = max(model.height-chrome, 1)
	model.viewport.SetContent(content)

	switch {
	case model.scrollTarget != "":
		blocks := model.session.Transcript()
		for index := len(blocks) - 1; index >= 0; index-- {
			if blocks[index].Invocation.Line == model.scrollTarget {
				model.viewport.SetYOffset(offsets[index])
				break
			}
		}
		model.scrollTarget = ""
	case model.follow:
		model.viewport.GotoBottom()
	}
}

// renderTranscript draws every block, oldest first, and returns the
// first line of each block.
func (model Model) renderTranscript(theme tui.Theme, width int) (string, []int) {
	blocks := model.session.Transcript()
	offsets := make([]int, len(blocks))
	var lines []string
	for index, block := range blocks {
		offsets[index] = len(lines)
		lines = append(lines, model.promptLine(theme, block.Invocation.Line))
		if output := renderOutput(block.Output, theme, width); output != "" {
			lines = append(lines, strings.Split(output, "\n")...)
		}
	}
	return strings.Join(lines, "\n"), offsets
}

func (model Model) promptLine(theme tui.Theme, line string) string {
	promptStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	lineStyle := lipgloss.NewStyle().Foreground(theme.NormalText)
	return promptStyle.Render(model.prompt) + " " + lineStyle.Render(line)
}

func renderOutput(output shell.Output, theme tui.Theme, width int) string {
	normal := lipgloss.NewStyle().Foreground(theme.NormalText)
	switch output.Kind {
	case shell.OutputEmpty:
		return ""
	case shell.OutputMarkdown:
		return tui.RenderMarkdown(output.Text, theme, width)
	case shell.OutputError, shell.OutputNotFound:
		rendered := lipgloss.NewStyle().Foreground(theme.ErrorText).Render(ansi.Wrap(output.Text, width, ""))
		if output.Hint != "" {
			rendered += "\n" + lipgloss.NewStyle().Foreground(theme.FaintText).Render(output.Hint)
		}
		return rendered
	}
	return normal.Render(ansi.Wrap(output.Text, width, ""))
}

func (model Model) renderInput(theme tui.Theme) string {
	cursorStyle := lipgloss.NewStyle().Reverse(true)
	inputStyle := lipgloss.NewStyle().Foreground(theme.NormalText)

	var input string
	if model.cursor >= len(model.buffer) {
		input = inputStyle.Render(string(model.buffer)) + cursorStyle.Render(" ")
	} else {
		before := string(model.buffer[:model.cursor])
		atCursor := string(model.buffer[model.cursor : model.cursor+1])
		after := string(model.buffer[model.cursor+1:])
		input = inputStyle.Render(before) + cursorStyle.Render(atCursor) + inputStyle.Render(after)
	}
	return ansi.Wrap(model.promptLineStart(theme)+input, max(model.width, 1), "")
}

func (model Model) promptLineStart(theme tui.Theme) string {
	return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(model.prompt) + " "
}

func (model Model) renderHints(theme tui.Theme) string {
	return tui.RenderHints(theme, model.session.Hints(), model.session.HintIndex(), model.width)
}

func (model Model) hintsHeight(theme tui.Theme) int {
	hints := model.renderHints(theme)
	if hints == "" {
		return 0
	}
	return lipgloss.Height(hints)
}

func (model Model) renderStatus(theme tui.Theme) string {
	if model.status == "" {
		return lipgloss.NewStyle().Foreground(theme.DimText).Render(ansi.Truncate(helpLine, model.width, "…"))
	}
	color := theme.Secondary
	if model.statusLevel >= slog.LevelError {
		color = theme.ErrorText
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(ansi.Truncate(" "+model.status, model.width, "…"))
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}
	theme := model.theme()

	scrollbar := tui.RenderScrollbar(theme, model.viewport.Height,
		model.viewport.TotalLineCount(), model.viewport.Height, model.viewport.YOffset)
	body := lipgloss.NewStyle().Width(model.viewport.Width).Height(model.viewport.Height).Render(model.viewport.View())
	sections := []string{lipgloss.JoinHorizontal(lipgloss.Top, body, scrollbar), model.renderInput(theme)}
	if hints := model.renderHints(theme); hints != "" {
		sections = append(sections, hints)
	}
	sections = append(sections, model.renderStatus(theme))
	return strings.Join(sections, "\n")
}

// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"html"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

var (
	markdownParser     goldmark.Markdown
	markdownParserOnce sync.Once
)

func parser() goldmark.Markdown {
	markdownParserOnce.Do(func() {
		markdownParser = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return markdownParser
}

// wrapBreakpoints are the extra characters ansi.Wrap may break after.
const wrapBreakpoints = " ,.;-+|"

// RenderMarkdown renders markdown as styled terminal text wrapped to
// width. Soft line breaks become spaces so hard-wrapped source
// reflows at any width.
//
// The inline tags <mark>...</mark> and <note>...</note> render as an
// annotated highlight and its note; any other raw HTML is reduced to
// its text.
func RenderMarkdown(input string, theme Theme, width int) string {
	if input == "" {
		return ""
	}
	source := []byte(input)
	document := parser().Parser().Parse(text.NewReader(source))

	// Output always goes to a terminal the program controls, so skip
	// profile detection (which yields plain text under test).
	lipRenderer := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	lipRenderer.SetColorProfile(termenv.ANSI256)

	renderer := &markdownRenderer{
		source:      source,
		theme:       theme,
		width:       width,
		lipRenderer: lipRenderer,
	}
	ast.Walk(document, renderer.walk)
	return strings.TrimRight(renderer.output.String(), "\n")
}

// markdownRenderer walks the goldmark AST directly. Inline content of
// a block accumulates in a buffer and is wrapped as a unit when the
// block closes.
type markdownRenderer struct {
	source      []byte
	theme       Theme
	width       int
	lipRenderer *lipgloss.Renderer

	output strings.Builder
	inline strings.Builder

	prefixes        []prefixLevel
	linePrefix      string
	linePrefixWidth int

	// pendingBullet replaces linePrefix for the next emitted line.
	pendingBullet string

	// Nesting counters for inline styles.
	bold          int
	italic        int
	strikethrough int
	highlight     int
	note          int
	quote         int

	lists []listState

	trailingNewlines int
}

type prefixLevel struct {
	text  string
	width int
}

type listState struct {
	ordered bool
	counter int
	tight   bool
}

func (renderer *markdownRenderer) style() lipgloss.Style {
	return renderer.lipRenderer.NewStyle()
}

func (renderer *markdownRenderer) contentWidth() int {
	return max(renderer.width-renderer.linePrefixWidth, 10)
}

func (renderer *markdownRenderer) pushPrefix(prefix string, width int) {
	renderer.prefixes = append(renderer.prefixes, prefixLevel{text: prefix, width: width})
	renderer.linePrefix += prefix
	renderer.linePrefixWidth += width
}

func (renderer *markdownRenderer) popPrefix() {
	if len(renderer.prefixes) == 0 {
		return
	}
	top := renderer.prefixes[len(renderer.prefixes)-1]
	renderer.prefixes = renderer.prefixes[:len(renderer.prefixes)-1]
	renderer.linePrefix = renderer.linePrefix[:len(renderer.linePrefix)-len(top.text)]
	renderer.linePrefixWidth -= top.width
}

func (renderer *markdownRenderer) inTightList() bool {
	return len(renderer.lists) > 0 && renderer.lists[len(renderer.lists)-1].tight
}

func (renderer *markdownRenderer) write(s string) {
	if s == "" {
		return
	}
	renderer.output.WriteString(s)
	trimmed := strings.TrimRight(s, "\n")
	newlines := len(s) - len(trimmed)
	if trimmed == "" {
		renderer.trailingNewlines += newlines
	} else {
		renderer.trailingNewlines = newlines
	}
}

func (renderer *markdownRenderer) ensureNewline() {
	if renderer.trailingNewlines < 1 {
		renderer.write("\n")
	}
}

func (renderer *markdownRenderer) ensureBlankLine() {
	// No leading blank lines at the top of the output.
	if renderer.output.Len() == 0 {
		return
	}
	for renderer.trailingNewlines < 2 {
		renderer.write("\n")
	}
}

func (renderer *markdownRenderer) takePrefix() string {
	if renderer.pendingBullet != "" {
		bullet := renderer.pendingBullet
		renderer.pendingBullet = ""
		return bullet
	}
	return renderer.linePrefix
}

func (renderer *markdownRenderer) prefixLines(content string) string {
	lines := strings.Split(content, "\n")
	for index, line := range lines {
		if index == 0 {
			lines[index] = renderer.takePrefix() + line
		} else {
			lines[index] = renderer.linePrefix + line
		}
	}
	return strings.Join(lines, "\n")
}

func (renderer *markdownRenderer) flushInline() string {
	content := renderer.inline.String()
	renderer.inline.Reset()
	if content == "" {
		return ""
	}
	return renderer.prefixLines(ansi.Wrap(content, renderer.contentWidth(), wrapBreakpoints))
}

func (renderer *markdownRenderer) styled(content string) string {
	style := renderer.style().Foreground(renderer.theme.NormalText)
	if renderer.quote > 0 {
		style = style.Foreground(renderer.theme.FaintText).Italic(true)
	}
	if renderer.bold > 0 {
		style = style.Bold(true).Foreground(renderer.theme.Primary)
	}
	if renderer.italic > 0 {
		style = style.Italic(true)
	}
	if renderer.strikethrough > 0 {
		style = style.Strikethrough(true)
	}
	if renderer.highlight > 0 {
		style = style.Background(renderer.theme.HighlightBackground)
	}
	if renderer.note > 0 {
		style = style.Foreground(renderer.theme.Secondary).Italic(true)
	}
	return style.Render(content)
}

// inlineOf renders a node's children to a string without disturbing
// the enclosing inline buffer or style state.
func (renderer *markdownRenderer) inlineOf(node ast.Node) string {
	saved := renderer.inline.String()
	bold, italic, strikethrough := renderer.bold, renderer.italic, renderer.strikethrough

	renderer.inline.Reset()
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		ast.Walk(child, renderer.walk)
	}
	result := renderer.inline.String()

	renderer.inline.Reset()
	renderer.inline.WriteString(saved)
	renderer.bold, renderer.italic, renderer.strikethrough = bold, italic, strikethrough
	return result
}

func (renderer *markdownRenderer) highlightCode(code, language string) string {
	if language != "" {
		var buffer strings.Builder
		if err := quick.Highlight(&buffer, code, language, "terminal256", "monokai"); err == nil {
			return buffer.String()
		}
	}
	return renderer.style().Foreground(renderer.theme.FaintText).Render(code)
}

func (renderer *markdownRenderer) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node.Kind() {
	case ast.KindParagraph, ast.KindTextBlock:
		if entering {
			renderer.inline.Reset()
			break
		}
		if flushed := renderer.flushInline(); flushed != "" {
			renderer.write(flushed)
			renderer.ensureNewline()
			if !renderer.inTightList() {
				renderer.ensureBlankLine()
			}
		}

	case ast.KindHeading:
		if entering {
			renderer.inline.Reset()
		} else {
			renderer.heading(node.(*ast.Heading))
		}

	case ast.KindFencedCodeBlock:
		if entering {
			block := node.(*ast.FencedCodeBlock)
			renderer.codeLines(renderer.highlightCode(renderer.lines(block), string(block.Language(renderer.source))))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindCodeBlock:
		if entering {
			faint := renderer.style().Foreground(renderer.theme.FaintText)
			renderer.codeLines(faint.Render(renderer.lines(node)))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindBlockquote:
		bar := renderer.style().Foreground(renderer.theme.Primary).Render("│") + " "
		if entering {
			renderer.quote++
			renderer.pushPrefix(bar, 2)
		} else {
			renderer.quote--
			renderer.popPrefix()
			renderer.ensureBlankLine()
		}

	case ast.KindList:
		if entering {
			list := node.(*ast.List)
			renderer.lists = append(renderer.lists, listState{ordered: list.IsOrdered(), counter: list.Start, tight: list.IsTight})
		} else {
			renderer.lists = renderer.lists[:len(renderer.lists)-1]
			if !renderer.inTightList() {
				renderer.ensureBlankLine()
			}
		}

	case ast.KindListItem:
		if entering {
			renderer.enterListItem()
		} else {
			renderer.popPrefix()
			if renderer.inTightList() {
				renderer.ensureNewline()
			} else {
				renderer.ensureBlankLine()
			}
		}

	case ast.KindThematicBreak:
		if entering {
			rule := renderer.style().Foreground(renderer.theme.BorderColor).Render(strings.Repeat("─", renderer.contentWidth()))
			renderer.ensureBlankLine()
			renderer.write(renderer.prefixLines(rule))
			renderer.ensureNewline()
			renderer.ensureBlankLine()
		}

	case ast.KindHTMLBlock:
		if entering {
			if stripped := strings.TrimSpace(stripTags(renderer.lines(node))); stripped != "" {
				faint := renderer.style().Foreground(renderer.theme.FaintText)
				renderer.write(renderer.prefixLines(faint.Render(html.UnescapeString(stripped))))
				renderer.ensureNewline()
				renderer.ensureBlankLine()
			}
			return ast.WalkSkipChildren, nil
		}

	case ast.KindText:
		if entering {
			textNode := node.(*ast.Text)
			renderer.inline.WriteString(renderer.styled(html.UnescapeString(string(textNode.Segment.Value(renderer.source)))))
			if textNode.SoftLineBreak() {
				renderer.inline.WriteString(" ")
			}
			if textNode.HardLineBreak() {
				renderer.inline.WriteString("\n")
			}
		}

	case ast.KindString:
		if entering {
			renderer.inline.WriteString(renderer.styled(string(node.(*ast.String).Value)))
		}

	case ast.KindEmphasis:
		delta := 1
		if !entering {
			delta = -1
		}
		if node.(*ast.Emphasis).Level >= 2 {
			renderer.bold += delta
		} else {
			renderer.italic += delta
		}

	case ast.KindCodeSpan:
		if entering {
			var code strings.Builder
			for child := node.FirstChild(); child != nil; child = child.NextSibling() {
				switch child := child.(type) {
				case *ast.Text:
					code.Write(child.Segment.Value(renderer.source))
				case *ast.String:
					code.Write(child.Value)
				}
			}
			renderer.inline.WriteString(renderer.style().Foreground(renderer.theme.Primary).Render(code.String()))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindLink:
		if entering {
			link := node.(*ast.Link)
			renderer.inline.WriteString(renderer.inlineOf(link))
			if destination := string(link.Destination); destination != "" {
				renderer.inline.WriteString(" " + renderer.style().Foreground(renderer.theme.Secondary).Render("("+destination+")"))
			}
			return ast.WalkSkipChildren, nil
		}

	case ast.KindAutoLink:
		if entering {
			autoLink := node.(*ast.AutoLink)
			renderer.inline.WriteString(renderer.style().Foreground(renderer.theme.Secondary).Underline(true).Render(string(autoLink.URL(renderer.source))))
		}

	case ast.KindImage:
		if entering {
			image := node.(*ast.Image)
			faint := renderer.style().Foreground(renderer.theme.DimText)
			renderer.inline.WriteString(faint.Render("[" + ansi.Strip(renderer.inlineOf(image)) + "]"))
			if destination := string(image.Destination); destination != "" {
				renderer.inline.WriteString(" " + faint.Render("("+destination+")"))
			}
			return ast.WalkSkipChildren, nil
		}

	case ast.KindRawHTML:
		if entering {
			renderer.rawHTML(node.(*ast.RawHTML))
		}

	case extast.KindStrikethrough:
		if entering {
			renderer.strikethrough++
		} else {
			renderer.strikethrough--
		}

	case extast.KindTaskCheckBox:
		if entering {
			if node.(*extast.TaskCheckBox).IsChecked {
				renderer.inline.WriteString(renderer.style().Foreground(renderer.theme.Primary).Render("[x]") + " ")
			} else {
				renderer.inline.WriteString(renderer.styled("[ ] "))
			}
		}

	case extast.KindTable:
		if entering {
			renderer.table(node.(*extast.Table))
			return ast.WalkSkipChildren, nil
		}
	}
	return ast.WalkContinue, nil
}

func (renderer *markdownRenderer) lines(node ast.Node) string {
	var content strings.Builder
	lines := node.Lines()
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		content.Write(segment.Value(renderer.source))
	}
	return content.String()
}

func (renderer *markdownRenderer) heading(heading *ast.Heading) {
	content := ansi.Strip(renderer.inline.String())
	renderer.inline.Reset()
	if content == "" {
		return
	}
	style := renderer.style().Bold(true).Foreground(renderer.theme.Primary)
	if heading.Level > 2 {
		style = style.Foreground(renderer.theme.NormalText)
	}
	renderer.ensureBlankLine()
	renderer.write(renderer.prefixLines(ansi.Wrap(style.Render(content), renderer.contentWidth(), wrapBreakpoints)))
	renderer.ensureNewline()
	renderer.ensureBlankLine()
}

func (renderer *markdownRenderer) codeLines(code string) {
	renderer.ensureBlankLine()
	for _, line := range strings.Split(strings.TrimRight(code, "\n"), "\n") {
		renderer.write(renderer.takePrefix() + "  " + line)
		renderer.ensureNewline()
	}
	renderer.ensureBlankLine()
}

func (renderer *markdownRenderer) enterListItem() {
	if len(renderer.lists) == 0 {
		return
	}
	top := &renderer.lists[len(renderer.lists)-1]
	bullet := "- "
	if top.ordered {
		bullet = fmt.Sprintf("%d. ", top.counter)
		top.counter++
	}
	renderer.pendingBullet = renderer.linePrefix + renderer.style().Foreground(renderer.theme.Secondary).Render(bullet)
	renderer.pushPrefix(strings.Repeat(" ", len(bullet)), len(bullet))
}

// rawHTML handles inline tags. The annotation tags toggle styles;
// anything else is reduced to its text.
func (renderer *markdownRenderer) rawHTML(node *ast.RawHTML) {
	var tag strings.Builder
	for index := 0; index < node.Segments.Len(); index++ {
		segment := node.Segments.At(index)
		tag.Write(segment.Value(renderer.source))
	}
	switch strings.ToLower(strings.TrimSpace(tag.String())) {
	case "<mark>":
		renderer.highlight++
		return
	case "</mark>":
		renderer.highlight = max(renderer.highlight-1, 0)
		return
	case "<note>":
		renderer.note++
		renderer.inline.WriteString(" " + renderer.styled("✎ "))
		return
	case "</note>":
		renderer.note = max(renderer.note-1, 0)
		return
	}
	if stripped := stripTags(tag.String()); stripped != "" {
		renderer.inline.WriteString(renderer.style().Foreground(renderer.theme.FaintText).Render(stripped))
	}
}

func (renderer *markdownRenderer) table(table *extast.Table) {
	var header []string
	var rows [][]string
	for child := table.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.Kind() {
		case extast.KindTableHeader:
			header = renderer.tableRow(child)
		case extast.KindTableRow:
			rows = append(rows, renderer.tableRow(child))
		}
	}

	columns := len(header)
	if columns == 0 && len(rows) > 0 {
		columns = len(rows[0])
	}
	if columns == 0 {
		return
	}

	widths := make([]int, columns)
	for _, row := range append([][]string{header}, rows...) {
		for index, cell := range row {
			if index < columns {
				widths[index] = max(widths[index], lipgloss.Width(cell))
			}
		}
	}

	const separator = "  "
	total := len(separator) * (columns - 1)
	for _, width := range widths {
		total += width
	}
	if available := renderer.contentWidth(); total > available {
		usable := max(available-len(separator)*(columns-1), columns*3)
		for index := range widths {
			widths[index] = max(widths[index]*usable/total, 3)
		}
	}

	renderer.ensureBlankLine()
	if len(header) > 0 {
		headerStyle := renderer.style().Bold(true).Foreground(renderer.theme.Primary)
		renderer.write(renderer.takePrefix() + headerStyle.Render(formatRow(header, widths, table.Alignments, separator)))
		renderer.ensureNewline()
		rules := make([]string, columns)
		for index, width := range widths {
			rules[index] = strings.Repeat("─", width)
		}
		renderer.write(renderer.linePrefix + renderer.style().Foreground(renderer.theme.BorderColor).Render(strings.Join(rules, separator)))
		renderer.ensureNewline()
	}
	for _, row := range rows {
		renderer.write(renderer.linePrefix + formatRow(row, widths, table.Alignments, separator))
		renderer.ensureNewline()
	}
	renderer.ensureBlankLine()
}

func (renderer *markdownRenderer) tableRow(row ast.Node) []string {
	var cells []string
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		if cell.Kind() == extast.KindTableCell {
			cells = append(cells, renderer.inlineOf(cell))
		}
	}
	return cells
}

func formatRow(cells []string, widths []int, alignments []extast.Alignment, separator string) string {
	parts := make([]string, len(widths))
	for index, width := range widths {
		var cell string
		if index < len(cells) {
			cell = cells[index]
		}
		if lipgloss.Width(cell) > width {
			cell = ansi.Truncate(cell, width, "…")
		}
		padding := max(width-lipgloss.Width(cell), 0)

		alignment := extast.AlignNone
		if index < len(alignments) {
			alignment = alignments[index]
		}
		switch alignment {
		case extast.AlignRight:
			cell = strings.Repeat(" ", padding) + cell
		case extast.AlignCenter:
			cell = strings.Repeat(" ", padding/2) + cell + strings.Repeat(" ", padding-padding/2)
		default:
			cell += strings.Repeat(" ", padding)
		}
		parts[index] = cell
	}
	return strings.Join(parts, separator)
}

func stripTags(markup string) string {
	var result strings.Builder
	inTag := false
	for _, character := range markup {
		switch {
		case character == '<':
			inTag = true
		case character == '>':
			inTag = false
		case !inTag:
			result.WriteRune(character)
		}
	}
	return result.String()
}

// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func plain(markdown string, width int) string {
	return ansi.Strip(RenderMarkdown(markdown, DefaultTheme(), width))
}

func TestRenderMarkdownEmpty(t *testing.T) {
	if got := RenderMarkdown("", DefaultTheme(), 80); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestRenderMarkdownParagraphReflow(t *testing.T) {
	got := plain("one two\nthree four", 80)
	if got != "one two three four" {
		t.Errorf("got %q", got)
	}
}

func TestRenderMarkdownWraps(t *testing.T) {
	got := plain(strings.Repeat("word ", 20), 20)
	for _, line := range strings.Split(got, "\n") {
		if ansi.StringWidth(line) > 20 {
			t.Errorf("line %q exceeds width", line)
		}
	}
}

func TestRenderMarkdownHeadingAndList(t *testing.T) {
	got := plain("# Title\n\n- first\n- second\n\n1. one\n2. two", 80)
	for _, want := range []string{"Title", "- first", "- second", "1. one", "2. two"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.HasPrefix(got, "\n") {
		t.Errorf("output starts with a blank line: %q", got)
	}
}

func TestRenderMarkdownLinks(t *testing.T) {
	got := plain("see [the repo](https://github.com/ndp190) now", 80)
	if got != "see the repo (https://github.com/ndp190) now" {
		t.Errorf("got %q", got)
	}
}

func TestRenderMarkdownBlockquote(t *testing.T) {
	got := plain("> 👀 reading here", 80)
	if got != "│ 👀 reading here" {
		t.Errorf("got %q", got)
	}
}

func TestRenderMarkdownCodeBlock(t *testing.T) {
	got := plain("```go\nfunc main() {}\n```", 80)
	if !strings.Contains(got, "func main() {}") {
		t.Errorf("code missing: %q", got)
	}
}

func TestRenderMarkdownAnnotationTags(t *testing.T) {
	source := "before <mark>marked text</mark><note>a &lt;b&gt; note</note> after"
	rendered := RenderMarkdown(source, DefaultTheme(), 80)
	got := ansi.Strip(rendered)

	if strings.Contains(got, "<mark>") || strings.Contains(got, "<note>") {
		t.Errorf("tags leaked into output: %q", got)
	}
	if got != "before marked text ✎ a <b> note after" {
		t.Errorf("got %q", got)
	}
	if rendered == got {
		t.Error("annotated output carries no styling")
	}
}

func TestRenderMarkdownOtherHTMLStripped(t *testing.T) {
	got := plain("a <span>b</span> c", 80)
	if got != "a b c" {
		t.Errorf("got %q", got)
	}
}

func TestRenderMarkdownTable(t *testing.T) {
	got := plain("| a | b |\n|---|---|\n| 1 | 2 |", 80)
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines: %q", len(lines), got)
	}
	if !strings.HasPrefix(lines[0], "a") || !strings.Contains(lines[1], "─") || !strings.HasPrefix(lines[2], "1") {
		t.Errorf("table = %q", got)
	}
}

func TestThemes(t *testing.T) {
	names := ThemeNames()
	want := []string{"dark", "light", "blue-matrix", "espresso", "green-goblin", "ubuntu"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("ThemeNames = %v, want %v", names, want)
	}
	if _, ok := LookupTheme("solarized"); ok {
		t.Error("unknown theme found")
	}
	if DefaultTheme().Name != DefaultThemeName {
		t.Errorf("DefaultTheme = %q", DefaultTheme().Name)
	}
}

// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package shell

import "strings"

// Line is a tokenized command line.
type Line struct {
	// Head is the command name, "" for a blank line.
	Head string

	// Args are the remaining tokens in order. Never nil.
	Args []string
}

// ParseLine trims raw and splits it on single spaces. The first token
// is the head, the rest are arguments. Runs of spaces inside the line
// produce empty argument tokens, which renderers treat as malformed
// input.
func ParseLine(raw string) Line {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Line{Args: []string{}}
	}
	tokens := strings.Split(trimmed, " ")
	return Line{Head: tokens[0], Args: tokens[1:]}
}

// Tokens returns the head followed by the arguments.
func (line Line) Tokens() []string {
	if line.Head == "" {
		return []string{}
	}
	return append([]string{line.Head}, line.Args...)
}

// ParseHistory tokenizes the most recent history entry (history is
// most-recent-first). Returns an empty slice for empty history or a
// blank most recent entry.
func ParseHistory(history []string) []string {
	if len(history) == 0 {
		return []string{}
	}
	return ParseLine(history[0]).Tokens()
}

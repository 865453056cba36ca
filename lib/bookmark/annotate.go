// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package bookmark

import (
	"html"
	"math"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	// FavouriteLine heads the content of favourited bookmarks.
	FavouriteLine = "★ Nikk liked this article"

	// ReadingMarker marks where the reader stopped.
	ReadingMarker = "👀 Nikk is currently reading here"
)

// Inline tags wrapped around highlighted spans and their notes. The
// markdown renderer styles raw HTML with these names.
const (
	HighlightOpen  = "<mark>"
	HighlightClose = "</mark>"
	NoteOpen       = "<note>"
	NoteClose      = "</note>"
)

// Annotate prepares a bookmark's markdown for display: highlights and
// notes from annotations, then the reading marker when the bookmark is
// partly read, then the favourite line.
func Annotate(markdown string, progress *Progress, annotations []Annotation) string {
	result := InsertHighlights(markdown, annotations)
	if progress != nil && !progress.IsRead && progress.ScrollPercentage > 0 {
		result = InsertReadingMarker(result, progress.ScrollPercentage)
	}
	if progress != nil && progress.IsFavourite {
		result = FavouriteLine + "\n\n" + result
	}
	return result
}

// InsertHighlights wraps each annotated span in highlight tags and
// follows it with its note, if any. Annotations are applied from the
// highest start offset down so that earlier offsets stay valid.
// Annotations with offsets outside the text, empty spans, or offsets
// inside a multi-byte character are skipped.
func InsertHighlights(markdown string, annotations []Annotation) string {
	if len(annotations) == 0 {
		return markdown
	}
	sorted := make([]Annotation, len(annotations))
	copy(sorted, annotations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartOffset > sorted[j].StartOffset
	})

	result := markdown
	for _, annotation := range sorted {
		start, end := annotation.StartOffset, annotation.EndOffset
		if start < 0 || end > len(result) || start >= end {
			continue
		}
		if !onRuneBoundary(result, start) || !onRuneBoundary(result, end) {
			continue
		}
		closing := HighlightClose
		if annotation.Note != "" {
			closing += NoteOpen + html.EscapeString(annotation.Note) + NoteClose
		}
		result = result[:start] + HighlightOpen + result[start:end] + closing + result[end:]
	}
	return result
}

// InsertReadingMarker places the reading marker at the end of the line
// containing the given percentage of the text. Percentages outside
// (0, 100) leave the text unchanged.
func InsertReadingMarker(markdown string, percentage float64) string {
	if percentage <= 0 || percentage >= 100 {
		return markdown
	}
	position := int(math.Floor(float64(len(markdown)) * percentage / 100))
	insertAt := position
	if lineBreak := strings.IndexByte(markdown[position:], '\n'); lineBreak >= 0 {
		insertAt = position + lineBreak
	}
	for insertAt < len(markdown) && !utf8.RuneStart(markdown[insertAt]) {
		insertAt++
	}
	return markdown[:insertAt] + "\n\n> " + ReadingMarker + "\n" + markdown[insertAt:]
}

func onRuneBoundary(text string, offset int) bool {
	return offset == len(text) || utf8.RuneStart(text[offset])
}

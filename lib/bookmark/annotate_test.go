// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package bookmark

import (
	"strings"
	"testing"
	"time"

	"github.com/ndp190/termfolio/lib/clock"
)

func TestInsertHighlights(t *testing.T) {
	markdown := "alpha beta gamma"
	annotations := []Annotation{
		{StartOffset: 0, EndOffset: 5},
		{StartOffset: 11, EndOffset: 16, Note: "a <b> note"},
	}
	got := InsertHighlights(markdown, annotations)
	want := "<mark>alpha</mark> beta <mark>gamma</mark><note>a &lt;b&gt; note</note>"
	if got != want {
		t.Errorf("InsertHighlights = %q, want %q", got, want)
	}
}

func TestInsertHighlightsSkipsInvalidSpans(t *testing.T) {
	markdown := "héllo"
	annotations := []Annotation{
		{StartOffset: -1, EndOffset: 2},
		{StartOffset: 3, EndOffset: 3},
		{StartOffset: 0, EndOffset: 99},
		{StartOffset: 2, EndOffset: 4}, // inside the two-byte é
	}
	if got := InsertHighlights(markdown, annotations); got != markdown {
		t.Errorf("InsertHighlights = %q, want unchanged", got)
	}
}

func TestInsertReadingMarker(t *testing.T) {
	markdown := "line one\nline two\nline three"

	got := InsertReadingMarker(markdown, 50)
	// 50% of 28 bytes is 14, inside "line two"; the marker follows it.
	want := "line one\nline two\n\n> " + ReadingMarker + "\n\nline three"
	if got != want {
		t.Errorf("InsertReadingMarker = %q, want %q", got, want)
	}

	for _, percentage := range []float64{0, -5, 100, 150} {
		if InsertReadingMarker(markdown, percentage) != markdown {
			t.Errorf("percentage %v changed the text", percentage)
		}
	}
}

func TestInsertReadingMarkerWithoutTrailingNewline(t *testing.T) {
	got := InsertReadingMarker("abcdef", 50)
	if got != "abc\n\n> "+ReadingMarker+"\ndef" {
		t.Errorf("got %q", got)
	}
}

func TestAnnotate(t *testing.T) {
	markdown := "first\nsecond\nthird"

	plain := Annotate(markdown, nil, nil)
	if plain != markdown {
		t.Errorf("no progress changed the text: %q", plain)
	}

	favourite := Annotate(markdown, &Progress{IsFavourite: true, ScrollPercentage: 40}, nil)
	if !strings.HasPrefix(favourite, FavouriteLine+"\n\n") {
		t.Errorf("favourite line missing: %q", favourite)
	}
	if !strings.Contains(favourite, ReadingMarker) {
		t.Errorf("reading marker missing: %q", favourite)
	}

	finished := Annotate(markdown, &Progress{IsRead: true, ScrollPercentage: 40}, nil)
	if strings.Contains(finished, ReadingMarker) {
		t.Errorf("finished bookmark shows reading marker: %q", finished)
	}
}

func TestDiskCacheExpiry(t *testing.T) {
	fake := clock.Fake(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	cache, err := NewDiskCache(t.TempDir(), time.Hour, fake)
	if err != nil {
		t.Fatal(err)
	}

	document := documentWith(Metadata{Title: "cached"})
	document.Scrape.Data.Markdown = strings.Repeat("text ", 100)
	if err := cache.Put("key", document); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := cache.Get("key")
	if err != nil || got == nil || got.Scrape.Data.Metadata.Title != "cached" {
		t.Fatalf("Get = %+v, %v", got, err)
	}

	if got, _ := cache.Get("other"); got != nil {
		t.Error("unknown key returned a document")
	}

	fake.Advance(2 * time.Hour)
	if got, err := cache.Get("key"); err != nil || got != nil {
		t.Errorf("stale Get = %+v, %v", got, err)
	}
}

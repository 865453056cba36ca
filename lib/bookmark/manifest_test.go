// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package bookmark

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ndp190/termfolio/lib/testutil"
)

func TestLoadManifestFileMissing(t *testing.T) {
	manifest, err := LoadManifestFile(filepath.Join(t.TempDir(), "manifest.json"))
	if err != nil {
		t.Fatalf("LoadManifestFile: %v", err)
	}
	if manifest.Bookmarks == nil || len(manifest.Bookmarks) != 0 {
		t.Errorf("manifest = %+v, want empty", manifest)
	}
}

func TestLoadManifestFileAllowsComments(t *testing.T) {
	directory := t.TempDir()
	content := `{
  // curated reading list
  "bookmarks": [
    {"id": 1, "key": "go-memory", "title": "Go", "description": "", "url": "https://go.dev"},
  ],
  "updatedAt": "2026-01-01T00:00:00Z",
}`
	testutil.WriteFiles(t, directory, map[string]string{"manifest.json": content})
	manifest, err := LoadManifestFile(filepath.Join(directory, "manifest.json"))
	if err != nil {
		t.Fatalf("LoadManifestFile: %v", err)
	}
	if len(manifest.Bookmarks) != 1 || manifest.Bookmarks[0].Key != "go-memory" {
		t.Errorf("manifest = %+v", manifest)
	}
}

func TestSaveManifestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "public", "manifest.json")
	manifest := &Manifest{Bookmarks: []Bookmark{{ID: 1, Key: "a", Title: "A"}}}
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

	if err := SaveManifestFile(path, manifest, now); err != nil {
		t.Fatalf("SaveManifestFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded Manifest
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("saved manifest is not JSON: %v", err)
	}
	if decoded.UpdatedAt != "2026-03-04T05:06:07Z" || len(decoded.Bookmarks) != 1 {
		t.Errorf("decoded = %+v", decoded)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %d entries", len(entries))
	}
}

func TestKeyFromURL(t *testing.T) {
	tests := []struct {
		url     string
		want    string
		wantErr bool
	}{
		{"https://r2.nikkdev.com/bookmark/my-article.json", "my-article", false},
		{"https://r2.nikkdev.com/bookmark/my-article.json?v=2", "my-article", false},
		{"https://r2.nikkdev.com/", "", true},
	}
	for _, test := range tests {
		got, err := KeyFromURL(test.url)
		if (err != nil) != test.wantErr {
			t.Errorf("KeyFromURL(%q) error = %v", test.url, err)
			continue
		}
		if got != test.want {
			t.Errorf("KeyFromURL(%q) = %q, want %q", test.url, got, test.want)
		}
	}
}

func documentWith(metadata Metadata) *Document {
	return &Document{Scrape: ScrapeResponse{Success: true, Data: ScrapeData{Metadata: metadata}}}
}

func TestUpsert(t *testing.T) {
	manifest := &Manifest{}

	first, added, err := manifest.Upsert("go-memory", documentWith(Metadata{
		Title: "plain", OGTitle: "The Go Memory Model", Description: "d", SourceURL: "https://go.dev/ref/mem", URL: "https://fallback",
	}))
	if err != nil || !added {
		t.Fatalf("first upsert = %+v, %v, %v", first, added, err)
	}
	if first.ID != 1 || first.Title != "The Go Memory Model" || first.URL != "https://go.dev/ref/mem" || first.Description != "d" {
		t.Errorf("first = %+v", first)
	}

	second, added, _ := manifest.Upsert("rust-async", documentWith(Metadata{}))
	if !added || second.ID != 2 || second.Title != "Untitled" {
		t.Errorf("second = %+v added=%v", second, added)
	}

	updated, added, _ := manifest.Upsert("go-memory", documentWith(Metadata{Title: "Renamed", OGDescription: "og"}))
	if added || updated.ID != 1 || updated.Title != "Renamed" || updated.Description != "og" {
		t.Errorf("updated = %+v added=%v", updated, added)
	}
	if len(manifest.Bookmarks) != 2 {
		t.Errorf("bookmarks = %d, want 2", len(manifest.Bookmarks))
	}
}

func TestUpsertRejectsFailedScrape(t *testing.T) {
	manifest := &Manifest{}
	if _, _, err := manifest.Upsert("x", &Document{}); err != ErrScrapeFailed {
		t.Errorf("error = %v, want ErrScrapeFailed", err)
	}
}

func TestManifestLookup(t *testing.T) {
	manifest := &Manifest{Bookmarks: []Bookmark{{ID: 3, Key: "c"}}}
	if bookmark, ok := manifest.Lookup("3"); !ok || bookmark.Key != "c" {
		t.Errorf("Lookup(3) = %+v, %v", bookmark, ok)
	}
	for _, bad := range []string{"4", "x", ""} {
		if _, ok := manifest.Lookup(bad); ok {
			t.Errorf("Lookup(%q) found a bookmark", bad)
		}
	}
}

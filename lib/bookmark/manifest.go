// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package bookmark

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
)

// LoadManifestFile reads a local manifest. The file may contain
// comments and trailing commas. A missing file yields an empty
// manifest.
func LoadManifestFile(filePath string) (*Manifest, error) {
	data, err := os.ReadFile(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return &Manifest{Bookmarks: []Bookmark{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var manifest Manifest
	if err := json.Unmarshal(jsonc.ToJSON(data), &manifest); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", filePath, err)
	}
	if manifest.Bookmarks == nil {
		manifest.Bookmarks = []Bookmark{}
	}
	return &manifest, nil
}

// SaveManifestFile stamps UpdatedAt with now and writes the manifest
// as indented JSON. The write goes through a temporary file and a
// rename so a crash never leaves a truncated manifest.
func SaveManifestFile(filePath string, manifest *Manifest, now time.Time) error {
	manifest.UpdatedAt = now.UTC().Format(time.RFC3339Nano)
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	data = append(data, '\n')

	directory := filepath.Dir(filePath)
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return fmt.Errorf("creating manifest directory: %w", err)
	}
	temporary, err := os.CreateTemp(directory, ".manifest-*.json")
	if err != nil {
		return fmt.Errorf("creating temporary manifest: %w", err)
	}
	defer os.Remove(temporary.Name())

	if _, err := temporary.Write(data); err != nil {
		temporary.Close()
		return fmt.Errorf("writing manifest: %w", err)
	}
	if err := temporary.Close(); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	if err := os.Rename(temporary.Name(), filePath); err != nil {
		return fmt.Errorf("replacing manifest: %w", err)
	}
	return nil
}

// KeyFromURL derives a bookmark key from a document URL: the final
// path segment without its ".json" extension.
func KeyFromURL(documentURL string) (string, error) {
	parsed, err := url.Parse(documentURL)
	if err != nil {
		return "", fmt.Errorf("invalid document URL %q: %w", documentURL, err)
	}
	key := strings.TrimSuffix(path.Base(parsed.Path), ".json")
	if key == "" || key == "." || key == "/" {
		return "", fmt.Errorf("cannot derive a bookmark key from %q", documentURL)
	}
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	return key, nil
}

// Upsert adds or updates the bookmark for key from a scraped
// document's metadata. An existing bookmark keeps its ID; a new one is
// numbered one past the current count. Reports whether the bookmark
// was added rather than updated.
func (manifest *Manifest) Upsert(key string, document *Document) (Bookmark, bool, error) {
	if !document.Scrape.Success {
		return Bookmark{}, false, ErrScrapeFailed
	}
	metadata := document.Scrape.Data.Metadata
	bookmark := Bookmark{
		Key:         key,
		Title:       metadata.DisplayTitle(),
		Description: metadata.DisplayDescription(),
		URL:         metadata.CanonicalURL(),
	}

	for index, existing := range manifest.Bookmarks {
		if existing.Key == key {
			bookmark.ID = existing.ID
			manifest.Bookmarks[index] = bookmark
			return bookmark, false, nil
		}
	}
	bookmark.ID = len(manifest.Bookmarks) + 1
	manifest.Bookmarks = append(manifest.Bookmarks, bookmark)
	return bookmark, true, nil
}

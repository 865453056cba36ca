// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package bookmark

import (
	"errors"
	"strconv"
)

// Bookmark is one manifest entry.
type Bookmark struct {
	ID          int    `json:"id"`
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// FileName is the name of the bookmark's leaf in the content tree.
func (bookmark Bookmark) FileName() string {
	return bookmark.Key + ".md"
}

// Manifest is the list of all bookmarks.
type Manifest struct {
	Bookmarks []Bookmark `json:"bookmarks"`
	UpdatedAt string     `json:"updatedAt"`
}

// ByID returns the bookmark with the given id.
func (manifest *Manifest) ByID(id int) (Bookmark, bool) {
	for _, bookmark := range manifest.Bookmarks {
		if bookmark.ID == id {
			return bookmark, true
		}
	}
	return Bookmark{}, false
}

// Lookup resolves a user-typed id ("3") to a bookmark.
func (manifest *Manifest) Lookup(id string) (Bookmark, bool) {
	number, err := strconv.Atoi(id)
	if err != nil {
		return Bookmark{}, false
	}
	return manifest.ByID(number)
}

// ByKey returns the bookmark with the given key.
func (manifest *Manifest) ByKey(key string) (Bookmark, bool) {
	for _, bookmark := range manifest.Bookmarks {
		if bookmark.Key == key {
			return bookmark, true
		}
	}
	return Bookmark{}, false
}

// Metadata is the page metadata captured by the scraper.
type Metadata struct {
	Title         string `json:"title,omitempty"`
	OGTitle       string `json:"ogTitle,omitempty"`
	Description   string `json:"description,omitempty"`
	OGDescription string `json:"ogDescription,omitempty"`
	URL           string `json:"url,omitempty"`
	SourceURL     string `json:"sourceURL,omitempty"`
	OGImage       string `json:"ogImage,omitempty"`
}

// DisplayTitle prefers the Open Graph title.
func (metadata Metadata) DisplayTitle() string {
	switch {
	case metadata.OGTitle != "":
		return metadata.OGTitle
	case metadata.Title != "":
		return metadata.Title
	}
	return "Untitled"
}

// DisplayDescription prefers the Open Graph description.
func (metadata Metadata) DisplayDescription() string {
	if metadata.OGDescription != "" {
		return metadata.OGDescription
	}
	return metadata.Description
}

// CanonicalURL prefers the URL the scrape was requested for.
func (metadata Metadata) CanonicalURL() string {
	if metadata.SourceURL != "" {
		return metadata.SourceURL
	}
	return metadata.URL
}

// Document is a scraped bookmark as stored under "<key>.json".
type Document struct {
	URL       string         `json:"url"`
	ScrapedAt string         `json:"scrapedAt"`
	Scrape    ScrapeResponse `json:"firecrawlResponse"`
}

// ScrapeResponse is the scraper's result envelope.
type ScrapeResponse struct {
	Success bool       `json:"success"`
	Data    ScrapeData `json:"data"`
}

// ScrapeData is the scraped page.
type ScrapeData struct {
	Markdown string   `json:"markdown"`
	Metadata Metadata `json:"metadata"`
}

// ErrScrapeFailed is returned for documents whose scrape did not
// succeed.
var ErrScrapeFailed = errors.New("bookmark: scrape did not succeed")

// Markdown returns the article text, or ErrScrapeFailed.
func (document *Document) Markdown() (string, error) {
	if !document.Scrape.Success {
		return "", ErrScrapeFailed
	}
	return document.Scrape.Data.Markdown, nil
}

// Progress is the reader's position in one bookmark.
type Progress struct {
	BookmarkKey      string  `json:"bookmarkKey"`
	ScrollPosition   float64 `json:"scrollPosition"`
	ScrollPercentage float64 `json:"scrollPercentage"`
	LastReadAt       string  `json:"lastReadAt"`
	IsRead           bool    `json:"isRead"`
	IsFavourite      bool    `json:"isFavourite"`
}

// Annotation is a highlighted span of a bookmark's markdown with an
// optional note. Offsets are byte offsets into the markdown.
type Annotation struct {
	ID           string `json:"id"`
	BookmarkKey  string `json:"bookmarkKey"`
	SelectedText string `json:"selectedText"`
	Note         string `json:"note"`
	StartOffset  int    `json:"startOffset"`
	EndOffset    int    `json:"endOffset"`
	CreatedAt    string `json:"createdAt"`
}

// NewAnnotation is the request body for creating an annotation.
type NewAnnotation struct {
	SelectedText string `json:"selectedText"`
	Note         string `json:"note"`
	StartOffset  int    `json:"startOffset"`
	EndOffset    int    `json:"endOffset"`
}

// Enriched is a bookmark with the reader's progress and annotations.
// Progress is nil when the bookmark has never been opened.
type Enriched struct {
	Bookmark
	Progress    *Progress
	Annotations []Annotation
}

// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package bookmark

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ndp190/termfolio/lib/clock"
)

const sampleDocument = `{
  "url": "https://r2.nikkdev.com/bookmark/go-memory.json",
  "scrapedAt": "2026-02-01T10:00:00Z",
  "firecrawlResponse": {
    "success": true,
    "data": {
      "markdown": "# The Go Memory Model\n\nHappens before.",
      "metadata": {"title": "Go Memory", "ogTitle": "The Go Memory Model", "sourceURL": "https://go.dev/ref/mem"}
    }
  }
}`

// newTestClient creates a Client whose every URL points at server.
func newTestClient(t *testing.T, server *httptest.Server, withAPI bool) *Client {
	t.Helper()
	config := Config{
		ManifestURL:    server.URL + "/bookmark/manifest.json",
		ContentBaseURL: server.URL + "/bookmark",
		HTTPClient:     server.Client(),
	}
	if withAPI {
		config.APIBaseURL = server.URL
	}
	client, err := NewClient(config)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestNewClientRejectsBadURLs(t *testing.T) {
	for _, bad := range []string{"ftp://example.com/m.json", "not a url", "/relative/path"} {
		if _, err := NewClient(Config{ManifestURL: bad}); err == nil {
			t.Errorf("NewClient(%q) succeeded, want error", bad)
		}
	}
}

func TestManifestUsesETag(t *testing.T) {
	var requests, conditional atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requests.Add(1)
		if request.Header.Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID")
		}
		if request.Header.Get("If-None-Match") == `"v1"` {
			conditional.Add(1)
			writer.WriteHeader(http.StatusNotModified)
			return
		}
		writer.Header().Set("ETag", `"v1"`)
		io.WriteString(writer, `{"bookmarks":[{"id":1,"key":"go-memory","title":"Go","description":"d","url":"https://go.dev"}],"updatedAt":"2026-02-01"}`)
	}))
	defer server.Close()

	client := newTestClient(t, server, false)
	for attempt := 0; attempt < 2; attempt++ {
		manifest, err := client.Manifest(context.Background())
		if err != nil {
			t.Fatalf("Manifest attempt %d: %v", attempt, err)
		}
		if len(manifest.Bookmarks) != 1 || manifest.Bookmarks[0].Key != "go-memory" {
			t.Fatalf("attempt %d manifest = %+v", attempt, manifest)
		}
	}
	if requests.Load() != 2 || conditional.Load() != 1 {
		t.Errorf("requests = %d, conditional = %d; want 2 and 1", requests.Load(), conditional.Load())
	}
}

func TestManifestErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		http.NotFound(writer, request)
	}))
	defer server.Close()

	_, err := newTestClient(t, server, false).Manifest(context.Background())
	if !IsNotFound(err) {
		t.Fatalf("error = %v, want not found", err)
	}
}

func TestDocumentCachedInMemory(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requests.Add(1)
		if request.URL.Path != "/bookmark/go-memory.json" {
			http.NotFound(writer, request)
			return
		}
		io.WriteString(writer, sampleDocument)
	}))
	defer server.Close()

	client := newTestClient(t, server, false)
	for attempt := 0; attempt < 3; attempt++ {
		document, err := client.Document(context.Background(), "go-memory")
		if err != nil {
			t.Fatalf("Document: %v", err)
		}
		markdown, err := document.Markdown()
		if err != nil || !strings.HasPrefix(markdown, "# The Go Memory Model") {
			t.Fatalf("markdown = %q, %v", markdown, err)
		}
	}
	if requests.Load() != 1 {
		t.Errorf("requests = %d, want 1", requests.Load())
	}
}

func TestDocumentRejectsTraversalKeys(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		t.Errorf("unexpected request %s", request.URL.Path)
	}))
	defer server.Close()

	client := newTestClient(t, server, false)
	for _, key := range []string{"", "..", "a/b", `a\b`} {
		if _, err := client.Document(context.Background(), key); err == nil {
			t.Errorf("Document(%q) succeeded", key)
		}
	}
}

func TestDocumentUsesDiskCache(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requests.Add(1)
		io.WriteString(writer, sampleDocument)
	}))
	defer server.Close()

	cache, err := NewDiskCache(t.TempDir(), time.Hour, clock.Fake(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatal(err)
	}

	first, err := NewClient(Config{
		ContentBaseURL: server.URL + "/bookmark",
		HTTPClient:     server.Client(),
		Cache:          cache,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := first.Document(context.Background(), "go-memory"); err != nil {
		t.Fatal(err)
	}

	// A second client has an empty memory cache but shares the disk.
	second, err := NewClient(Config{
		ContentBaseURL: server.URL + "/bookmark",
		HTTPClient:     server.Client(),
		Cache:          cache,
	})
	if err != nil {
		t.Fatal(err)
	}
	document, err := second.Document(context.Background(), "go-memory")
	if err != nil {
		t.Fatal(err)
	}
	if document.Scrape.Data.Metadata.OGTitle != "The Go Memory Model" {
		t.Errorf("cached document = %+v", document)
	}
	if requests.Load() != 1 {
		t.Errorf("requests = %d, want 1", requests.Load())
	}
}

type staticSource map[string]*Document

func (source staticSource) Document(_ context.Context, key string) (*Document, error) {
	document, ok := source[key]
	if !ok {
		return nil, &APIError{StatusCode: http.StatusNotFound, Message: "missing"}
	}
	return document, nil
}

func TestDocumentUsesConfiguredSource(t *testing.T) {
	var document Document
	if err := json.Unmarshal([]byte(sampleDocument), &document); err != nil {
		t.Fatal(err)
	}
	client, err := NewClient(Config{Source: staticSource{"go-memory": &document}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.Document(context.Background(), "go-memory"); err != nil {
		t.Errorf("Document: %v", err)
	}
	if _, err := client.Document(context.Background(), "other"); !IsNotFound(err) {
		t.Errorf("error = %v, want not found", err)
	}
}

func readingAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		switch {
		case request.Method == http.MethodGet && request.URL.Path == "/api/progress/go-memory":
			io.WriteString(writer, `{"progress":{"bookmarkKey":"go-memory","scrollPosition":120,"scrollPercentage":40,"lastReadAt":"2026-02-02T00:00:00Z","isRead":false,"isFavourite":true}}`)
		case request.Method == http.MethodGet && strings.HasPrefix(request.URL.Path, "/api/progress/"):
			io.WriteString(writer, `{"progress":null}`)
		case request.Method == http.MethodPost && request.URL.Path == "/api/progress/go-memory":
			var body struct {
				ScrollPosition   float64 `json:"scrollPosition"`
				ScrollPercentage float64 `json:"scrollPercentage"`
			}
			if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
				t.Errorf("decoding progress body: %v", err)
			}
			json.NewEncoder(writer).Encode(map[string]any{
				"success": true,
				"progress": Progress{
					BookmarkKey:      "go-memory",
					ScrollPosition:   body.ScrollPosition,
					ScrollPercentage: body.ScrollPercentage,
				},
			})
		case request.Method == http.MethodGet && request.URL.Path == "/api/annotations/go-memory":
			io.WriteString(writer, `{"annotations":[{"id":"a1","bookmarkKey":"go-memory","selectedText":"Happens","note":"key idea","startOffset":23,"endOffset":30}]}`)
		case request.Method == http.MethodGet && strings.HasPrefix(request.URL.Path, "/api/annotations/"):
			io.WriteString(writer, `{"annotations":[]}`)
		case request.Method == http.MethodPost && request.URL.Path == "/api/annotations/go-memory":
			var body NewAnnotation
			json.NewDecoder(request.Body).Decode(&body)
			json.NewEncoder(writer).Encode(map[string]any{
				"success": true,
				"annotation": Annotation{ID: "a2", BookmarkKey: "go-memory", SelectedText: body.SelectedText,
					Note: body.Note, StartOffset: body.StartOffset, EndOffset: body.EndOffset},
			})
		case request.Method == http.MethodDelete && request.URL.Path == "/api/annotations/go-memory/a1":
			io.WriteString(writer, `{"success":true}`)
		case request.Method == http.MethodDelete:
			writer.WriteHeader(http.StatusNotFound)
			io.WriteString(writer, `{"error":"Annotation not found"}`)
		default:
			writer.WriteHeader(http.StatusInternalServerError)
			io.WriteString(writer, `{"error":"broken"}`)
		}
	}))
}

func TestReadingAPI(t *testing.T) {
	server := readingAPIServer(t)
	defer server.Close()
	client := newTestClient(t, server, true)
	ctx := context.Background()

	progress, err := client.Progress(ctx, "go-memory")
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if progress == nil || progress.ScrollPercentage != 40 || !progress.IsFavourite {
		t.Errorf("progress = %+v", progress)
	}

	progress, err = client.Progress(ctx, "unread")
	if err != nil || progress != nil {
		t.Errorf("unread progress = %+v, %v", progress, err)
	}

	saved, err := client.SaveProgress(ctx, "go-memory", 300, 75)
	if err != nil {
		t.Fatalf("SaveProgress: %v", err)
	}
	if saved.ScrollPercentage != 75 || saved.ScrollPosition != 300 {
		t.Errorf("saved = %+v", saved)
	}

	annotations, err := client.Annotations(ctx, "go-memory")
	if err != nil || len(annotations) != 1 || annotations[0].Note != "key idea" {
		t.Errorf("annotations = %+v, %v", annotations, err)
	}

	created, err := client.AddAnnotation(ctx, "go-memory", NewAnnotation{SelectedText: "Go", StartOffset: 6, EndOffset: 8})
	if err != nil || created.ID != "a2" || created.SelectedText != "Go" {
		t.Errorf("created = %+v, %v", created, err)
	}

	if err := client.DeleteAnnotation(ctx, "go-memory", "a1"); err != nil {
		t.Errorf("DeleteAnnotation: %v", err)
	}
	err = client.DeleteAnnotation(ctx, "go-memory", "missing")
	if !IsNotFound(err) {
		t.Errorf("delete missing = %v, want not found", err)
	}
	if !strings.Contains(err.Error(), "Annotation not found") {
		t.Errorf("error message = %q", err.Error())
	}
}

func TestReadingAPINotConfigured(t *testing.T) {
	client, err := NewClient(Config{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.Progress(context.Background(), "go-memory"); err != ErrNoReadingAPI {
		t.Errorf("error = %v, want ErrNoReadingAPI", err)
	}
}

func TestEnrich(t *testing.T) {
	server := readingAPIServer(t)
	defer server.Close()
	client := newTestClient(t, server, true)

	bookmarks := []Bookmark{{ID: 1, Key: "go-memory"}, {ID: 2, Key: "unread"}}
	enriched := client.Enrich(context.Background(), bookmarks)

	if len(enriched) != 2 || enriched[0].Key != "go-memory" || enriched[1].Key != "unread" {
		t.Fatalf("enriched = %+v", enriched)
	}
	if enriched[0].Progress == nil || len(enriched[0].Annotations) != 1 {
		t.Errorf("go-memory enrichment = %+v", enriched[0])
	}
	if enriched[1].Progress != nil || len(enriched[1].Annotations) != 0 {
		t.Errorf("unread enrichment = %+v", enriched[1])
	}
}

func TestEnrichWithoutAPI(t *testing.T) {
	client, err := NewClient(Config{})
	if err != nil {
		t.Fatal(err)
	}
	enriched := client.Enrich(context.Background(), []Bookmark{{ID: 1, Key: "a"}})
	if len(enriched) != 1 || enriched[0].Progress != nil {
		t.Errorf("enriched = %+v", enriched)
	}
}

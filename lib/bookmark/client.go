// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package bookmark

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v4"

	"github.com/ndp190/termfolio/lib/netutil"
)

const (
	// DefaultManifestURL is the published manifest.
	DefaultManifestURL = "https://r2.nikkdev.com/bookmark/manifest.json"

	// DefaultContentBaseURL is where "<key>.json" documents live.
	DefaultContentBaseURL = "https://r2.nikkdev.com/bookmark"

	// enrichConcurrency bounds parallel progress/annotation lookups.
	enrichConcurrency = 4
)

// ContentSource fetches scraped documents by bookmark key.
type ContentSource interface {
	Document(ctx context.Context, key string) (*Document, error)
}

// Config holds configuration for creating a [Client].
type Config struct {
	// ManifestURL is the manifest location. Defaults to
	// DefaultManifestURL.
	ManifestURL string

	// ContentBaseURL is the directory URL holding "<key>.json"
	// documents. Defaults to DefaultContentBaseURL.
	ContentBaseURL string

	// APIBaseURL is the reading API root. Empty disables progress
	// and annotations.
	APIBaseURL string

	// Source overrides HTTP document fetches, e.g. with an
	// [S3Source]. Optional.
	Source ContentSource

	// Cache persists documents across runs. Optional.
	Cache *DiskCache

	// HTTPClient is used for all HTTP requests. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client

	// Logger is used for structured logging. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Client reads the manifest, documents, and the reading API.
// Safe for concurrent use.
type Client struct {
	manifestURL    string
	contentBaseURL string
	apiBaseURL     string
	source         ContentSource
	cache          *DiskCache
	httpClient     *http.Client
	etagCache      *etagCache
	documents      *xsync.Map[string, *Document]
	logger         *slog.Logger
}

// NewClient creates a client from the given configuration. Returns an
// error if any configured URL is not absolute http(s).
func NewClient(config Config) (*Client, error) {
	manifestURL := config.ManifestURL
	if manifestURL == "" {
		manifestURL = DefaultManifestURL
	}
	contentBaseURL := config.ContentBaseURL
	if contentBaseURL == "" {
		contentBaseURL = DefaultContentBaseURL
	}
	contentBaseURL = strings.TrimRight(contentBaseURL, "/")
	apiBaseURL := strings.TrimRight(config.APIBaseURL, "/")

	for _, candidate := range []string{manifestURL, contentBaseURL, apiBaseURL} {
		if candidate == "" {
			continue
		}
		if err := checkURL(candidate); err != nil {
			return nil, err
		}
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		manifestURL:    manifestURL,
		contentBaseURL: contentBaseURL,
		apiBaseURL:     apiBaseURL,
		source:         config.Source,
		cache:          config.Cache,
		httpClient:     httpClient,
		etagCache:      newETagCache(),
		documents:      xsync.NewMap[string, *Document](),
		logger:         logger,
	}, nil
}

func checkURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("bookmark: invalid URL %q: %w", raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("bookmark: URL %q must be http or https", raw)
	}
	if parsed.Host == "" {
		return fmt.Errorf("bookmark: URL %q has no host", raw)
	}
	return nil
}

// HasReadingAPI reports whether progress and annotations are
// available.
func (client *Client) HasReadingAPI() bool {
	return client.apiBaseURL != ""
}

// Manifest fetches the bookmark manifest. Repeated calls revalidate
// with If-None-Match.
func (client *Client) Manifest(ctx context.Context) (*Manifest, error) {
	var manifest Manifest
	if err := client.get(ctx, client.manifestURL, &manifest); err != nil {
		return nil, err
	}
	return &manifest, nil
}

// Document returns the scraped document for key. Documents are cached
// in memory for the life of the client and, when configured, on disk.
func (client *Client) Document(ctx context.Context, key string) (*Document, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	if document, ok := client.documents.Load(key); ok {
		return document, nil
	}

	if client.cache != nil {
		document, err := client.cache.Get(key)
		if err == nil && document != nil {
			client.documents.Store(key, document)
			return document, nil
		}
		if err != nil {
			client.logger.Warn("reading bookmark cache", "key", key, "error", err)
		}
	}

	document, err := client.fetchDocument(ctx, key)
	if err != nil {
		return nil, err
	}
	client.documents.Store(key, document)

	if client.cache != nil {
		if err := client.cache.Put(key, document); err != nil {
			client.logger.Warn("writing bookmark cache", "key", key, "error", err)
		}
	}
	return document, nil
}

func (client *Client) fetchDocument(ctx context.Context, key string) (*Document, error) {
	if client.source != nil {
		return client.source.Document(ctx, key)
	}
	return FetchDocument(ctx, client.httpClient, client.DocumentURL(key))
}

// DocumentURL returns the HTTP location of the document for key.
func (client *Client) DocumentURL(key string) string {
	return client.contentBaseURL + "/" + url.PathEscape(key) + ".json"
}

// FetchDocument GETs a scraped document from an arbitrary URL.
func FetchDocument(ctx context.Context, httpClient *http.Client, documentURL string) (*Document, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, documentURL, nil)
	if err != nil {
		return nil, fmt.Errorf("bookmark: creating request: %w", err)
	}
	request.Header.Set("Accept", "application/json")

	response, err := httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("bookmark: GET %s: %w", documentURL, err)
	}
	defer response.Body.Close()

	body, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, fmt.Errorf("bookmark: reading response body: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, parseAPIError(response.StatusCode, documentURL, body)
	}

	var document Document
	if err := json.Unmarshal(body, &document); err != nil {
		return nil, fmt.Errorf("bookmark: decoding %s: %w", documentURL, err)
	}
	return &document, nil
}

// Progress returns the reading progress for key, or nil if the
// bookmark has never been opened.
func (client *Client) Progress(ctx context.Context, key string) (*Progress, error) {
	path, err := client.apiPath("progress", key)
	if err != nil {
		return nil, err
	}
	var response struct {
		Progress *Progress `json:"progress"`
	}
	if err := client.get(ctx, path, &response); err != nil {
		return nil, err
	}
	return response.Progress, nil
}

// SaveProgress records the reader's scroll position for key.
func (client *Client) SaveProgress(ctx context.Context, key string, position, percentage float64) (*Progress, error) {
	path, err := client.apiPath("progress", key)
	if err != nil {
		return nil, err
	}
	request := struct {
		ScrollPosition   float64 `json:"scrollPosition"`
		ScrollPercentage float64 `json:"scrollPercentage"`
	}{position, percentage}
	var response struct {
		Progress *Progress `json:"progress"`
	}
	if err := client.post(ctx, path, request, &response); err != nil {
		return nil, err
	}
	return response.Progress, nil
}

// Annotations returns the annotations on key in creation order.
func (client *Client) Annotations(ctx context.Context, key string) ([]Annotation, error) {
	path, err := client.apiPath("annotations", key)
	if err != nil {
		return nil, err
	}
	var response struct {
		Annotations []Annotation `json:"annotations"`
	}
	if err := client.get(ctx, path, &response); err != nil {
		return nil, err
	}
	return response.Annotations, nil
}

// AddAnnotation creates an annotation on key and returns it with its
// server-assigned ID.
func (client *Client) AddAnnotation(ctx context.Context, key string, annotation NewAnnotation) (*Annotation, error) {
	path, err := client.apiPath("annotations", key)
	if err != nil {
		return nil, err
	}
	var response struct {
		Annotation *Annotation `json:"annotation"`
	}
	if err := client.post(ctx, path, annotation, &response); err != nil {
		return nil, err
	}
	if response.Annotation == nil {
		return nil, fmt.Errorf("bookmark: annotation missing from response")
	}
	return response.Annotation, nil
}

// DeleteAnnotation removes one annotation from key.
func (client *Client) DeleteAnnotation(ctx context.Context, key, id string) error {
	path, err := client.apiPath("annotations", key)
	if err != nil {
		return err
	}
	_, err = client.do(ctx, http.MethodDelete, path+"/"+url.PathEscape(id), nil)
	return err
}

// Enrich attaches progress and annotations to each bookmark. Lookups
// that fail leave the bookmark unenriched; enrichment is decoration
// and never fails the listing. Without a reading API every bookmark
// comes back bare.
func (client *Client) Enrich(ctx context.Context, bookmarks []Bookmark) []Enriched {
	enriched := make([]Enriched, len(bookmarks))
	for index, bookmark := range bookmarks {
		enriched[index] = Enriched{Bookmark: bookmark}
	}
	if !client.HasReadingAPI() {
		return enriched
	}

	semaphore := make(chan struct{}, enrichConcurrency)
	var waitGroup sync.WaitGroup
	for index := range enriched {
		waitGroup.Add(1)
		go func() {
			defer waitGroup.Done()
			select {
			case semaphore <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-semaphore }()

			item := &enriched[index]
			progress, err := client.Progress(ctx, item.Key)
			if err != nil {
				client.logger.Debug("bookmark progress unavailable", "key", item.Key, "error", err)
			} else {
				item.Progress = progress
			}
			annotations, err := client.Annotations(ctx, item.Key)
			if err != nil {
				client.logger.Debug("bookmark annotations unavailable", "key", item.Key, "error", err)
			} else {
				item.Annotations = annotations
			}
		}()
	}
	waitGroup.Wait()
	return enriched
}

func (client *Client) apiPath(resource, key string) (string, error) {
	if !client.HasReadingAPI() {
		return "", ErrNoReadingAPI
	}
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	return client.apiBaseURL + "/api/" + resource + "/" + url.PathEscape(key), nil
}

// ValidateKey rejects keys that could escape the content directory.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("bookmark: empty key")
	}
	if strings.ContainsAny(key, "/\\") || key == "." || key == ".." {
		return fmt.Errorf("bookmark: invalid key %q", key)
	}
	return nil
}

// do executes a request against an absolute URL and returns the body.
// GET responses carrying an ETag are cached, and a later 304 returns
// the cached body. Non-2xx responses return an *APIError.
func (client *Client) do(ctx context.Context, method, requestURL string, requestBody any) ([]byte, error) {
	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("bookmark: encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("bookmark: creating request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("X-Request-ID", uuid.NewString())
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodGet {
		if etag := client.etagCache.get(requestURL); etag != "" {
			request.Header.Set("If-None-Match", etag)
		}
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("bookmark: %s %s: %w", method, requestURL, err)
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotModified {
		if cached := client.etagCache.body(requestURL); cached != nil {
			return cached, nil
		}
	}

	body, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, fmt.Errorf("bookmark: reading response body: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, parseAPIError(response.StatusCode, requestURL, body)
	}

	if method == http.MethodGet {
		client.etagCache.put(requestURL, response.Header.Get("ETag"), body)
	}
	return body, nil
}

func (client *Client) get(ctx context.Context, requestURL string, result any) error {
	body, err := client.do(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("bookmark: decoding %s: %w", requestURL, err)
	}
	return nil
}

func (client *Client) post(ctx context.Context, requestURL string, requestBody, result any) error {
	body, err := client.do(ctx, http.MethodPost, requestURL, requestBody)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("bookmark: decoding %s: %w", requestURL, err)
	}
	return nil
}

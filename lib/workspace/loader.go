// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"context"
	"log/slog"
	"time"

	"github.com/ndp190/termfolio/lib/bookmark"
)

// BookmarkService is the part of the bookmark client the loader uses.
type BookmarkService interface {
	Manifest(ctx context.Context) (*bookmark.Manifest, error)
	Document(ctx context.Context, key string) (*bookmark.Document, error)
	Enrich(ctx context.Context, bookmarks []bookmark.Bookmark) []bookmark.Enriched
}

// ManifestResult is the outcome of one manifest fetch.
type ManifestResult struct {
	Generation uint64
	Manifest   *bookmark.Manifest
	Enriched   []bookmark.Enriched
	Err        error
}

// ContentResult is the outcome of one content fetch.
type ContentResult struct {
	Key      string
	Markdown string
	Err      error
}

// Loader performs the network side of bookmark effects. Its fetch
// methods block and touch no workspace state, so front ends can run
// them on any goroutine and hand the results to [Workspace.ApplyManifestResult]
// and [Workspace.ApplyContentResult] wherever they apply state.
type Loader struct {
	service BookmarkService
	timeout time.Duration
	logger  *slog.Logger
}

// NewLoader returns a loader. A zero timeout means no per-fetch
// deadline beyond the caller's context.
func NewLoader(service BookmarkService, timeout time.Duration, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{service: service, timeout: timeout, logger: logger}
}

func (loader *Loader) context(ctx context.Context) (context.Context, context.CancelFunc) {
	if loader.timeout > 0 {
		return context.WithTimeout(ctx, loader.timeout)
	}
	return context.WithCancel(ctx)
}

// FetchManifest fetches the manifest and the reading progress of every
// bookmark in it.
func (loader *Loader) FetchManifest(ctx context.Context, generation uint64) ManifestResult {
	ctx, cancel := loader.context(ctx)
	defer cancel()

	start := time.Now()
	manifest, err := loader.service.Manifest(ctx)
	if err != nil {
		loader.logger.Warn("fetching bookmark manifest failed", "generation", generation, "error", err)
		return ManifestResult{Generation: generation, Err: err}
	}
	enriched := loader.service.Enrich(ctx, manifest.Bookmarks)
	loader.logger.Info("bookmark manifest loaded",
		"generation", generation,
		"bookmarks", len(manifest.Bookmarks),
		"elapsed", time.Since(start))
	return ManifestResult{Generation: generation, Manifest: manifest, Enriched: enriched}
}

// FetchContent fetches the article markdown for key.
func (loader *Loader) FetchContent(ctx context.Context, key string) ContentResult {
	ctx, cancel := loader.context(ctx)
	defer cancel()

	document, err := loader.service.Document(ctx, key)
	if err == nil {
		var markdown string
		markdown, err = document.Markdown()
		if err == nil {
			return ContentResult{Key: key, Markdown: markdown}
		}
	}
	loader.logger.Warn("fetching bookmark content failed", "key", key, "error", err)
	return ContentResult{Key: key, Err: err}
}

// ApplyManifestResult applies a fetch outcome. Reports whether it was
// applied rather than discarded as stale.
func (workspace *Workspace) ApplyManifestResult(result ManifestResult) bool {
	if result.Err != nil {
		return workspace.FailManifest(result.Generation, result.Err)
	}
	return workspace.ApplyManifest(result.Generation, result.Manifest, result.Enriched)
}

// ApplyContentResult applies a content fetch outcome.
func (workspace *Workspace) ApplyContentResult(result ContentResult) {
	if result.Err != nil {
		workspace.FailContent(result.Key, result.Err)
		return
	}
	workspace.ApplyContent(result.Key, result.Markdown)
}

// Refresh fetches the manifest synchronously and applies it.
func (workspace *Workspace) Refresh(ctx context.Context, loader *Loader) bool {
	return workspace.ApplyManifestResult(loader.FetchManifest(ctx, workspace.BeginManifestFetch()))
}

// LoadContent fetches key's content synchronously unless it is
// already loaded or loading.
func (workspace *Workspace) LoadContent(ctx context.Context, loader *Loader, key string) {
	if !workspace.BeginContent(key) {
		return
	}
	workspace.ApplyContentResult(loader.FetchContent(ctx, key))
}

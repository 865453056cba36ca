// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"github.com/ndp190/termfolio/lib/bookmark"
)

// BeginManifestFetch issues the generation number for a new manifest
// fetch. Until a manifest has loaded the status becomes loading.
func (workspace *Workspace) BeginManifestFetch() uint64 {
	workspace.mu.Lock()
	defer workspace.mu.Unlock()
	workspace.issued++
	if workspace.manifestStatus != ManifestReady {
		workspace.manifestStatus = ManifestLoading
	}
	return workspace.issued
}

// ApplyManifest installs the manifest fetched under generation and
// rebuilds the tree with a fresh bookmarks directory. Results older
// than the last applied generation are discarded, so fetches that
// complete out of order never overwrite newer data. Reports whether
// the result was applied.
func (workspace *Workspace) ApplyManifest(generation uint64, manifest *bookmark.Manifest, enriched []bookmark.Enriched) bool {
	workspace.mu.Lock()
	defer workspace.mu.Unlock()
	if generation < workspace.applied {
		workspace.logger.Debug("discarding stale manifest",
			"generation", generation, "applied", workspace.applied)
		return false
	}
	workspace.applied = generation
	workspace.manifest = manifest
	workspace.manifestStatus = ManifestReady
	workspace.manifestErr = nil

	workspace.enriched = make(map[string]bookmark.Enriched, len(enriched))
	for _, item := range enriched {
		workspace.enriched[item.Key] = item
	}
	workspace.rebuildLocked()
	return true
}

// FailManifest records a failed fetch. A manifest that is already
// loaded stays in place. Stale failures are discarded like stale
// results.
func (workspace *Workspace) FailManifest(generation uint64, err error) bool {
	workspace.mu.Lock()
	defer workspace.mu.Unlock()
	if generation < workspace.applied {
		return false
	}
	workspace.applied = generation
	workspace.manifestErr = err
	if workspace.manifest == nil {
		workspace.manifestStatus = ManifestFailed
	}
	return true
}

// Manifest returns the loaded manifest (nil before the first
// successful fetch) and the manifest status.
func (workspace *Workspace) Manifest() (*bookmark.Manifest, ManifestStatus) {
	workspace.mu.RLock()
	defer workspace.mu.RUnlock()
	return workspace.manifest, workspace.manifestStatus
}

// ManifestError returns the error of the most recent failed fetch, or
// nil once a fetch succeeds.
func (workspace *Workspace) ManifestError() error {
	workspace.mu.RLock()
	defer workspace.mu.RUnlock()
	return workspace.manifestErr
}

// Enriched returns the reading progress and annotations for key.
func (workspace *Workspace) Enriched(key string) (bookmark.Enriched, bool) {
	workspace.mu.RLock()
	defer workspace.mu.RUnlock()
	item, ok := workspace.enriched[key]
	return item, ok
}

// BeginContent marks key's content as loading. Returns false when the
// content is already loading or loaded, in which case no fetch is
// needed. A failed fetch may be retried.
func (workspace *Workspace) BeginContent(key string) bool {
	workspace.mu.Lock()
	defer workspace.mu.Unlock()
	if existing, ok := workspace.contents[key]; ok && existing.Status != ContentFailed {
		return false
	}
	workspace.contents[key] = Content{Status: ContentLoading}
	return true
}

// ApplyContent stores key's fetched markdown.
func (workspace *Workspace) ApplyContent(key, markdown string) {
	workspace.mu.Lock()
	defer workspace.mu.Unlock()
	workspace.contents[key] = Content{Status: ContentReady, Markdown: markdown}
}

// FailContent records a failed content fetch for key.
func (workspace *Workspace) FailContent(key string, err error) {
	workspace.mu.Lock()
	defer workspace.mu.Unlock()
	workspace.contents[key] = Content{Status: ContentFailed, Err: err}
}

// Content returns key's content state. ok is false when no fetch has
// been requested.
func (workspace *Workspace) Content(key string) (Content, bool) {
	workspace.mu.RLock()
	defer workspace.mu.RUnlock()
	content, ok := workspace.contents[key]
	return content, ok
}

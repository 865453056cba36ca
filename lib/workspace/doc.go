// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

// Package workspace holds the mutable state behind a termfolio shell:
// the browsable tree, the bookmark manifest and fetched contents, the
// selected theme, and the selected language.
//
// The shell core renders from this state and never changes it.
// Changes arrive two ways: effects drained from the session
// ([Workspace.Apply] for theme and language), and results of
// background fetches run by a [Loader].
//
// Manifest fetches are numbered. [Workspace.BeginManifestFetch]
// issues a generation, and [Workspace.ApplyManifest] ignores any
// result older than the newest one already applied, so a slow early
// response cannot overwrite a later one. Every applied manifest
// produces a new tree root with a freshly built bookmarks directory;
// the previous root is never modified.
package workspace

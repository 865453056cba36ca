// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

// Package vfsmount exposes a [vfs.Node] tree as a read-only FUSE
// filesystem, so the portfolio content (bookmark leaves included) can
// be browsed with ordinary tools.
//
// The mount follows the tree returned by [Options].Tree: directories
// are resolved against the latest tree on every lookup and listing.
// A file's content is pinned when it is opened. Every mutation
// returns EROFS.
package vfsmount

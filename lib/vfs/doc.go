// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

// Package vfs provides the in-memory virtual filesystem that the
// termfolio shell browses with cat, ls, and tree.
//
// A tree is a set of [Node] values rooted at a named directory (by
// convention "terminal"). Every node carries its fully-qualified
// slash-separated path, and a child's path is always its parent's path
// plus "/" plus the child's name. Trees are immutable once built:
// operations that change the tree ([WithDirectory]) return a new root
// that shares unchanged subtrees with the old one, so holders of the
// previous root keep a consistent view.
//
// Path resolution follows shell conventions:
//
//   - [FindNode] looks up an exact node, tolerating a leading "./" or
//     "/", a trailing "/", and an optional root-name prefix.
//   - [ListMatchingPaths] produces level-by-level completion
//     candidates: only the direct children of the deepest complete
//     directory in the partial path, in tree order, with directories
//     suffixed by "/".
//
// [Load] builds a tree from any fs.FS (typically os.DirFS over a
// content directory). Each node carries a BLAKE3 digest: file nodes
// hash their content, directory nodes hash their children's names
// and digests, so [Node.Fingerprint] on the root changes exactly when
// something in the tree changed. [Watch] uses that to skip rebuilds
// when an inotify event did not change any content.
package vfs

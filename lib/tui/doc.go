// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui holds the presentation pieces shared by termfolio's
// front ends: the color themes, a goldmark-based markdown renderer
// that emits ANSI-styled text, the fzf-backed fuzzy matcher, and small
// widgets (completion hint row, scrollbar).
//
// Nothing here holds shell state. Front ends pass in the theme and the
// terminal width on every call.
package tui

// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

// Package termui is the full-screen front end of the portfolio shell:
// a bubbletea model that draws the transcript of a [shell.Session],
// edits the input line, and carries out the effects each submission
// queues.
//
// The model owns no shell state. Keystrokes are forwarded to the
// session (Tab, Up/Down, typing) and every frame re-renders the
// transcript, so outputs that depend on the workspace (bookmark
// content arriving, the language changing) update in place.
//
// Bookmark fetches run as tea.Cmd functions against a
// [workspace.Loader] and come back as messages that the model applies
// to the workspace. Background logging goes through [TUILogHandler],
// which shows records in the status line instead of writing to the
// terminal underneath the UI.
package termui

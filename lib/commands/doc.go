// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands implements the portfolio's built-in commands as
// [shell.Renderer] values over a read-only [Environment].
//
// Renderers never mutate state. Anything a command changes (the
// theme, the language, the bookmark fetches, the browser) is
// requested through [shell.Effect] values that the front end applies
// after draining the session.
package commands

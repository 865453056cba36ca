// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

// Termfolio is a personal portfolio presented as a terminal. Visitors
// type commands to browse markdown content, switch themes and
// languages, and read a list of bookmarked articles.
//
// Usage:
//
//	termfolio [command] [flags]
//
// With no command the interactive shell starts: full screen on a
// terminal, line by line otherwise. Run "termfolio --help" for the
// full command list.
package main

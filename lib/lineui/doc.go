// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

// Package lineui is the line-mode front end of the portfolio shell,
// built on chzyer/readline. It serves dumb terminals, serial consoles,
// and piped input, where the full-screen UI cannot run.
//
// Each line is submitted to a [shell.Session]; the effects it queues
// are applied synchronously (bookmark fetches block) before the
// entry's output is printed, so a submission prints its final state
// exactly once. Tab completion goes through the same engine as the
// full-screen UI.
package lineui

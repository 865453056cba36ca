// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the termfolio
// binary.
//
// The central type is [Command], which represents a named subcommand
// with optional nested [Command.Subcommands], a [pflag.FlagSet]
// factory, and a Run function. Commands are assembled into a tree in
// cmd/termfolio/commands and dispatched via [Command.Execute], which
// handles flag parsing, subcommand routing, and structured help output
// with examples.
//
// When a user types an unknown subcommand or flag, the framework
// computes Levenshtein edit distance against all known names and
// suggests the closest match (threshold: distance <= 3).
//
// Errors returned by Run functions are usually [ToolError] values
// carrying a category and an optional hint; [ExitError] signals a
// non-zero exit after the command has printed its own output.
package cli

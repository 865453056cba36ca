// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

// Package shell is the line-oriented command interpreter behind the
// terminal front ends.
//
// It owns four pieces of state-free or single-owner logic:
//
//   - [Registry]: the immutable ordered table of command descriptors
//     used for help output, name completion, and dispatch validation.
//   - [ParseLine] / [ParseHistory]: whitespace tokenization of input.
//   - [Completer]: the Tab state machine covering command names,
//     filesystem paths, and per-command argument values, with
//     circular cycling through multi-match hints.
//   - [Session]: input buffer, most-recent-first history, Up/Down
//     navigation, and the fresh-submission marker that lets a
//     just-submitted command emit one-time [Effect] values.
//
// The [Dispatcher] turns one history entry into an [Output] by
// looking the head token up in the registry and calling the
// registered [Renderer]. Renderers never act on the outside world;
// anything they want done (switch theme, open a URL, scroll) comes
// back as effects, and the session queues those only for the
// invocation that was just submitted. Front ends drain the queue once
// after each submission.
//
// Nothing in this package is safe for concurrent use. A front end
// drives one Session from its event loop.
package shell

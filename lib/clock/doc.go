// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source.
//
// The welcome banner's tagline, cache expiry, manifest timestamps, and
// bounded waits on remote fetches all read time through a Clock so
// that tests can pin it:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	cache, _ := bookmark.NewDiskCache(dir, time.Hour, c)
//	c.Advance(2 * time.Hour) // entries are now stale
package clock

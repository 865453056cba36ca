// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides helpers shared by termfolio tests: laying
// out content directories on disk and waiting on channels fed by
// background goroutines without hanging the test binary.
package testutil

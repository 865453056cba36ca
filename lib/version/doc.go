// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for termfolio.
//
// Four package-level variables are injected at build time via
// -ldflags -X:
//
//	go build -ldflags "-X github.com/ndp190/termfolio/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// When GitCommit is not injected, the VCS stamp recorded by the go
// command is used instead.
//
//   - [Info] -- "0.1.0-dev (abc1234, 2026-02-10T...)" for the version command
//   - [Full] -- Info plus Go version and GOOS/GOARCH
package version

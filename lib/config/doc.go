// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for termfolio.
//
// Configuration comes from a single file named by either the
// TERMFOLIO_CONFIG environment variable (via [Load]) or a --config
// flag (via [LoadFile]). There is no automatic file search. When no
// file is named, [Default] is complete on its own: the published
// shell needs no setup.
//
// The file supports environment-specific sections (development,
// production) that override base values when [Config].Environment
// matches. Development turns on content watching by default.
//
// Variable expansion is performed on path and credential fields after
// loading: ${HOME} and ${VAR:-default} patterns are expanded, which is
// how S3 credentials are usually supplied. No other environment
// variables override config values.
//
// Key exports:
//
//   - [Config] -- master struct with Content, Shell, Appearance, Bookmarks
//   - [Default] -- returns a Config with production defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
package config

// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestInfoUsesBuildStamp(t *testing.T) {
	original := buildSettings
	t.Cleanup(func() { buildSettings = original })
	buildSettings = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.modified", Value: "true"},
			{Key: "vcs.time", Value: "2026-03-01T12:00:00Z"},
		}}, true
	}

	if got, want := Info(), Version+" (0123456-dirty, 2026-03-01T12:00:00Z)"; got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}
}

func TestInfoPrefersLinkerValues(t *testing.T) {
	commit := GitCommit
	t.Cleanup(func() { GitCommit = commit })
	GitCommit = "feedbee"

	if got := Info(); !strings.Contains(got, "(feedbee") {
		t.Errorf("Info() = %q", got)
	}
	if full := Full(); !strings.Contains(full, "Go: ") {
		t.Errorf("Full() = %q", full)
	}
}

// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestSuggestCommand(t *testing.T) {
	commands := []*Command{{Name: "run"}, {Name: "exec"}, {Name: "manifest"}, {Name: "mount"}}
	tests := []struct {
		input string
		want  string
	}{
		{"exce", "exec"},
		{"manfest", "manifest"},
		{"mout", "mount"},
		{"completely-unrelated", ""},
	}
	for _, test := range tests {
		if got := suggestCommand(test.input, commands); got != test.want {
			t.Errorf("suggestCommand(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestSuggestFlag(t *testing.T) {
	flagSet := pflag.NewFlagSet("run", pflag.ContinueOnError)
	flagSet.Bool("plain", false, "")
	flagSet.String("log-output", "", "")

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--palin"}, "--plain"},
		{[]string{"--plain", "--log-ouptut=x"}, "--log-output"},
		{[]string{"--nothing-like-it"}, ""},
		{[]string{"--", "--palin"}, ""},
	}
	for _, test := range tests {
		if got := suggestFlag(test.args, flagSet); got != test.want {
			t.Errorf("suggestFlag(%v) = %q, want %q", test.args, got, test.want)
		}
	}
}

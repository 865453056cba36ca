// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"strings"

	"github.com/ndp190/termfolio/lib/shell"
	"github.com/ndp190/termfolio/lib/tui"
	"github.com/ndp190/termfolio/lib/workspace"
)

const (
	themesUsage   = "Usage: themes set <theme-name>\neg: themes set dark"
	languageUsage = "Usage: language set <en|vn>\neg: language set vn"
)

// validSet reports whether args are exactly "set <option>" with a
// known option.
func validSet(args []string, valid func(string) bool) bool {
	return len(args) == 2 && args[0] == "set" && valid(args[1])
}

func renderThemes(invocation shell.Invocation, env Environment) shell.Output {
	isTheme := func(name string) bool {
		_, ok := tui.LookupTheme(name)
		return ok
	}
	if len(invocation.Args) > 0 && !validSet(invocation.Args, isTheme) {
		return shell.Usage(themesUsage)
	}

	current := env.Theme()
	names := tui.ThemeNames()
	for index, name := range names {
		if name == current {
			names[index] = name + " *"
		}
	}
	output := shell.Text("%s\n\n%s", strings.Join(names, "   "), themesUsage)
	if len(invocation.Args) == 2 {
		output = output.WithEffects(shell.Effect{Kind: shell.EffectSetTheme, Value: invocation.Args[1]})
	}
	return output
}

func renderLanguage(invocation shell.Invocation, env Environment) shell.Output {
	if len(invocation.Args) > 0 && !validSet(invocation.Args, workspace.IsLanguage) {
		return shell.Usage(languageUsage)
	}

	current := env.Language()
	options := make([]string, len(workspace.Languages))
	for index, language := range workspace.Languages {
		options[index] = language.Code + " (" + language.Label + ")"
		if language.Code == current {
			options[index] += " *"
		}
	}
	output := shell.Text("%s\n\n%s", strings.Join(options, "   "), languageUsage)
	if len(invocation.Args) == 2 {
		output = output.WithEffects(shell.Effect{Kind: shell.EffectSetLanguage, Value: invocation.Args[1]})
	}
	return output
}

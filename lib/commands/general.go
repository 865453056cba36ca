// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"strings"

	"github.com/ndp190/termfolio/lib/shell"
)

const aboutText = `Hello, I'm **Nikk**, but you can call me **Phuc** if you're feeling fancy!

I'm *a developer* with a passion for solving problems and discovering new things. I've been working with [Go1](https://www.go1.com) for some time now and am proud of the skills I've acquired. You can reach out to me at:

- Github <https://github.com/ndp190>
- LinkedIn <https://www.linkedin.com/in/ndp190>
- Twitter <https://twitter.com/ndp190>
- Email <mailto:ndp190@gmail.com>
`

func renderAbout(shell.Invocation, Environment) shell.Output {
	return shell.Markdown(aboutText)
}

const banner = ` ____ ____ ____ ____
||N |||i |||k |||k ||
||  |||  |||  |||  ||
|| P||| h||| u||| c||
||__|||__|||__|||__||
|/__\|/__\|/__\|/__\|`

var taglines = []string{
	"Phuc and behold, a blog full of untold stories told.",
	"Phuc is the name, sharing my thoughts and musings is the game.",
	"Phuc your way through my blog, filled with fun facts and a unique spin.",
	"Phuc'n'Stuff, where my thoughts and ideas are enough.",
	"Phuc-tastic, sharing my journey through this blog fantastic.",
	"Phuc'ed up your day, with my blog in every way.",
	"Phuc-ing awesome, sharing my life with you, with this blog so positively gnarly dude.",
	"Phuc, Phuc, and away, read my blog for a bright new day.",
	"Phuc-ing amazing, this blog overflowing with creative brainstorming.",
	"Phuc'ed with words, sharing my life through this blog, with so many tales to be heard.",
}

// Tagline returns the welcome tagline chosen by seed.
func Tagline(seed int64) string {
	index := seed % int64(len(taglines))
	if index < 0 {
		index += int64(len(taglines))
	}
	return taglines[index]
}

func welcomeRenderer(seed int64) renderFunc {
	tagline := Tagline(seed)
	return func(shell.Invocation, Environment) shell.Output {
		lines := []string{
			banner,
			"",
			tagline,
			"----",
			"This project's source code can be found in this project: https://github.com/ndp190/ndp190.github.io",
			"and it uses the code base from this GitHub repo of Sat Naing: https://github.com/satnaing/terminal-portfolio",
			"----",
			"For a list of available commands, type `help`.",
		}
		return shell.Text("%s", strings.Join(lines, "\n"))
	}
}

var shortcuts = [][2]string{
	{"Tab or Ctrl + i", "autocompletes the command"},
	{"Up Arrow", "go back to previous command"},
	{"Ctrl + l", "clear the terminal"},
	{"Ctrl + u", "clear the input"},
}

func helpRenderer(registry *shell.Registry) renderFunc {
	return func(shell.Invocation, Environment) shell.Output {
		var help strings.Builder
		for _, command := range registry.Visible() {
			help.WriteString(command.Name)
			help.WriteString(strings.Repeat(" ", command.Tab+2))
			help.WriteString("- ")
			help.WriteString(command.Description)
			help.WriteString("\n")
		}
		help.WriteString("\nKeyboard Shortcuts:\n")
		for _, shortcut := range shortcuts {
			help.WriteString(shortcut[0] + " => " + shortcut[1] + "\n")
		}
		return shell.Text("%s", strings.TrimSuffix(help.String(), "\n"))
	}
}

var echoStripper = strings.NewReplacer("'", "", `"`, "", "`", "")

func renderEcho(invocation shell.Invocation, _ Environment) shell.Output {
	return shell.Text("%s", echoStripper.Replace(strings.Join(invocation.Args, " ")))
}

func renderClear(shell.Invocation, Environment) shell.Output {
	return shell.Output{Kind: shell.OutputEmpty}.WithEffects(shell.Effect{Kind: shell.EffectClearHistory})
}

func renderHistory(invocation shell.Invocation, _ Environment) shell.Output {
	// The invocation's own history ends at its entry, so old history
	// blocks keep showing what had been typed up to that point.
	entries := invocation.History[invocation.Index:]
	lines := make([]string, len(entries))
	for index, entry := range entries {
		lines[len(entries)-1-index] = entry
	}
	return shell.Text("%s", strings.Join(lines, "\n"))
}

// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"time"

	"github.com/ndp190/termfolio/lib/bookmark"
	"github.com/ndp190/termfolio/lib/shell"
	"github.com/ndp190/termfolio/lib/tui"
	"github.com/ndp190/termfolio/lib/vfs"
	"github.com/ndp190/termfolio/lib/workspace"
)

// Environment is the read-only state renderers draw from.
// *workspace.Workspace implements it.
type Environment interface {
	Tree() *vfs.Node
	Localized(node *vfs.Node) string
	Theme() string
	Language() string
	Manifest() (*bookmark.Manifest, workspace.ManifestStatus)
	Enriched(key string) (bookmark.Enriched, bool)
	Content(key string) (workspace.Content, bool)
	Now() time.Time
}

// Profile holds the per-site details shown by pwd, whoami, and
// welcome.
type Profile struct {
	// User is printed by whoami.
	User string

	// HomeDir is printed by pwd.
	HomeDir string

	// TaglineSeed picks the welcome tagline.
	TaglineSeed int64
}

// DefaultProfile returns the portfolio owner's profile.
func DefaultProfile() Profile {
	return Profile{User: "visitor", HomeDir: "/home/nikk"}
}

// PathCommands are the commands whose arguments complete as paths.
var PathCommands = []string{"cat", "ls", "tree"}

type renderFunc func(invocation shell.Invocation, env Environment) shell.Output

// Install registers a renderer for every command in the dispatcher's
// registry that this package implements. Registry commands without an
// implementation are an error.
func Install(dispatcher *shell.Dispatcher, env Environment, profile Profile) error {
	registry := dispatcher.Registry()
	renderers := map[string]renderFunc{
		"about":    renderAbout,
		"bookmark": renderBookmark,
		"cat":      renderCat,
		"clear":    renderClear,
		"echo":     renderEcho,
		"help":     helpRenderer(registry),
		"history":  renderHistory,
		"language": renderLanguage,
		"ls":       renderLs,
		"pwd":      constantRenderer(profile.HomeDir),
		"themes":   renderThemes,
		"tree":     renderTree,
		"welcome":  welcomeRenderer(profile.TaglineSeed),
		"whoami":   constantRenderer(profile.User),
	}
	for _, command := range registry.Commands() {
		render, ok := renderers[command.Name]
		if !ok {
			return fmt.Errorf("no renderer for command %q", command.Name)
		}
		err := dispatcher.Handle(command.Name, shell.RendererFunc(func(invocation shell.Invocation) shell.Output {
			return render(invocation, env)
		}))
		if err != nil {
			return err
		}
	}
	return nil
}

// Completion returns the completer configuration for the installed
// commands. Candidates are computed on every Tab press so they follow
// the current tree and manifest.
func Completion(registry *shell.Registry, env Environment) shell.CompletionConfig {
	return shell.CompletionConfig{
		Registry:     registry,
		PathCommands: PathCommands,
		Arguments: map[string]shell.ArgumentSpec{
			"themes": {
				Subcommands: []string{"set"},
				Values: func(string) []shell.Candidate {
					return plainCandidates(tui.ThemeNames())
				},
			},
			"language": {
				Subcommands: []string{"set"},
				Values: func(string) []shell.Candidate {
					candidates := make([]shell.Candidate, len(workspace.Languages))
					for index, language := range workspace.Languages {
						candidates[index] = shell.Candidate{
							Display: language.Code + " (" + language.Label + ")",
							Value:   language.Code,
						}
					}
					return candidates
				},
			},
			"bookmark": {
				Subcommands: bookmarkSubcommands,
				Values: func(subcommand string) []shell.Candidate {
					if subcommand != "cat" && subcommand != "go" {
						return nil
					}
					return bookmarkCandidates(env)
				},
			},
		},
		Paths: func(partial string) []string {
			return vfs.ListMatchingPaths(env.Tree(), partial)
		},
	}
}

func plainCandidates(values []string) []shell.Candidate {
	candidates := make([]shell.Candidate, len(values))
	for index, value := range values {
		candidates[index] = shell.Candidate{Display: value, Value: value}
	}
	return candidates
}

func constantRenderer(text string) renderFunc {
	return func(shell.Invocation, Environment) shell.Output {
		return shell.Text("%s", text)
	}
}

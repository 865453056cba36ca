// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the termfolio command tree. Running the
// binary without a subcommand starts the shell, exactly like "run".
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ndp190/termfolio/cmd/termfolio/cli"
	"github.com/ndp190/termfolio/lib/version"
)

// Root builds and returns the complete termfolio command tree.
func Root() *cli.Command {
	run := runCommand()
	return &cli.Command{
		Name: "termfolio",
		Description: `termfolio: a portfolio you browse like a terminal.

Starts the interactive shell by default. The other commands run the
same shell non-interactively, serve its content tree over FUSE, and
maintain the bookmark reading list.`,
		Usage: "termfolio [command] [flags]",
		Flags: run.Flags,
		Run:   run.Run,
		Subcommands: []*cli.Command{
			run,
			execCommand(),
			treeCommand(),
			completeCommand(),
			mountCommand(),
			manifestCommand(),
			readingCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					fmt.Printf("termfolio %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Start the shell",
				Command:     "termfolio",
			},
			{
				Description: "Serve a local content directory, reloading on edits",
				Command:     "TERMFOLIO_CONFIG=dev.yaml termfolio run",
			},
			{
				Description: "Print a file the way the shell renders it",
				Command:     "termfolio exec cat about-me.md",
			},
			{
				Description: "Add a bookmark and publish the manifest",
				Command:     "termfolio manifest add https://r2.nikkdev.com/bookmark/slow-web.json && termfolio manifest push",
			},
		},
	}
}

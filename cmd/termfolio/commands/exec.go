// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/ndp190/termfolio/cmd/termfolio/cli"
	"github.com/ndp190/termfolio/lib/commands"
	"github.com/ndp190/termfolio/lib/lineui"
	"github.com/ndp190/termfolio/lib/shell"
	"github.com/ndp190/termfolio/lib/vfs"
)

func execCommand() *cli.Command {
	var (
		flags shellFlags
		color string
		width int
	)

	return &cli.Command{
		Name:    "exec",
		Summary: "Run one shell line and print its output",
		Description: `Run a single line through the shell and print what it renders.

Effects run before the output is printed, so "bookmark cat 3" prints
the fetched article and "bookmark go 3" opens the browser. The exit
status is 1 when the line renders an error or names an unknown
command.`,
		Usage: "termfolio exec [flags] <line>",
		Examples: []cli.Example{
			{
				Description: "Print the about page without colors",
				Command:     "termfolio exec --color never cat about-me.md",
			},
			{
				Description: "List bookmarks",
				Command:     "termfolio exec bookmark ls",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("exec", pflag.ContinueOnError)
			flags.register(flagSet)
			flagSet.StringVar(&color, "color", "auto", "styled output: auto, always, or never")
			flagSet.IntVar(&width, "width", 0, "wrap width for markdown (default: terminal width, else 80)")
			flagSet.SetInterspersed(false)
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			line := strings.Join(args, " ")
			if strings.TrimSpace(line) == "" {
				return cli.Validation("a command line is required").
					WithHint("Run 'termfolio exec --help' for usage.")
			}
			styled, err := colorEnabled(color)
			if err != nil {
				return err
			}
			if width <= 0 {
				width = terminalWidth()
			}

			cfg, err := flags.load()
			if err != nil {
				return err
			}
			app, err := newApp(ctx, cfg, appOptions{
				theme:    flags.theme,
				language: flags.language,
				offline:  flags.offline,
			}, logger)
			if err != nil {
				return err
			}
			defer app.Close()

			return execLine(ctx, app, line, os.Stdout, styled, width, logger)
		},
	}
}

// execLine submits line and writes its output to out. Returns an
// ExitError when the line failed.
func execLine(ctx context.Context, app *app, line string, out io.Writer, color bool, width int, logger *slog.Logger) error {
	lineShell, err := lineui.New(lineui.Options{
		Workspace: app.workspace,
		Session:   app.session,
		Loader:    app.loader,
		Stdout:    out,
		Color:     color,
		Width:     width,
		Logger:    logger,
	})
	if err != nil {
		return cli.Internal("creating shell: %w", err)
	}
	lineShell.LoadManifest(ctx)
	lineShell.Submit(ctx, line, out)

	blocks := app.session.Transcript()
	if len(blocks) == 0 {
		return nil
	}
	switch blocks[len(blocks)-1].Output.Kind {
	case shell.OutputError, shell.OutputNotFound, shell.OutputUsage:
		return &cli.ExitError{Code: 1}
	}
	return nil
}

func colorEnabled(mode string) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		return term.IsTerminal(int(os.Stdout.Fd())), nil
	}
	return false, cli.Validation("--color must be auto, always, or never, got %q", mode)
}

func treeCommand() *cli.Command {
	var flags configFlags

	return &cli.Command{
		Name:    "tree",
		Summary: "Print the content tree",
		Description: `Print the content tree, or the subtree at a path, the way the
shell's tree command draws it. Bookmarks are not fetched.`,
		Usage: "termfolio tree [flags] [path]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("tree", pflag.ContinueOnError)
			flags.register(flagSet)
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 1 {
				return cli.Validation("expected at most one path, got %d", len(args))
			}
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			app, err := newApp(ctx, cfg, appOptions{offline: true}, logger)
			if err != nil {
				return err
			}
			defer app.Close()

			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return printTree(app, path, os.Stdout)
		},
	}
}

func printTree(app *app, path string, out io.Writer) error {
	node, ok := vfs.Resolve(app.workspace.Tree(), path)
	if !ok {
		return cli.NotFound("no such file or directory: %s", path)
	}
	fmt.Fprintln(out, commands.FormatTree(node))
	return nil
}

func completeCommand() *cli.Command {
	var flags configFlags

	return &cli.Command{
		Name:    "complete",
		Summary: "Show what Tab does to a partial line",
		Description: `Press Tab once on the given partial line and print the completed
input. When several candidates match, they are printed after it, one
per line.`,
		Usage: "termfolio complete [flags] <partial line>",
		Examples: []cli.Example{
			{
				Description: "Complete a path argument",
				Command:     "termfolio complete 'cat bl'",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("complete", pflag.ContinueOnError)
			flags.register(flagSet)
			flagSet.SetInterspersed(false)
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) == 0 {
				return cli.Validation("a partial line is required")
			}
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			app, err := newApp(ctx, cfg, appOptions{offline: true}, logger)
			if err != nil {
				return err
			}
			defer app.Close()

			printCompletion(app, strings.Join(args, " "), os.Stdout)
			return nil
		},
	}
}

func printCompletion(app *app, partial string, out io.Writer) {
	app.session.SetInput(partial)
	app.session.Tab()
	fmt.Fprintln(out, app.session.Input())
	for _, hint := range app.session.Hints() {
		fmt.Fprintln(out, hint)
	}
}

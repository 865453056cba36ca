// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/ndp190/termfolio/cmd/termfolio/cli"
	"github.com/ndp190/termfolio/lib/config"
	"github.com/ndp190/termfolio/lib/lineui"
	"github.com/ndp190/termfolio/lib/termui"
	"github.com/ndp190/termfolio/lib/vfs"
	"github.com/ndp190/termfolio/lib/workspace"
)

func runCommand() *cli.Command {
	var (
		flags     shellFlags
		plain     bool
		logOutput string
	)

	return &cli.Command{
		Name:    "run",
		Summary: "Start the interactive shell",
		Description: `Start the portfolio shell.

On a terminal the shell takes over the screen: output scrolls above
the prompt, Tab completes commands and paths, and bookmarks load in
the background. With --plain, or when stdin or stdout is not a
terminal, the shell prints each command's output below its prompt
instead.`,
		Usage: "termfolio run [flags]",
		Examples: []cli.Example{
			{
				Description: "Start with the ubuntu theme in Vietnamese",
				Command:     "termfolio run --theme ubuntu --language vn",
			},
			{
				Description: "Line mode, keeping a debug log of background fetches",
				Command:     "termfolio run --plain --log-output /tmp/termfolio.log",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("run", pflag.ContinueOnError)
			flags.register(flagSet)
			flagSet.BoolVar(&plain, "plain", false, "line mode even on a terminal")
			flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file (in addition to the status line)")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument %q", args[0]).
					WithHint("Run 'termfolio exec <line>' to run a single command.")
			}
			cfg, err := flags.load()
			if err != nil {
				return err
			}

			interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
			if plain || !interactive {
				return runLineShell(ctx, cfg, &flags, logger)
			}
			return runFullScreen(ctx, cfg, &flags, logOutput)
		},
	}
}

// runFullScreen runs the alt-screen shell. Log records are routed to
// its status line while it owns the terminal.
func runFullScreen(ctx context.Context, cfg *config.Config, flags *shellFlags, logOutput string) error {
	tuiHandler := termui.NewTUILogHandler(slog.LevelWarn)

	var handler slog.Handler = tuiHandler
	if logOutput != "" {
		fileHandler, closeFile, err := openFileLogHandler(logOutput)
		if err != nil {
			return cli.Validation("cannot open log file %s: %w", logOutput, err)
		}
		defer closeFile()
		handler = termui.FanoutHandler{tuiHandler, fileHandler}
	}
	backgroundLogger := slog.New(handler)

	// The watcher can fire before the program exists; those trees are
	// covered by the initial load.
	var running atomic.Pointer[tea.Program]
	app, err := newApp(ctx, cfg, appOptions{
		theme:    flags.theme,
		language: flags.language,
		offline:  flags.offline,
		onTreeChange: func(root *vfs.Node) {
			if program := running.Load(); program != nil {
				program.Send(termui.TreeMsg{Root: root})
			}
		},
	}, backgroundLogger)
	if err != nil {
		return err
	}
	defer app.Close()

	model, err := termui.NewModel(termui.Options{
		Workspace:      app.workspace,
		Session:        app.session,
		Loader:         app.loader,
		Prompt:         cfg.Shell.Prompt,
		InitialCommand: cfg.Shell.InitialCommand,
		Context:        ctx,
		Logger:         backgroundLogger,
	})
	if err != nil {
		return cli.Internal("creating shell: %w", err)
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// Records logged before this point are dropped; nothing is on
	// screen yet.
	tuiHandler.SetProgram(program)
	running.Store(program)

	_, err = program.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

// runLineShell runs the readline shell. The command logger stays on
// stderr.
func runLineShell(ctx context.Context, cfg *config.Config, flags *shellFlags, logger *slog.Logger) error {
	var current atomic.Pointer[workspace.Workspace]
	app, err := newApp(ctx, cfg, appOptions{
		theme:    flags.theme,
		language: flags.language,
		offline:  flags.offline,
		onTreeChange: func(root *vfs.Node) {
			if ws := current.Load(); ws != nil {
				ws.SetBaseTree(root)
				logger.Info("content reloaded", "files", countFiles(root))
			}
		},
	}, logger)
	if err != nil {
		return err
	}
	defer app.Close()
	current.Store(app.workspace)

	color := term.IsTerminal(int(os.Stdout.Fd()))
	lineShell, err := lineui.New(lineui.Options{
		Workspace:      app.workspace,
		Session:        app.session,
		Loader:         app.loader,
		Prompt:         cfg.Shell.Prompt,
		InitialCommand: cfg.Shell.InitialCommand,
		Color:          color,
		Width:          terminalWidth(),
		Logger:         logger,
	})
	if err != nil {
		return cli.Internal("creating shell: %w", err)
	}
	return lineShell.Run(ctx)
}

// terminalWidth returns stdout's width, or zero when it is not a
// terminal.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func countFiles(root *vfs.Node) int {
	files, _ := root.Count()
	return files
}

// openFileLogHandler creates a slog.JSONHandler that writes to the
// given file path. Returns the handler, a cleanup function to close
// the file, and any error. The file is created or truncated.
func openFileLogHandler(path string) (slog.Handler, func(), error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})
	return handler, func() { file.Close() }, nil
}

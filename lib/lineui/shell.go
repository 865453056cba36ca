// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package lineui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/chzyer/readline"
	"github.com/pkg/browser"

	"github.com/ndp190/termfolio/lib/shell"
	"github.com/ndp190/termfolio/lib/tui"
	"github.com/ndp190/termfolio/lib/workspace"
)

// clearScreen homes the cursor and erases the display.
const clearScreen = "\x1b[H\x1b[2J"

// Options configures a Shell.
type Options struct {
	// Workspace and Session are required.
	Workspace *workspace.Workspace
	Session   *shell.Session

	// Loader fetches bookmarks. Nil makes every bookmark fetch fail.
	Loader *workspace.Loader

	Prompt         string
	InitialCommand string

	// OpenURL defaults to browser.OpenURL.
	OpenURL func(url string) error

	// Stdin and Stdout default to the process streams.
	Stdin  io.ReadCloser
	Stdout io.Writer

	// Color keeps ANSI styling in the output. Off for pipes.
	Color bool

	// Width is the wrap width for rendered output. Zero means 80.
	Width int

	Logger *slog.Logger
}

// Shell is the line-mode front end: each submission prints its
// output below the prompt and bookmark fetches block until done.
type Shell struct {
	workspace *workspace.Workspace
	session   *shell.Session
	loader    *workspace.Loader
	prompt    string
	initial   string
	openURL   func(string) error
	stdin     io.ReadCloser
	stdout    io.Writer
	color     bool
	width     int
	logger    *slog.Logger

	// history mirrors the session history into readline's Up/Down.
	history historyStore
}

// historyStore is the part of readline.Instance the shell writes
// history through.
type historyStore interface {
	SaveHistory(content string) error
	ResetHistory()
}

// New returns a shell. It does not touch the terminal until Run.
func New(options Options) (*Shell, error) {
	if options.Workspace == nil || options.Session == nil {
		return nil, errors.New("lineui: workspace and session are required")
	}
	lineShell := &Shell{
		workspace: options.Workspace,
		session:   options.Session,
		loader:    options.Loader,
		prompt:    options.Prompt,
		initial:   options.InitialCommand,
		openURL:   options.OpenURL,
		stdin:     options.Stdin,
		stdout:    options.Stdout,
		color:     options.Color,
		width:     options.Width,
		logger:    options.Logger,
	}
	if lineShell.openURL == nil {
		lineShell.openURL = browser.OpenURL
	}
	if lineShell.stdin == nil {
		lineShell.stdin = os.Stdin
	}
	if lineShell.stdout == nil {
		lineShell.stdout = os.Stdout
	}
	if lineShell.width <= 0 {
		lineShell.width = 80
	}
	if lineShell.logger == nil {
		lineShell.logger = slog.Default()
	}
	return lineShell, nil
}

// Run reads lines until EOF, an interrupt on an empty line, or ctx
// is cancelled.
func (lineShell *Shell) Run(ctx context.Context) error {
	instance, err := readline.NewEx(&readline.Config{
		Prompt:                 lineShell.prompt + " ",
		AutoComplete:           &completer{session: lineShell.session},
		Stdin:                  lineShell.stdin,
		Stdout:                 lineShell.stdout,
		DisableAutoSaveHistory: true,
		HistorySearchFold:      true,
	})
	if err != nil {
		return fmt.Errorf("starting line editor: %w", err)
	}
	defer instance.Close()
	lineShell.history = instance

	stop := context.AfterFunc(ctx, func() { instance.Close() })
	defer stop()

	lineShell.LoadManifest(ctx)
	if lineShell.initial != "" {
		lineShell.session.ExecuteCommand(lineShell.initial)
		lineShell.finish(ctx, instance.Stdout())
	}

	for {
		line, err := instance.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}
		lineShell.Submit(ctx, line, instance.Stdout())
	}
}

// LoadManifest fetches the bookmark manifest so that the bookmarks
// directory exists before the first command. It blocks until the
// fetch finishes and does nothing without a loader.
func (lineShell *Shell) LoadManifest(ctx context.Context) {
	if lineShell.loader == nil {
		return
	}
	lineShell.workspace.Refresh(ctx, lineShell.loader)
	if err := lineShell.workspace.ManifestError(); err != nil {
		lineShell.logger.Warn("loading bookmarks failed", "error", err)
	}
}

// Submit runs one line and writes its output to out.
func (lineShell *Shell) Submit(ctx context.Context, line string, out io.Writer) {
	lineShell.session.Submit(line)
	if trimmed := strings.TrimSpace(line); trimmed != "" && lineShell.history != nil {
		if err := lineShell.history.SaveHistory(trimmed); err != nil {
			lineShell.logger.Debug("saving line history failed", "error", err)
		}
	}
	lineShell.finish(ctx, out)
}

// finish applies the queued effects, then prints the newest entry so
// the output reflects whatever the effects fetched. Each round of
// fetched data can unlock further effects of the same submission,
// e.g. a manifest that lets "bookmark cat" request the article.
func (lineShell *Shell) finish(ctx context.Context, out io.Writer) {
	cleared := false
	for effects := lineShell.session.Drain(); len(effects) > 0; effects = lineShell.session.Drain() {
		if lineShell.applyEffects(ctx, effects, out) {
			cleared = true
		}
		lineShell.session.Redispatch()
	}
	if cleared {
		return
	}
	blocks := lineShell.session.Transcript()
	if len(blocks) == 0 {
		return
	}
	if rendered := lineShell.render(blocks[len(blocks)-1].Output); rendered != "" {
		fmt.Fprintln(out, rendered)
	}
}

// applyEffects reports whether the history was cleared.
func (lineShell *Shell) applyEffects(ctx context.Context, effects []shell.Effect, out io.Writer) bool {
	cleared := false
	for _, effect := range effects {
		switch effect.Kind {
		case shell.EffectSetTheme, shell.EffectSetLanguage:
			if err := lineShell.workspace.Apply(effect); err != nil {
				lineShell.logger.Warn("applying effect failed", "effect", effect.String(), "error", err)
			}

		case shell.EffectOpenURL:
			if err := lineShell.openURL(effect.Value); err != nil {
				lineShell.logger.Warn("opening URL failed", "url", effect.Value, "error", err)
			}

		case shell.EffectClearHistory:
			cleared = true
			if lineShell.history != nil {
				lineShell.history.ResetHistory()
			}
			if lineShell.color {
				fmt.Fprint(out, clearScreen)
			}

		case shell.EffectLoadBookmark:
			if lineShell.loader == nil {
				if lineShell.workspace.BeginContent(effect.Value) {
					lineShell.workspace.FailContent(effect.Value, errNoBookmarks)
				}
				continue
			}
			lineShell.workspace.LoadContent(ctx, lineShell.loader, effect.Value)

		case shell.EffectRefreshManifest:
			if lineShell.loader == nil {
				lineShell.workspace.FailManifest(lineShell.workspace.BeginManifestFetch(), errNoBookmarks)
				continue
			}
			lineShell.workspace.Refresh(ctx, lineShell.loader)
		}
	}
	return cleared
}

var errNoBookmarks = errors.New("bookmarks are not configured")

func (lineShell *Shell) render(output shell.Output) string {
	theme, ok := tui.LookupTheme(lineShell.workspace.Theme())
	if !ok {
		theme = tui.DefaultTheme()
	}

	var rendered string
	switch output.Kind {
	case shell.OutputEmpty:
		return ""
	case shell.OutputMarkdown:
		rendered = tui.RenderMarkdown(output.Text, theme, lineShell.width)
	default:
		rendered = output.Text
		if output.Hint != "" {
			rendered += "\n" + output.Hint
		}
	}
	if !lineShell.color {
		rendered = ansi.Strip(rendered)
	}
	return rendered
}

// completer adapts the session's Tab engine to readline, which
// inserts candidates at the cursor and expects them without the
// already typed part of the word.
type completer struct {
	session *shell.Session
}

func (completer *completer) Do(line []rune, pos int) ([][]rune, int) {
	input := string(line[:pos])
	base := input[:strings.LastIndexByte(input, ' ')+1]

	completer.session.SetInput(input)
	defer completer.session.ClearInput()

	completer.session.Tab()
	completions := []string{completer.session.Input()}
	hints := len(completer.session.Hints())
	if hints == 0 && completions[0] == input {
		return nil, 0
	}
	for range hints - 1 {
		completer.session.Tab()
		completions = append(completions, completer.session.Input())
	}

	var candidates [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, input) {
			candidates = append(candidates, []rune(completion[len(input):]))
		}
	}
	if len(candidates) == 0 {
		return nil, 0
	}
	return candidates, len([]rune(input[len(base):]))
}

// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package termui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"

	"github.com/ndp190/termfolio/lib/shell"
	"github.com/ndp190/termfolio/lib/vfs"
	"github.com/ndp190/termfolio/lib/workspace"
)

// errNoBookmarks is recorded for fetches when no loader is configured.
var errNoBookmarks = errors.New("bookmarks are not configured")

// Options configures a Model.
type Options struct {
	// Workspace and Session are required.
	Workspace *workspace.Workspace
	Session   *shell.Session

	// Loader fetches bookmarks. The manifest is fetched as soon as the
	// program starts. Nil makes every bookmark fetch fail.
	Loader *workspace.Loader

	// Prompt is drawn before every command line.
	Prompt string

	// InitialCommand is executed before the first frame.
	InitialCommand string

	// OpenURL opens a bookmark in the browser. Defaults to
	// browser.OpenURL.
	OpenURL func(url string) error

	// Context bounds background fetches. Defaults to
	// context.Background().
	Context context.Context

	Logger *slog.Logger
}

// TreeMsg replaces the base content tree, e.g. after the content
// watcher reloads it.
type TreeMsg struct {
	Root *vfs.Node
}

// manifestMsg carries a finished manifest fetch.
type manifestMsg struct {
	result workspace.ManifestResult
}

// contentMsg carries a finished bookmark content fetch.
type contentMsg struct {
	result workspace.ContentResult
}

// openURLMsg reports the outcome of opening a URL.
type openURLMsg struct {
	url string
	err error
}

// Model is the bubbletea model for the full-screen shell.
type Model struct {
	workspace *workspace.Workspace
	session   *shell.Session
	loader    *workspace.Loader
	keys      KeyMap
	prompt    string
	openURL   func(string) error
	ctx       context.Context
	logger    *slog.Logger

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	// Input line editing state. The session holds the same text;
	// buffer adds the cursor.
	buffer []rune
	cursor int

	viewport viewport.Model

	// follow keeps the transcript pinned to its last line.
	follow bool

	// scrollTarget is the command line of a block to bring to the top
	// of the viewport on the next layout.
	scrollTarget string

	// Status line: the latest log record, cleared after a delay.
	status         string
	statusLevel    slog.Level
	statusSequence int

	initCmds []tea.Cmd
}

// NewModel creates a model and runs the initial command, if any.
func NewModel(options Options) (Model, error) {
	if options.Workspace == nil || options.Session == nil {
		return Model{}, errors.New("termui: workspace and session are required")
	}
	model := Model{
		workspace: options.Workspace,
		session:   options.Session,
		loader:    options.Loader,
		keys:      DefaultKeyMap,
		prompt:    options.Prompt,
		openURL:   options.OpenURL,
		ctx:       options.Context,
		logger:    options.Logger,
		follow:    true,
	}
	if model.openURL == nil {
		model.openURL = browser.OpenURL
	}
	if model.ctx == nil {
		model.ctx = context.Background()
	}
	if model.logger == nil {
		model.logger = slog.Default()
	}
	if model.loader != nil {
		model.initCmds = append(model.initCmds, model.fetchManifest())
	}
	if options.InitialCommand != "" {
		model.session.ExecuteCommand(options.InitialCommand)
		model.initCmds = append(model.initCmds, model.applyEffects(model.session.Drain())...)
	}
	return model, nil
}

// Init implements tea.Model. Starts the manifest fetch and the
// fetches the initial command asked for.
func (model Model) Init() tea.Cmd {
	return tea.Batch(model.initCmds...)
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch message := message.(type) {
	case tea.KeyMsg:
		if key.Matches(message, model.keys.Quit) {
			return model, tea.Quit
		}
		cmds = model.handleKey(message)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true

	case manifestMsg:
		if message.result.Err != nil {
			model.logger.Warn("loading bookmarks failed", "error", message.result.Err)
		}
		model.workspace.ApplyManifestResult(message.result)
		cmds = model.redispatch()

	case contentMsg:
		if message.result.Err != nil {
			model.logger.Warn("loading bookmark failed", "key", message.result.Key, "error", message.result.Err)
		}
		model.workspace.ApplyContentResult(message.result)
		cmds = model.redispatch()

	case TreeMsg:
		model.workspace.SetBaseTree(message.Root)

	case openURLMsg:
		if message.err != nil {
			model.logger.Warn("opening URL failed", "url", message.url, "error", message.err)
		}

	case logRecordMsg:
		model.statusSequence++
		model.status = message.Summary
		model.statusLevel = message.Level
		sequence := model.statusSequence
		cmds = append(cmds, tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
			return logRecordFadeMsg{Sequence: sequence}
		}))

	case logRecordFadeMsg:
		if message.Sequence == model.statusSequence {
			model.status = ""
		}
	}

	model.layout()
	return model, tea.Batch(cmds...)
}

func (model *Model) handleKey(message tea.KeyMsg) []tea.Cmd {
	switch {
	case key.Matches(message, model.keys.Submit):
		model.session.Submit(string(model.buffer))
		model.setBuffer("")
		model.follow = true
		return model.applyEffects(model.session.Drain())

	case key.Matches(message, model.keys.Complete):
		model.session.Tab()
		model.setBuffer(model.session.Input())

	case key.Matches(message, model.keys.HistoryUp):
		model.session.Up()
		model.setBuffer(model.session.Input())

	case key.Matches(message, model.keys.HistoryDown):
		model.session.Down()
		model.setBuffer(model.session.Input())

	case key.Matches(message, model.keys.ClearScreen):
		model.session.ClearHistory()
		model.follow = true

	case key.Matches(message, model.keys.ClearInput):
		model.session.ClearInput()
		model.setBuffer("")

	case key.Matches(message, model.keys.PageUp):
		model.viewport.HalfViewUp()
		model.follow = model.viewport.AtBottom()

	case key.Matches(message, model.keys.PageDown):
		model.viewport.HalfViewDown()
		model.follow = model.viewport.AtBottom()

	default:
		if model.editInput(message) {
			model.session.SetInput(string(model.buffer))
		}
	}
	return nil
}

func (model *Model) setBuffer(text string) {
	model.buffer = []rune(text)
	model.cursor = len(model.buffer)
}

// editInput applies a line-editing key to the input buffer. Reports
// whether the key was an editing key.
func (model *Model) editInput(message tea.KeyMsg) bool {
	switch message.Type {
	case tea.KeyBackspace:
		if model.cursor > 0 {
			model.buffer = append(model.buffer[:model.cursor-1], model.buffer[model.cursor:]...)
			model.cursor--
		}

	case tea.KeyDelete:
		if model.cursor < len(model.buffer) {
			model.buffer = append(model.buffer[:model.cursor], model.buffer[model.cursor+1:]...)
		}

	case tea.KeyLeft:
		if model.cursor > 0 {
			model.cursor--
		}

	case tea.KeyRight:
		if model.cursor < len(model.buffer) {
			model.cursor++
		}

	case tea.KeyHome, tea.KeyCtrlA:
		model.cursor = 0

	case tea.KeyEnd, tea.KeyCtrlE:
		model.cursor = len(model.buffer)

	case tea.KeyRunes, tea.KeySpace:
		runes := message.Runes
		if message.Type == tea.KeySpace {
			runes = []rune{' '}
		}
		for _, character := range runes {
			model.buffer = append(model.buffer, 0)
			copy(model.buffer[model.cursor+1:], model.buffer[model.cursor:])
			model.buffer[model.cursor] = character
			model.cursor++
		}

	default:
		return false
	}
	return true
}

// applyEffects carries out the effects of one submission and returns
// the commands for the work that runs in the background.
func (model *Model) applyEffects(effects []shell.Effect) []tea.Cmd {
	var cmds []tea.Cmd
	for _, effect := range effects {
		switch effect.Kind {
		case shell.EffectSetTheme, shell.EffectSetLanguage:
			if err := model.workspace.Apply(effect); err != nil {
				model.logger.Warn("applying effect failed", "effect", effect.String(), "error", err)
			}

		case shell.EffectOpenURL:
			url, open := effect.Value, model.openURL
			cmds = append(cmds, func() tea.Msg {
				return openURLMsg{url: url, err: open(url)}
			})

		case shell.EffectClearHistory:
			model.viewport.GotoTop()
			model.follow = true

		case shell.EffectScrollTo:
			model.scrollTarget = effect.Value
			model.follow = false

		case shell.EffectLoadBookmark:
			if cmd := model.fetchContent(effect.Value); cmd != nil {
				cmds = append(cmds, cmd)
			}

		case shell.EffectRefreshManifest:
			if cmd := model.fetchManifest(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	return cmds
}

// redispatch gives the latest submission a chance to act on data that
// has just arrived, e.g. a "bookmark cat" waiting for the manifest.
func (model *Model) redispatch() []tea.Cmd {
	if !model.session.Redispatch() {
		return nil
	}
	return model.applyEffects(model.session.Drain())
}

func (model *Model) fetchManifest() tea.Cmd {
	generation := model.workspace.BeginManifestFetch()
	if model.loader == nil {
		model.workspace.FailManifest(generation, errNoBookmarks)
		return nil
	}
	loader, ctx := model.loader, model.ctx
	return func() tea.Msg {
		return manifestMsg{result: loader.FetchManifest(ctx, generation)}
	}
}

func (model *Model) fetchContent(bookmarkKey string) tea.Cmd {
	if !model.workspace.BeginContent(bookmarkKey) {
		return nil
	}
	if model.loader == nil {
		model.workspace.FailContent(bookmarkKey, errNoBookmarks)
		return nil
	}
	loader, ctx := model.loader, model.ctx
	return func() tea.Msg {
		return contentMsg{result: loader.FetchContent(ctx, bookmarkKey)}
	}
}

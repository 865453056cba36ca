// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/ndp190/termfolio/cmd/termfolio/cli"
	"github.com/ndp190/termfolio/cmd/termfolio/content"
	"github.com/ndp190/termfolio/lib/bookmark"
	"github.com/ndp190/termfolio/lib/clock"
	"github.com/ndp190/termfolio/lib/commands"
	"github.com/ndp190/termfolio/lib/config"
	"github.com/ndp190/termfolio/lib/shell"
	"github.com/ndp190/termfolio/lib/vfs"
	"github.com/ndp190/termfolio/lib/workspace"
)

// configFlags is the --config flag shared by every command that reads
// the configuration.
type configFlags struct {
	path string
}

func (flags *configFlags) register(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&flags.path, "config", "", "config file (default: $"+config.EnvironmentVariable+", else built-in defaults)")
}

// load reads and validates the configuration.
func (flags *configFlags) load() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if flags.path != "" {
		cfg, err = config.LoadFile(flags.path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, cli.Validation("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("invalid config: %w", err).
			WithHint("Fix the file named by --config or $" + config.EnvironmentVariable + ".")
	}
	return cfg, nil
}

// shellFlags are the appearance overrides shared by run and exec.
type shellFlags struct {
	configFlags
	theme    string
	language string
	offline  bool
}

func (flags *shellFlags) register(flagSet *pflag.FlagSet) {
	flags.configFlags.register(flagSet)
	flagSet.StringVar(&flags.theme, "theme", "", "initial color theme (overrides appearance.theme)")
	flagSet.StringVar(&flags.language, "language", "", "initial language code (overrides appearance.language)")
	flagSet.BoolVar(&flags.offline, "offline", false, "do not fetch bookmarks")
}

// app is one assembled shell: the workspace its commands read, the
// session that runs them, and the bookmark plumbing behind the
// bookmark effects.
type app struct {
	config    *config.Config
	workspace *workspace.Workspace
	session   *shell.Session
	client    *bookmark.Client
	loader    *workspace.Loader

	// stop ends the content watcher, if one is running.
	stop func()
}

type appOptions struct {
	theme    string
	language string
	offline  bool

	// onTreeChange receives reloaded trees when content.watch is set.
	// Nil disables watching.
	onTreeChange func(*vfs.Node)

	// httpClient overrides the bookmark client's transport.
	httpClient *http.Client
}

// newApp loads the content tree and wires the shell together.
func newApp(ctx context.Context, cfg *config.Config, options appOptions, logger *slog.Logger) (*app, error) {
	base, translations, stop, err := loadContent(cfg, options.onTreeChange, logger)
	if err != nil {
		return nil, err
	}

	theme := cfg.Appearance.Theme
	if options.theme != "" {
		theme = options.theme
	}
	language := cfg.Appearance.Language
	if options.language != "" {
		language = options.language
	}
	ws, err := workspace.New(workspace.Options{
		Base:         base,
		Translations: translations,
		Theme:        theme,
		Language:     language,
		Logger:       logger,
	})
	if err != nil {
		stop()
		return nil, cli.Validation("%w", err)
	}

	registry := shell.MustRegistry(shell.DefaultCommands()...)
	dispatcher := shell.NewDispatcher(registry, shell.DefaultFreeForm())
	profile := commands.Profile{
		User:        cfg.Shell.User,
		HomeDir:     cfg.Shell.HomeDir,
		TaglineSeed: time.Now().UnixNano(),
	}
	if err := commands.Install(dispatcher, ws, profile); err != nil {
		stop()
		return nil, cli.Internal("installing commands: %w", err)
	}
	session := shell.NewSession(shell.NewCompleter(commands.Completion(registry, ws)), dispatcher)

	result := &app{
		config:    cfg,
		workspace: ws,
		session:   session,
		stop:      stop,
	}
	if options.offline {
		return result, nil
	}

	client, err := newBookmarkClient(ctx, cfg, options.httpClient, logger)
	if err != nil {
		stop()
		return nil, err
	}
	result.client = client
	result.loader = workspace.NewLoader(client, cfg.FetchTimeout(), logger)
	return result, nil
}

// Close stops the content watcher.
func (app *app) Close() {
	app.stop()
}

// loadContent returns the base tree and its translations. The
// compiled-in portfolio is used unless content.dir names a directory.
func loadContent(cfg *config.Config, onChange func(*vfs.Node), logger *slog.Logger) (*vfs.Node, vfs.Translations, func(), error) {
	rootName := cfg.Content.RootName
	noop := func() {}

	if cfg.Content.Dir == "" {
		base, err := vfs.Load(content.Files(), rootName)
		if err != nil {
			return nil, nil, nil, cli.Internal("loading built-in content: %w", err)
		}
		translations, err := vfs.LoadTranslations(content.Translations(), rootName)
		if err != nil {
			return nil, nil, nil, cli.Internal("loading built-in translations: %w", err)
		}
		return base, translations, noop, nil
	}

	var translations vfs.Translations
	if cfg.Content.TranslationsDir != "" {
		loaded, err := vfs.LoadTranslations(os.DirFS(cfg.Content.TranslationsDir), rootName)
		if err != nil {
			return nil, nil, nil, cli.NotFound("loading translations from %s: %w", cfg.Content.TranslationsDir, err)
		}
		translations = loaded
	}

	if cfg.Content.Watch && onChange != nil {
		base, stop, err := vfs.Watch(cfg.Content.Dir, rootName, onChange, logger)
		if err != nil {
			return nil, nil, nil, cli.NotFound("watching %s: %w", cfg.Content.Dir, err)
		}
		logger.Info("watching content", "dir", cfg.Content.Dir)
		return base, translations, stop, nil
	}

	base, err := vfs.Load(os.DirFS(cfg.Content.Dir), rootName)
	if err != nil {
		return nil, nil, nil, cli.NotFound("loading %s: %w", cfg.Content.Dir, err)
	}
	return base, translations, noop, nil
}

// newBookmarkClient builds the bookmark client described by the
// configuration: documents come from the S3 bucket when one is
// configured and are kept in the disk cache when a cache directory is
// set.
func newBookmarkClient(ctx context.Context, cfg *config.Config, httpClient *http.Client, logger *slog.Logger) (*bookmark.Client, error) {
	clientConfig := bookmark.Config{
		ManifestURL:    cfg.Bookmarks.ManifestURL,
		ContentBaseURL: cfg.Bookmarks.ContentBaseURL,
		APIBaseURL:     cfg.Bookmarks.APIBaseURL,
		HTTPClient:     httpClient,
		Logger:         logger,
	}

	if s3Config, ok := cfg.BookmarkS3(); ok {
		source, err := bookmark.NewS3Source(ctx, s3Config)
		if err != nil {
			return nil, cli.Validation("configuring bookmark bucket: %w", err)
		}
		clientConfig.Source = source
	}

	if cfg.Bookmarks.CacheDir != "" {
		if err := cfg.EnsurePaths(); err != nil {
			logger.Warn("bookmark cache disabled", "error", err)
		} else {
			cache, err := bookmark.NewDiskCache(cfg.Bookmarks.CacheDir, cfg.CacheMaxAge(), clock.Real())
			if err != nil {
				logger.Warn("bookmark cache disabled", "error", err)
			} else {
				clientConfig.Cache = cache
			}
		}
	}

	client, err := bookmark.NewClient(clientConfig)
	if err != nil {
		return nil, cli.Validation("configuring bookmarks: %w", err)
	}
	return client, nil
}

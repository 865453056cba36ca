// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/spf13/pflag"

	"github.com/ndp190/termfolio/cmd/termfolio/cli"
	"github.com/ndp190/termfolio/lib/clock"
	"github.com/ndp190/termfolio/lib/vfs"
	"github.com/ndp190/termfolio/lib/vfsmount"
	"github.com/ndp190/termfolio/lib/workspace"
)

func mountCommand() *cli.Command {
	var (
		flags      configFlags
		offline    bool
		refresh    time.Duration
		allowOther bool
	)

	return &cli.Command{
		Name:    "mount",
		Summary: "Mount the content tree as a read-only filesystem",
		Description: `Serve the shell's content tree, bookmarks included, as a read-only
FUSE filesystem until interrupted. Edits under content.dir show up in
the mount when content.watch is set. The bookmark manifest is fetched
at startup and again every --refresh interval.`,
		Usage: "termfolio mount [flags] <mountpoint>",
		Examples: []cli.Example{
			{
				Description: "Browse the portfolio with ordinary tools",
				Command:     "termfolio mount /tmp/portfolio && ls /tmp/portfolio/blog",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("mount", pflag.ContinueOnError)
			flags.register(flagSet)
			flagSet.BoolVar(&offline, "offline", false, "do not fetch bookmarks")
			flagSet.DurationVar(&refresh, "refresh", 15*time.Minute, "manifest refetch interval (0 disables)")
			flagSet.BoolVar(&allowOther, "allow-other", false, "let other users read the mount (needs user_allow_other in /etc/fuse.conf)")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly one mountpoint").
					WithHint("Run 'termfolio mount --help' for usage.")
			}
			cfg, err := flags.load()
			if err != nil {
				return err
			}

			var current atomic.Pointer[workspace.Workspace]
			app, err := newApp(ctx, cfg, appOptions{
				offline: offline,
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

			server, err := vfsmount.Mount(vfsmount.Options{
				Mountpoint: args[0],
				Tree:       app.workspace.Tree,
				AllowOther: allowOther,
				Logger:     logger,
			})
			if err != nil {
				return cli.Internal("%w", err)
			}
			defer func() {
				if err := server.Unmount(); err != nil {
					logger.Error("failed to unmount", "mountpoint", args[0], "error", err)
				} else {
					logger.Info("unmounted", "mountpoint", args[0])
				}
			}()

			if app.loader != nil {
				refreshBookmarks(ctx, app, refresh, clock.Real(), logger)
			} else {
				<-ctx.Done()
			}
			return nil
		},
	}
}

// refreshBookmarks fetches the manifest now and then every interval
// until ctx is done. A zero interval fetches once.
func refreshBookmarks(ctx context.Context, app *app, interval time.Duration, clk clock.Clock, logger *slog.Logger) {
	for {
		app.workspace.Refresh(ctx, app.loader)
		if err := app.workspace.ManifestError(); err != nil {
			logger.Warn("bookmark refresh failed", "error", err)
		} else if manifest, _ := app.workspace.Manifest(); manifest != nil {
			logger.Info("bookmarks refreshed", "count", len(manifest.Bookmarks))
		}

		if interval <= 0 {
			<-ctx.Done()
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-clk.After(interval):
		}
	}
}

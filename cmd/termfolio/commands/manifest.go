// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/ndp190/termfolio/cmd/termfolio/cli"
	"github.com/ndp190/termfolio/lib/bookmark"
	"github.com/ndp190/termfolio/lib/config"
)

func manifestCommand() *cli.Command {
	return &cli.Command{
		Name:    "manifest",
		Summary: "Maintain the bookmark manifest",
		Description: `Maintain the local bookmark manifest (bookmarks.manifest_file) and
publish it to the configured bucket. The file is JSON and may carry
comments; writes replace it atomically.`,
		Subcommands: []*cli.Command{
			manifestListCommand(),
			manifestAddCommand(),
			manifestPushCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Add a scraped article by its document URL",
				Command:     "termfolio manifest add https://r2.nikkdev.com/bookmark/slow-web.json",
			},
			{
				Description: "Publish the manifest",
				Command:     "termfolio manifest push",
			},
		},
	}
}

func manifestListCommand() *cli.Command {
	var flags configFlags
	return &cli.Command{
		Name:    "list",
		Summary: "List bookmarks in the local manifest",
		Usage:   "termfolio manifest list [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flags.register(flagSet)
			return flagSet
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument %q", args[0])
			}
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			manifest, err := bookmark.LoadManifestFile(cfg.Bookmarks.ManifestFile)
			if err != nil {
				return cli.Internal("%w", err)
			}
			printManifest(manifest, os.Stdout)
			return nil
		},
	}
}

func printManifest(manifest *bookmark.Manifest, out io.Writer) {
	if len(manifest.Bookmarks) == 0 {
		fmt.Fprintln(out, "no bookmarks")
		return
	}
	writer := tabwriter.NewWriter(out, 2, 0, 3, ' ', 0)
	fmt.Fprintln(writer, "ID\tKEY\tTITLE\tURL")
	for _, item := range manifest.Bookmarks {
		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\n", item.ID, item.Key, item.Title, item.URL)
	}
	writer.Flush()
}

func manifestAddCommand() *cli.Command {
	var (
		flags configFlags
		key   string
	)
	return &cli.Command{
		Name:    "add",
		Summary: "Add or update bookmarks from scraped documents",
		Description: `Fetch each scraped document and add its bookmark to the local
manifest, or refresh the title, description, and URL of an existing
one. An argument containing "://" is a document URL; anything else is
a bookmark key read from the configured content source.`,
		Usage: "termfolio manifest add [flags] <document-url|key>...",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("add", pflag.ContinueOnError)
			flags.register(flagSet)
			flagSet.StringVar(&key, "key", "", "bookmark key (default: derived from the document URL; one document only)")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) == 0 {
				return cli.Validation("at least one document URL or key is required").
					WithHint("Run 'termfolio manifest add --help' for usage.")
			}
			if key != "" && len(args) > 1 {
				return cli.Validation("--key applies to a single document, got %d", len(args))
			}
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			return addBookmarks(ctx, cfg, args, key, nil, os.Stdout, logger)
		},
	}
}

// addBookmarks upserts one bookmark per source and saves the manifest
// once, after every document was fetched.
func addBookmarks(ctx context.Context, cfg *config.Config, sources []string, key string, httpClient *http.Client, out io.Writer, logger *slog.Logger) error {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	manifest, err := bookmark.LoadManifestFile(cfg.Bookmarks.ManifestFile)
	if err != nil {
		return cli.Internal("%w", err)
	}

	var client *bookmark.Client
	for _, source := range sources {
		var document *bookmark.Document
		bookmarkKey := key

		if strings.Contains(source, "://") {
			if bookmarkKey == "" {
				bookmarkKey, err = bookmark.KeyFromURL(source)
				if err != nil {
					return cli.Validation("%w", err).WithHint("Pass --key to name the bookmark.")
				}
			}
			document, err = bookmark.FetchDocument(ctx, httpClient, source)
		} else {
			if bookmarkKey == "" {
				bookmarkKey = source
			}
			if client == nil {
				client, err = newBookmarkClient(ctx, cfg, httpClient, logger)
				if err != nil {
					return err
				}
			}
			document, err = client.Document(ctx, source)
		}
		if err := bookmark.ValidateKey(bookmarkKey); err != nil {
			return cli.Validation("%w", err)
		}
		if err != nil {
			if bookmark.IsNotFound(err) {
				return cli.NotFound("document %s not found", source)
			}
			return cli.Transient("fetching %s: %w", source, err)
		}

		item, added, err := manifest.Upsert(bookmarkKey, document)
		if err != nil {
			return cli.Validation("%s: %w", source, err)
		}
		verb := "updated"
		if added {
			verb = "added"
		}
		fmt.Fprintf(out, "%s %d %s (%s)\n", verb, item.ID, item.Key, item.Title)
	}

	if err := bookmark.SaveManifestFile(cfg.Bookmarks.ManifestFile, manifest, time.Now()); err != nil {
		return cli.Internal("%w", err)
	}
	logger.Info("manifest saved", "path", cfg.Bookmarks.ManifestFile, "bookmarks", len(manifest.Bookmarks))
	return nil
}

func manifestPushCommand() *cli.Command {
	var flags configFlags
	return &cli.Command{
		Name:    "push",
		Summary: "Upload the local manifest to the bookmark bucket",
		Usage:   "termfolio manifest push [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("push", pflag.ContinueOnError)
			flags.register(flagSet)
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument %q", args[0])
			}
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			s3Config, ok := cfg.BookmarkS3()
			if !ok {
				return cli.Validation("no bookmark bucket configured").
					WithHint("Set bookmarks.s3.bucket (and credentials) in the config file.")
			}
			manifest, err := bookmark.LoadManifestFile(cfg.Bookmarks.ManifestFile)
			if err != nil {
				return cli.Internal("%w", err)
			}
			if len(manifest.Bookmarks) == 0 {
				return cli.Validation("%s has no bookmarks", cfg.Bookmarks.ManifestFile).
					WithHint("Add some with 'termfolio manifest add'.")
			}

			source, err := bookmark.NewS3Source(ctx, s3Config)
			if err != nil {
				return cli.Validation("configuring bookmark bucket: %w", err)
			}
			objectKey, err := source.PutManifest(ctx, manifest)
			if err != nil {
				return cli.Transient("%w", err)
			}
			logger.Info("manifest published", "bucket", s3Config.Bucket, "key", objectKey, "bookmarks", len(manifest.Bookmarks))
			fmt.Printf("published %d bookmarks to s3://%s/%s\n", len(manifest.Bookmarks), s3Config.Bucket, objectKey)
			return nil
		},
	}
}

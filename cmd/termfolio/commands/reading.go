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

	"github.com/ndp190/termfolio/cmd/termfolio/cli"
	"github.com/ndp190/termfolio/lib/bookmark"
	"github.com/ndp190/termfolio/lib/config"
)

func readingCommand() *cli.Command {
	return &cli.Command{
		Name:    "reading",
		Summary: "Record reading progress and annotations",
		Description: `Read and write the reading API behind the bookmark listing: the
progress bar "bookmark ls" draws and the highlights "bookmark cat"
shows. Requires bookmarks.api_base_url.`,
		Subcommands: []*cli.Command{
			readingProgressCommand(),
			readingAnnotationsCommand(),
			readingAnnotateCommand(),
			readingRemoveCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Mark a bookmark as half read",
				Command:     "termfolio reading progress slow-web --set 50",
			},
			{
				Description: "Highlight a passage",
				Command:     "termfolio reading annotate slow-web --text 'Accidents happen.' --start 0 --end 17",
			},
		},
	}
}

// readingClient builds a bookmark client that can reach the reading
// API.
func readingClient(ctx context.Context, flags *configFlags, logger *slog.Logger) (*bookmark.Client, error) {
	cfg, err := flags.load()
	if err != nil {
		return nil, err
	}
	return newReadingClient(ctx, cfg, logger)
}

func newReadingClient(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*bookmark.Client, error) {
	client, err := newBookmarkClient(ctx, cfg, nil, logger)
	if err != nil {
		return nil, err
	}
	if !client.HasReadingAPI() {
		return nil, cli.Validation("the reading API is not configured").
			WithHint("Set bookmarks.api_base_url in the config file.")
	}
	return client, nil
}

// apiError categorizes a reading API failure.
func apiError(err error, key string) error {
	if bookmark.IsNotFound(err) {
		return cli.NotFound("bookmark %q not found", key)
	}
	return cli.Transient("%w", err)
}

func readingProgressCommand() *cli.Command {
	var (
		flags configFlags
		set   float64
	)
	return &cli.Command{
		Name:    "progress",
		Summary: "Show or set the reading progress of a bookmark",
		Usage:   "termfolio reading progress [flags] <key>",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("progress", pflag.ContinueOnError)
			flags.register(flagSet)
			flagSet.Float64Var(&set, "set", -1, "record this percentage (0-100)")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly one bookmark key")
			}
			if set > 100 {
				return cli.Validation("--set must be between 0 and 100, got %g", set)
			}
			client, err := readingClient(ctx, &flags, logger)
			if err != nil {
				return err
			}
			return showProgress(ctx, client, args[0], set, os.Stdout)
		},
	}
}

// showProgress prints the progress of key, first recording percentage
// when it is not negative.
func showProgress(ctx context.Context, client *bookmark.Client, key string, percentage float64, out io.Writer) error {
	var progress *bookmark.Progress
	var err error
	if percentage >= 0 {
		progress, err = client.SaveProgress(ctx, key, 0, percentage)
	} else {
		progress, err = client.Progress(ctx, key)
	}
	if err != nil {
		return apiError(err, key)
	}
	if progress == nil {
		fmt.Fprintf(out, "%s: unread\n", key)
		return nil
	}
	state := ""
	if progress.IsRead {
		state = ", read"
	}
	if progress.IsFavourite {
		state += ", favourite"
	}
	fmt.Fprintf(out, "%s: %.0f%%%s (last read %s)\n", key, progress.ScrollPercentage, state, progress.LastReadAt)
	return nil
}

func readingAnnotationsCommand() *cli.Command {
	var flags configFlags
	return &cli.Command{
		Name:    "annotations",
		Summary: "List the annotations on a bookmark",
		Usage:   "termfolio reading annotations [flags] <key>",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("annotations", pflag.ContinueOnError)
			flags.register(flagSet)
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly one bookmark key")
			}
			client, err := readingClient(ctx, &flags, logger)
			if err != nil {
				return err
			}
			annotations, err := client.Annotations(ctx, args[0])
			if err != nil {
				return apiError(err, args[0])
			}
			printAnnotations(annotations, os.Stdout)
			return nil
		},
	}
}

func printAnnotations(annotations []bookmark.Annotation, out io.Writer) {
	if len(annotations) == 0 {
		fmt.Fprintln(out, "no annotations")
		return
	}
	for _, annotation := range annotations {
		fmt.Fprintf(out, "%s [%d:%d] %q\n", annotation.ID, annotation.StartOffset, annotation.EndOffset, annotation.SelectedText)
		if annotation.Note != "" {
			fmt.Fprintf(out, "    %s\n", annotation.Note)
		}
	}
}

func readingAnnotateCommand() *cli.Command {
	var (
		flags configFlags
		text  string
		note  string
		start int
		end   int
	)
	return &cli.Command{
		Name:    "annotate",
		Summary: "Highlight a passage of a bookmark",
		Description: `Create an annotation on a bookmark. Offsets are byte offsets into the
bookmark's markdown; --end defaults to --start plus the length of
--text.`,
		Usage: "termfolio reading annotate [flags] <key>",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("annotate", pflag.ContinueOnError)
			flags.register(flagSet)
			flagSet.StringVar(&text, "text", "", "the highlighted text (required)")
			flagSet.StringVar(&note, "note", "", "a note to attach")
			flagSet.IntVar(&start, "start", 0, "start offset")
			flagSet.IntVar(&end, "end", -1, "end offset")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly one bookmark key")
			}
			request, err := newAnnotation(text, note, start, end)
			if err != nil {
				return err
			}
			client, err := readingClient(ctx, &flags, logger)
			if err != nil {
				return err
			}
			annotation, err := client.AddAnnotation(ctx, args[0], request)
			if err != nil {
				return apiError(err, args[0])
			}
			fmt.Printf("created annotation %s on %s\n", annotation.ID, args[0])
			return nil
		},
	}
}

func newAnnotation(text, note string, start, end int) (bookmark.NewAnnotation, error) {
	if strings.TrimSpace(text) == "" {
		return bookmark.NewAnnotation{}, cli.Validation("--text is required")
	}
	if end < 0 {
		end = start + len(text)
	}
	if start < 0 || end <= start {
		return bookmark.NewAnnotation{}, cli.Validation("invalid range [%d:%d]", start, end)
	}
	return bookmark.NewAnnotation{
		SelectedText: text,
		Note:         note,
		StartOffset:  start,
		EndOffset:    end,
	}, nil
}

func readingRemoveCommand() *cli.Command {
	var flags configFlags
	return &cli.Command{
		Name:    "remove",
		Summary: "Delete an annotation",
		Usage:   "termfolio reading remove [flags] <key> <annotation-id>",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("remove", pflag.ContinueOnError)
			flags.register(flagSet)
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 2 {
				return cli.Validation("expected a bookmark key and an annotation ID")
			}
			client, err := readingClient(ctx, &flags, logger)
			if err != nil {
				return err
			}
			if err := client.DeleteAnnotation(ctx, args[0], args[1]); err != nil {
				return apiError(err, args[0])
			}
			fmt.Printf("removed annotation %s from %s\n", args[1], args[0])
			return nil
		},
	}
}

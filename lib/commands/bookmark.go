// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/junegunn/fzf/src/util"

	"github.com/ndp190/termfolio/lib/bookmark"
	"github.com/ndp190/termfolio/lib/shell"
	"github.com/ndp190/termfolio/lib/tui"
	"github.com/ndp190/termfolio/lib/workspace"
)

var bookmarkSubcommands = []string{"cat", "go", "search", "refresh"}

const (
	bookmarkIntro  = "Saved articles from the web. Use 'go' to open or 'cat' to read."
	bookmarkFooter = "Usage: bookmark cat <id> | bookmark go <id>\neg: bookmark cat 1"
	bookmarkUsage  = "Usage: bookmark cat <id> - view bookmark content\n" +
		"Usage: bookmark go <id> - open bookmark URL\n" +
		"Usage: bookmark search <query> - find bookmarks\n" +
		"Usage: bookmark refresh - reload the list\n" +
		"eg: bookmark cat 1"

	// hintTitleWidth bounds bookmark titles in completion hints.
	hintTitleWidth = 40
)

func renderBookmark(invocation shell.Invocation, env Environment) shell.Output {
	args := invocation.Args
	if len(args) == 1 && args[0] == "refresh" {
		return shell.Text("Refreshing bookmarks...").
			WithEffects(shell.Effect{Kind: shell.EffectRefreshManifest})
	}

	manifest, status := env.Manifest()
	if waiting, ok := manifestPending(status); ok {
		return waiting
	}
	if manifest == nil || len(manifest.Bookmarks) == 0 {
		return shell.Text("No bookmarks available.")
	}

	if len(args) == 0 {
		return listBookmarks(manifest, env)
	}

	switch action := args[0]; {
	case action == "cat" && len(args) == 2:
		item, ok := manifest.Lookup(args[1])
		if !ok {
			return shell.Errorf("bookmark: %s: No such bookmark", args[1])
		}
		return renderBookmarkContent(invocation, env, item)

	case action == "go" && len(args) == 2:
		item, ok := manifest.Lookup(args[1])
		if !ok {
			return shell.Usage(bookmarkUsage)
		}
		return shell.Text("Opening %s...", item.URL).
			WithEffects(shell.Effect{Kind: shell.EffectOpenURL, Value: item.URL})

	case action == "search" && len(args) > 1:
		return searchBookmarks(manifest, strings.Join(args[1:], " "))
	}
	return shell.Usage(bookmarkUsage)
}

// manifestPending returns the output for a manifest that is not
// ready. An idle manifest asks for a fetch.
func manifestPending(status workspace.ManifestStatus) (shell.Output, bool) {
	switch status {
	case workspace.ManifestIdle:
		return shell.Text("Loading bookmarks...").
			WithEffects(shell.Effect{Kind: shell.EffectRefreshManifest}), true
	case workspace.ManifestLoading:
		return shell.Text("Loading bookmarks..."), true
	case workspace.ManifestFailed:
		return shell.Errorf("Failed to load bookmarks"), true
	}
	return shell.Output{}, false
}

func bookmarkByKey(env Environment, key string) (bookmark.Bookmark, bool) {
	manifest, _ := env.Manifest()
	if manifest == nil {
		return bookmark.Bookmark{}, false
	}
	return manifest.ByKey(key)
}

func listBookmarks(manifest *bookmark.Manifest, env Environment) shell.Output {
	var list strings.Builder
	list.WriteString(bookmarkIntro + "\n")
	for _, item := range manifest.Bookmarks {
		fmt.Fprintf(&list, "\n%d. %s\n", item.ID, item.Title)
		if item.Description != "" {
			list.WriteString("   " + item.Description + "\n")
		}
		list.WriteString("   " + item.URL + "\n")

		enriched, ok := env.Enriched(item.Key)
		if !ok {
			continue
		}
		if preview := annotationPreview(enriched.Annotations); preview != "" {
			list.WriteString("   " + preview + "\n")
		}
		if enriched.Progress != nil {
			list.WriteString("   " + progressLabel(enriched.Progress) + "\n")
		}
	}
	list.WriteString("\n" + bookmarkFooter)
	return shell.Text("%s", list.String())
}

func annotationPreview(annotations []bookmark.Annotation) string {
	if len(annotations) == 0 {
		return ""
	}
	first := annotations[0]
	preview := strconv.Quote(first.SelectedText)
	if len(annotations) > 1 {
		preview += fmt.Sprintf(" (+%d more)", len(annotations)-1)
	}
	if first.Note != "" {
		preview += " — " + first.Note
	}
	return preview
}

func progressLabel(progress *bookmark.Progress) string {
	if progress.IsRead {
		return "Finished"
	}
	return fmt.Sprintf("%d%% read", int(math.Round(progress.ScrollPercentage)))
}

// renderBookmarkContent shows a bookmark's article. The first render
// after submission requests the content; later renders show it once
// it has arrived.
func renderBookmarkContent(invocation shell.Invocation, env Environment, item bookmark.Bookmark) shell.Output {
	content, requested := env.Content(item.Key)
	if !requested || content.Status == workspace.ContentFailed && invocation.Rerender {
		return scrollTo(invocation, shell.Text("Fetching bookmark...").
			WithEffects(shell.Effect{Kind: shell.EffectLoadBookmark, Value: item.Key}))
	}
	switch content.Status {
	case workspace.ContentLoading:
		return scrollTo(invocation, shell.Text("Fetching bookmark..."))
	case workspace.ContentFailed:
		return shell.Errorf("Failed to load bookmark")
	}

	enriched, _ := env.Enriched(item.Key)
	return scrollTo(invocation, shell.Markdown(bookmark.Annotate(content.Markdown, enriched.Progress, enriched.Annotations)))
}

func searchBookmarks(manifest *bookmark.Manifest, query string) shell.Output {
	type match struct {
		item  bookmark.Bookmark
		score int
	}
	pattern := []rune(query)
	slab := util.MakeSlab(100*1024, 2048)
	var matches []match
	for _, item := range manifest.Bookmarks {
		result := tui.FuzzyMatch(item.Title+" "+item.Description, pattern, slab)
		if result.Score > 0 {
			matches = append(matches, match{item: item, score: result.Score})
		}
	}
	if len(matches) == 0 {
		return shell.Errorf("bookmark: no matches for %q", query)
	}
	slices.SortStableFunc(matches, func(a, b match) int { return b.score - a.score })

	lines := make([]string, len(matches))
	for index, found := range matches {
		lines[index] = fmt.Sprintf("%d. %s", found.item.ID, found.item.Title)
	}
	return shell.Text("%s", strings.Join(lines, "\n"))
}

func bookmarkCandidates(env Environment) []shell.Candidate {
	manifest, status := env.Manifest()
	if status != workspace.ManifestReady || manifest == nil {
		return nil
	}
	candidates := make([]shell.Candidate, len(manifest.Bookmarks))
	for index, item := range manifest.Bookmarks {
		id := strconv.Itoa(item.ID)
		title := item.Title
		if runes := []rune(title); len(runes) > hintTitleWidth {
			title = string(runes[:hintTitleWidth]) + "..."
		}
		candidates[index] = shell.Candidate{Display: id + ". " + title, Value: id}
	}
	return candidates
}

// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ndp190/termfolio/lib/bookmark"
	"github.com/ndp190/termfolio/lib/clock"
	"github.com/ndp190/termfolio/lib/shell"
	"github.com/ndp190/termfolio/lib/tui"
	"github.com/ndp190/termfolio/lib/vfs"
)

// BookmarksDirectory is the top-level directory the manifest is
// grafted into.
const BookmarksDirectory = "bookmarks"

// ManifestStatus is the lifecycle of the bookmark manifest.
type ManifestStatus int

const (
	// ManifestIdle means no fetch has been requested.
	ManifestIdle ManifestStatus = iota

	// ManifestLoading means a fetch is in flight and nothing has
	// been loaded yet.
	ManifestLoading

	// ManifestReady means a manifest is available. A refresh in
	// flight does not leave this state.
	ManifestReady

	// ManifestFailed means the only fetches so far have failed.
	ManifestFailed
)

func (status ManifestStatus) String() string {
	switch status {
	case ManifestIdle:
		return "idle"
	case ManifestLoading:
		return "loading"
	case ManifestReady:
		return "ready"
	case ManifestFailed:
		return "failed"
	}
	return fmt.Sprintf("ManifestStatus(%d)", int(status))
}

// ContentStatus is the lifecycle of one bookmark's content.
type ContentStatus int

const (
	ContentLoading ContentStatus = iota + 1
	ContentReady
	ContentFailed
)

// Content is the fetched markdown of one bookmark.
type Content struct {
	Status   ContentStatus
	Markdown string
	Err      error
}

// Language is a selectable content language.
type Language struct {
	Code  string
	Label string
}

// Languages are the supported content languages, default first.
var Languages = []Language{
	{Code: "en", Label: "English"},
	{Code: "vn", Label: "Tiếng Việt"},
}

// Options configures a [Workspace].
type Options struct {
	// Base is the content tree without bookmarks. Required.
	Base *vfs.Node

	// Translations holds localized copies of content files.
	Translations vfs.Translations

	// Theme and Language are the initial selections. Empty values
	// fall back to the defaults; unknown values are an error.
	Theme    string
	Language string

	Clock  clock.Clock
	Logger *slog.Logger
}

// Workspace is the state the shell's commands read and its effects
// change: the browsable tree, the bookmark manifest and contents, the
// theme, and the language. Safe for concurrent use: background
// fetches apply their results while the front end renders.
type Workspace struct {
	clock  clock.Clock
	logger *slog.Logger

	mu           sync.RWMutex
	base         *vfs.Node
	tree         *vfs.Node
	translations vfs.Translations
	theme        string
	language     string

	manifest       *bookmark.Manifest
	manifestStatus ManifestStatus
	manifestErr    error
	issued         uint64
	applied        uint64
	enriched       map[string]bookmark.Enriched
	contents       map[string]Content
}

// New creates a workspace.
func New(options Options) (*Workspace, error) {
	if options.Base == nil {
		return nil, fmt.Errorf("workspace: base tree is required")
	}
	theme := options.Theme
	if theme == "" {
		theme = tui.DefaultThemeName
	}
	if _, ok := tui.LookupTheme(theme); !ok {
		return nil, fmt.Errorf("workspace: unknown theme %q", theme)
	}
	language := options.Language
	if language == "" {
		language = Languages[0].Code
	}
	if !IsLanguage(language) {
		return nil, fmt.Errorf("workspace: unknown language %q", language)
	}
	clk := options.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Workspace{
		clock:        clk,
		logger:       logger,
		base:         options.Base,
		tree:         options.Base,
		translations: options.Translations,
		theme:        theme,
		language:     language,
		enriched:     make(map[string]bookmark.Enriched),
		contents:     make(map[string]Content),
	}, nil
}

// IsLanguage reports whether code is a supported language.
func IsLanguage(code string) bool {
	for _, language := range Languages {
		if language.Code == code {
			return true
		}
	}
	return false
}

// Now returns the workspace clock's current time.
func (workspace *Workspace) Now() time.Time {
	return workspace.clock.Now()
}

// Tree returns the current root: the base tree plus the bookmarks
// directory once a manifest is loaded.
func (workspace *Workspace) Tree() *vfs.Node {
	workspace.mu.RLock()
	defer workspace.mu.RUnlock()
	return workspace.tree
}

// SetBaseTree replaces the content tree, e.g. after the content
// directory changed on disk. The bookmarks directory is re-grafted.
func (workspace *Workspace) SetBaseTree(base *vfs.Node) {
	if base == nil {
		return
	}
	workspace.mu.Lock()
	defer workspace.mu.Unlock()
	workspace.base = base
	workspace.rebuildLocked()
}

// SetTranslations replaces the localized content.
func (workspace *Workspace) SetTranslations(translations vfs.Translations) {
	workspace.mu.Lock()
	defer workspace.mu.Unlock()
	workspace.translations = translations
}

func (workspace *Workspace) rebuildLocked() {
	if workspace.manifest == nil {
		workspace.tree = vfs.WithoutDirectory(workspace.base, BookmarksDirectory)
		return
	}
	workspace.tree = vfs.WithDirectory(workspace.base, BookmarksDirectory,
		bookmarkLeaves(workspace.manifest, workspace.clock.Now()), workspace.clock.Now())
}

func bookmarkLeaves(manifest *bookmark.Manifest, modTime time.Time) []vfs.Leaf {
	leaves := make([]vfs.Leaf, len(manifest.Bookmarks))
	for index, item := range manifest.Bookmarks {
		leaves[index] = vfs.Leaf{
			Name:    item.FileName(),
			Content: BookmarkSummary(item),
			ModTime: modTime,
		}
	}
	return leaves
}

// BookmarkSummary is the markdown content of a bookmark's leaf in the
// tree.
func BookmarkSummary(item bookmark.Bookmark) string {
	var summary strings.Builder
	fmt.Fprintf(&summary, "# %s\n\n", item.Title)
	if item.Description != "" {
		fmt.Fprintf(&summary, "%s\n\n", item.Description)
	}
	fmt.Fprintf(&summary, "<%s>\n", item.URL)
	return summary.String()
}

// BookmarkKey returns the bookmark key for a node inside the bookmarks
// directory.
func BookmarkKey(node *vfs.Node) (string, bool) {
	if node == nil || node.IsDir {
		return "", false
	}
	relative := node.RelativePath()
	directory, name, found := strings.Cut(relative, "/")
	if !found || directory != BookmarksDirectory || strings.Contains(name, "/") {
		return "", false
	}
	return strings.TrimSuffix(name, ".md"), true
}

// Theme returns the selected theme name.
func (workspace *Workspace) Theme() string {
	workspace.mu.RLock()
	defer workspace.mu.RUnlock()
	return workspace.theme
}

// SetTheme selects a theme by name.
func (workspace *Workspace) SetTheme(name string) error {
	if _, ok := tui.LookupTheme(name); !ok {
		return fmt.Errorf("workspace: unknown theme %q", name)
	}
	workspace.mu.Lock()
	defer workspace.mu.Unlock()
	workspace.theme = name
	return nil
}

// Language returns the selected language code.
func (workspace *Workspace) Language() string {
	workspace.mu.RLock()
	defer workspace.mu.RUnlock()
	return workspace.language
}

// SetLanguage selects a language by code.
func (workspace *Workspace) SetLanguage(code string) error {
	if !IsLanguage(code) {
		return fmt.Errorf("workspace: unknown language %q", code)
	}
	workspace.mu.Lock()
	defer workspace.mu.Unlock()
	workspace.language = code
	return nil
}

// Localized returns a file's content in the selected language, falling
// back to the node's own content.
func (workspace *Workspace) Localized(node *vfs.Node) string {
	workspace.mu.RLock()
	defer workspace.mu.RUnlock()
	if workspace.translations != nil {
		if content, ok := workspace.translations.Lookup(workspace.language, node.Path); ok {
			return content
		}
	}
	return node.Content
}

// Apply performs the effects that change workspace state: theme and
// language selection. Other effects are left to the front end.
func (workspace *Workspace) Apply(effect shell.Effect) error {
	switch effect.Kind {
	case shell.EffectSetTheme:
		return workspace.SetTheme(effect.Value)
	case shell.EffectSetLanguage:
		return workspace.SetLanguage(effect.Value)
	}
	return nil
}

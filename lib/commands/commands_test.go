// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"strings"
	"testing"
	"time"

	"github.com/ndp190/termfolio/lib/bookmark"
	"github.com/ndp190/termfolio/lib/clock"
	"github.com/ndp190/termfolio/lib/shell"
	"github.com/ndp190/termfolio/lib/vfs"
	"github.com/ndp190/termfolio/lib/workspace"
)

var testTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type harness struct {
	workspace *workspace.Workspace
	session   *shell.Session
	registry  *shell.Registry
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	base := vfs.NewDir("", "terminal", testTime, []*vfs.Node{
		vfs.NewFile("", "about-me.md", "# About me", testTime),
		vfs.NewDir("", "blog", testTime, []*vfs.Node{
			vfs.NewFile("", "hello-world.md", "hello", testTime),
			vfs.NewFile("", "notes.md", "notes", testTime),
		}),
		vfs.NewDir("", "empty", testTime, nil),
	})
	ws, err := workspace.New(workspace.Options{
		Base: base,
		Translations: vfs.Translations{
			"vn": {"terminal/about-me.md": "# Về tôi"},
		},
		Clock: clock.Fake(testTime),
	})
	if err != nil {
		t.Fatalf("workspace.New: %v", err)
	}
	registry := shell.MustRegistry(shell.DefaultCommands()...)
	dispatcher := shell.NewDispatcher(registry, shell.DefaultFreeForm())
	if err := Install(dispatcher, ws, Profile{User: "visitor", HomeDir: "/home/nikk", TaglineSeed: 3}); err != nil {
		t.Fatalf("Install: %v", err)
	}
	completer := shell.NewCompleter(Completion(registry, ws))
	return &harness{workspace: ws, session: shell.NewSession(completer, dispatcher), registry: registry}
}

// run submits line and returns its output and the effects it queued.
func (h *harness) run(line string) (shell.Output, []shell.Effect) {
	h.session.Submit(line)
	transcript := h.session.Transcript()
	effects := h.session.Drain()
	if len(transcript) == 0 {
		return shell.Output{}, effects
	}
	return transcript[len(transcript)-1].Output, effects
}

func (h *harness) loadManifest(t *testing.T, manifest *bookmark.Manifest, enriched ...bookmark.Enriched) {
	t.Helper()
	generation := h.workspace.BeginManifestFetch()
	if !h.workspace.ApplyManifest(generation, manifest, enriched) {
		t.Fatal("manifest not applied")
	}
}

func TestInstallRejectsUnknownCommand(t *testing.T) {
	commands := append(shell.DefaultCommands(), shell.Command{Name: "socials", Description: "my socials", Tab: 6})
	dispatcher := shell.NewDispatcher(shell.MustRegistry(commands...), nil)
	h := newHarness(t)
	if err := Install(dispatcher, h.workspace, DefaultProfile()); err == nil {
		t.Fatal("Install succeeded with a command it has no renderer for")
	}
}

func TestHelp(t *testing.T) {
	h := newHarness(t)
	output, _ := h.run("help")
	lines := strings.Split(output.Text, "\n")
	if lines[0] != "about          - about Nikk" {
		t.Errorf("first line = %q", lines[0])
	}
	if lines[1] != "bookmark       - my reading list and notes" {
		t.Errorf("second line = %q", lines[1])
	}
	if strings.Contains(output.Text, "whoami") {
		t.Error("hidden command listed")
	}
	if !strings.Contains(output.Text, "Keyboard Shortcuts:\nTab or Ctrl + i => autocompletes the command") {
		t.Errorf("shortcuts missing:\n%s", output.Text)
	}
}

func TestEchoStripsQuotes(t *testing.T) {
	h := newHarness(t)
	output, _ := h.run(`echo "hello"   'big' ` + "`world`")
	if output.Text != "hello big world" {
		t.Errorf("echo = %q", output.Text)
	}
}

func TestConstantCommands(t *testing.T) {
	h := newHarness(t)
	if output, _ := h.run("pwd"); output.Text != "/home/nikk" {
		t.Errorf("pwd = %q", output.Text)
	}
	if output, _ := h.run("whoami"); output.Text != "visitor" {
		t.Errorf("whoami = %q", output.Text)
	}
	if output, _ := h.run("pwd now"); output.Kind != shell.OutputUsage {
		t.Errorf("pwd with argument kind = %v", output.Kind)
	}
}

func TestWelcomeUsesTagline(t *testing.T) {
	h := newHarness(t)
	output, _ := h.run("welcome")
	if !strings.Contains(output.Text, Tagline(3)) {
		t.Errorf("welcome missing tagline:\n%s", output.Text)
	}
	if Tagline(-1) != taglines[len(taglines)-1] {
		t.Error("negative seed not wrapped")
	}
}

func TestClearQueuesEffect(t *testing.T) {
	h := newHarness(t)
	h.run("pwd")
	_, effects := h.run("clear")
	if len(effects) != 1 || effects[0].Kind != shell.EffectClearHistory {
		t.Fatalf("effects = %v", effects)
	}
	if history := h.session.History(); len(history) != 0 {
		t.Errorf("history = %v", history)
	}
}

func TestHistoryFreezesPerEntry(t *testing.T) {
	h := newHarness(t)
	h.run("pwd")
	h.run("history")
	h.run("echo hi")
	transcript := h.session.Transcript()
	if got := transcript[1].Output.Text; got != "pwd\nhistory" {
		t.Errorf("history output = %q", got)
	}
}

func TestLs(t *testing.T) {
	h := newHarness(t)
	tests := []struct {
		line string
		kind shell.OutputKind
		text string
	}{
		{"ls", shell.OutputText, "about-me.md\nblog/\nempty/"},
		{"ls blog", shell.OutputText, "hello-world.md\nnotes.md"},
		{"ls blog/notes.md", shell.OutputText, "notes.md"},
		{"ls /", shell.OutputText, "about-me.md\nblog/\nempty/"},
		{"ls ./", shell.OutputText, "about-me.md\nblog/\nempty/"},
		{"ls .", shell.OutputText, "about-me.md\nblog/\nempty/"},
		{"ls empty", shell.OutputText, ""},
		{"ls missing", shell.OutputError, "ls: missing: No such file or directory"},
		{"ls -a", shell.OutputUsage, "Usage: ls [-l] [path]"},
		{"ls blog empty", shell.OutputUsage, "Usage: ls [-l] [path]"},
	}
	for _, test := range tests {
		output, _ := h.run(test.line)
		if output.Kind != test.kind || output.Text != test.text {
			t.Errorf("%s = (%v, %q), want (%v, %q)", test.line, output.Kind, output.Text, test.kind, test.text)
		}
	}
}

func TestLsLong(t *testing.T) {
	h := newHarness(t)
	output, _ := h.run("ls -l blog")
	lines := strings.Split(output.Text, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %q", lines)
	}
	if lines[0] != "-r--r--r--        5 Mar  1 12:00 hello-world.md" {
		t.Errorf("long line = %q", lines[0])
	}
}

func TestCat(t *testing.T) {
	h := newHarness(t)
	output, effects := h.run("cat about-me.md")
	if output.Kind != shell.OutputMarkdown || output.Text != "# About me" {
		t.Errorf("cat = %+v", output)
	}
	if len(effects) != 1 || effects[0].Kind != shell.EffectScrollTo || effects[0].Value != "cat about-me.md" {
		t.Errorf("effects = %v", effects)
	}

	if output, _ := h.run("cat blog"); output.Text != "cat: blog: Is a directory" {
		t.Errorf("directory = %q", output.Text)
	}
	if output, _ := h.run("cat nope.md"); output.Text != "cat: nope.md: No such file or directory" {
		t.Errorf("missing = %q", output.Text)
	}
	if output, _ := h.run("cat"); output.Kind != shell.OutputUsage {
		t.Errorf("no args kind = %v", output.Kind)
	}
}

func TestCatTranslated(t *testing.T) {
	h := newHarness(t)
	h.run("language set vn")
	if err := h.workspace.SetLanguage("vn"); err != nil {
		t.Fatal(err)
	}
	output, _ := h.run("cat about-me.md")
	if output.Text != "# Về tôi" {
		t.Errorf("translated = %q", output.Text)
	}
	output, _ = h.run("cat blog/notes.md")
	if output.Text != "notes" {
		t.Errorf("fallback = %q", output.Text)
	}
}

func TestTree(t *testing.T) {
	h := newHarness(t)
	output, _ := h.run("tree")
	want := strings.Join([]string{
		".",
		"├── about-me.md",
		"├── blog/",
		"│    ├── hello-world.md",
		"│    └── notes.md",
		"└── empty/",
	}, "\n")
	if output.Text != want {
		t.Errorf("tree =\n%s\nwant\n%s", output.Text, want)
	}

	if root, _ := h.run("tree /"); root.Text != want {
		t.Errorf("tree / =\n%s\nwant\n%s", root.Text, want)
	}

	output, _ = h.run("tree blog")
	if output.Text != ".\n├── hello-world.md\n└── notes.md" {
		t.Errorf("subtree = %q", output.Text)
	}
	if output, _ := h.run("tree nowhere"); output.Text != "tree: nowhere: No such file or directory" {
		t.Errorf("missing = %q", output.Text)
	}
}

func TestThemes(t *testing.T) {
	h := newHarness(t)
	output, effects := h.run("themes")
	if !strings.Contains(output.Text, "dark *") || !strings.HasSuffix(output.Text, themesUsage) {
		t.Errorf("themes =\n%s", output.Text)
	}
	if len(effects) != 0 {
		t.Errorf("listing queued %v", effects)
	}

	_, effects = h.run("themes set ubuntu")
	if len(effects) != 1 || effects[0] != (shell.Effect{Kind: shell.EffectSetTheme, Value: "ubuntu"}) {
		t.Errorf("effects = %v", effects)
	}

	for _, line := range []string{"themes set", "themes set solarized", "themes use dark"} {
		output, effects := h.run(line)
		if output.Kind != shell.OutputUsage || output.Text != themesUsage || len(effects) != 0 {
			t.Errorf("%s = %+v, %v", line, output, effects)
		}
	}
}

func TestLanguage(t *testing.T) {
	h := newHarness(t)
	output, _ := h.run("language")
	if !strings.HasPrefix(output.Text, "en (English) *   vn (Tiếng Việt)") {
		t.Errorf("language = %q", output.Text)
	}
	_, effects := h.run("language set vn")
	if len(effects) != 1 || effects[0] != (shell.Effect{Kind: shell.EffectSetLanguage, Value: "vn"}) {
		t.Errorf("effects = %v", effects)
	}
	if output, _ := h.run("language set fr"); output.Text != languageUsage {
		t.Errorf("invalid = %q", output.Text)
	}
}

func TestEffectsOnlyOnSubmit(t *testing.T) {
	h := newHarness(t)
	h.session.Submit("themes set espresso")
	h.session.SetInput("p")
	transcript := h.session.Transcript()
	if effects := transcript[0].Output.Effects; len(effects) != 0 {
		t.Errorf("stale render carried effects %v", effects)
	}
	if effects := h.session.Drain(); len(effects) != 1 {
		t.Errorf("queued effects = %v", effects)
	}
}

func TestCompletionPaths(t *testing.T) {
	h := newHarness(t)
	h.session.SetInput("cat bl")
	h.session.Tab()
	if got := h.session.Input(); got != "cat blog/" {
		t.Errorf("input = %q", got)
	}
}

func TestCompletionThemeValues(t *testing.T) {
	h := newHarness(t)
	h.session.SetInput("themes set gr")
	h.session.Tab()
	if got := h.session.Input(); got != "themes set green-goblin" {
		t.Errorf("input = %q", got)
	}
}

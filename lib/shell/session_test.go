// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package shell

import (
	"reflect"
	"testing"
)

// recordingShell builds a session whose language renderer counts the
// effects it emits, the way a front end would observe them.
type recordingShell struct {
	session  *Session
	language string
	applied  int
}

func newRecordingShell(t *testing.T) *recordingShell {
	t.Helper()
	registry := MustRegistry(DefaultCommands()...)
	dispatcher := NewDispatcher(registry, DefaultFreeForm())
	recorder := &recordingShell{language: "en"}

	mustHandle(t, dispatcher, "language", RendererFunc(func(invocation Invocation) Output {
		if len(invocation.Args) == 2 && invocation.Args[0] == "set" {
			output := Text("Language set to %s", invocation.Args[1])
			if invocation.Rerender {
				output = output.WithEffects(Effect{Kind: EffectSetLanguage, Value: invocation.Args[1]})
			}
			return output
		}
		return Usage("Usage: language set <en|vn>")
	}))
	mustHandle(t, dispatcher, "clear", RendererFunc(func(invocation Invocation) Output {
		return Output{Kind: OutputEmpty}.WithEffects(Effect{Kind: EffectClearHistory})
	}))
	mustHandle(t, dispatcher, "echo", RendererFunc(func(invocation Invocation) Output {
		return Text("%v", invocation.Args)
	}))
	mustHandle(t, dispatcher, "about", RendererFunc(func(Invocation) Output { return Markdown("# about") }))
	mustHandle(t, dispatcher, "cat", RendererFunc(func(invocation Invocation) Output {
		output := Text("content")
		if invocation.Index == 0 && invocation.Rerender {
			output = output.WithEffects(Effect{Kind: EffectScrollTo, Value: invocation.Args[0]})
		}
		return output
	}))

	completer := NewCompleter(CompletionConfig{Registry: registry})
	recorder.session = NewSession(completer, dispatcher)
	return recorder
}

func (recorder *recordingShell) applyEffects() {
	for _, effect := range recorder.session.Drain() {
		if effect.Kind == EffectSetLanguage {
			recorder.language = effect.Value
			recorder.applied++
		}
	}
}

func mustHandle(t *testing.T, dispatcher *Dispatcher, name string, renderer Renderer) {
	t.Helper()
	if err := dispatcher.Handle(name, renderer); err != nil {
		t.Fatalf("Handle(%s): %v", name, err)
	}
}

func TestSubmitPrependsTrimmedHistory(t *testing.T) {
	recorder := newRecordingShell(t)
	session := recorder.session

	session.SetInput("  about  ")
	session.Submit(session.Input())
	session.Submit("")
	session.Submit("xyz")

	want := []string{"xyz", "", "about"}
	if got := session.History(); !reflect.DeepEqual(got, want) {
		t.Errorf("history = %q, want %q", got, want)
	}
	if session.Input() != "" {
		t.Errorf("input not cleared: %q", session.Input())
	}
}

func TestRerenderOnlyForFreshEntry(t *testing.T) {
	recorder := newRecordingShell(t)
	session := recorder.session

	session.Submit("about")
	session.Submit("echo hi")

	entries := session.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if !entries[0].Rerender || entries[0].Index != 0 {
		t.Errorf("entry 0 = %+v, want fresh", entries[0])
	}
	if entries[1].Rerender || entries[1].Index != 1 {
		t.Errorf("entry 1 = %+v, want stale", entries[1])
	}

	session.SetInput("a")
	for _, entry := range session.Entries() {
		if entry.Rerender {
			t.Errorf("entry %d still fresh after typing", entry.Index)
		}
	}
}

func TestSideEffectFiresExactlyOnce(t *testing.T) {
	recorder := newRecordingShell(t)
	session := recorder.session

	session.Submit("language set vn")
	recorder.applyEffects()
	if recorder.language != "vn" || recorder.applied != 1 {
		t.Fatalf("language = %q after %d applications", recorder.language, recorder.applied)
	}

	// Redisplaying the transcript before any keystroke does not
	// enqueue anything new.
	session.Transcript()
	recorder.applyEffects()

	session.SetInput("x")
	session.Transcript()
	recorder.applyEffects()

	session.Tab()
	session.Up()
	session.Transcript()
	recorder.applyEffects()

	if recorder.applied != 1 {
		t.Errorf("side effect applied %d times, want 1", recorder.applied)
	}
}

func TestTranscriptStaleEntriesCarryNoEffects(t *testing.T) {
	recorder := newRecordingShell(t)
	session := recorder.session

	session.Submit("language set vn")
	session.SetInput("e")

	blocks := session.Transcript()
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if len(blocks[0].Output.Effects) != 0 {
		t.Errorf("stale entry produced effects: %v", blocks[0].Output.Effects)
	}
	if blocks[0].Output.Text != "Language set to vn" {
		t.Errorf("output = %q", blocks[0].Output.Text)
	}
}

func TestTranscriptIsOldestFirst(t *testing.T) {
	recorder := newRecordingShell(t)
	session := recorder.session
	session.Submit("about")
	session.Submit("xyz")

	blocks := session.Transcript()
	if blocks[0].Invocation.Line != "about" || blocks[1].Invocation.Line != "xyz" {
		t.Errorf("transcript order = %q, %q", blocks[0].Invocation.Line, blocks[1].Invocation.Line)
	}
	if blocks[1].Output.Kind != OutputNotFound {
		t.Errorf("xyz kind = %v, want not found", blocks[1].Output.Kind)
	}
}

func TestScrollOnlyForLatestFreshSubmission(t *testing.T) {
	recorder := newRecordingShell(t)
	session := recorder.session

	session.ExecuteCommand("cat blog/a.md")
	effects := session.Drain()
	if len(effects) != 1 || effects[0].Kind != EffectScrollTo {
		t.Fatalf("effects = %v, want one scroll", effects)
	}

	session.Submit("about")
	if effects := session.Drain(); len(effects) != 0 {
		t.Errorf("older cat re-scrolled: %v", effects)
	}
}

func TestExecuteCommandMatchesSubmit(t *testing.T) {
	typed := newRecordingShell(t)
	typed.session.Submit("language set vn")
	typed.applyEffects()

	clicked := newRecordingShell(t)
	clicked.session.ExecuteCommand("language set vn")
	clicked.applyEffects()

	if !reflect.DeepEqual(typed.session.Entries(), clicked.session.Entries()) {
		t.Error("ExecuteCommand and Submit produced different entries")
	}
	if typed.language != clicked.language || typed.applied != clicked.applied {
		t.Error("ExecuteCommand and Submit produced different effects")
	}
}

func TestClearCommandEmptiesHistory(t *testing.T) {
	recorder := newRecordingShell(t)
	session := recorder.session
	session.Submit("about")
	session.Submit("clear")

	if len(session.History()) != 0 {
		t.Errorf("history = %q, want empty", session.History())
	}
	effects := session.Drain()
	if len(effects) != 1 || effects[0].Kind != EffectClearHistory {
		t.Errorf("effects = %v, want clear-history", effects)
	}
}

func TestClearHistoryKeepsInput(t *testing.T) {
	recorder := newRecordingShell(t)
	session := recorder.session
	session.Submit("about")
	session.SetInput("c")
	session.Tab()
	session.ClearHistory()

	if len(session.History()) != 0 {
		t.Error("history not cleared")
	}
	if session.Hints() != nil {
		t.Errorf("hints = %v, want none", session.Hints())
	}
	if session.Input() != "cat" {
		t.Errorf("input = %q, want %q", session.Input(), "cat")
	}
}

func TestHistoryNavigation(t *testing.T) {
	recorder := newRecordingShell(t)
	session := recorder.session
	for _, command := range []string{"one", "two", "three"} {
		session.Submit(command)
	}

	var seen []string
	for press := 0; press < 5; press++ {
		session.Up()
		seen = append(seen, session.Input())
	}
	want := []string{"three", "two", "one", "one", "one"}
	if !reflect.DeepEqual(seen, want) {
		t.Errorf("Up sequence = %q, want %q", seen, want)
	}

	var back []string
	for press := 0; press < 4; press++ {
		session.Down()
		back = append(back, session.Input())
	}
	wantBack := []string{"two", "three", "", ""}
	if !reflect.DeepEqual(back, wantBack) {
		t.Errorf("Down sequence = %q, want %q", back, wantBack)
	}

	session.Up()
	if session.Input() != "three" {
		t.Errorf("Up after returning to the prompt = %q, want %q", session.Input(), "three")
	}
}

func TestDownWithoutNavigationIsNoop(t *testing.T) {
	recorder := newRecordingShell(t)
	session := recorder.session
	session.Submit("one")
	session.SetInput("draft")
	session.Down()
	if session.Input() != "draft" {
		t.Errorf("input = %q, want %q", session.Input(), "draft")
	}
}

func TestTypingResetsCycle(t *testing.T) {
	recorder := newRecordingShell(t)
	session := recorder.session

	session.SetInput("c")
	session.Tab()
	session.Tab()
	if session.Input() != "clear" || session.HintIndex() != 1 {
		t.Fatalf("after two presses input = %q index = %d", session.Input(), session.HintIndex())
	}

	session.SetInput("h")
	if session.Hints() != nil || session.HintIndex() != -1 {
		t.Fatalf("typing left hints %v index %d", session.Hints(), session.HintIndex())
	}

	session.Tab()
	if want := []string{"help", "history"}; !reflect.DeepEqual(session.Hints(), want) {
		t.Errorf("hints = %v, want %v", session.Hints(), want)
	}
	if session.Input() != "help" || session.HintIndex() != 0 {
		t.Errorf("fresh cycle input = %q index = %d", session.Input(), session.HintIndex())
	}
}

func TestSubmitResetsCycle(t *testing.T) {
	recorder := newRecordingShell(t)
	session := recorder.session
	session.SetInput("c")
	session.Tab()
	session.Submit(session.Input())
	if session.Hints() != nil {
		t.Errorf("hints survived submission: %v", session.Hints())
	}
}

func TestRedispatchQueuesEffectsOnceDataArrives(t *testing.T) {
	registry := MustRegistry(DefaultCommands()...)
	dispatcher := NewDispatcher(registry, DefaultFreeForm())
	loaded := false
	mustHandle(t, dispatcher, "bookmark", RendererFunc(func(invocation Invocation) Output {
		if !loaded {
			return Text("Loading bookmarks...")
		}
		return Text("Opening https://example.com...").
			WithEffects(Effect{Kind: EffectOpenURL, Value: "https://example.com"})
	}))
	session := NewSession(NewCompleter(CompletionConfig{Registry: registry}), dispatcher)

	session.Submit("bookmark go 1")
	if effects := session.Drain(); len(effects) != 0 {
		t.Fatalf("effects before load = %v", effects)
	}
	if session.Redispatch() {
		t.Error("Redispatch queued effects with nothing loaded")
	}

	loaded = true
	if !session.Redispatch() {
		t.Fatal("Redispatch after load queued nothing")
	}
	want := []Effect{{Kind: EffectOpenURL, Value: "https://example.com"}}
	if effects := session.Drain(); !reflect.DeepEqual(effects, want) {
		t.Errorf("effects = %v, want %v", effects, want)
	}

	if session.Redispatch() {
		t.Error("second Redispatch queued the same effect again")
	}
	if effects := session.Drain(); len(effects) != 0 {
		t.Errorf("effects after repeat = %v", effects)
	}
}

func TestRedispatchEndsWithFreshWindow(t *testing.T) {
	recorder := newRecordingShell(t)
	session := recorder.session

	session.Submit("language set vn")
	recorder.applyEffects()
	if session.Redispatch() {
		t.Error("Redispatch repeated an effect already delivered")
	}

	session.Submit("echo hi")
	session.SetInput("l")
	if session.Redispatch() {
		t.Error("Redispatch queued effects after a keystroke")
	}
	recorder.applyEffects()
	if recorder.applied != 1 {
		t.Errorf("side effect applied %d times, want 1", recorder.applied)
	}
}

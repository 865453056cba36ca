// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package shell

import (
	"slices"
	"strings"
)

// Session is the interactive state of one terminal: the input buffer,
// the history, Up/Down navigation, the Tab cycle, and the queue of
// effects requested by the last submission.
//
// Every method that corresponds to a keystroke ends the fresh window
// of the last submission, so a renderer redisplayed while the user
// types never sees Rerender set.
type Session struct {
	completer  *Completer
	dispatcher *Dispatcher

	input      string
	history    []string
	pointer    int
	completion CompletionState

	// fresh marks history[0] as just submitted.
	fresh   bool
	effects []Effect

	// delivered holds every effect queued for history[0] since it was
	// submitted.
	delivered []Effect
}

// Block pairs a history entry with its rendered output.
type Block struct {
	Invocation Invocation
	Output     Output
}

// NewSession returns an empty session.
func NewSession(completer *Completer, dispatcher *Dispatcher) *Session {
	return &Session{
		completer:  completer,
		dispatcher: dispatcher,
		pointer:    -1,
	}
}

// Input returns the current input buffer.
func (session *Session) Input() string {
	return session.input
}

// History returns a copy of the history, most recent first.
func (session *Session) History() []string {
	result := make([]string, len(session.history))
	copy(result, session.history)
	return result
}

// Fresh reports whether the most recent entry was just submitted and
// no keystroke has happened since.
func (session *Session) Fresh() bool {
	return session.fresh
}

// SetInput replaces the input buffer as typing does. A change to the
// text abandons any Tab cycle.
func (session *Session) SetInput(text string) {
	session.fresh = false
	if text == session.input {
		return
	}
	session.input = text
	session.completion = CompletionState{}
}

// ClearInput empties the input buffer.
func (session *Session) ClearInput() {
	session.SetInput("")
}

// Submit records input as a new history entry and dispatches it.
// Blank input is recorded too, as an empty entry. The input buffer,
// Tab cycle, and history pointer are reset.
func (session *Session) Submit(input string) {
	session.submit(input)
}

// ExecuteCommand submits a command on the user's behalf, e.g. from a
// clickable link. It behaves exactly like Submit, effects included.
func (session *Session) ExecuteCommand(command string) {
	session.submit(command)
}

func (session *Session) submit(input string) {
	entry := strings.TrimSpace(input)

	history := make([]string, 0, len(session.history)+1)
	history = append(history, entry)
	session.history = append(history, session.history...)

	session.input = ""
	session.completion = CompletionState{}
	session.pointer = -1
	session.fresh = true
	session.delivered = nil

	session.queue(session.dispatcher.Dispatch(session.invocation(0)).Effects)
}

// Redispatch renders the just-submitted entry again after data it
// depends on has changed, such as a manifest or article arriving, and
// queues the effects that entry has not requested before. It does
// nothing once the fresh window has ended. Reports whether anything
// was queued.
func (session *Session) Redispatch() bool {
	if !session.fresh || len(session.history) == 0 {
		return false
	}
	queued := len(session.effects)
	session.queue(session.dispatcher.Dispatch(session.invocation(0)).Effects)
	return len(session.effects) > queued
}

func (session *Session) queue(effects []Effect) {
	for _, effect := range effects {
		if slices.Contains(session.delivered, effect) {
			continue
		}
		session.delivered = append(session.delivered, effect)
		if effect.Kind == EffectClearHistory {
			session.history = nil
			session.fresh = false
		}
		session.effects = append(session.effects, effect)
	}
}

// Drain returns the queued effects and empties the queue. Each
// submission's effects are returned exactly once, including those
// queued later by Redispatch.
func (session *Session) Drain() []Effect {
	effects := session.effects
	session.effects = nil
	return effects
}

// ClearHistory empties the history and the Tab cycle. The input
// buffer is left alone.
func (session *Session) ClearHistory() {
	session.fresh = false
	session.history = nil
	session.pointer = -1
	session.completion = CompletionState{}
}

// Tab performs one completion step on the input buffer.
func (session *Session) Tab() {
	session.fresh = false
	session.input, session.completion = session.completer.Complete(session.input, session.completion)
}

// Up loads the next older history entry into the input buffer. At
// the oldest entry it does nothing.
func (session *Session) Up() {
	session.fresh = false
	if session.pointer+1 >= len(session.history) {
		return
	}
	session.pointer++
	session.load(session.history[session.pointer])
}

// Down loads the next newer history entry, or returns to a blank
// prompt when leaving the newest entry. Outside navigation it does
// nothing.
func (session *Session) Down() {
	session.fresh = false
	switch {
	case session.pointer == 0:
		session.pointer = -1
		session.load("")
	case session.pointer > 0:
		session.pointer--
		session.load(session.history[session.pointer])
	}
}

func (session *Session) load(text string) {
	session.input = text
	session.completion = CompletionState{}
}

// Hints returns the display strings of the active Tab cycle, or nil.
func (session *Session) Hints() []string {
	if !session.completion.Active() {
		return nil
	}
	hints := make([]string, len(session.completion.Hints))
	for index, candidate := range session.completion.Hints {
		hints[index] = candidate.Display
	}
	return hints
}

// HintIndex returns the selected hint, or -1 when no cycle is active.
func (session *Session) HintIndex() int {
	if !session.completion.Active() {
		return -1
	}
	return session.completion.HintIndex
}

// Entries returns one invocation per history entry, most recent
// first.
func (session *Session) Entries() []Invocation {
	entries := make([]Invocation, len(session.history))
	for index := range session.history {
		entries[index] = session.invocation(index)
	}
	return entries
}

// Transcript renders every history entry, oldest first. Effects in
// the returned outputs are informational; the queue is the only
// place effects are delivered from.
func (session *Session) Transcript() []Block {
	blocks := make([]Block, len(session.history))
	for index := range session.history {
		invocation := session.invocation(index)
		blocks[len(blocks)-1-index] = Block{
			Invocation: invocation,
			Output:     session.dispatcher.Dispatch(invocation),
		}
	}
	return blocks
}

func (session *Session) invocation(index int) Invocation {
	line := ParseLine(session.history[index])
	return Invocation{
		Line:     session.history[index],
		Head:     line.Head,
		Args:     line.Args,
		History:  session.history,
		Rerender: session.fresh && index == 0,
		Index:    index,
	}
}

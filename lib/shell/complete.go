// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package shell

import (
	"slices"
	"strings"
)

// Candidate is one completion choice. Display is what the hint list
// shows; Value is what gets written into the input. They differ for
// enumerated values such as bookmark IDs ("3. Go memory model" vs "3").
type Candidate struct {
	Display string
	Value   string
}

// ArgumentSpec enumerates the arguments a command accepts.
type ArgumentSpec struct {
	// Subcommands are the accepted second tokens, in hint order.
	// Empty means the command takes Values directly as its second
	// token.
	Subcommands []string

	// Values returns the candidates for the token after the
	// subcommand (or after the head when Subcommands is empty).
	// It is called on every Tab press so that candidates can follow
	// data that changes at runtime. May be nil; may return nil for
	// subcommands that take free text.
	Values func(subcommand string) []Candidate
}

// CompletionConfig is the injected configuration of a [Completer].
type CompletionConfig struct {
	// Registry supplies command names for head completion.
	Registry *Registry

	// PathCommands are the heads whose arguments are filesystem paths.
	PathCommands []string

	// Arguments maps a head to its enumerated arguments.
	Arguments map[string]ArgumentSpec

	// Paths lists the level-by-level matches for a partial path,
	// normally a closure over vfs.ListMatchingPaths and the current
	// tree.
	Paths func(partial string) []string
}

// CompletionState carries the Tab cycle between presses. The zero
// value is idle.
type CompletionState struct {
	// Hints are the candidates being cycled. A cycle is active only
	// while there is more than one.
	Hints []Candidate

	// HintIndex selects the hint currently written into the input.
	HintIndex int

	// Original is the input as it was before the first Tab press of
	// the cycle.
	Original string

	// prefix is the text each selected hint value is appended to.
	prefix string
}

// Active reports whether a multi-match cycle is in progress.
func (state CompletionState) Active() bool {
	return len(state.Hints) > 1
}

// Completer implements Tab completion. It holds no per-input state;
// callers thread [CompletionState] through successive calls and
// discard it whenever the input is edited by anything other than Tab.
type Completer struct {
	registry     *Registry
	pathCommands map[string]bool
	arguments    map[string]ArgumentSpec
	paths        func(string) []string
}

// NewCompleter returns a completer for the given configuration.
func NewCompleter(config CompletionConfig) *Completer {
	pathCommands := make(map[string]bool, len(config.PathCommands))
	for _, name := range config.PathCommands {
		pathCommands[name] = true
	}
	paths := config.Paths
	if paths == nil {
		paths = func(string) []string { return nil }
	}
	return &Completer{
		registry:     config.Registry,
		pathCommands: pathCommands,
		arguments:    config.Arguments,
		paths:        paths,
	}
}

// Complete performs one Tab press on input and returns the new input
// and state. When nothing matches, input and state come back
// unchanged.
//
// An active state advances to the next hint, wrapping after the last.
// Otherwise three domains are tried in order: paths (for path
// commands once an argument has begun), command names (while the
// head is still being typed), and enumerated arguments. A single
// match is written in full and ends the cycle. Several matches start
// a cycle with the first one already written.
func (completer *Completer) Complete(input string, state CompletionState) (string, CompletionState) {
	if input == "" {
		return input, state
	}

	if state.Active() {
		state.HintIndex = (state.HintIndex + 1) % len(state.Hints)
		return state.prefix + state.Hints[state.HintIndex].Value, state
	}

	head, _, hasArgument := strings.Cut(input, " ")

	if hasArgument && completer.pathCommands[head] {
		return completer.completePath(input)
	}
	if !hasArgument {
		return completer.completeCommand(input)
	}
	if spec, ok := completer.arguments[head]; ok {
		return completer.completeArgument(input, spec)
	}
	return input, CompletionState{}
}

func (completer *Completer) completePath(input string) (string, CompletionState) {
	split := strings.LastIndexByte(input, ' ')
	prefix := input[:split+1]
	partial := input[split+1:]

	matches := completer.paths(partial)
	candidates := make([]Candidate, len(matches))
	for index, match := range matches {
		candidates[index] = Candidate{Display: match, Value: match}
	}
	return settle(input, prefix, candidates, "")
}

func (completer *Completer) completeCommand(input string) (string, CompletionState) {
	if completer.registry == nil {
		return input, CompletionState{}
	}
	matches := completer.registry.MatchPrefix(input)
	candidates := make([]Candidate, len(matches))
	for index, match := range matches {
		candidates[index] = Candidate{Display: match, Value: match}
	}
	return settle(input, "", candidates, " ")
}

func (completer *Completer) completeArgument(input string, spec ArgumentSpec) (string, CompletionState) {
	parts := strings.Split(input, " ")
	head := parts[0]

	if len(spec.Subcommands) == 0 {
		if len(parts) != 2 || spec.Values == nil {
			return input, CompletionState{}
		}
		return settle(input, head+" ", filterCandidates(spec.Values(""), parts[1]), "")
	}

	switch len(parts) {
	case 2:
		var candidates []Candidate
		for _, subcommand := range spec.Subcommands {
			if strings.HasPrefix(subcommand, parts[1]) {
				candidates = append(candidates, Candidate{Display: subcommand, Value: subcommand})
			}
		}
		return settle(input, head+" ", candidates, " ")
	case 3:
		subcommand := parts[1]
		if !slices.Contains(spec.Subcommands, subcommand) || spec.Values == nil {
			return input, CompletionState{}
		}
		return settle(input, head+" "+subcommand+" ", filterCandidates(spec.Values(subcommand), parts[2]), "")
	}
	return input, CompletionState{}
}

// settle applies the shared single/multiple match rule. A single
// match is written as prefix+value+suffix; several matches start a
// cycle showing the first bare value after prefix.
func settle(input, prefix string, candidates []Candidate, suffix string) (string, CompletionState) {
	switch len(candidates) {
	case 0:
		return input, CompletionState{}
	case 1:
		return prefix + candidates[0].Value + suffix, CompletionState{}
	}
	state := CompletionState{
		Hints:    candidates,
		Original: input,
		prefix:   prefix,
	}
	return prefix + candidates[0].Value, state
}

func filterCandidates(candidates []Candidate, partial string) []Candidate {
	var matches []Candidate
	for _, candidate := range candidates {
		if strings.HasPrefix(candidate.Value, partial) {
			matches = append(matches, candidate)
		}
	}
	return matches
}

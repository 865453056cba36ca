// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package shell

import "fmt"

// Invocation is the context handed to a renderer for one history
// entry. A fresh Invocation is built for every entry each time the
// transcript is rendered.
type Invocation struct {
	// Line is the entry as submitted (trimmed).
	Line string

	// Head is the command name.
	Head string

	// Args are the tokens after the head.
	Args []string

	// History is the full history, most recent first. Renderers must
	// not modify it.
	History []string

	// Rerender is true only for the entry that was just submitted,
	// and only until the next keystroke. Renderers emit effects only
	// when it is set.
	Rerender bool

	// Index is the entry's position counting from the most recent
	// (0).
	Index int
}

// OutputKind classifies rendered output for presentation.
type OutputKind int

const (
	// OutputEmpty renders nothing below the prompt line.
	OutputEmpty OutputKind = iota

	// OutputText is preformatted text shown as is.
	OutputText

	// OutputMarkdown is rendered through the markdown renderer.
	OutputMarkdown

	// OutputUsage is a usage message for malformed arguments.
	OutputUsage

	// OutputError is a command-level failure such as a missing file.
	OutputError

	// OutputNotFound is an unknown command.
	OutputNotFound
)

// Output is what a renderer produces for one invocation.
type Output struct {
	Kind OutputKind
	Text string

	// Hint is an optional secondary line, e.g. a did-you-mean
	// suggestion.
	Hint string

	// Effects are the one-time actions requested. Only honored for
	// fresh invocations.
	Effects []Effect
}

// Text returns a plain text output.
func Text(format string, args ...any) Output {
	return Output{Kind: OutputText, Text: fmt.Sprintf(format, args...)}
}

// Markdown returns a markdown output.
func Markdown(source string) Output {
	return Output{Kind: OutputMarkdown, Text: source}
}

// Usage returns a usage output.
func Usage(text string) Output {
	return Output{Kind: OutputUsage, Text: text}
}

// Errorf returns a command error output.
func Errorf(format string, args ...any) Output {
	return Output{Kind: OutputError, Text: fmt.Sprintf(format, args...)}
}

// WithEffects returns the output with the given effects appended.
func (output Output) WithEffects(effects ...Effect) Output {
	output.Effects = append(output.Effects[:len(output.Effects):len(output.Effects)], effects...)
	return output
}

// Renderer produces the output of one command.
type Renderer interface {
	Render(invocation Invocation) Output
}

// RendererFunc adapts a function to [Renderer].
type RendererFunc func(invocation Invocation) Output

// Render calls the function.
func (function RendererFunc) Render(invocation Invocation) Output {
	return function(invocation)
}

// DefaultFreeForm lists the commands that accept arguments. Any other
// command given an argument answers with its generic usage line.
func DefaultFreeForm() []string {
	return []string{"bookmark", "socials", "themes", "language", "echo", "cat", "ls", "tree"}
}

// Dispatcher routes invocations to renderers.
type Dispatcher struct {
	registry  *Registry
	renderers map[string]Renderer
	freeForm  map[string]bool
}

// NewDispatcher returns a dispatcher for registry. freeForm names the
// commands allowed to receive arguments.
func NewDispatcher(registry *Registry, freeForm []string) *Dispatcher {
	allowed := make(map[string]bool, len(freeForm))
	for _, name := range freeForm {
		allowed[name] = true
	}
	return &Dispatcher{
		registry:  registry,
		renderers: make(map[string]Renderer),
		freeForm:  allowed,
	}
}

// Registry returns the dispatcher's command table.
func (dispatcher *Dispatcher) Registry() *Registry {
	return dispatcher.registry
}

// Handle registers the renderer for a command. The command must be in
// the registry and not already handled.
func (dispatcher *Dispatcher) Handle(name string, renderer Renderer) error {
	if _, ok := dispatcher.registry.Lookup(name); !ok {
		return fmt.Errorf("handling %q: not a registered command", name)
	}
	if _, exists := dispatcher.renderers[name]; exists {
		return fmt.Errorf("handling %q: renderer already registered", name)
	}
	dispatcher.renderers[name] = renderer
	return nil
}

// Dispatch renders one invocation.
//
// A blank line renders nothing. A head that is not a registered
// command (or has no renderer) renders "command not found: <line>",
// quoting the whole line. Arguments given to a command outside the
// free-form set render "Usage: <head>" without calling the renderer.
func (dispatcher *Dispatcher) Dispatch(invocation Invocation) Output {
	if invocation.Head == "" {
		return Output{Kind: OutputEmpty}
	}

	renderer, handled := dispatcher.renderers[invocation.Head]
	if _, registered := dispatcher.registry.Lookup(invocation.Head); !registered || !handled {
		output := Output{Kind: OutputNotFound, Text: "command not found: " + invocation.Line}
		if suggestion := suggestCommand(invocation.Head, dispatcher.registry); suggestion != "" {
			output.Hint = fmt.Sprintf("Did you mean %q?", suggestion)
		}
		return output
	}

	if len(invocation.Args) > 0 && !dispatcher.freeForm[invocation.Head] {
		return Usage("Usage: " + invocation.Head)
	}

	output := renderer.Render(invocation)
	if !invocation.Rerender {
		output.Effects = nil
	}
	return output
}

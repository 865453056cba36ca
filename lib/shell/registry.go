// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package shell

import (
	"fmt"
	"strings"
)

// Command describes one shell command.
type Command struct {
	// Name is the head token that invokes the command. Case-sensitive.
	Name string

	// Description is the one-line summary shown by help.
	Description string

	// Tab is the column padding help inserts between the name and the
	// description so that descriptions line up.
	Tab int

	// Hidden commands dispatch normally but are left out of help
	// output and name completion.
	Hidden bool
}

// Registry is an ordered, immutable set of commands. Construct it
// once with [NewRegistry] and share it between the completer and the
// dispatcher.
type Registry struct {
	commands []Command
	byName   map[string]int
}

// NewRegistry builds a registry from commands in display order.
// Names must be non-empty, contain no whitespace, and be unique.
func NewRegistry(commands ...Command) (*Registry, error) {
	registry := &Registry{
		commands: make([]Command, len(commands)),
		byName:   make(map[string]int, len(commands)),
	}
	copy(registry.commands, commands)

	for index, command := range registry.commands {
		if command.Name == "" {
			return nil, fmt.Errorf("command %d has an empty name", index)
		}
		if strings.ContainsAny(command.Name, " \t\n") {
			return nil, fmt.Errorf("command name %q contains whitespace", command.Name)
		}
		if _, exists := registry.byName[command.Name]; exists {
			return nil, fmt.Errorf("duplicate command name %q", command.Name)
		}
		registry.byName[command.Name] = index
	}
	return registry, nil
}

// MustRegistry is NewRegistry for static tables; it panics on error.
func MustRegistry(commands ...Command) *Registry {
	registry, err := NewRegistry(commands...)
	if err != nil {
		panic(err)
	}
	return registry
}

// Lookup returns the command with exactly the given name.
func (registry *Registry) Lookup(name string) (Command, bool) {
	index, ok := registry.byName[name]
	if !ok {
		return Command{}, false
	}
	return registry.commands[index], true
}

// Commands returns every command, hidden ones included, in
// registration order. The returned slice is a copy.
func (registry *Registry) Commands() []Command {
	result := make([]Command, len(registry.commands))
	copy(result, registry.commands)
	return result
}

// Visible returns the non-hidden commands in registration order.
func (registry *Registry) Visible() []Command {
	result := make([]Command, 0, len(registry.commands))
	for _, command := range registry.commands {
		if !command.Hidden {
			result = append(result, command)
		}
	}
	return result
}

// Names returns the names of the visible commands.
func (registry *Registry) Names() []string {
	visible := registry.Visible()
	names := make([]string, len(visible))
	for index, command := range visible {
		names[index] = command.Name
	}
	return names
}

// MatchPrefix returns the names of visible commands that start with
// prefix, in registration order. Matching is case-sensitive.
func (registry *Registry) MatchPrefix(prefix string) []string {
	var matches []string
	for _, command := range registry.commands {
		if command.Hidden {
			continue
		}
		if strings.HasPrefix(command.Name, prefix) {
			matches = append(matches, command.Name)
		}
	}
	return matches
}

// DefaultCommands returns the portfolio command table in help order.
func DefaultCommands() []Command {
	return []Command{
		{Name: "about", Description: "about Nikk", Tab: 8},
		{Name: "bookmark", Description: "my reading list and notes", Tab: 5},
		{Name: "cat", Description: "print file content", Tab: 10},
		{Name: "welcome", Description: "display hero section", Tab: 6},
		{Name: "help", Description: "check available commands", Tab: 9},
		{Name: "themes", Description: "check available themes", Tab: 7},
		{Name: "language", Description: "change the display language", Tab: 5},
		{Name: "clear", Description: "clear the terminal", Tab: 8},
		{Name: "echo", Description: "print out anything", Tab: 9},
		{Name: "history", Description: "view command history", Tab: 6},
		{Name: "pwd", Description: "print current working directory", Tab: 10},
		{Name: "ls", Description: "list directory contents", Tab: 11},
		{Name: "tree", Description: "show directory structure", Tab: 9},
		{Name: "whoami", Description: "about current user", Tab: 7, Hidden: true},
	}
}

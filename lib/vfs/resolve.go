// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package vfs

import "strings"

// FindNode returns the node whose path exactly matches the given
// path. The path is normalized by stripping a single leading "./" or
// "/" and a single trailing "/". It may be written relative to the
// root ("blog/x.md") or include the root's name ("terminal/blog/x.md").
//
// Absence is a normal result: the boolean is false when nothing
// matches. The root itself is never matched by an empty path; use
// [Resolve] for that.
func FindNode(root *Node, path string) (*Node, bool) {
	if root == nil {
		return nil, false
	}
	normalized := normalizePath(path)
	if normalized == "" {
		return nil, false
	}
	qualified := root.Name + "/" + normalized
	return findExact(root, normalized, qualified)
}

// Resolve is FindNode extended with shell defaults: an empty path,
// ".", "./", or "/" resolves to the root.
func Resolve(root *Node, path string) (*Node, bool) {
	switch path {
	case "", ".", "./", "/":
		return root, root != nil
	}
	return FindNode(root, path)
}

func findExact(node *Node, relative, qualified string) (*Node, bool) {
	for _, child := range node.Children {
		if child.Path == relative || child.Path == qualified {
			return child, true
		}
		if !child.IsDir {
			continue
		}
		// Only descend where the target can live.
		prefix := child.Path + "/"
		if !strings.HasPrefix(qualified, prefix) && !strings.HasPrefix(relative, prefix) {
			continue
		}
		if found, ok := findExact(child, relative, qualified); ok {
			return found, true
		}
	}
	return nil, false
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "./") {
		path = path[2:]
	} else if strings.HasPrefix(path, "/") {
		path = path[1:]
	}
	return strings.TrimSuffix(path, "/")
}

// AllPaths returns every path below the root in pre-order, relative
// to the root, with directories suffixed by "/".
func AllPaths(root *Node) []string {
	var paths []string
	if root == nil {
		return paths
	}
	root.Walk(func(node *Node) bool {
		if node == root {
			return true
		}
		relative := node.RelativePath()
		if node.IsDir {
			relative += "/"
		}
		paths = append(paths, relative)
		return true
	})
	return paths
}

// ListMatchingPaths returns the completion candidates for a partial
// path, one level at a time, in tree order.
//
// Let currentDir be partialPath up to and including its last "/".
// A candidate p (from [AllPaths]) is kept when it starts with
// partialPath, is not the directory partialPath itself names, and the
// part of p after currentDir has no "/" except as its final
// character. An empty partialPath therefore lists only top-level
// entries.
func ListMatchingPaths(root *Node, partialPath string) []string {
	currentDir := ""
	if index := strings.LastIndexByte(partialPath, '/'); index >= 0 {
		currentDir = partialPath[:index+1]
	}
	enteringDir := strings.HasSuffix(partialPath, "/")

	var matches []string
	for _, candidate := range AllPaths(root) {
		if !strings.HasPrefix(candidate, partialPath) {
			continue
		}
		if enteringDir && candidate == partialPath {
			continue
		}
		remainder := strings.TrimSuffix(candidate[len(currentDir):], "/")
		if strings.Contains(remainder, "/") {
			continue
		}
		matches = append(matches, candidate)
	}
	return matches
}

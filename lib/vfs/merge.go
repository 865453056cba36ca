// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package vfs

import "time"

// Leaf describes a file to place in a synthetic directory.
type Leaf struct {
	Name    string
	Content string
	ModTime time.Time
}

// WithDirectory returns a new root whose children are root's children
// followed by a directory named name holding the given leaves. Any
// existing top-level child with that name is dropped first, so
// repeated merges replace rather than accumulate.
//
// root is not modified: unchanged children are shared between the
// old and new trees.
func WithDirectory(root *Node, name string, leaves []Leaf, modTime time.Time) *Node {
	if root == nil {
		return nil
	}

	children := make([]*Node, 0, len(root.Children)+1)
	for _, child := range root.Children {
		if child.Name == name {
			continue
		}
		children = append(children, child)
	}

	directoryPath := joinPath(root.Path, name)
	files := make([]*Node, len(leaves))
	for index, leaf := range leaves {
		files[index] = NewFile(directoryPath, leaf.Name, leaf.Content, leaf.ModTime)
	}
	children = append(children, NewDir(root.Path, name, modTime, files))

	merged := *root
	merged.Children = children
	merged.Hash = hashChildren(children)
	return &merged
}

// WithoutDirectory returns a new root without the named top-level
// child. Returns root itself when there is no such child.
func WithoutDirectory(root *Node, name string) *Node {
	if root == nil {
		return nil
	}
	if _, ok := root.Child(name); !ok {
		return root
	}
	children := make([]*Node, 0, len(root.Children)-1)
	for _, child := range root.Children {
		if child.Name != name {
			children = append(children, child)
		}
	}
	stripped := *root
	stripped.Children = children
	stripped.Hash = hashChildren(children)
	return &stripped
}

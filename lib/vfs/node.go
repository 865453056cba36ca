// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package vfs

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/zeebo/blake3"
)

// DefaultRootName is the name of the tree root when the loader is not
// told otherwise. It is the prefix stripped from every node path when
// producing completion candidates.
const DefaultRootName = "terminal"

// Node is one entry in the virtual filesystem: a directory with
// ordered children, or a file leaf with optional content.
//
// Nodes are never modified after construction. Code that needs a
// different tree builds new nodes (see [WithDirectory]).
type Node struct {
	// Name is the final path segment. Never contains "/".
	Name string

	// Path is the fully-qualified path from the tree root, including
	// the root's own name (e.g. "terminal/blog/hello-world.md").
	Path string

	// IsDir distinguishes directories from file leaves.
	IsDir bool

	// Size is the content length in bytes for files, zero for
	// directories.
	Size int64

	// ModTime is the last modification time of the source file.
	ModTime time.Time

	// Content is the raw text of a file. Only meaningful when
	// HasContent is true.
	Content string

	// HasContent is false for directories and for leaves whose
	// content could not be read at build time.
	HasContent bool

	// Hash is the BLAKE3 digest of the node (see package docs).
	Hash [32]byte

	// Children are the directory entries in enumeration order. Nil
	// for files.
	Children []*Node
}

// NewFile creates a file leaf under the given parent path. Pass an
// empty parentPath to create a root-level node.
func NewFile(parentPath, name, content string, modTime time.Time) *Node {
	node := &Node{
		Name:       name,
		Path:       joinPath(parentPath, name),
		Size:       int64(len(content)),
		ModTime:    modTime,
		Content:    content,
		HasContent: true,
	}
	node.Hash = blake3.Sum256([]byte(content))
	return node
}

// NewDir creates a directory node and rewrites the paths of the
// given children (recursively) so that they sit under it. The
// children slice is owned by the returned node.
func NewDir(parentPath, name string, modTime time.Time, children []*Node) *Node {
	path := joinPath(parentPath, name)
	rebased := make([]*Node, len(children))
	for index, child := range children {
		rebased[index] = rebase(child, path)
	}
	node := &Node{
		Name:     name,
		Path:     path,
		IsDir:    true,
		ModTime:  modTime,
		Children: rebased,
	}
	node.Hash = hashChildren(rebased)
	return node
}

// Fingerprint returns the hex-encoded digest of the node.
func (node *Node) Fingerprint() string {
	return hex.EncodeToString(node.Hash[:])
}

// Child returns the direct child with the given name.
func (node *Node) Child(name string) (*Node, bool) {
	for _, child := range node.Children {
		if child.Name == name {
			return child, true
		}
	}
	return nil, false
}

// RelativePath returns the node's path with the root segment removed.
// The root itself returns "".
func (node *Node) RelativePath() string {
	index := strings.IndexByte(node.Path, '/')
	if index < 0 {
		return ""
	}
	return node.Path[index+1:]
}

// Walk visits the node and its descendants in pre-order. Returning
// false from visit skips the node's children.
func (node *Node) Walk(visit func(*Node) bool) {
	if !visit(node) {
		return
	}
	for _, child := range node.Children {
		child.Walk(visit)
	}
}

// Count returns the number of files and directories below the node,
// excluding the node itself.
func (node *Node) Count() (files, directories int) {
	for _, child := range node.Children {
		if child.IsDir {
			directories++
			childFiles, childDirectories := child.Count()
			files += childFiles
			directories += childDirectories
		} else {
			files++
		}
	}
	return files, directories
}

// rebase returns node unchanged when it already sits under parentPath,
// otherwise a copy with rewritten paths throughout the subtree.
func rebase(node *Node, parentPath string) *Node {
	want := joinPath(parentPath, node.Name)
	if node.Path == want {
		return node
	}
	copied := *node
	copied.Path = want
	if node.Children != nil {
		copied.Children = make([]*Node, len(node.Children))
		for index, child := range node.Children {
			copied.Children[index] = rebase(child, want)
		}
	}
	return &copied
}

func hashChildren(children []*Node) [32]byte {
	hasher := blake3.New()
	for _, child := range children {
		hasher.Write([]byte(child.Name))
		hasher.Write([]byte{0})
		hasher.Write(child.Hash[:])
	}
	var digest [32]byte
	copy(digest[:], hasher.Sum(nil))
	return digest
}

func joinPath(parentPath, name string) string {
	if parentPath == "" {
		return name
	}
	return parentPath + "/" + name
}

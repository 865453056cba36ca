// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"strings"

	"github.com/ndp190/termfolio/lib/shell"
	"github.com/ndp190/termfolio/lib/vfs"
	"github.com/ndp190/termfolio/lib/workspace"
)

func displayName(node *vfs.Node) string {
	if node.IsDir {
		return node.Name + "/"
	}
	return node.Name
}

func renderLs(invocation shell.Invocation, env Environment) shell.Output {
	long := false
	var paths []string
	for _, arg := range invocation.Args {
		switch {
		case arg == "-l":
			long = true
		case strings.HasPrefix(arg, "-"):
			return shell.Usage("Usage: ls [-l] [path]")
		default:
			paths = append(paths, arg)
		}
	}
	if len(paths) > 1 {
		return shell.Usage("Usage: ls [-l] [path]")
	}

	root := env.Tree()
	target := root
	if len(paths) == 1 {
		node, ok := vfs.Resolve(root, paths[0])
		if !ok {
			return shell.Errorf("ls: %s: No such file or directory", paths[0])
		}
		target = node
	}

	entries := []*vfs.Node{target}
	if target.IsDir {
		entries = target.Children
	}
	lines := make([]string, len(entries))
	for index, entry := range entries {
		if long {
			lines[index] = longListing(entry)
		} else {
			lines[index] = displayName(entry)
		}
	}
	return shell.Text("%s", strings.Join(lines, "\n"))
}

func longListing(node *vfs.Node) string {
	mode := "-r--r--r--"
	if node.IsDir {
		mode = "dr-xr-xr-x"
	}
	return fmt.Sprintf("%s %8d %s %s", mode, node.Size, node.ModTime.Format("Jan _2 15:04"), displayName(node))
}

func renderCat(invocation shell.Invocation, env Environment) shell.Output {
	if len(invocation.Args) == 0 {
		return shell.Usage("Usage: cat <file>")
	}
	path := invocation.Args[0]
	node, ok := vfs.FindNode(env.Tree(), path)
	if !ok {
		return shell.Errorf("cat: %s: No such file or directory", path)
	}
	if node.IsDir {
		return shell.Errorf("cat: %s: Is a directory", path)
	}
	if key, ok := workspace.BookmarkKey(node); ok {
		if item, found := bookmarkByKey(env, key); found {
			return renderBookmarkContent(invocation, env, item)
		}
	}
	if !node.HasContent {
		return shell.Errorf("cat: %s: Unable to read file", path)
	}
	return scrollTo(invocation, shell.Markdown(env.Localized(node)))
}

// scrollTo adds a scroll request for output that belongs to the entry
// just submitted.
func scrollTo(invocation shell.Invocation, output shell.Output) shell.Output {
	if invocation.Index != 0 || !invocation.Rerender {
		return output
	}
	return output.WithEffects(shell.Effect{Kind: shell.EffectScrollTo, Value: invocation.Line})
}

func renderTree(invocation shell.Invocation, env Environment) shell.Output {
	if len(invocation.Args) > 1 {
		return shell.Usage("Usage: tree [path]")
	}
	root := env.Tree()
	if len(invocation.Args) == 1 {
		node, ok := vfs.Resolve(root, invocation.Args[0])
		if !ok {
			return shell.Errorf("tree: %s: No such file or directory", invocation.Args[0])
		}
		root = node
	}
	return shell.Text("%s", strings.TrimSuffix(FormatTree(root), "\n"))
}

// FormatTree draws node and its descendants with box-drawing
// branches. The node itself is shown as ".".
func FormatTree(node *vfs.Node) string {
	var tree strings.Builder
	tree.WriteString(".\n")
	writeBranches(&tree, node.Children, "")
	return tree.String()
}

func writeBranches(tree *strings.Builder, children []*vfs.Node, indent string) {
	for index, child := range children {
		last := index == len(children)-1
		branch, continuation := "├── ", "│    "
		if last {
			branch, continuation = "└── ", "     "
		}
		tree.WriteString(indent + branch + displayName(child) + "\n")
		if child.IsDir {
			writeBranches(tree, child.Children, indent+continuation)
		}
	}
}

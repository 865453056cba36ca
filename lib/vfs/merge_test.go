// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package vfs

import (
	"reflect"
	"testing"
)

func TestWithDirectoryProducesNewRoot(t *testing.T) {
	root := testTree()
	before := root.Fingerprint()

	merged := WithDirectory(root, "bookmarks", []Leaf{
		{Name: "go-memory.md", Content: "# Go memory"},
		{Name: "rust-async.md", Content: "# Rust async"},
	}, testTime)

	if merged == root {
		t.Fatal("WithDirectory must return a new root")
	}
	if len(root.Children) != 2 {
		t.Errorf("original root modified: %d children", len(root.Children))
	}
	if root.Fingerprint() != before {
		t.Error("original root hash changed")
	}
	if merged.Fingerprint() == before {
		t.Error("merged root should have a different fingerprint")
	}

	leaf, ok := FindNode(merged, "bookmarks/go-memory.md")
	if !ok {
		t.Fatal("bookmark leaf not found")
	}
	if leaf.Path != "terminal/bookmarks/go-memory.md" {
		t.Errorf("leaf path = %q", leaf.Path)
	}

	got := ListMatchingPaths(merged, "")
	want := []string{"about-me.md", "blog/", "bookmarks/"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("top level = %v, want %v", got, want)
	}
}

func TestWithDirectoryReplacesPrevious(t *testing.T) {
	root := testTree()
	first := WithDirectory(root, "bookmarks", []Leaf{{Name: "a.md"}}, testTime)
	second := WithDirectory(first, "bookmarks", []Leaf{{Name: "b.md"}}, testTime)

	if len(second.Children) != 3 {
		t.Fatalf("expected 3 top-level children, got %d", len(second.Children))
	}
	if _, ok := FindNode(second, "bookmarks/a.md"); ok {
		t.Error("stale bookmark leaf survived replacement")
	}
	if _, ok := FindNode(second, "bookmarks/b.md"); !ok {
		t.Error("new bookmark leaf missing")
	}
	if _, ok := FindNode(first, "bookmarks/a.md"); !ok {
		t.Error("earlier tree lost its bookmark leaf")
	}
}

func TestWithoutDirectory(t *testing.T) {
	root := testTree()
	if WithoutDirectory(root, "missing") != root {
		t.Error("removing an absent child should return the same root")
	}
	stripped := WithoutDirectory(root, "blog")
	if _, ok := FindNode(stripped, "blog"); ok {
		t.Error("blog still present")
	}
	if _, ok := FindNode(root, "blog"); !ok {
		t.Error("original tree modified")
	}
}

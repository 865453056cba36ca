// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package vfsmount

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/ndp190/termfolio/lib/vfs"
)

var testTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testTree(readme string) *vfs.Node {
	return vfs.NewDir("", "terminal", testTime, []*vfs.Node{
		vfs.NewFile("", "about-me.md", readme, testTime),
		vfs.NewDir("", "blog", testTime, []*vfs.Node{
			vfs.NewFile("", "hello-world.md", "hello", testTime),
		}),
	})
}

// fuseAvailable checks whether /dev/fuse is accessible. Tests that
// need a real FUSE mount call this and skip if the device is absent.
func fuseAvailable(t *testing.T) {
	t.Helper()
	if _, err := os.Stat("/dev/fuse"); err != nil {
		t.Skip("skipping: /dev/fuse not available")
	}
}

func testMount(t *testing.T, tree *atomic.Pointer[vfs.Node]) string {
	t.Helper()
	fuseAvailable(t)

	mountpoint := filepath.Join(t.TempDir(), "mount")
	server, err := Mount(Options{Mountpoint: mountpoint, Tree: tree.Load})
	if err != nil {
		t.Skipf("Mount: %v", err)
	}
	t.Cleanup(func() {
		if err := server.Unmount(); err != nil {
			t.Errorf("Unmount: %v", err)
		}
	})
	return mountpoint
}

func TestMountRequiresOptions(t *testing.T) {
	if _, err := Mount(Options{Tree: func() *vfs.Node { return nil }}); err == nil {
		t.Error("expected error without mountpoint")
	}
	if _, err := Mount(Options{Mountpoint: t.TempDir()}); err == nil {
		t.Error("expected error without tree")
	}
}

func TestFillAttr(t *testing.T) {
	tree := testTree("# About")

	var attr fuse.Attr
	fillAttr(tree, &attr)
	if attr.Mode != syscall.S_IFDIR|0o555 {
		t.Errorf("dir mode = %o", attr.Mode)
	}

	file, _ := vfs.FindNode(tree, "about-me.md")
	attr = fuse.Attr{}
	fillAttr(file, &attr)
	if attr.Mode != syscall.S_IFREG|0o444 || attr.Size != uint64(len("# About")) {
		t.Errorf("file attr = mode %o size %d", attr.Mode, attr.Size)
	}
	if attr.Mtime != uint64(testTime.Unix()) {
		t.Errorf("mtime = %d", attr.Mtime)
	}
}

func TestDirEntries(t *testing.T) {
	entries := dirEntries(testTree(""))
	if len(entries) != 2 {
		t.Fatalf("entries = %v", entries)
	}
	if entries[0].Name != "about-me.md" || entries[0].Mode != syscall.S_IFREG {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1].Name != "blog" || entries[1].Mode != syscall.S_IFDIR {
		t.Errorf("entries[1] = %+v", entries[1])
	}
}

func TestReadAt(t *testing.T) {
	dest := make([]byte, 4)
	if got := string(readAt("hello world", dest, 6)); got != "worl" {
		t.Errorf("readAt = %q", got)
	}
	if got := readAt("hello", dest, 5); len(got) != 0 {
		t.Errorf("read past end = %q", got)
	}
}

func TestMountedTree(t *testing.T) {
	var tree atomic.Pointer[vfs.Node]
	tree.Store(testTree("# About"))
	mountpoint := testMount(t, &tree)

	content, err := os.ReadFile(filepath.Join(mountpoint, "blog", "hello-world.md"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(content) != "hello" {
		t.Errorf("content = %q", content)
	}

	if err := os.WriteFile(filepath.Join(mountpoint, "about-me.md"), []byte("x"), 0o644); err == nil {
		t.Error("write succeeded on read-only mount")
	}

	tree.Store(testTree("# Updated"))
	time.Sleep(1100 * time.Millisecond)
	content, err = os.ReadFile(filepath.Join(mountpoint, "about-me.md"))
	if err != nil {
		t.Fatalf("ReadFile after swap: %v", err)
	}
	if string(content) != "# Updated" {
		t.Errorf("content after swap = %q", content)
	}
}

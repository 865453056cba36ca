// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package vfsmount

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"syscall"
	"time"

	gofuse "github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/ndp190/termfolio/lib/vfs"
)

// Options configures the FUSE mount.
type Options struct {
	// Mountpoint is the directory where the filesystem is mounted.
	Mountpoint string

	// Tree returns the current content tree. It is called on every
	// lookup and listing, so a tree swapped by the content watcher or
	// a manifest fetch shows up in the mount within the entry
	// timeout.
	Tree func() *vfs.Node

	// AllowOther permits other users to access the mount. Requires
	// user_allow_other in /etc/fuse.conf.
	AllowOther bool

	// Logger receives diagnostic messages. If nil, errors go to
	// stderr.
	Logger *slog.Logger
}

// Mount mounts the tree at the configured mountpoint. The caller must
// call Unmount on the returned Server when done. The mountpoint
// directory is created if it does not exist.
func Mount(options Options) (*fuse.Server, error) {
	if options.Mountpoint == "" {
		return nil, fmt.Errorf("mountpoint is required")
	}
	if options.Tree == nil {
		return nil, fmt.Errorf("tree is required")
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelError,
		}))
	}

	if err := os.MkdirAll(options.Mountpoint, 0o755); err != nil {
		return nil, fmt.Errorf("creating mountpoint %s: %w", options.Mountpoint, err)
	}

	root := &dirNode{options: &options}

	entryTimeout := 1 * time.Second
	attrTimeout := 1 * time.Second
	negativeTimeout := 100 * time.Millisecond

	server, err := gofuse.Mount(options.Mountpoint, root, &gofuse.Options{
		EntryTimeout:    &entryTimeout,
		AttrTimeout:     &attrTimeout,
		NegativeTimeout: &negativeTimeout,
		MountOptions: fuse.MountOptions{
			FsName:     "termfolio",
			Name:       "termfolio",
			AllowOther: options.AllowOther,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("mounting FUSE filesystem at %s: %w", options.Mountpoint, err)
	}

	options.Logger.Info("content tree mounted", "mountpoint", options.Mountpoint)
	return server, nil
}

// dirNode is a directory of the tree, addressed by its path relative
// to the root ("" for the root itself).
type dirNode struct {
	gofuse.Inode
	options *Options
	path    string
}

var _ gofuse.InodeEmbedder = (*dirNode)(nil)
var _ gofuse.NodeLookuper = (*dirNode)(nil)
var _ gofuse.NodeReaddirer = (*dirNode)(nil)
var _ gofuse.NodeGetattrer = (*dirNode)(nil)

// current resolves the directory in the latest tree.
func (d *dirNode) current() (*vfs.Node, bool) {
	node, ok := vfs.Resolve(d.options.Tree(), d.path)
	if !ok || !node.IsDir {
		return nil, false
	}
	return node, true
}

func (d *dirNode) Getattr(ctx context.Context, f gofuse.FileHandle, out *fuse.AttrOut) syscall.Errno {
	node, ok := d.current()
	if !ok {
		return syscall.ENOENT
	}
	fillAttr(node, &out.Attr)
	return 0
}

func (d *dirNode) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*gofuse.Inode, syscall.Errno) {
	directory, ok := d.current()
	if !ok {
		return nil, syscall.ENOENT
	}
	child, ok := directory.Child(name)
	if !ok {
		return nil, syscall.ENOENT
	}
	fillAttr(child, &out.Attr)

	if child.IsDir {
		return d.NewInode(ctx, &dirNode{
			options: d.options,
			path:    child.RelativePath(),
		}, gofuse.StableAttr{Mode: syscall.S_IFDIR}), 0
	}
	return d.NewInode(ctx, &fileNode{
		options: d.options,
		path:    child.RelativePath(),
	}, gofuse.StableAttr{Mode: syscall.S_IFREG}), 0
}

func (d *dirNode) Readdir(ctx context.Context) (gofuse.DirStream, syscall.Errno) {
	directory, ok := d.current()
	if !ok {
		return nil, syscall.ENOENT
	}
	return &sliceDirStream{entries: dirEntries(directory)}, 0
}

// fileNode is a file leaf. Its content is captured when opened, so a
// reader sees one consistent version across reloads.
type fileNode struct {
	gofuse.Inode
	options *Options
	path    string
}

var _ gofuse.InodeEmbedder = (*fileNode)(nil)
var _ gofuse.NodeGetattrer = (*fileNode)(nil)
var _ gofuse.NodeOpener = (*fileNode)(nil)
var _ gofuse.NodeReader = (*fileNode)(nil)

func (f *fileNode) current() (*vfs.Node, bool) {
	node, ok := vfs.FindNode(f.options.Tree(), f.path)
	if !ok || node.IsDir {
		return nil, false
	}
	return node, true
}

func (f *fileNode) Getattr(ctx context.Context, handle gofuse.FileHandle, out *fuse.AttrOut) syscall.Errno {
	if content, ok := handle.(*contentHandle); ok {
		fillAttr(content.node, &out.Attr)
		return 0
	}
	node, ok := f.current()
	if !ok {
		return syscall.ENOENT
	}
	fillAttr(node, &out.Attr)
	return 0
}

func (f *fileNode) Open(ctx context.Context, flags uint32) (gofuse.FileHandle, uint32, syscall.Errno) {
	if flags&(syscall.O_WRONLY|syscall.O_RDWR) != 0 {
		return nil, 0, syscall.EROFS
	}
	node, ok := f.current()
	if !ok {
		return nil, 0, syscall.ENOENT
	}
	if !node.HasContent {
		f.options.Logger.Warn("open of unreadable file", "path", node.Path)
		return nil, 0, syscall.EIO
	}
	return &contentHandle{node: node}, fuse.FOPEN_DIRECT_IO, 0
}

func (f *fileNode) Read(ctx context.Context, handle gofuse.FileHandle, dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {
	content, ok := handle.(*contentHandle)
	if !ok {
		return nil, syscall.EBADF
	}
	return fuse.ReadResultData(readAt(content.node.Content, dest, off)), 0
}

// contentHandle pins the node a file was opened against.
type contentHandle struct {
	node *vfs.Node
}

// readAt copies content[off:] into dest and returns the filled part.
func readAt(content string, dest []byte, off int64) []byte {
	if off < 0 || off >= int64(len(content)) {
		return dest[:0]
	}
	count := copy(dest, content[off:])
	return dest[:count]
}

// fillAttr sets the read-only mode, size, and modification time.
func fillAttr(node *vfs.Node, attr *fuse.Attr) {
	if node.IsDir {
		attr.Mode = syscall.S_IFDIR | 0o555
	} else {
		attr.Mode = syscall.S_IFREG | 0o444
		attr.Size = uint64(node.Size)
		attr.Blocks = (attr.Size + 511) / 512
	}
	if !node.ModTime.IsZero() {
		modTime := node.ModTime
		attr.SetTimes(nil, &modTime, &modTime)
	}
}

func dirEntries(directory *vfs.Node) []fuse.DirEntry {
	entries := make([]fuse.DirEntry, 0, len(directory.Children))
	for _, child := range directory.Children {
		mode := uint32(syscall.S_IFREG)
		if child.IsDir {
			mode = syscall.S_IFDIR
		}
		entries = append(entries, fuse.DirEntry{Name: child.Name, Mode: mode})
	}
	return entries
}

// sliceDirStream implements fs.DirStream from a slice of entries.
type sliceDirStream struct {
	entries []fuse.DirEntry
	index   int
}

func (s *sliceDirStream) HasNext() bool {
	return s.index < len(s.entries)
}

func (s *sliceDirStream) Next() (fuse.DirEntry, syscall.Errno) {
	if s.index >= len(s.entries) {
		return fuse.DirEntry{}, syscall.EINVAL
	}
	entry := s.entries[s.index]
	s.index++
	return entry, 0
}

func (s *sliceDirStream) Close() {}

// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package vfs

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

// watchMask covers in-place writes, atomic renames into place, and
// entries appearing or disappearing.
const watchMask = unix.IN_CLOSE_WRITE | unix.IN_MOVED_TO | unix.IN_MOVED_FROM |
	unix.IN_CREATE | unix.IN_DELETE

// Watch loads the content directory and keeps reloading it as it
// changes. onChange receives each new tree whose fingerprint differs
// from the previous one; it runs on the watcher goroutine. The
// returned stop function ends the watch and closes the inotify fd; it
// is safe to call more than once.
//
// Every directory in the tree is watched. Directories created later
// are picked up on the reload that follows their creation.
func Watch(directory, rootName string, onChange func(*Node), logger *slog.Logger) (*Node, func(), error) {
	if logger == nil {
		logger = slog.Default()
	}
	absolute, err := filepath.Abs(directory)
	if err != nil {
		return nil, nil, err
	}

	initial, err := Load(os.DirFS(absolute), rootName)
	if err != nil {
		return nil, nil, err
	}

	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		return nil, nil, err
	}
	if err := addWatches(fd, absolute); err != nil {
		unix.Close(fd)
		return nil, nil, err
	}

	stopChannel := make(chan struct{})
	go watchLoop(fd, absolute, rootName, initial.Fingerprint(), onChange, logger, stopChannel)

	stopped := false
	stop := func() {
		if stopped {
			return
		}
		stopped = true
		close(stopChannel)
	}
	return initial, stop, nil
}

// addWatches registers every directory below root. Adding a watch for
// an already-watched directory returns the existing descriptor, so
// this is safe to repeat after each reload.
func addWatches(fd int, root string) error {
	return filepath.WalkDir(root, func(walkPath string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if walkPath != root && strings.HasPrefix(entry.Name(), ".") {
			return filepath.SkipDir
		}
		_, err = unix.InotifyAddWatch(fd, walkPath, watchMask)
		return err
	})
}

// watchLoop polls the inotify fd with a 100ms timeout so the stop
// channel is checked promptly. After an event it waits 50ms and
// drains the queue so that a burst of writes (an editor save, a git
// checkout) costs a single reload.
func watchLoop(
	fd int,
	root string,
	rootName string,
	fingerprint string,
	onChange func(*Node),
	logger *slog.Logger,
	stopChannel <-chan struct{},
) {
	defer unix.Close(fd)

	buffer := make([]byte, 4096)

	for {
		select {
		case <-stopChannel:
			return
		default:
		}

		pollDescriptors := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		count, err := unix.Poll(pollDescriptors, 100)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			logger.Error("content watcher stopped", "error", err)
			return
		}
		if count == 0 {
			continue
		}

		if _, err := unix.Read(fd, buffer); err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			logger.Error("content watcher stopped", "error", err)
			return
		}

		time.Sleep(50 * time.Millisecond)
		drainEvents(fd, buffer)

		tree, err := Load(os.DirFS(root), rootName)
		if err != nil {
			// Usually a file caught mid-rename; the completing event
			// triggers another reload.
			logger.Warn("content reload failed", "directory", root, "error", err)
			continue
		}
		if err := addWatches(fd, root); err != nil {
			logger.Warn("watching new content directories", "directory", root, "error", err)
		}

		if tree.Fingerprint() == fingerprint {
			continue
		}
		fingerprint = tree.Fingerprint()
		logger.Info("content reloaded", "directory", root, "fingerprint", fingerprint[:12])
		onChange(tree)
	}
}

func drainEvents(fd int, buffer []byte) {
	for {
		if _, err := unix.Read(fd, buffer); err != nil {
			return
		}
	}
}

// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package vfs

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// Load builds a tree from the given filesystem. The returned root is
// named rootName (DefaultRootName when empty) and mirrors the
// filesystem's top-level directory. Entries are kept in fs.ReadDir
// order. Hidden entries (names starting with ".") are skipped.
//
// A file that cannot be read does not fail the load: it becomes a
// leaf with HasContent false, which cat reports as unreadable.
func Load(fsys fs.FS, rootName string) (*Node, error) {
	if rootName == "" {
		rootName = DefaultRootName
	}
	children, err := loadDir(fsys, ".", rootName)
	if err != nil {
		return nil, err
	}
	info, err := fs.Stat(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("stat content root: %w", err)
	}
	return NewDir("", rootName, info.ModTime(), children), nil
}

func loadDir(fsys fs.FS, directory, nodePath string) ([]*Node, error) {
	entries, err := fs.ReadDir(fsys, directory)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", directory, err)
	}

	children := make([]*Node, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		entryPath := path.Join(directory, name)

		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", entryPath, err)
		}

		if entry.IsDir() {
			grandchildren, err := loadDir(fsys, entryPath, joinPath(nodePath, name))
			if err != nil {
				return nil, err
			}
			children = append(children, NewDir(nodePath, name, info.ModTime(), grandchildren))
			continue
		}

		if !info.Mode().IsRegular() {
			continue
		}

		data, err := fs.ReadFile(fsys, entryPath)
		if err != nil {
			children = append(children, &Node{
				Name:    name,
				Path:    joinPath(nodePath, name),
				Size:    info.Size(),
				ModTime: info.ModTime(),
			})
			continue
		}
		children = append(children, NewFile(nodePath, name, string(data), info.ModTime()))
	}
	return children, nil
}

// Translations maps a language code to localized file contents keyed
// by node path (including the root segment).
type Translations map[string]map[string]string

// LoadTranslations reads localized copies of content files. The
// filesystem holds one directory per language code whose layout
// mirrors the content tree, e.g. "vn/about-me.md" localizes
// "<rootName>/about-me.md".
func LoadTranslations(fsys fs.FS, rootName string) (Translations, error) {
	if rootName == "" {
		rootName = DefaultRootName
	}
	languages, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading translations: %w", err)
	}

	translations := make(Translations)
	for _, language := range languages {
		if !language.IsDir() || strings.HasPrefix(language.Name(), ".") {
			continue
		}
		code := language.Name()
		files := make(map[string]string)
		err := fs.WalkDir(fsys, code, func(walkPath string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				return nil
			}
			data, err := fs.ReadFile(fsys, walkPath)
			if err != nil {
				return err
			}
			relative := strings.TrimPrefix(walkPath, code+"/")
			files[joinPath(rootName, relative)] = string(data)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("reading %s translations: %w", code, err)
		}
		translations[code] = files
	}
	return translations, nil
}

// Lookup returns the localized content for a node path, if any.
func (translations Translations) Lookup(language, nodePath string) (string, bool) {
	files, ok := translations[language]
	if !ok {
		return "", false
	}
	content, ok := files[nodePath]
	return content, ok
}

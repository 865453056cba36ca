// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

// Package content embeds the portfolio shipped with the binary. A
// content directory named in the configuration replaces it.
package content

import (
	"embed"
	"io/fs"
)

//go:embed terminal i18n
var embedded embed.FS

// Files returns the content tree, rooted at its top-level directory.
func Files() fs.FS {
	return mustSub("terminal")
}

// Translations returns one directory per language code mirroring
// [Files].
func Translations() fs.FS {
	return mustSub("i18n")
}

func mustSub(directory string) fs.FS {
	sub, err := fs.Sub(embedded, directory)
	if err != nil {
		panic("content: " + err.Error())
	}
	return sub
}

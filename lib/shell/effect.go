// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package shell

import "fmt"

// EffectKind identifies a one-time action requested by a renderer.
type EffectKind int

const (
	// EffectSetTheme switches the color theme. Value is the theme name.
	EffectSetTheme EffectKind = iota + 1

	// EffectSetLanguage switches the content language. Value is the
	// language code.
	EffectSetLanguage

	// EffectOpenURL opens Value in the user's browser.
	EffectOpenURL

	// EffectClearHistory empties the transcript. The session applies
	// it to its own history before handing it on.
	EffectClearHistory

	// EffectScrollTo brings the output of the just-submitted command
	// into view. Value is the path being displayed.
	EffectScrollTo

	// EffectLoadBookmark requests the content of the bookmark whose
	// key is Value.
	EffectLoadBookmark

	// EffectRefreshManifest requests a fresh bookmark manifest.
	EffectRefreshManifest
)

var effectKindNames = map[EffectKind]string{
	EffectSetTheme:        "set-theme",
	EffectSetLanguage:     "set-language",
	EffectOpenURL:         "open-url",
	EffectClearHistory:    "clear-history",
	EffectScrollTo:        "scroll-to",
	EffectLoadBookmark:    "load-bookmark",
	EffectRefreshManifest: "refresh-manifest",
}

func (kind EffectKind) String() string {
	if name, ok := effectKindNames[kind]; ok {
		return name
	}
	return fmt.Sprintf("effect(%d)", int(kind))
}

// Effect is one requested action.
type Effect struct {
	Kind  EffectKind
	Value string
}

func (effect Effect) String() string {
	if effect.Value == "" {
		return effect.Kind.String()
	}
	return effect.Kind.String() + " " + effect.Value
}

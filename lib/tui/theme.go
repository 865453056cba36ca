// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// Theme is one color scheme of the terminal. All colors use lipgloss
// ANSI 256-color codes for broad terminal compatibility.
//
// The palette mirrors the portfolio's web themes: a body background,
// a primary accent (prompt user, headings, strong text), a secondary
// accent (links, prompt path, highlights), and three text shades.
type Theme struct {
	Name string

	Body      lipgloss.Color
	Primary   lipgloss.Color
	Secondary lipgloss.Color

	// Text shades, brightest first.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color
	DimText    lipgloss.Color

	// UI chrome.
	BorderColor lipgloss.Color
	ErrorText   lipgloss.Color

	// Selected completion hint.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Background tint for annotated spans.
	HighlightBackground lipgloss.Color
}

// DefaultThemeName is used when no theme is configured.
const DefaultThemeName = "dark"

var themes = []Theme{
	{
		Name:                "dark",
		Body:                lipgloss.Color("236"),
		Primary:             lipgloss.Color("42"),
		Secondary:           lipgloss.Color("214"),
		NormalText:          lipgloss.Color("253"),
		FaintText:           lipgloss.Color("250"),
		DimText:             lipgloss.Color("243"),
		BorderColor:         lipgloss.Color("240"),
		ErrorText:           lipgloss.Color("203"),
		SelectedBackground:  lipgloss.Color("42"),
		SelectedForeground:  lipgloss.Color("236"),
		HighlightBackground: lipgloss.Color("94"),
	},
	{
		Name:                "light",
		Body:                lipgloss.Color("255"),
		Primary:             lipgloss.Color("30"),
		Secondary:           lipgloss.Color("208"),
		NormalText:          lipgloss.Color("238"),
		FaintText:           lipgloss.Color("240"),
		DimText:             lipgloss.Color("244"),
		BorderColor:         lipgloss.Color("250"),
		ErrorText:           lipgloss.Color("160"),
		SelectedBackground:  lipgloss.Color("30"),
		SelectedForeground:  lipgloss.Color("255"),
		HighlightBackground: lipgloss.Color("223"),
	},
	{
		Name:                "blue-matrix",
		Body:                lipgloss.Color("233"),
		Primary:             lipgloss.Color("48"),
		Secondary:           lipgloss.Color("87"),
		NormalText:          lipgloss.Color("231"),
		FaintText:           lipgloss.Color("251"),
		DimText:             lipgloss.Color("243"),
		BorderColor:         lipgloss.Color("238"),
		ErrorText:           lipgloss.Color("203"),
		SelectedBackground:  lipgloss.Color("48"),
		SelectedForeground:  lipgloss.Color("233"),
		HighlightBackground: lipgloss.Color("24"),
	},
	{
		Name:                "espresso",
		Body:                lipgloss.Color("236"),
		Primary:             lipgloss.Color("181"),
		Secondary:           lipgloss.Color("248"),
		NormalText:          lipgloss.Color("255"),
		FaintText:           lipgloss.Color("250"),
		DimText:             lipgloss.Color("244"),
		BorderColor:         lipgloss.Color("240"),
		ErrorText:           lipgloss.Color("174"),
		SelectedBackground:  lipgloss.Color("181"),
		SelectedForeground:  lipgloss.Color("236"),
		HighlightBackground: lipgloss.Color("95"),
	},
	{
		Name:                "green-goblin",
		Body:                lipgloss.Color("16"),
		Primary:             lipgloss.Color("184"),
		Secondary:           lipgloss.Color("34"),
		NormalText:          lipgloss.Color("46"),
		FaintText:           lipgloss.Color("40"),
		DimText:             lipgloss.Color("28"),
		BorderColor:         lipgloss.Color("22"),
		ErrorText:           lipgloss.Color("196"),
		SelectedBackground:  lipgloss.Color("184"),
		SelectedForeground:  lipgloss.Color("16"),
		HighlightBackground: lipgloss.Color("58"),
	},
	{
		Name:                "ubuntu",
		Body:                lipgloss.Color("53"),
		Primary:             lipgloss.Color("113"),
		Secondary:           lipgloss.Color("75"),
		NormalText:          lipgloss.Color("231"),
		FaintText:           lipgloss.Color("254"),
		DimText:             lipgloss.Color("250"),
		BorderColor:         lipgloss.Color("96"),
		ErrorText:           lipgloss.Color("210"),
		SelectedBackground:  lipgloss.Color("113"),
		SelectedForeground:  lipgloss.Color("53"),
		HighlightBackground: lipgloss.Color("90"),
	},
}

// ThemeNames returns the available theme names in display order.
func ThemeNames() []string {
	names := make([]string, len(themes))
	for index, theme := range themes {
		names[index] = theme.Name
	}
	return names
}

// LookupTheme returns the theme with the given name.
func LookupTheme(name string) (Theme, bool) {
	index := slices.IndexFunc(themes, func(theme Theme) bool { return theme.Name == name })
	if index < 0 {
		return Theme{}, false
	}
	return themes[index], true
}

// DefaultTheme returns the built-in default theme.
func DefaultTheme() Theme {
	theme, _ := LookupTheme(DefaultThemeName)
	return theme
}

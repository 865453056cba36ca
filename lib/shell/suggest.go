// Copyright 2026 The Termfolio Authors
// SPDX-License-Identifier: Apache-2.0

package shell

// MaxSuggestDistance is the largest edit distance at which Closest
// still offers a candidate.
const MaxSuggestDistance = 3

// Closest returns the candidate nearest to unknown, or "" if none is
// within MaxSuggestDistance. Ties go to the earlier candidate.
func Closest(unknown string, candidates []string) string {
	bestName := ""
	bestDistance := MaxSuggestDistance + 1
	for _, candidate := range candidates {
		if distance := Levenshtein(unknown, candidate); distance < bestDistance {
			bestDistance = distance
			bestName = candidate
		}
	}
	return bestName
}

// suggestCommand returns the closest visible command to an unknown
// head token.
func suggestCommand(unknown string, registry *Registry) string {
	visible := registry.Visible()
	names := make([]string, len(visible))
	for index, command := range visible {
		names[index] = command.Name
	}
	return Closest(unknown, names)
}

// Levenshtein computes the edit distance between two strings, counted
// in runes, using a single-row dynamic programming table.
func Levenshtein(a, b string) int {
	source := []rune(a)
	target := []rune(b)
	if len(source) == 0 {
		return len(target)
	}
	if len(target) == 0 {
		return len(source)
	}

	row := make([]int, len(target)+1)
	for index := range row {
		row[index] = index
	}

	for i := 1; i <= len(source); i++ {
		previous := row[0]
		row[0] = i
		for j := 1; j <= len(target); j++ {
			current := row[j]
			cost := 1
			if source[i-1] == target[j-1] {
				cost = 0
			}
			row[j] = min(row[j]+1, row[j-1]+1, previous+cost)
			previous = current
		}
	}
	return row[len(target)]
}

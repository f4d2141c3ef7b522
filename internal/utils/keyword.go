package utils

import "strings"

// NormalizeKeyword trims value and lowercases its ASCII letters only.
// Non-ASCII runes are kept as they are, so they never match an ASCII keyword.
func NormalizeKeyword(value string) string {
	folded := []byte(strings.TrimSpace(value))
	for index, character := range folded {
		if 'A' <= character && character <= 'Z' {
			folded[index] = character + ('a' - 'A')
		}
	}
	return string(folded)
}

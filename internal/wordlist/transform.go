package wordlist

import "strings"

// Transform is a word-level mapping applied during pipeline step 3
// (spec.md §4.2): case changes, prefix/suffix additions, substitutions.
type Transform func(word string) string

// Lower lowercases every word.
func Lower() Transform { return strings.ToLower }

// Upper uppercases every word.
func Upper() Transform { return strings.ToUpper }

// Prefix prepends p to every word.
func Prefix(p string) Transform {
	return func(w string) string { return p + w }
}

// Suffix appends s to every word.
func Suffix(s string) Transform {
	return func(w string) string { return w + s }
}

// Substitute replaces every occurrence of old with new in each word.
func Substitute(old, new string) Transform {
	return func(w string) string { return strings.ReplaceAll(w, old, new) }
}

func applyTransforms(words []string, transforms []Transform) []string {
	if len(transforms) == 0 {
		return words
	}
	out := make([]string, len(words))
	for i, w := range words {
		for _, t := range transforms {
			w = t(w)
		}
		out[i] = w
	}
	return out
}

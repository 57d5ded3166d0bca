package wordlist

import (
	"regexp"
	"strings"
)

// Filter is a word-level predicate applied during pipeline step 2
// (spec.md §4.2): length bounds, regex match/non-match, substring
// contains/excludes. A word survives the stage iff every Filter
// returns true for it.
type Filter func(word string) bool

// LengthFilter keeps words whose length is within [min, max]. max <= 0
// means unbounded.
func LengthFilter(min, max int) Filter {
	return func(w string) bool {
		if len(w) < min {
			return false
		}
		if max > 0 && len(w) > max {
			return false
		}
		return true
	}
}

// RegexMatchFilter keeps words that match re.
func RegexMatchFilter(re *regexp.Regexp) Filter {
	return func(w string) bool { return re.MatchString(w) }
}

// RegexExcludeFilter drops words that match re.
func RegexExcludeFilter(re *regexp.Regexp) Filter {
	return func(w string) bool { return !re.MatchString(w) }
}

// ContainsFilter keeps words containing substr.
func ContainsFilter(substr string) Filter {
	return func(w string) bool { return strings.Contains(w, substr) }
}

// ExcludesFilter drops words containing substr.
func ExcludesFilter(substr string) Filter {
	return func(w string) bool { return !strings.Contains(w, substr) }
}

func applyFilters(words []string, filters []Filter) []string {
	if len(filters) == 0 {
		return words
	}
	out := words[:0:0]
	for _, w := range words {
		keep := true
		for _, f := range filters {
			if !f(w) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, w)
		}
	}
	return out
}

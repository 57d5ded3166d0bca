// Package wordlist implements the load -> filter -> transform -> sort ->
// dedupe -> checksum pipeline described in spec.md §4.2.
package wordlist

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Report summarizes the effect of the filter/transform/dedupe stages, as
// described in spec.md §4.2: "(loaded, final, percent-removed)".
type Report struct {
	Loaded  int
	Final   int
	Removed float64 // percent
}

// Load reads one or more wordlist paths and returns the final, sorted,
// deduplicated word sequence plus a summary report. Paths may contain
// glob patterns (resolved with doublestar so "**" and brace patterns
// work the same on every platform); a path with no glob metacharacters
// is read directly.
//
// Steps, in the fixed order spec.md §4.2 requires:
//  1. load — concatenate file contents, split on newlines, discard
//     empty lines.
//  2. apply Filters.
//  3. apply Transforms.
//  4. sort lexicographically (unstable sort is acceptable).
//  5. deduplicate adjacent duplicates.
func Load(paths []string, filters []Filter, transforms []Transform) ([]string, Report, error) {
	words, err := loadRaw(paths)
	if err != nil {
		return nil, Report{}, err
	}
	loaded := len(words)

	words = applyFilters(words, filters)
	words = applyTransforms(words, transforms)

	sort.Strings(words)
	words = dedupeSorted(words)

	final := len(words)
	removed := 0.0
	if loaded > 0 {
		removed = float64(loaded-final) / float64(loaded) * 100.0
	}

	return words, Report{Loaded: loaded, Final: final, Removed: removed}, nil
}

func loadRaw(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		if hasGlobMeta(p) {
			if !doublestar.ValidatePattern(p) {
				return nil, fmt.Errorf("invalid wordlist glob %q", p)
			}
			matches, err := doublestar.FilepathGlob(p)
			if err != nil {
				return nil, fmt.Errorf("expanding wordlist glob %q: %w", p, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("wordlist glob %q matched no files", p)
			}
			files = append(files, matches...)
		} else {
			files = append(files, p)
		}
	}

	var words []string
	for _, f := range files {
		fh, err := os.Open(f)
		if err != nil {
			return nil, fmt.Errorf("opening wordlist %q: %w", f, err)
		}
		s := bufio.NewScanner(fh)
		s.Buffer(make([]byte, 64*1024), 1024*1024)
		for s.Scan() {
			w := s.Text()
			if w == "" {
				continue
			}
			words = append(words, w)
		}
		err = s.Err()
		fh.Close()
		if err != nil {
			return nil, fmt.Errorf("reading wordlist %q: %w", f, err)
		}
	}
	return words, nil
}

// hasGlobMeta reports whether p contains any doublestar pattern
// metacharacter, so that a plain path is never routed through the
// globbing filesystem walk.
func hasGlobMeta(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}

func dedupeSorted(words []string) []string {
	if len(words) == 0 {
		return words
	}
	out := words[:1]
	for _, w := range words[1:] {
		if w != out[len(out)-1] {
			out = append(out, w)
		}
	}
	return out
}

// Checksum returns the hex-encoded SHA-256 of words joined by a single
// newline, in the order given. Callers must pass the final (post-sort,
// post-dedupe) sequence to get the checksum spec.md §3 defines.
func Checksum(words []string) string {
	sum := sha256.Sum256([]byte(strings.Join(words, "\n")))
	return hex.EncodeToString(sum[:])
}

// Chunk splits words into exactly threads contiguous, non-empty chunks.
// threads is clamped to [1, len(words)] first, per spec.md §3's chunking
// rule; an empty words slice yields no chunks.
//
// spec.md §9 flags the source's plain integer-division chunking as
// possibly buggy (it drops len(words) % threads words on the floor).
// This implementation instead distributes the remainder across the
// first chunks one at a time, so every word is assigned to exactly one
// chunk and chunk sizes differ by at most one.
func Chunk(words []string, threads int) [][]string {
	if threads <= 0 {
		threads = 1
	}
	if threads > len(words) {
		threads = len(words)
	}
	if threads == 0 {
		return nil
	}

	base := len(words) / threads
	remainder := len(words) % threads

	chunks := make([][]string, 0, threads)
	idx := 0
	for i := 0; i < threads; i++ {
		size := base
		if i < remainder {
			size++
		}
		chunks = append(chunks, words[idx:idx+size])
		idx += size
	}
	return chunks
}

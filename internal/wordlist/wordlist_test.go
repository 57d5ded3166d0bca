package wordlist

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadSkipsEmptyLinesSortsDedupes(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "words.txt", "a\nb\nb\nc\n\nAB\n")

	words, report, err := Load([]string{p}, nil, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"AB", "a", "b", "c"}, words)
	require.Equal(t, 5, report.Loaded)
	require.Equal(t, 4, report.Final)
}

func TestLoadAppliesFiltersAndTransforms(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "words.txt", "a\nbb\nccc\ndddd\n")

	words, _, err := Load([]string{p},
		[]Filter{LengthFilter(2, 3)},
		[]Transform{Prefix("x-")})
	require.NoError(t, err)
	require.Equal(t, []string{"x-bb", "x-ccc"}, words)
}

func TestLoadEmptyWordlistStillReportsZero(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "words.txt", "\n\n")

	words, report, err := Load([]string{p}, nil, nil)
	require.NoError(t, err)
	require.Empty(t, words)
	require.Equal(t, 0, report.Loaded)
}

func TestRegexFilters(t *testing.T) {
	re := regexp.MustCompile(`^a`)
	words := []string{"apple", "banana", "avocado"}
	require.Equal(t, []string{"apple", "avocado"}, applyFilters(words, []Filter{RegexMatchFilter(re)}))
	require.Equal(t, []string{"banana"}, applyFilters(words, []Filter{RegexExcludeFilter(re)}))
}

func TestChecksumDeterministic(t *testing.T) {
	words := []string{"a", "b", "c"}
	c1 := Checksum(words)
	c2 := Checksum(words)
	require.Equal(t, c1, c2)
	require.NotEqual(t, c1, Checksum([]string{"a", "b", "d"}))
}

func TestChunkDistributesRemainderEvenly(t *testing.T) {
	words := []string{"a", "b", "c", "d", "e", "f", "g"}
	chunks := Chunk(words, 3)
	require.Len(t, chunks, 3)

	total := 0
	for _, c := range chunks {
		total += len(c)
		require.NotEmpty(t, c)
	}
	require.Equal(t, len(words), total)

	// sizes differ by at most one
	min, max := len(chunks[0]), len(chunks[0])
	for _, c := range chunks {
		if len(c) < min {
			min = len(c)
		}
		if len(c) > max {
			max = len(c)
		}
	}
	require.LessOrEqual(t, max-min, 1)
}

func TestChunkClampsThreadsToWordCount(t *testing.T) {
	words := []string{"a", "b"}
	chunks := Chunk(words, 10)
	require.Len(t, chunks, 2)
	for _, c := range chunks {
		require.Len(t, c, 1)
	}
}

func TestLoadExpandsGlobPatterns(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "one.txt", "a\nb\n")
	writeTemp(t, dir, "two.txt", "c\n")

	words, _, err := Load([]string{filepath.Join(dir, "*.txt")}, nil, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, words)
}

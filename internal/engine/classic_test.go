package engine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cybertron10/fuzzwalk/internal/config"
	"github.com/cybertron10/fuzzwalk/internal/logging"
	"github.com/cybertron10/fuzzwalk/internal/tree"
)

func newTestOptions(url string) *config.Options {
	o := &config.Options{
		URL:       url,
		Wordlists: []string{"unused"},
		Threads:   2,
		FuzzKey:   config.DefaultFuzzKey,
		Quiet:     true,
	}
	o.ApplyDefaults(2)
	return o
}

// TestClassicBasicFuzz reproduces spec.md §8 scenario 1: template
// http://h/FUZZ, wordlist [a, b, b, c] (post-pipeline [a, b, c]), no
// filters -> exactly 3 requests, tree has root plus 3 children at depth 0.
func TestClassicBasicFuzz(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	opts := newTestOptions(srv.URL + "/FUZZ")
	state := NewState()
	state.Tree.Insert(tree.Data{URL: srv.URL, Depth: 0, Path: ""}, nil)

	c := &Classic{Opts: opts, State: state, Client: srv.Client(), Logger: logging.Noop(), Words: []string{"a", "b", "c"}}
	require.NoError(t, c.Run(context.Background()))

	require.Equal(t, 3, hits)
	root := state.Tree.Root()
	require.Len(t, root.Children, 3)
	for _, child := range root.Children {
		require.Equal(t, 0, child.Data.Depth)
	}
}

func TestClassicPermutationsCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	opts := newTestOptions(srv.URL + "/FUZZ/FUZZ")
	opts.Permutations = true

	c := &Classic{Opts: opts, State: NewState(), Client: srv.Client(), Logger: logging.Noop(), Words: []string{"a", "b", "c", "d"}}
	urls := c.generateURLs()

	// n!/(n-k)! = 4!/2! = 12
	require.Len(t, urls, 12)
}

func TestClassicNoPlaceholderIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	opts := newTestOptions(srv.URL + "/static")
	c := &Classic{Opts: opts, State: NewState(), Client: srv.Client(), Logger: logging.Noop(), Words: []string{"a", "b"}}
	urls := c.generateURLs()
	require.Equal(t, []string{srv.URL + "/static"}, urls)
}

func TestChunkURLsClampsAndDistributes(t *testing.T) {
	urls := []string{"1", "2", "3", "4", "5"}
	chunks := chunkURLs(urls, 10)
	require.Len(t, chunks, 5)

	chunks = chunkURLs(urls, 2)
	require.Len(t, chunks, 2)
	total := 0
	for _, c := range chunks {
		total += len(c)
	}
	require.Equal(t, 5, total)
}

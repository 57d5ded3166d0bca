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
	"github.com/cybertron10/fuzzwalk/internal/wordlist"
)

// TestRecursiveDepthTwo reproduces spec.md §8 scenario 2: template
// http://h/, wordlist [x, y], depth 2; server returns 200 for /x and
// /x/y and 404 for everything else; filter status==200. Expect root,
// child x at depth 1, grandchild y at depth 2, total discoveries = 2.
func TestRecursiveDepthTwo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/x", "/x/y":
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	opts := &config.Options{
		URL:       srv.URL + "/",
		Wordlists: []string{"unused"},
		Depth:     2,
		Quiet:     true,
		Filters:   config.Filters{IncludeStatus: []int{200}},
	}
	opts.ApplyDefaults(2)

	state := NewState()
	root := state.Tree.Insert(tree.Data{URL: srv.URL + "/", Depth: 0, Path: ""}, nil)
	_ = root

	words := []string{"x", "y"}
	chunks := wordlist.Chunk(words, 1)

	r := &Recursive{Opts: opts, State: state, Client: srv.Client(), Logger: logging.Noop(), Chunks: chunks}
	require.NoError(t, r.Run(context.Background()))

	allNodes := state.Tree.AllNodes()
	// root + x + y = 3 nodes, 2 of which are discoveries
	require.Len(t, allNodes, 3)

	depth1 := state.Tree.NodesAtDepth(1)
	require.Len(t, depth1, 1)
	require.Equal(t, "x", depth1[0].Data.Path)

	depth2 := state.Tree.NodesAtDepth(2)
	require.Len(t, depth2, 1)
	require.Equal(t, "y", depth2[0].Data.Path)
}

func TestJoinURLExactlyOneSlash(t *testing.T) {
	require.Equal(t, "http://h/a", joinURL("http://h", "a"))
	require.Equal(t, "http://h/a", joinURL("http://h/", "a"))
}

// TestRecursiveCursorsCompleteAtEndOfDepth exercises the invariant from
// spec.md §8: for every url visited, sum(cursors[url]) == len(wordlist)
// once that parent's depth is complete.
func TestRecursiveCursorsCompleteAtEndOfDepth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	opts := &config.Options{
		URL:       srv.URL + "/",
		Wordlists: []string{"unused"},
		Depth:     1,
		Quiet:     true,
		Filters:   config.Filters{IncludeStatus: []int{200}},
	}
	opts.ApplyDefaults(2)

	state := NewState()
	state.Tree.Insert(tree.Data{URL: srv.URL + "/", Depth: 0, Path: ""}, nil)

	words := []string{"a", "b", "c", "d", "e"}
	chunks := wordlist.Chunk(words, 2)

	r := &Recursive{Opts: opts, State: state, Client: srv.Client(), Logger: logging.Noop(), Chunks: chunks}
	require.NoError(t, r.Run(context.Background()))

	sum := 0
	for i := range chunks {
		sum += state.Cursors.Get(srv.URL+"/", i)
	}
	require.Equal(t, len(words), sum)
}

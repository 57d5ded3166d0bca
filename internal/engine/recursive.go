package engine

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/cybertron10/fuzzwalk/internal/config"
	"github.com/cybertron10/fuzzwalk/internal/tree"
)

// Recursive implements the level-synchronous BFS expansion of
// spec.md §4.5.
type Recursive struct {
	Opts   *config.Options
	State  *State
	Client *http.Client
	Logger *zap.Logger
	Chunks [][]string // words pre-chunked into T contiguous slices
}

var _ Runner = (*Recursive)(nil)

// Run implements the state machine in spec.md §4.5:
//
//	while depth < max_depth:
//	  frontier = Tree.get_nodes_at_depth(depth)
//	  for each node n in frontier: spawn T workers advancing n's cursor
//	  await all workers
//	  depth += 1
//
// Parents at depth d are fully joined before any work at depth d+1
// begins — the depth barrier spec.md §5 requires.
func (r *Recursive) Run(ctx context.Context) error {
	maxDepth := r.Opts.Depth

	for r.State.Depth.Get() < maxDepth {
		depth := r.State.Depth.Get()
		frontier := r.State.Tree.NodesAtDepth(depth)

		if err := r.runLevel(ctx, frontier); err != nil {
			return err
		}

		r.State.Depth.Increment()
	}
	return nil
}

func (r *Recursive) runLevel(ctx context.Context, frontier []*tree.Node) error {
	var wg sync.WaitGroup
	errCh := make(chan error, len(frontier)*len(r.Chunks))

	for _, node := range frontier {
		node := node
		r.State.Cursors.GetOrInit(node.Data.URL, len(r.Chunks))

		for i, chunk := range r.Chunks {
			i, chunk := i, chunk
			wg.Add(1)
			go func() {
				defer wg.Done()
				errCh <- r.processChunk(ctx, chunk, node, i)
			}()
		}
	}

	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			return err
		}
	}
	return nil
}

// processChunk is one worker(n, chunk, i) from spec.md §4.5: it advances
// cursors[n.url][i] exactly once per processed word, including on
// transport errors, which is what makes resume precise.
func (r *Recursive) processChunk(ctx context.Context, chunk []string, parent *tree.Node, i int) error {
	pipeline := &Pipeline{Opts: r.Opts, Client: r.Client, Logger: r.Logger}
	throttle := NewThrottle(r.Opts.Throttle)
	depth := parent.Data.Depth

	for r.State.Cursors.Get(parent.Data.URL, i) < len(chunk) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		idx := r.State.Cursors.Get(parent.Data.URL, i)
		word := chunk[idx]
		candidateURL := joinURL(parent.Data.URL, word)

		outcome := pipeline.Execute(ctx, candidateURL, &depth, throttle)

		if outcome.Recorded {
			childDepth := parent.Data.Depth + 1
			_, inserted := r.State.Tree.InsertUnique(tree.Data{
				URL:        candidateURL,
				Depth:      childDepth,
				Path:       word,
				StatusCode: outcome.StatusCode,
				Extra:      outcome.Extra,
			}, parent)
			if !inserted && !r.Opts.Quiet {
				fmt.Printf("%s %s %s\n", warningMark(r.Opts), "Already in tree", candidateURL)
			}
		}

		// Cursor advance must occur exactly once per processed word,
		// unconditionally, per spec.md §4.5 — this is what makes
		// resume precise.
		r.State.Cursors.Increment(parent.Data.URL, i)
	}
	return nil
}

// joinURL composes a child URL from a parent URL and a word with exactly
// one "/" separator, per spec.md §4.5 worker description.
func joinURL(parentURL, word string) string {
	if strings.HasSuffix(parentURL, "/") {
		return parentURL + word
	}
	return parentURL + "/" + word
}

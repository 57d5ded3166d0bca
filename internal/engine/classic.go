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

// Classic implements the single-pass flat fuzzing strategy of
// spec.md §4.4.
type Classic struct {
	Opts   *config.Options
	State  *State
	Client *http.Client
	Logger *zap.Logger
	Words  []string
}

var _ Runner = (*Classic)(nil)

// generateURLs implements spec.md §4.4 step 1: let k = count(FUZZ_KEY in
// url_template). If permutations, produce all ordered k-permutations of
// the wordlist; otherwise k is treated as 1 and every occurrence of
// FUZZ_KEY is replaced with one word per URL.
func (c *Classic) generateURLs() []string {
	key := c.Opts.FuzzKey
	k := strings.Count(c.Opts.URL, key)

	if k == 0 {
		// Not an error: spec.md §4.4 edge case — the generated URL set
		// is the single template.
		return []string{c.Opts.URL}
	}

	if !c.Opts.Permutations {
		urls := make([]string, 0, len(c.Words))
		for _, w := range c.Words {
			urls = append(urls, strings.ReplaceAll(c.Opts.URL, key, w))
		}
		return urls
	}

	perms := permutations(c.Words, k)
	urls := make([]string, 0, len(perms))
	for _, p := range perms {
		u := c.Opts.URL
		for _, word := range p {
			u = strings.Replace(u, key, word, 1)
		}
		urls = append(urls, u)
	}
	return urls
}

// permutations returns every ordered k-permutation of words: exactly
// n!/(n-k)! sequences for n = len(words), matching spec.md §8's testable
// property for Classic with permutations=true.
func permutations(words []string, k int) [][]string {
	n := len(words)
	if k <= 0 || k > n {
		return nil
	}
	var out [][]string
	used := make([]bool, n)
	current := make([]string, 0, k)

	var rec func()
	rec = func() {
		if len(current) == k {
			cp := make([]string, k)
			copy(cp, current)
			out = append(out, cp)
			return
		}
		for i := 0; i < n; i++ {
			if used[i] {
				continue
			}
			used[i] = true
			current = append(current, words[i])
			rec()
			current = current[:len(current)-1]
			used[i] = false
		}
	}
	rec()
	return out
}

// Run implements Runner. Every discovered node is inserted as a direct
// child of the tree root at depth 0 (spec.md §4.4 step 3); the shared
// Tree lock makes concurrent inserts from different chunks safe without
// per-chunk uniqueness enforcement, which classic mode does not perform
// (spec.md §3).
func (c *Classic) Run(ctx context.Context) error {
	urls := c.generateURLs()

	root := c.State.Tree.Root()
	if root == nil {
		return fmt.Errorf("tree invariant violated: classic runner requires a pre-seeded root")
	}

	chunks := chunkURLs(urls, resolveThreads(c.Opts.Threads, len(urls)))

	var wg sync.WaitGroup
	errCh := make(chan error, len(chunks))

	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, chunk []string) {
			defer wg.Done()
			errCh <- c.processChunk(ctx, chunk, root)
			_ = i
		}(i, chunk)
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

func (c *Classic) processChunk(ctx context.Context, chunk []string, root *tree.Node) error {
	pipeline := &Pipeline{Opts: c.Opts, Client: c.Client, Logger: c.Logger}
	throttle := NewThrottle(c.Opts.Throttle)

	for _, u := range chunk {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		outcome := pipeline.Execute(ctx, u, nil, throttle)
		if !outcome.Recorded {
			continue
		}

		path := pathRelativeToRoot(root.Data.URL, u)
		c.State.Tree.Insert(tree.Data{
			URL:        u,
			Depth:      0,
			Path:       path,
			StatusCode: outcome.StatusCode,
			Extra:      outcome.Extra,
		}, root)
	}
	return nil
}

// chunkURLs splits urls into exactly threads contiguous, non-empty
// chunks, distributing any remainder evenly (spec.md §9 open question,
// resolved in SPEC_FULL.md).
func chunkURLs(urls []string, threads int) [][]string {
	if threads <= 0 {
		threads = 1
	}
	if threads > len(urls) {
		threads = len(urls)
	}
	if threads == 0 {
		return nil
	}
	base := len(urls) / threads
	remainder := len(urls) % threads

	chunks := make([][]string, 0, threads)
	idx := 0
	for i := 0; i < threads; i++ {
		size := base
		if i < remainder {
			size++
		}
		chunks = append(chunks, urls[idx:idx+size])
		idx += size
	}
	return chunks
}

// resolveThreads clamps the configured thread count to [1, n] per
// spec.md §3's chunking rule.
func resolveThreads(configured, n int) int {
	t := configured
	if t < 1 {
		t = 1
	}
	if t > n {
		t = n
	}
	if t < 1 {
		t = 1
	}
	return t
}

package engine

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/cybertron10/fuzzwalk/internal/config"
	"github.com/cybertron10/fuzzwalk/internal/wordlist"
)

// Runner is the common operation shared by both crawl strategies.
// Per spec.md §9, this is modeled as a tagged variant rather than an
// open polymorphism hierarchy: Kind picks which concrete runner New
// builds, and callers only ever see the Runner interface.
type Runner interface {
	Run(ctx context.Context) error
}

// Kind selects a crawl strategy.
type Kind int

const (
	KindClassic Kind = iota
	KindRecursive
)

// New builds the concrete Runner for kind, pre-chunking words into
// T = clamp(opts.Threads, 1, len(words)) contiguous slices per
// spec.md §3.
func New(kind Kind, opts *config.Options, state *State, client *http.Client, logger *zap.Logger, words []string) Runner {
	threads := resolveThreads(opts.Threads, len(words))
	chunks := wordlist.Chunk(words, threads)

	switch kind {
	case KindRecursive:
		return &Recursive{Opts: opts, State: state, Client: client, Logger: logger, Chunks: chunks}
	default:
		return &Classic{Opts: opts, State: state, Client: client, Logger: logger, Words: words}
	}
}

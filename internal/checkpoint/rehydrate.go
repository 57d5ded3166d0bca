package checkpoint

import (
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/cybertron10/fuzzwalk/internal/config"
	"github.com/cybertron10/fuzzwalk/internal/engine"
	"github.com/cybertron10/fuzzwalk/internal/tree"
)

// Rehydrate implements spec.md §4.6's startup responsibility: if
// --resume is set and a save file is present and its root URL matches
// the configured URL, install the saved tree and depth; install the
// saved cursors only if the wordlist checksum still matches (otherwise
// cursors reset to zero while tree and depth are preserved, and a
// warning is emitted). Any other failure (missing file, parse error,
// URL mismatch) is non-fatal and falls through to a fresh run.
func Rehydrate(opts *config.Options, logger *zap.Logger, checksum string) (state *engine.State, resumed bool) {
	if !opts.Resume {
		return seedFreshState(opts), false
	}

	rec, err := Load(opts.SaveFile)
	if err != nil {
		logger.Warn("no usable save file, starting fresh", zap.String("path", opts.SaveFile), zap.Error(err))
		return seedFreshState(opts), false
	}
	if rec.Tree == nil || rec.Tree.Data.URL != opts.URL {
		logger.Warn("save file URL does not match configured URL, starting fresh")
		return seedFreshState(opts), false
	}

	state = engine.NewState()
	state.Tree.SetRoot(rec.Tree)
	state.Depth.Set(rec.Depth)
	logger.Info("found saved state", zap.Int("depth", rec.Depth))

	if rec.WordlistChecksum == checksum {
		state.Cursors.Restore(rec.Indexes)
	} else {
		logger.Warn("wordlists have changed, starting cursors from scratch", zap.Int("depth", rec.Depth))
	}
	return state, true
}

func seedFreshState(opts *config.Options) *engine.State {
	state := engine.NewState()
	path := ""
	if u, err := url.Parse(opts.URL); err == nil {
		path = strings.TrimSuffix(u.Path, "/")
	}
	state.Tree.Insert(tree.Data{
		URL:        opts.URL,
		Depth:      0,
		Path:       path,
		StatusCode: 0,
		Extra:      []tree.Addition{},
	}, nil)
	return state
}

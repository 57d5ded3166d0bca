package engine

import (
	"github.com/cybertron10/fuzzwalk/internal/tree"
)

// State is the shared mutable state spec.md §3/§5 describe: the Tree and
// the cursor map, plus the recursive depth counter. It is created once
// per run and handed to whichever Runner the CLI selects, and is also
// what the checkpoint coordinator serializes and rehydrates.
type State struct {
	Tree    *tree.Tree
	Depth   *DepthCounter
	Cursors *CursorMap
}

// NewState returns a fresh, empty State.
func NewState() *State {
	return &State{
		Tree:    tree.New(),
		Depth:   NewDepthCounter(0),
		Cursors: NewCursorMap(),
	}
}

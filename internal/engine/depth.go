package engine

import "sync"

// DepthCounter is the recursive runner's BFS depth, guarded by one
// exclusive lock per spec.md §5: "written only by the recursive
// coordinator after a barrier."
type DepthCounter struct {
	mu    sync.Mutex
	depth int
}

// NewDepthCounter returns a counter starting at start.
func NewDepthCounter(start int) *DepthCounter {
	return &DepthCounter{depth: start}
}

// Get returns the current depth.
func (d *DepthCounter) Get() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.depth
}

// Set overwrites the depth. Used only by checkpoint rehydration.
func (d *DepthCounter) Set(v int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.depth = v
}

// Increment advances the depth by one, called by the recursive
// coordinator only after every worker at the current depth has joined.
func (d *DepthCounter) Increment() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.depth++
}

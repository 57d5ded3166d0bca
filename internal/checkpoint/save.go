// Package checkpoint implements the signal-driven save/resume protocol
// of spec.md §4.6: atomic serialization of {tree, depth, checksum,
// cursors} on interrupt, and rehydration of that state on startup.
package checkpoint

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/cybertron10/fuzzwalk/internal/engine"
	"github.com/cybertron10/fuzzwalk/internal/tree"
)

// Record is the save-file format, spec.md §6: a single JSON document
// with exactly these four fields.
type Record struct {
	Tree             *tree.Node       `json:"tree"`
	Depth            int              `json:"depth"`
	WordlistChecksum string           `json:"wordlist_checksum"`
	Indexes          map[string][]int `json:"indexes"`
}

// BuildRecord snapshots live state into a Record ready for
// serialization.
func BuildRecord(state *engine.State, checksum string) *Record {
	return &Record{
		Tree:             state.Tree.Root(),
		Depth:            state.Depth.Get(),
		WordlistChecksum: checksum,
		Indexes:          state.Cursors.Snapshot(),
	}
}

// Save atomically (create-temp, write, flush, rename) writes r to path.
// spec.md §9 flags the original's silent-drop of serialization errors as
// a bug; here every failure is returned to the caller instead.
func Save(path string, r *Record) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("serializing save record: %w", err)
	}

	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating temp save file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing save file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("flushing save file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing save file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming save file into place: %w", err)
	}
	return nil
}

// Load reads and parses a save record from path.
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing save file %q: %w", path, err)
	}
	return &r, nil
}

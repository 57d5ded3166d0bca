package checkpoint

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"go.uber.org/zap"

	"github.com/cybertron10/fuzzwalk/internal/config"
	"github.com/cybertron10/fuzzwalk/internal/engine"
)

// Coordinator installs the interrupt handler spec.md §4.6 describes and
// orchestrates the race between normal completion and a signal-driven
// save, per spec.md §4.6 "Race with normal completion".
type Coordinator struct {
	Opts     *config.Options
	Logger   *zap.Logger
	Checksum string

	aborted atomic.Bool
}

// Aborted reports whether an interrupt was received during the last Run.
func (c *Coordinator) Aborted() bool { return c.aborted.Load() }

// Run executes fn under a context that is cancelled on the first SIGINT.
// On interrupt, fn's context is cancelled (dropping every worker at its
// next suspension point, per spec.md §5), a checkpoint is written unless
// --no-save is set, and Run does not return until that save attempt has
// completed — "the main task awaits either worker completion or token
// fire, and on fire additionally awaits the save-complete signal before
// exit."
func (c *Coordinator) Run(ctx context.Context, state *engine.State, fn func(ctx context.Context) error) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	saveDone := make(chan error, 1)

	go func() {
		select {
		case <-sigCh:
			fmt.Println("Aborting...")
			c.aborted.Store(true)
			cancel()
			saveDone <- c.saveOnInterrupt(state)
		case <-runCtx.Done():
			// fn finished on its own; nothing to save here.
		}
	}()

	runErr := fn(runCtx)

	if c.aborted.Load() {
		saveErr := <-saveDone
		if saveErr != nil {
			c.Logger.Error("failed to save checkpoint", zap.Error(saveErr))
			return saveErr
		}
		return runErr
	}
	return runErr
}

func (c *Coordinator) saveOnInterrupt(state *engine.State) error {
	if c.Opts.NoSave {
		return nil
	}
	record := BuildRecord(state, c.Checksum)
	if err := Save(c.Opts.SaveFile, record); err != nil {
		return err
	}
	fmt.Printf("Saved state to %s\n", c.Opts.SaveFile)
	return nil
}

// RemoveIfDefault deletes the save file after a clean run iff it is the
// default path and this run resumed from it (hadSaved), per spec.md §3
// Save Record lifecycle. A save file that was not loaded is left alone.
func RemoveIfDefault(opts *config.Options, hadSaved bool) {
	if hadSaved && opts.SaveFile == config.DefaultSaveFile {
		_ = os.Remove(opts.SaveFile)
	}
}

// Package engine implements the shared per-response pipeline (spec.md
// §4.3) and the two crawl strategies built on top of it (§4.4, §4.5).
package engine

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/cybertron10/fuzzwalk/internal/config"
	"github.com/cybertron10/fuzzwalk/internal/httpx"
	"github.com/cybertron10/fuzzwalk/internal/tree"
)

// Outcome is what the shared pipeline learned about one candidate URL.
// The caller (classic or recursive runner) decides where in the Tree —
// if anywhere — this becomes a node, since that decision depends on
// mode-specific parent/uniqueness rules spec.md §4.4/§4.5 spell out
// separately.
type Outcome struct {
	Recorded   bool // true if this should become a Tree node
	ConnErr    bool // true if Recorded because of a synthetic connect-error entry
	StatusCode uint16
	Extra      []tree.Addition
	ElapsedMS  int64
}

// Throttle is a per-worker limiter. Each worker in a chunk owns exactly
// one, matching spec.md §4.3/§5: "Throttle is per-worker, not global;
// total system rate is approximately T × throttle requests per second."
// golang.org/x/time/rate's token bucket (burst 1) reproduces the
// original's "sleep the remainder of the target interval" behavior while
// also catching back up automatically if a request overruns its slot.
type Throttle struct {
	limiter *rate.Limiter
}

// NewThrottle returns a no-op throttle when reqPerSec <= 0.
func NewThrottle(reqPerSec int) *Throttle {
	if reqPerSec <= 0 {
		return &Throttle{}
	}
	return &Throttle{limiter: rate.NewLimiter(rate.Limit(reqPerSec), 1)}
}

// Wait blocks until the next request in this worker's schedule is due.
func (t *Throttle) Wait(ctx context.Context) {
	if t.limiter == nil {
		return
	}
	_ = t.limiter.Wait(ctx)
}

// Pipeline bundles the collaborators every worker needs to execute the
// shared send -> throttle -> filter -> record flow.
type Pipeline struct {
	Opts   *config.Options
	Client *http.Client
	Logger *zap.Logger
}

// Execute runs spec.md §4.3 steps 1-5 for a single candidate URL.
// depth is nil in classic mode; set to the current BFS depth in
// recursive mode, so per-depth filter overrides apply.
func (p *Pipeline) Execute(ctx context.Context, candidateURL string, depth *int, throttle *Throttle) Outcome {
	sender, err := httpx.GetSender(ctx, p.Opts, candidateURL, p.Client)
	if err != nil {
		httpx.PrintError(p.Opts, candidateURL, err)
		return Outcome{}
	}

	t0 := time.Now()
	resp, err := sender.Send()
	throttle.Wait(ctx)

	if err != nil {
		return p.handleError(candidateURL, err, t0)
	}
	defer resp.Body.Close()
	return p.handleResponse(candidateURL, resp, depth, t0)
}

func (p *Pipeline) handleResponse(candidateURL string, resp *http.Response, depth *int, t0 time.Time) Outcome {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		httpx.PrintError(p.Opts, candidateURL, err)
		return Outcome{}
	}
	text := string(body) // Go's UTF-8 decoding is already lossy-safe via rune replacement on %s/range
	elapsed := time.Since(t0)
	status := resp.StatusCode

	if !httpx.Check(p.Opts, text, status, elapsed.Milliseconds(), depth) {
		return Outcome{}
	}

	additions := httpx.ParseShow(p.Opts, text, resp)
	p.printHit(candidateURL, status, elapsed, additions)

	return Outcome{
		Recorded:   true,
		StatusCode: uint16(status),
		Extra:      additions,
		ElapsedMS:  elapsed.Milliseconds(),
	}
}

func (p *Pipeline) handleError(candidateURL string, err error, t0 time.Time) Outcome {
	if p.Opts.HitConnectionErrors && isConnectError(err) {
		elapsed := time.Since(t0)
		if !p.Opts.Quiet {
			fmt.Printf("%s %s %s %s\n", successMark(p.Opts), "Connection error", candidateURL, dim(fmt.Sprintf("%dms", elapsed.Milliseconds()), p.Opts))
		}
		return Outcome{Recorded: true, ConnErr: true, StatusCode: 0, Extra: []tree.Addition{}, ElapsedMS: elapsed.Milliseconds()}
	}
	httpx.PrintError(p.Opts, candidateURL, err)
	return Outcome{}
}

func (p *Pipeline) printHit(candidateURL string, status int, elapsed time.Duration, additions []tree.Addition) {
	if p.Opts.Quiet {
		return
	}
	mark := successMark(p.Opts)
	switch {
	case status >= 300 && status < 400:
		mark = warningMark(p.Opts)
	case status >= 400:
		mark = errorMark(p.Opts)
	}
	extra := ""
	for _, a := range additions {
		extra += fmt.Sprintf(" | %s: %s", a.Key, a.Value)
	}
	fmt.Printf("%s %d %s %s%s\n", mark, status, candidateURL, dim(fmt.Sprintf("%dms", elapsed.Milliseconds()), p.Opts), extra)
}

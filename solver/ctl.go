package solver

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/coresat/cdclt/lit"
)

// Ctl is the asynchronous control handle spec.md's concurrency model is
// supplemented with (SPEC_FULL.md §5): it wraps one Solver so a caller can
// run Solve in the background, wait for its Result, and cancel it early;
// Ctl has no stats accessor of its own. The engine itself never spawns a goroutine or blocks on I/O; Ctl
// is a caller-side convenience with exactly one goroutine ever inside the
// wrapped Solver at a time (grounded on the pack's go-air-gini sibling
// example's GoSolve/Solve split).
type Ctl struct {
	s *Solver

	mu    sync.Mutex // serializes GoSolve/Wait against each other
	group *errgroup.Group

	cancel  int32 // atomic flag, read through a rate limiter in onProgress
	limiter *rate.Limiter

	result Result
}

// NewCtl wraps s. limitHz bounds how often the background onProgress
// check reads the cancellation flag, so a tight BCP loop polling
// onProgress every round doesn't pay for an atomic load every time
// (limitHz <= 0 defaults to 200Hz).
func NewCtl(s *Solver, limitHz float64) *Ctl {
	if limitHz <= 0 {
		limitHz = 200
	}
	return &Ctl{s: s, limiter: rate.NewLimiter(rate.Limit(limitHz), 1)}
}

// GoSolve starts Solve(assumptions, check) on a background goroutine and
// returns immediately; call Wait to block for its Result. Calling GoSolve
// again before the previous run's Wait has returned blocks until it does.
func (c *Ctl) GoSolve(assumptions []lit.Atom, check CheckLevel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.group != nil {
		c.group.Wait()
	}
	atomic.StoreInt32(&c.cancel, 0)

	g, _ := errgroup.WithContext(context.Background())
	c.group = g
	g.Go(func() error {
		c.result = c.s.Solve(assumptions, c.onProgress, check)
		return nil
	})
}

func (c *Ctl) onProgress() bool {
	if !c.limiter.Allow() {
		return false
	}
	return atomic.LoadInt32(&c.cancel) == 1
}

// Wait blocks until the in-flight GoSolve finishes and returns its Result.
// Calling Wait before any GoSolve returns the zero Result; once a run has
// finished, Wait returns that run's Result.
func (c *Ctl) Wait() Result {
	c.mu.Lock()
	g := c.group
	c.mu.Unlock()
	if g != nil {
		g.Wait()
	}
	return c.result
}

// Cancel requests the in-flight Solve return ResultUnknown{ReasonTimeout}
// at its next throttled progress check. A no-op if nothing is running.
func (c *Ctl) Cancel() { atomic.StoreInt32(&c.cancel, 1) }

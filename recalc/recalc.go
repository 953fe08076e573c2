// Package recalc debounces pro-forma recalculations while assumptions are
// being edited.
//
// A Recalculator waits for edits to settle for a fixed delay before it
// computes, and only ever publishes the result of the latest submitted
// assumptions: a new submission restarts the delay and cancels any
// computation still running for an older one.
package recalc

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/etnz/proforma"
)

// DefaultDelay is the time edits must settle before a recalculation starts.
const DefaultDelay = 300 * time.Millisecond

var (
	// ErrClosed is returned by a closed Recalculator.
	ErrClosed = errors.New("recalculator is closed")
	// ErrIdle is returned by Wait when nothing was ever submitted.
	ErrIdle = errors.New("nothing submitted")
)

// State is the stage of the latest submission.
type State int

const (
	Idle       State = iota // nothing submitted
	Debouncing              // waiting for edits to settle
	Computing               // the computation is running
	Done                    // the result of the latest submission is available
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Debouncing:
		return "debouncing"
	case Computing:
		return "computing"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ComputeFunc computes the results of assumptions. It should return early
// with ctx.Err() when ctx is cancelled.
type ComputeFunc func(ctx context.Context, a proforma.PropertyAssumptions) (proforma.ProFormaResults, error)

// Calculate is the ComputeFunc running proforma.Calculate.
func Calculate(ctx context.Context, a proforma.PropertyAssumptions) (proforma.ProFormaResults, error) {
	if err := ctx.Err(); err != nil {
		return proforma.ProFormaResults{}, err
	}
	return proforma.Calculate(a), nil
}

// Result is a published computation.
type Result struct {
	Generation uint64 // of the submission it was computed from
	Results    proforma.ProFormaResults
	Err        error
}

// Recalculator debounces and runs computations. Its methods are safe for
// concurrent use.
type Recalculator struct {
	delay   time.Duration
	compute ComputeFunc
	logger  *log.Logger // nil disables logging

	mu        sync.Mutex
	state     State
	gen       uint64
	timer     *time.Timer
	cancel    context.CancelFunc // of the computation in flight
	result    Result
	ready     chan struct{} // closed when the latest generation is published
	published bool
	closed    bool
}

// New returns a Recalculator running compute once edits settled for delay.
// A nil compute runs proforma.Calculate, a non positive delay is
// DefaultDelay. logger receives a line for every superseded computation; it
// can be nil.
func New(delay time.Duration, compute ComputeFunc, logger *log.Logger) *Recalculator {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if compute == nil {
		compute = Calculate
	}
	return &Recalculator{
		delay:   delay,
		compute: compute,
		logger:  logger,
		ready:   make(chan struct{}),
	}
}

func (r *Recalculator) logf(format string, args ...any) {
	if r.logger != nil {
		r.logger.Printf(format, args...)
	}
}

// Submit schedules a computation of a and returns its generation. Any
// pending or running computation of an older generation is abandoned.
func (r *Recalculator) Submit(a proforma.PropertyAssumptions) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return 0, ErrClosed
	}

	r.gen++
	g := r.gen
	if r.timer != nil {
		r.timer.Stop()
	}
	if r.cancel != nil {
		r.logf("recalc: generation %d superseded by %d while computing", g-1, g)
		r.cancel()
		r.cancel = nil
	}
	if r.published {
		r.ready = make(chan struct{})
		r.published = false
	}
	r.state = Debouncing
	r.timer = time.AfterFunc(r.delay, func() { r.run(g, a) })
	return g, nil
}

// run computes generation g, unless it has been superseded meanwhile.
func (r *Recalculator) run(g uint64, a proforma.PropertyAssumptions) {
	r.mu.Lock()
	if r.closed || g != r.gen {
		r.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.state = Computing
	r.mu.Unlock()

	res, err := r.compute(ctx, a)
	cancel()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || g != r.gen {
		return
	}
	r.cancel = nil
	r.result = Result{Generation: g, Results: res, Err: err}
	r.state = Done
	r.published = true
	close(r.ready)
}

// State returns the stage of the latest submission.
func (r *Recalculator) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Wait blocks until the result of the latest submission is published and
// returns it. Submissions made while waiting extend the wait.
func (r *Recalculator) Wait(ctx context.Context) (Result, error) {
	for {
		r.mu.Lock()
		switch {
		case r.closed:
			r.mu.Unlock()
			return Result{}, ErrClosed
		case r.gen == 0:
			r.mu.Unlock()
			return Result{}, ErrIdle
		case r.published && r.result.Generation == r.gen:
			res := r.result
			r.mu.Unlock()
			return res, nil
		}
		ready := r.ready
		r.mu.Unlock()

		select {
		case <-ready:
		case <-ctx.Done():
			return Result{}, ctx.Err()
		}
	}
}

// Close abandons any pending computation and releases waiters. Submit and
// Wait fail afterwards.
func (r *Recalculator) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	if r.timer != nil {
		r.timer.Stop()
	}
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	if !r.published {
		close(r.ready)
	}
	r.state = Idle
}

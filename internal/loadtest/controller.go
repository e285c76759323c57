package loadtest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// State is the controller's run state
type State int

const (
	StateIdle State = iota
	StateRunning
	StateComplete
)

// String returns the display label for a state
func (s State) String() string {
	switch s {
	case StateRunning:
		return "RUNNING"
	case StateComplete:
		return "COMPLETE"
	default:
		return "IDLE"
	}
}

var (
	// ErrNoTargetURL rejects a run started without a selected endpoint
	ErrNoTargetURL = errors.New("no target URL selected")

	// ErrRunInProgress rejects a second concurrent run on one controller
	ErrRunInProgress = errors.New("a run is already in progress")
)

// Controller orchestrates one load test run end to end: it resets the
// counters, starts the progress reporter, blocks on the dispatcher, then
// always finalizes (stop reporter, compute metrics, persist) even when
// dispatch failed. A failed run never leaves the controller stuck in
// RUNNING.
type Controller struct {
	dispatcher *Dispatcher
	manager    *Manager // optional; nil disables run persistence
	interval   time.Duration
	counters   *Counters

	mu    sync.Mutex
	state State
}

// NewController creates a controller. manager may be nil when run history
// persistence is not wanted (tests, one-shot CLI with no config dir).
func NewController(dispatcher *Dispatcher, manager *Manager) *Controller {
	return &Controller{
		dispatcher: dispatcher,
		manager:    manager,
		interval:   DefaultReportInterval,
		counters:   NewCounters(),
		state:      StateIdle,
	}
}

// SetReportInterval overrides the reporter polling interval
func (c *Controller) SetReportInterval(interval time.Duration) {
	if interval > 0 {
		c.interval = interval
	}
}

// State returns the current run state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Counters exposes the shared counters for display reads
func (c *Controller) Counters() *Counters {
	return c.counters
}

// Dispatcher exposes the dispatcher for live worker-count reads
func (c *Controller) Dispatcher() *Dispatcher {
	return c.dispatcher
}

// Run executes one load test. onProgress, if non-nil, receives periodic
// counter snapshots while the dispatcher runs. The returned Result reflects
// the final authoritative counter read taken after dispatch completed and
// the reporter stopped. A dispatch error is returned together with the
// finalized result.
func (c *Controller) Run(ctx context.Context, cfg Config, onProgress func(Snapshot)) (*Result, error) {
	// Validation failures reject the start without any state change
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.state == StateRunning {
		c.mu.Unlock()
		return nil, ErrRunInProgress
	}
	c.state = StateRunning
	c.mu.Unlock()

	c.counters.Reset()
	start := time.Now()

	run := &Run{
		URL:           cfg.URL,
		TotalRequests: cfg.TotalRequests,
		Workers:       cfg.Workers,
		StartedAt:     start,
		Status:        "running",
	}
	if c.manager != nil {
		if err := c.manager.CreateRun(run); err != nil {
			c.setState(StateIdle)
			return nil, fmt.Errorf("failed to create run record: %w", err)
		}
	}

	reporter := StartReporter(c.interval, c.counters, onProgress)
	dispatchErr := c.dispatcher.Dispatch(ctx, cfg, c.counters)

	// Finalization runs regardless of dispatch outcome
	reporter.Stop()
	elapsed := time.Since(start)
	result := NewResult(c.counters.Snapshot(), elapsed)
	c.setState(StateComplete)

	c.finalizeRun(run, result, dispatchErr)

	return result, dispatchErr
}

func (c *Controller) setState(state State) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
}

// finalizeRun completes the persisted run record
func (c *Controller) finalizeRun(run *Run, result *Result, dispatchErr error) {
	now := time.Now()
	run.CompletedAt = &now
	run.SuccessCount = result.Success
	run.FailureCount = result.Failure
	run.ElapsedMs = result.Elapsed.Milliseconds()
	run.TPM = result.TPM
	if dispatchErr != nil {
		run.Status = "failed"
		run.ErrorMessage = dispatchErr.Error()
	} else {
		run.Status = "completed"
	}

	if c.manager != nil {
		if err := c.manager.UpdateRun(run); err != nil {
			fmt.Printf("Failed to update run record: %v\n", err)
		}
	}
}

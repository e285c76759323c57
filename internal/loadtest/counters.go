package loadtest

import "sync/atomic"

// Counters holds the shared success/failure tallies for one run. Workers
// increment them concurrently; the reporter and controller read them. Atomic
// counters keep the final totals exact under true parallelism; intermediate
// snapshots are best-effort.
type Counters struct {
	success atomic.Int64
	failure atomic.Int64
}

// Snapshot is a point-in-time read of the counters
type Snapshot struct {
	Success int64
	Failure int64
}

// Total returns success + failure
func (s Snapshot) Total() int64 {
	return s.Success + s.Failure
}

// NewCounters creates a zeroed counter pair
func NewCounters() *Counters {
	return &Counters{}
}

// AddSuccess increments the success counter
func (c *Counters) AddSuccess() {
	c.success.Add(1)
}

// AddFailure increments the failure counter
func (c *Counters) AddFailure() {
	c.failure.Add(1)
}

// Reset zeroes both counters at the start of a new run
func (c *Counters) Reset() {
	c.success.Store(0)
	c.failure.Store(0)
}

// Snapshot reads both counters. The two loads are not transactional with
// respect to concurrent increments; after dispatch completes the snapshot
// is exact.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		Success: c.success.Load(),
		Failure: c.failure.Load(),
	}
}

package loadtest

import "time"

// Result holds the final metrics of one completed run
type Result struct {
	Success int64
	Failure int64
	Elapsed time.Duration
	TPM     float64
}

// Total returns the number of completed requests
func (r *Result) Total() int64 {
	return r.Success + r.Failure
}

// ComputeTPM returns transactions per minute for the given totals. Elapsed
// time is floored to one minute when non-positive.
func ComputeTPM(total int64, elapsed time.Duration) float64 {
	minutes := elapsed.Minutes()
	if minutes <= 0 {
		minutes = 1
	}
	return float64(total) / minutes
}

// NewResult builds a Result from the final counter snapshot and elapsed time
func NewResult(snapshot Snapshot, elapsed time.Duration) *Result {
	return &Result{
		Success: snapshot.Success,
		Failure: snapshot.Failure,
		Elapsed: elapsed,
		TPM:     ComputeTPM(snapshot.Total(), elapsed),
	}
}

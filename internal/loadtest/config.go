package loadtest

import (
	"fmt"
	"time"
)

// Config describes one load test run. Immutable for the run's duration.
type Config struct {
	URL               string
	TotalRequests     int
	Workers           int
	RequestTimeoutSec int // Timeout for individual requests (default: 5s)
}

// Run represents a load test run record
type Run struct {
	ID            int64
	URL           string
	TotalRequests int
	Workers       int
	StartedAt     time.Time
	CompletedAt   *time.Time
	Status        string // "running", "completed", "failed"
	SuccessCount  int64
	FailureCount  int64
	ElapsedMs     int64
	TPM           float64
	ErrorMessage  string
}

// Validate validates the run configuration
func (c *Config) Validate() error {
	if c.URL == "" {
		return ErrNoTargetURL
	}
	if c.TotalRequests <= 0 {
		return fmt.Errorf("total requests must be greater than 0")
	}
	if c.TotalRequests > 1000000 {
		return fmt.Errorf("total requests cannot exceed 1,000,000")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("worker count must be greater than 0")
	}
	if c.Workers > 1000 {
		return fmt.Errorf("worker count cannot exceed 1000")
	}
	if c.RequestTimeoutSec < 0 {
		return fmt.Errorf("request timeout cannot be negative")
	}
	return nil
}

// GetRequestTimeout returns the per-request timeout as time.Duration
func (c *Config) GetRequestTimeout() time.Duration {
	if c.RequestTimeoutSec == 0 {
		return DefaultRequestTimeout
	}
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

// IsRunning returns true if the run is currently in progress
func (r *Run) IsRunning() bool {
	return r.Status == "running"
}

// IsCompleted returns true if the run has finished
func (r *Run) IsCompleted() bool {
	return r.Status == "completed" || r.Status == "failed"
}

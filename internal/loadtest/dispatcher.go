package loadtest

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

const (
	// DefaultRequestTimeout bounds each individual GET request
	DefaultRequestTimeout = 5 * time.Second

	// HTTP client configuration timeouts
	TCPDialTimeout        = 5 * time.Second
	TCPKeepAliveInterval  = 30 * time.Second
	TLSHandshakeTimeout   = 5 * time.Second
	IdleConnTimeout       = 90 * time.Second
	ExpectContinueTimeout = 1 * time.Second
)

// Dispatcher fans a fixed number of GET requests out over a bounded worker
// pool and classifies each completion into the shared counters. A response
// status in [200, 400) counts as success; any other status or any transport
// error counts as failure. Failures are never retried and never abort the
// batch.
type Dispatcher struct {
	activeWorkers atomic.Int32
}

// NewDispatcher creates a dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// ActiveWorkers returns the number of workers currently executing a request
func (d *Dispatcher) ActiveWorkers() int {
	return int(d.activeWorkers.Load())
}

// Dispatch blocks until all cfg.TotalRequests requests against cfg.URL have
// completed. Exactly cfg.Workers goroutines execute requests concurrently.
// Only pool setup problems return an error; per-request failures are counted
// in counters and swallowed.
func (d *Dispatcher) Dispatch(ctx context.Context, cfg Config, counters *Counters) error {
	if cfg.Workers <= 0 {
		return fmt.Errorf("worker count must be greater than 0")
	}
	if cfg.TotalRequests <= 0 {
		return fmt.Errorf("total requests must be greater than 0")
	}
	if counters == nil {
		return fmt.Errorf("counters are required")
	}

	client := buildHTTPClient(cfg)
	defer client.CloseIdleConnections()

	tasks := make(chan struct{}, cfg.Workers)

	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go d.worker(ctx, client, cfg.URL, tasks, counters, &wg)
	}

	for i := 0; i < cfg.TotalRequests; i++ {
		tasks <- struct{}{}
	}
	close(tasks)

	wg.Wait()
	return nil
}

// worker executes queued requests until the task channel is drained
func (d *Dispatcher) worker(ctx context.Context, client *http.Client, url string, tasks <-chan struct{}, counters *Counters, wg *sync.WaitGroup) {
	defer wg.Done()

	for range tasks {
		d.activeWorkers.Add(1)
		d.executeRequest(ctx, client, url, counters)
		d.activeWorkers.Add(-1)
	}
}

// executeRequest performs one GET and updates the counters
func (d *Dispatcher) executeRequest(ctx context.Context, client *http.Client, url string, counters *Counters) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		counters.AddFailure()
		return
	}

	resp, err := client.Do(req)
	if err != nil {
		// Timeout, connection refused, DNS failure: all count the same
		counters.AddFailure()
		return
	}

	// Drain so the connection can be reused
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusBadRequest {
		counters.AddSuccess()
	} else {
		counters.AddFailure()
	}
}

// buildHTTPClient creates a client sized to the run's worker pool, with
// connection pooling so workers reuse sockets between requests
func buildHTTPClient(cfg Config) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        cfg.Workers,
		MaxIdleConnsPerHost: cfg.Workers,
		MaxConnsPerHost:     cfg.Workers * 2,
		IdleConnTimeout:     IdleConnTimeout,
		ForceAttemptHTTP2:   true,

		DialContext: (&net.Dialer{
			Timeout:   TCPDialTimeout,
			KeepAlive: TCPKeepAliveInterval,
		}).DialContext,

		TLSHandshakeTimeout:   TLSHandshakeTimeout,
		ResponseHeaderTimeout: cfg.GetRequestTimeout(),
		ExpectContinueTimeout: ExpectContinueTimeout,
	}

	return &http.Client{
		Timeout:   cfg.GetRequestTimeout(),
		Transport: transport,
	}
}

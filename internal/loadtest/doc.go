/*
Package loadtest implements the concurrent request dispatch and counting
engine behind the load tester.

# Architecture

Four pieces cooperate on a run:

 1. Counters (counters.go): atomic success/failure tallies shared by the
    workers, the reporter, and the controller
 2. Dispatcher (dispatcher.go): bounded worker pool issuing GET requests
 3. Reporter (reporter.go): periodic counter snapshots for display
 4. Controller (controller.go): the IDLE -> RUNNING -> COMPLETE state machine
    tying them together

The Manager (manager.go) persists one row per run to SQLite.

# Dispatch design

The Dispatcher uses a worker pool pattern:
  - Exactly Workers goroutines, fed by an unbuffered-ish task channel
  - One shared HTTP client with a pool sized to the worker count
  - A 5 second per-request timeout (configurable per run)
  - Status codes in [200, 400) count as success, everything else as failure;
    transport errors count as failure with no distinction of cause

Dispatch blocks its caller until every request has completed. Individual
request failures are counted and swallowed; only pool setup problems return
an error.

# Ordering guarantees

None between individual requests. The controller guarantees only
start-reporter-before-dispatch, stop-reporter-after-dispatch, and a final
authoritative counter read after both, so the terminal report shows exact
totals even though periodic snapshots may lag.

# Example Usage

	controller := NewController(NewDispatcher(), manager)
	result, err := controller.Run(ctx, Config{
		URL:           "http://home.dev.com/api/flask-test/v1/info",
		TotalRequests: 1000,
		Workers:       10,
	}, func(s Snapshot) {
		fmt.Printf("success=%d failure=%d\n", s.Success, s.Failure)
	})
	if err != nil {
		return err
	}
	fmt.Printf("%d requests in %s (%.1f tpm)\n", result.Total(), result.Elapsed, result.TPM)
*/
package loadtest

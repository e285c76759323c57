package loadtest

import (
	"sync"
	"time"
)

// DefaultReportInterval is how often the reporter snapshots the counters
const DefaultReportInterval = 100 * time.Millisecond

// Reporter periodically snapshots the run counters and hands them to a
// display callback. It only reads; it never slows the dispatcher. Stop joins
// the polling goroutine, after which the caller takes one final authoritative
// counter read so the terminal report is exact rather than a stale snapshot.
type Reporter struct {
	interval time.Duration
	counters *Counters
	fn       func(Snapshot)

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// StartReporter starts a reporter polling counters every interval. fn is
// invoked on the reporter's goroutine; it must be safe to call from there.
func StartReporter(interval time.Duration, counters *Counters, fn func(Snapshot)) *Reporter {
	if interval <= 0 {
		interval = DefaultReportInterval
	}
	if fn == nil {
		fn = func(Snapshot) {}
	}

	r := &Reporter{
		interval: interval,
		counters: counters,
		fn:       fn,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	go r.loop()
	return r
}

// loop wakes every interval until stopped
func (r *Reporter) loop() {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.fn(r.counters.Snapshot())
		}
	}
}

// Stop signals the reporter and waits for its goroutine to exit. The
// reporter observes the signal within one polling interval. Safe to call
// more than once.
func (r *Reporter) Stop() {
	r.stopOnce.Do(func() {
		close(r.stop)
	})
	<-r.done
}

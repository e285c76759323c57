// Package cli implements the headless command surface: one-shot load test
// runs, endpoint listing, and run history, without the TUI.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"golang.org/x/sync/errgroup"

	"github.com/jaysuzi5/api-load-tester/internal/config"
	"github.com/jaysuzi5/api-load-tester/internal/discovery"
	"github.com/jaysuzi5/api-load-tester/internal/loadtest"
	"github.com/jaysuzi5/api-load-tester/internal/splunk"
)

// RunOptions contains options for a headless load test run
type RunOptions struct {
	URL           string
	TotalRequests int
	Workers       int
	TimeoutSec    int
	OutputFormat  string // text, json, yaml
	Quiet         bool   // suppress periodic progress on stderr
	NoHistory     bool   // skip persisting the run record
}

// Run executes one load test and prints the final result to stdout
func Run(opts RunOptions) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	cfg := loadtest.Config{
		URL:               opts.URL,
		TotalRequests:     opts.TotalRequests,
		Workers:           opts.Workers,
		RequestTimeoutSec: opts.TimeoutSec,
	}
	if cfg.TotalRequests == 0 {
		cfg.TotalRequests = settings.Defaults.TotalRequests
	}
	if cfg.Workers == 0 {
		cfg.Workers = settings.Defaults.Workers
	}

	var manager *loadtest.Manager
	if !opts.NoHistory && config.DatabasePath != "" {
		manager, err = loadtest.NewManager(config.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to open run history: %w", err)
		}
		defer manager.Close()
	}

	controller := loadtest.NewController(loadtest.NewDispatcher(), manager)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var result *loadtest.Result
	var runErr error

	// The controller drives the reporter itself; the second goroutine only
	// moves snapshots off the reporter goroutine onto stderr
	progress := make(chan loadtest.Snapshot, 1)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(progress)
		result, runErr = controller.Run(ctx, cfg, func(s loadtest.Snapshot) {
			select {
			case progress <- s:
			default:
			}
		})
		return runErr
	})
	g.Go(func() error {
		for s := range progress {
			if !opts.Quiet {
				fmt.Fprintf(os.Stderr, "\rSuccess: %d  Failures: %d", s.Success, s.Failure)
			}
		}
		return nil
	})

	err = g.Wait()
	if !opts.Quiet {
		fmt.Fprintln(os.Stderr)
	}

	// A dispatch-level failure still produced a finalized result; report
	// both rather than hiding the counts
	if result != nil {
		if printErr := PrintResult(os.Stdout, cfg, result, opts.OutputFormat); printErr != nil {
			return printErr
		}
	}

	return err
}

// EndpointsOptions contains options for the endpoint listing command
type EndpointsOptions struct {
	OutputFormat string
}

// Endpoints refreshes the discovered endpoint list and prints it
func Endpoints(opts EndpointsOptions) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	client := splunk.NewClient(settings.Splunk)
	svc := discovery.NewService(client, settings.BaseURL, settings.Splunk.Index)

	urls := svc.Refresh(context.Background())
	return PrintEndpoints(os.Stdout, urls, opts.OutputFormat)
}

// HistoryOptions contains options for the run history command
type HistoryOptions struct {
	Limit        int
	OutputFormat string
}

// History prints the most recent persisted runs
func History(opts HistoryOptions) error {
	if config.DatabasePath == "" {
		return fmt.Errorf("configuration not initialized")
	}

	manager, err := loadtest.NewManager(config.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open run history: %w", err)
	}
	defer manager.Close()

	runs, err := manager.ListRuns(opts.Limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	return PrintHistory(os.Stdout, runs, opts.OutputFormat)
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jaysuzi5/api-load-tester/internal/cli"
	"github.com/jaysuzi5/api-load-tester/internal/config"
	"github.com/jaysuzi5/api-load-tester/internal/tui"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "loadtester",
	Short: "API Load Tester - concurrent HTTP load testing tool",
	Long: `API Load Tester fires batches of concurrent GET requests against an API
endpoint and reports success/failure counts and throughput.

Run without arguments to start the interactive TUI: endpoints are discovered
from the Splunk log index (with a built-in fallback list), and tests are
configured and launched from the keyboard.

Examples:
  loadtester                                   # Start interactive TUI
  loadtester run -u http://home.dev.com/api/v1/weather
  loadtester run -u http://host/api -n 5000 -c 25
  loadtester run -u http://host/api -o json -q  # machine-readable output
  loadtester endpoints                         # List discovered endpoints
  loadtester history                           # Show past runs`,
	Version: version,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(version)
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute a load test headlessly",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		return cli.Run(cli.RunOptions{
			URL:           flagURL,
			TotalRequests: flagRequests,
			Workers:       flagWorkers,
			TimeoutSec:    flagTimeout,
			OutputFormat:  flagOutput,
			Quiet:         flagQuiet,
			NoHistory:     flagNoHistory,
		})
	},
}

var endpointsCmd = &cobra.Command{
	Use:   "endpoints",
	Short: "List API endpoints discovered from the log index",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		return cli.Endpoints(cli.EndpointsOptions{OutputFormat: flagOutput})
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past load test runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		return cli.History(cli.HistoryOptions{
			Limit:        flagLimit,
			OutputFormat: flagOutput,
		})
	},
}

// Flags for run command
var (
	flagURL       string
	flagRequests  int
	flagWorkers   int
	flagTimeout   int
	flagOutput    string
	flagQuiet     bool
	flagNoHistory bool
	flagLimit     int
)

func init() {
	runCmd.Flags().StringVarP(&flagURL, "url", "u", "", "Target URL (required)")
	runCmd.Flags().IntVarP(&flagRequests, "requests", "n", 0, "Total number of requests (default from settings)")
	runCmd.Flags().IntVarP(&flagWorkers, "workers", "c", 0, "Number of concurrent workers (default from settings)")
	runCmd.Flags().IntVar(&flagTimeout, "timeout", 0, "Per-request timeout in seconds (default 5)")
	runCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output format (text/json/yaml)")
	runCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress periodic progress output")
	runCmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "Do not record the run in the history database")
	_ = runCmd.MarkFlagRequired("url")

	endpointsCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output format (text/json/yaml)")

	historyCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output format (text/json/yaml)")
	historyCmd.Flags().IntVarP(&flagLimit, "limit", "l", 50, "Maximum number of runs to show")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(endpointsCmd)
	rootCmd.AddCommand(historyCmd)
}

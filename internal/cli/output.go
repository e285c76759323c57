package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jaysuzi5/api-load-tester/internal/loadtest"
)

// resultOutput is the serializable shape of a finished run
type resultOutput struct {
	URL           string  `json:"url" yaml:"url"`
	TotalRequests int     `json:"total_requests" yaml:"total_requests"`
	Workers       int     `json:"workers" yaml:"workers"`
	Success       int64   `json:"success" yaml:"success"`
	Failure       int64   `json:"failure" yaml:"failure"`
	ElapsedMs     int64   `json:"elapsed_ms" yaml:"elapsed_ms"`
	TPM           float64 `json:"transactions_per_minute" yaml:"transactions_per_minute"`
}

// PrintResult writes the final run result in the requested format
func PrintResult(w io.Writer, cfg loadtest.Config, result *loadtest.Result, format string) error {
	out := resultOutput{
		URL:           cfg.URL,
		TotalRequests: cfg.TotalRequests,
		Workers:       cfg.Workers,
		Success:       result.Success,
		Failure:       result.Failure,
		ElapsedMs:     result.Elapsed.Milliseconds(),
		TPM:           result.TPM,
	}

	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	case "yaml":
		return yaml.NewEncoder(w).Encode(out)
	default:
		fmt.Fprintf(w, "URL:          %s\n", out.URL)
		fmt.Fprintf(w, "Requests:     %d (%d workers)\n", out.TotalRequests, out.Workers)
		fmt.Fprintf(w, "Success:      %d\n", out.Success)
		fmt.Fprintf(w, "Failures:     %d\n", out.Failure)
		fmt.Fprintf(w, "Elapsed:      %s\n", result.Elapsed.Round(time.Millisecond))
		fmt.Fprintf(w, "TPM:          %.1f\n", out.TPM)
		return nil
	}
}

// PrintEndpoints writes the discovered endpoint list
func PrintEndpoints(w io.Writer, urls []string, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(urls)
	case "yaml":
		return yaml.NewEncoder(w).Encode(urls)
	default:
		for _, url := range urls {
			fmt.Fprintln(w, url)
		}
		return nil
	}
}

// historyOutput is the serializable shape of one past run
type historyOutput struct {
	ID        int64   `json:"id" yaml:"id"`
	URL       string  `json:"url" yaml:"url"`
	StartedAt string  `json:"started_at" yaml:"started_at"`
	Status    string  `json:"status" yaml:"status"`
	Success   int64   `json:"success" yaml:"success"`
	Failure   int64   `json:"failure" yaml:"failure"`
	ElapsedMs int64   `json:"elapsed_ms" yaml:"elapsed_ms"`
	TPM       float64 `json:"transactions_per_minute" yaml:"transactions_per_minute"`
}

// PrintHistory writes past runs in the requested format
func PrintHistory(w io.Writer, runs []*loadtest.Run, format string) error {
	out := make([]historyOutput, 0, len(runs))
	for _, run := range runs {
		out = append(out, historyOutput{
			ID:        run.ID,
			URL:       run.URL,
			StartedAt: run.StartedAt.Format(time.RFC3339),
			Status:    run.Status,
			Success:   run.SuccessCount,
			Failure:   run.FailureCount,
			ElapsedMs: run.ElapsedMs,
			TPM:       run.TPM,
		})
	}

	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	case "yaml":
		return yaml.NewEncoder(w).Encode(out)
	default:
		for _, run := range out {
			fmt.Fprintf(w, "#%d  %s  %s  %d/%d  %.1f tpm\n",
				run.ID, run.StartedAt, run.Status, run.Success, run.Failure, run.TPM)
		}
		return nil
	}
}

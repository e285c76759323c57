package loadtest

import (
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"valid", Config{URL: "http://example.com", TotalRequests: 100, Workers: 10}, false},
		{"missing URL", Config{TotalRequests: 100, Workers: 10}, true},
		{"zero requests", Config{URL: "http://example.com", Workers: 10}, true},
		{"negative requests", Config{URL: "http://example.com", TotalRequests: -5, Workers: 10}, true},
		{"too many requests", Config{URL: "http://example.com", TotalRequests: 2000000, Workers: 10}, true},
		{"zero workers", Config{URL: "http://example.com", TotalRequests: 100}, true},
		{"too many workers", Config{URL: "http://example.com", TotalRequests: 100, Workers: 2000}, true},
		{"negative timeout", Config{URL: "http://example.com", TotalRequests: 100, Workers: 10, RequestTimeoutSec: -1}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if tc.wantErr && err == nil {
				t.Error("Expected validation error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("Expected valid config, got: %v", err)
			}
		})
	}
}

func TestGetRequestTimeout(t *testing.T) {
	cfg := Config{}
	if got := cfg.GetRequestTimeout(); got != 5*time.Second {
		t.Errorf("Expected default 5s timeout, got %s", got)
	}

	cfg.RequestTimeoutSec = 30
	if got := cfg.GetRequestTimeout(); got != 30*time.Second {
		t.Errorf("Expected 30s timeout, got %s", got)
	}
}

func TestRunStatusHelpers(t *testing.T) {
	run := &Run{Status: "running"}
	if !run.IsRunning() || run.IsCompleted() {
		t.Error("running status misclassified")
	}

	run.Status = "completed"
	if run.IsRunning() || !run.IsCompleted() {
		t.Error("completed status misclassified")
	}

	run.Status = "failed"
	if !run.IsCompleted() {
		t.Error("failed status should count as completed")
	}
}

func TestStateString(t *testing.T) {
	if StateIdle.String() != "IDLE" {
		t.Errorf("Expected IDLE, got %s", StateIdle)
	}
	if StateRunning.String() != "RUNNING" {
		t.Errorf("Expected RUNNING, got %s", StateRunning)
	}
	if StateComplete.String() != "COMPLETE" {
		t.Errorf("Expected COMPLETE, got %s", StateComplete)
	}
}

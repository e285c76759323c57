package loadtest

import (
	"testing"
	"time"
)

func TestManagerCreateAndGetRun(t *testing.T) {
	manager := createTestManager(t)
	defer manager.Close()

	run := &Run{
		URL:           "http://home.dev.com/api/flask-test/v1/info",
		TotalRequests: 1000,
		Workers:       10,
		StartedAt:     time.Now(),
		Status:        "running",
	}

	if err := manager.CreateRun(run); err != nil {
		t.Fatalf("CreateRun returned error: %v", err)
	}
	if run.ID == 0 {
		t.Fatal("Expected run ID to be set after insert")
	}

	got, err := manager.GetRun(run.ID)
	if err != nil {
		t.Fatalf("GetRun returned error: %v", err)
	}
	if got.URL != run.URL {
		t.Errorf("Expected URL %s, got %s", run.URL, got.URL)
	}
	if got.Status != "running" {
		t.Errorf("Expected status running, got %s", got.Status)
	}
	if got.CompletedAt != nil {
		t.Error("Expected nil completed_at for a running run")
	}
}

func TestManagerUpdateRun(t *testing.T) {
	manager := createTestManager(t)
	defer manager.Close()

	run := &Run{
		URL:           "http://home.dev.com/api/robert/v1/sample",
		TotalRequests: 500,
		Workers:       5,
		StartedAt:     time.Now(),
		Status:        "running",
	}
	if err := manager.CreateRun(run); err != nil {
		t.Fatalf("CreateRun returned error: %v", err)
	}

	now := time.Now()
	run.CompletedAt = &now
	run.Status = "completed"
	run.SuccessCount = 495
	run.FailureCount = 5
	run.ElapsedMs = 12345
	run.TPM = 2430.5

	if err := manager.UpdateRun(run); err != nil {
		t.Fatalf("UpdateRun returned error: %v", err)
	}

	got, err := manager.GetRun(run.ID)
	if err != nil {
		t.Fatalf("GetRun returned error: %v", err)
	}
	if got.SuccessCount != 495 || got.FailureCount != 5 {
		t.Errorf("Expected 495/5, got %d/%d", got.SuccessCount, got.FailureCount)
	}
	if got.TPM != 2430.5 {
		t.Errorf("Expected TPM 2430.5, got %f", got.TPM)
	}
	if got.CompletedAt == nil {
		t.Error("Expected completed_at to be set")
	}
}

func TestManagerListRunsNewestFirst(t *testing.T) {
	manager := createTestManager(t)
	defer manager.Close()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		run := &Run{
			URL:           "http://home.dev.com/api/a",
			TotalRequests: 10,
			Workers:       2,
			StartedAt:     base.Add(time.Duration(i) * time.Minute),
			Status:        "completed",
		}
		if err := manager.CreateRun(run); err != nil {
			t.Fatalf("CreateRun returned error: %v", err)
		}
	}

	runs, err := manager.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns returned error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs with limit 2, got %d", len(runs))
	}
	if !runs[0].StartedAt.After(runs[1].StartedAt) {
		t.Error("Expected newest run first")
	}
}

func TestManagerDeleteRuns(t *testing.T) {
	manager := createTestManager(t)
	defer manager.Close()

	run := &Run{URL: "http://x", TotalRequests: 1, Workers: 1, StartedAt: time.Now(), Status: "completed"}
	if err := manager.CreateRun(run); err != nil {
		t.Fatalf("CreateRun returned error: %v", err)
	}

	if err := manager.DeleteRuns(); err != nil {
		t.Fatalf("DeleteRuns returned error: %v", err)
	}

	runs, err := manager.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns returned error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("Expected empty history after delete, got %d runs", len(runs))
	}
}

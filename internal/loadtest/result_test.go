package loadtest

import (
	"math"
	"testing"
	"time"
)

func TestComputeTPM(t *testing.T) {
	cases := []struct {
		name    string
		total   int64
		elapsed time.Duration
		want    float64
	}{
		{"one minute", 600, time.Minute, 600},
		{"thirty seconds", 100, 30 * time.Second, 200},
		{"two minutes", 100, 2 * time.Minute, 50},
		{"zero elapsed floors to a minute", 100, 0, 100},
		{"negative elapsed floors to a minute", 100, -time.Second, 100},
		{"zero requests", 0, time.Minute, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeTPM(tc.total, tc.elapsed)
			if math.Abs(got-tc.want) > 0.001 {
				t.Errorf("ComputeTPM(%d, %s) = %f, want %f", tc.total, tc.elapsed, got, tc.want)
			}
		})
	}
}

func TestComputeTPMAlwaysFinite(t *testing.T) {
	// Very small positive elapsed must not blow up to Inf/NaN
	for _, elapsed := range []time.Duration{time.Nanosecond, time.Microsecond, time.Millisecond, 0} {
		got := ComputeTPM(10, elapsed)
		if math.IsInf(got, 0) || math.IsNaN(got) || got < 0 {
			t.Errorf("ComputeTPM(10, %s) = %f, want finite non-negative", elapsed, got)
		}
	}
}

func TestNewResult(t *testing.T) {
	result := NewResult(Snapshot{Success: 90, Failure: 10}, 30*time.Second)

	if result.Total() != 100 {
		t.Errorf("Expected total 100, got %d", result.Total())
	}
	if math.Abs(result.TPM-200) > 0.001 {
		t.Errorf("Expected TPM 200, got %f", result.TPM)
	}
	if result.Elapsed != 30*time.Second {
		t.Errorf("Expected elapsed 30s, got %s", result.Elapsed)
	}
}

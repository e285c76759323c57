package version

import "testing"

func TestIsNewerVersion(t *testing.T) {
	tests := []struct {
		latest  string
		current string
		want    bool
	}{
		{"0.2.0", "0.1.0", true},
		{"0.1.0", "0.2.0", false},
		{"0.1.0", "0.1.0", false},
		{"1.0.0", "0.9.9", true},
		{"0.1.10", "0.1.9", true},
		{"0.1", "0.1.0", false},
		{"0.1.1", "0.1", true},
		{"0.2.0-dev", "0.1.0", true},
	}

	for _, tt := range tests {
		if got := isNewerVersion(tt.latest, tt.current); got != tt.want {
			t.Errorf("isNewerVersion(%q, %q) = %v, want %v", tt.latest, tt.current, got, tt.want)
		}
	}
}

func TestParseVersion(t *testing.T) {
	got := parseVersion("1.2.3-rc1")
	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("parseVersion returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("part %d = %d, want %d", i, got[i], want[i])
		}
	}
}

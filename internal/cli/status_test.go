package cli

import "testing"

func TestDescribeState(t *testing.T) {
	tests := []struct {
		name     string
		entry    statusEntry
		expected string
	}{
		{"clean install", statusEntry{ID: "tdd"}, "clean"},
		{"customized", statusEntry{ID: "tdd", Customized: true}, "customized"},
		{"retired", statusEntry{ID: "tdd", Retired: true}, "retired from catalog"},
		{"retired and customized", statusEntry{ID: "tdd", Retired: true, Customized: true}, "retired, customized"},
		{"file missing", statusEntry{ID: "tdd", FileMissing: true}, "file missing"},
		{"file missing wins over customized", statusEntry{ID: "tdd", FileMissing: true, Customized: true}, "file missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := describeState(tt.entry)
			if got != tt.expected {
				t.Errorf("describeState(%+v) = %q, want %q", tt.entry, got, tt.expected)
			}
		})
	}
}

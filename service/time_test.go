package service

import "testing"

func TestTimeSortOrder(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"done_date", "done_date DESC"},
		{"hours", "hours DESC"},
		{"created_on", "created_at DESC"},
		{"", "created_at DESC"},
		{"name); DELETE FROM project_times", "created_at DESC"},
	}
	for _, tt := range tests {
		if got := timeSortOrder(tt.key); got != tt.want {
			t.Errorf("timeSortOrder(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

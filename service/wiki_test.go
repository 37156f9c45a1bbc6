package service

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Home", "home"},
		{"Release Notes", "release-notes"},
		{"  spaces   everywhere  ", "spaces-everywhere"},
		{"Q3/2026 Plan!", "q3-2026-plan"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := slugify(tt.title); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

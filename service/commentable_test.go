package service

import (
	"testing"
)

func lookupFrom(values map[string]string) func(string) string {
	return func(k string) string { return values[k] }
}

func TestFindCommentKey(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]string
		wantKey string
		wantID  uint
		wantErr error
	}{
		{
			name:    "message key",
			values:  map[string]string{"message_id": "12"},
			wantKey: "message_id",
			wantID:  12,
		},
		{
			name:    "task key",
			values:  map[string]string{"task_id": "3"},
			wantKey: "task_id",
			wantID:  3,
		},
		{
			name:    "no key rejects",
			values:  map[string]string{},
			wantErr: errNoCommentKey,
		},
		{
			name:    "unknown keys are ignored",
			values:  map[string]string{"project_id": "1", "foo": "2"},
			wantErr: errNoCommentKey,
		},
		{
			name:    "two keys reject",
			values:  map[string]string{"message_id": "1", "file_id": "2"},
			wantErr: errAmbiguousComment,
		},
		{
			name:    "non-numeric value rejects",
			values:  map[string]string{"milestone_id": "abc"},
			wantErr: errBadCommentKeyValue,
		},
		{
			name:    "zero id rejects",
			values:  map[string]string{"file_id": "0"},
			wantErr: errBadCommentKeyValue,
		},
		{
			name:    "negative value rejects",
			values:  map[string]string{"task_list_id": "-4"},
			wantErr: errBadCommentKeyValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, id, err := findCommentKey(lookupFrom(tt.values))
			if err != tt.wantErr {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if key != tt.wantKey || id != tt.wantID {
				t.Errorf("got (%q, %d), want (%q, %d)", key, id, tt.wantKey, tt.wantID)
			}
		})
	}
}

func TestFindCommentKeyOrderIndependence(t *testing.T) {
	// two keys must reject no matter which one the checking order visits
	// first
	key, _, err := findCommentKey(lookupFrom(map[string]string{
		"task_list_id": "7",
		"message_id":   "7",
	}))
	if err != errAmbiguousComment {
		t.Fatalf("err = %v, want ambiguous", err)
	}
	if key != "" {
		t.Errorf("key = %q, want empty on rejection", key)
	}
}

package log

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"
)

func marshalEntry(t *testing.T, e Entry) map[string]any {
	t.Helper()
	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal %s: %v", data, err)
	}
	return out
}

func TestEntry_MarshalJSON_RunID(t *testing.T) {
	tests := []struct {
		name  string
		runID string
		want  any
	}{
		{"set", "0b6f4c1e-run", "0b6f4c1e-run"},
		{"empty is omitted", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := marshalEntry(t, Entry{Level: Info, Message: "post published", RunID: tt.runID})

			if got["run_id"] != tt.want {
				t.Errorf("run_id: got %v, want %v", got["run_id"], tt.want)
			}
			if got["level"] != "INFO" || got["msg"] != "post published" {
				t.Errorf("entry: got %v", got)
			}
		})
	}
}

func TestEntry_MarshalJSON_ErrorAndDurationFieldsAsText(t *testing.T) {
	cause := errors.New("connection reset")
	got := marshalEntry(t, Entry{
		Level:   Warn,
		Message: "variant rejected",
		Fields: map[string]any{
			"error":   fmt.Errorf("GET a~orig.jpg: %w", cause),
			"elapsed": 1500 * time.Millisecond,
			"attempt": 2,
		},
	})

	if got["error"] != "GET a~orig.jpg: connection reset" {
		t.Errorf("error: got %#v", got["error"])
	}
	if got["elapsed"] != "1.5s" {
		t.Errorf("elapsed: got %#v, want %q", got["elapsed"], "1.5s")
	}
	if got["attempt"] != float64(2) {
		t.Errorf("attempt: got %#v", got["attempt"])
	}
}

func TestEntry_With_NilFields_Initializes(t *testing.T) {
	entry := &Entry{Level: Info, Message: "bare"}
	entry.With("url", "https://example.com/a~orig.jpg", "orphan")

	if entry.Fields["url"] != "https://example.com/a~orig.jpg" {
		t.Errorf("Fields[url]: got %v", entry.Fields["url"])
	}
	if _, ok := entry.Fields["orphan"]; ok {
		t.Error("a trailing key without value should be dropped")
	}
}

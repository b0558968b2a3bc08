package transporters

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"nasa-poster/pkg/log"
)

// Text writes one human-readable line per entry:
//
//	2026-01-03T12:00:00Z INFO  post published run_id=… uri=at://…
type Text struct {
	writer io.Writer
}

// NewText creates a Text transporter writing to w, or os.Stderr when w is nil.
func NewText(w io.Writer) *Text {
	if w == nil {
		w = os.Stderr
	}
	return &Text{writer: w}
}

// Name returns the transporter identifier.
func (t *Text) Name() string {
	return "text"
}

// Write formats the entry with fields sorted by key.
func (t *Text) Write(entry log.Entry) error {
	var b strings.Builder
	b.WriteString(entry.Timestamp.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, " %-5s %s", entry.Level.String(), entry.Message)

	if entry.RunID != "" {
		writePair(&b, "run_id", entry.RunID)
	}

	keys := make([]string, 0, len(entry.Fields))
	for k := range entry.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		writePair(&b, k, entry.Fields[k])
	}

	if entry.Caller != "" {
		writePair(&b, "caller", entry.Caller)
	}
	b.WriteByte('\n')

	_, err := io.WriteString(t.writer, b.String())
	return err
}

// Close is a no-op; the writer is owned by the caller.
func (t *Text) Close() error {
	return nil
}

func writePair(b *strings.Builder, key string, value any) {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case error:
		s = v.Error()
	case fmt.Stringer:
		s = v.String()
	default:
		s = fmt.Sprint(v)
	}
	if strings.ContainsAny(s, " \t\n\"=") || s == "" {
		s = strconv.Quote(s)
	}
	fmt.Fprintf(b, " %s=%s", key, s)
}

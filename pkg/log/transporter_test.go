package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// failingTransporter always fails to write.
type failingTransporter struct {
	name string
	err  error
}

func (f *failingTransporter) Name() string { return f.name }
func (f *failingTransporter) Write(Entry) error { return f.err }
func (f *failingTransporter) Close() error { return nil }

func swapFallback(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := fallback
	fallback = &buf
	t.Cleanup(func() { fallback = prev })
	return &buf
}

func TestDeliver_WritesToAllTransporters(t *testing.T) {
	t1 := &captureTransporter{}
	t2 := &captureTransporter{}

	deliver([]Transporter{t1, t2}, *NewEntry(Info, "broadcast"))

	if len(t1.Entries()) != 1 || len(t2.Entries()) != 1 {
		t.Errorf("t1 = %d, t2 = %d entries, want 1 each", len(t1.Entries()), len(t2.Entries()))
	}
}

func TestDeliver_TransporterError_ReportsOnFallback(t *testing.T) {
	buf := swapFallback(t)
	ok := &captureTransporter{}
	bad := &failingTransporter{name: "broken", err: errors.New("disk full")}

	deliver([]Transporter{bad, ok}, *NewEntry(Error, "error message"))

	if !strings.Contains(buf.String(), `log transporter "broken" failed: disk full`) {
		t.Errorf("fallback output = %q", buf.String())
	}
	if len(ok.Entries()) != 1 {
		t.Error("a failing transporter must not block the others")
	}
}

package log

import (
	"fmt"
	"io"
	"os"
)

// Transporter is a log output destination.
type Transporter interface {
	// Name returns the identifier for this transporter.
	Name() string

	// Write sends a log entry to the destination.
	Write(entry Entry) error

	// Close releases any resources held by the transporter.
	Close() error
}

// fallback receives delivery failures; tests swap it out.
var fallback io.Writer = os.Stderr

// deliver writes entry to every transporter, reporting failures on the fallback writer.
func deliver(transporters []Transporter, entry Entry) {
	for _, t := range transporters {
		if err := t.Write(entry); err != nil {
			fmt.Fprintf(fallback, "log transporter %q failed: %v\n", t.Name(), err)
		}
	}
}

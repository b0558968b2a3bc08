package transporters

import (
	"encoding/json"
	"io"
	"os"

	"nasa-poster/pkg/log"
)

// JSON writes line-delimited JSON entries.
type JSON struct {
	writer io.Writer
}

// NewJSON creates a JSON transporter writing to w, or os.Stdout when w is nil.
func NewJSON(w io.Writer) *JSON {
	if w == nil {
		w = os.Stdout
	}
	return &JSON{writer: w}
}

// Name returns the transporter identifier.
func (j *JSON) Name() string {
	return "json"
}

// Write marshals the entry and writes it followed by a newline.
func (j *JSON) Write(entry log.Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	_, err = j.writer.Write(data)
	return err
}

// Close is a no-op; the writer is owned by the caller.
func (j *JSON) Close() error {
	return nil
}

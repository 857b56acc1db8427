// Writer implementation printing point rows to STDOUT
package export

import (
	"encoding/json"
	"io"
	"os"
)

// StdoutWriter prints point rows as JSON lines.
type StdoutWriter struct {
	out io.Writer
}

// NewStdoutWriter returns a writer for w, or os.Stdout when w is nil.
func NewStdoutWriter(w io.Writer) *StdoutWriter {
	if w == nil {
		w = os.Stdout
	}
	return &StdoutWriter{out: w}
}

// WriteRows outputs one JSON object per line.
func (w *StdoutWriter) WriteRows(rows []PointRow) error {
	enc := json.NewEncoder(w.out)
	for _, r := range rows {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

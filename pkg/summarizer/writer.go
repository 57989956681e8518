package summarizer

import (
	"fmt"
	"io"
)

// Writer prints formatted reports to a diagnostic stream. The stream is
// never the bitstream output.
type Writer struct {
	formatter Formatter
	out       io.Writer
}

// NewWriter creates a Writer targeting out.
func NewWriter(formatter Formatter, out io.Writer) *Writer {
	return &Writer{formatter: formatter, out: out}
}

// Write formats the report and writes it to the stream.
func (w *Writer) Write(report *Report) error {
	if _, err := fmt.Fprint(w.out, w.formatter.Format(report)); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

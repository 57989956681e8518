// Package bitstreamsink writes the encoded byte stream to a file or
// standard output, watching the stream for its parameter sets.
package bitstreamsink

import (
	"bufio"
	"fmt"
	"os"

	"github.com/user/yuvenc/pkg/ports"
)

// Sink is a buffered ports.BitstreamSink.
type Sink struct {
	name   string
	file   *os.File
	w      *bufio.Writer
	stdout bool
	probe  *StreamProbe
}

// Open creates the named file, or targets standard output when name is
// "-".
func Open(name string, logger ports.Logger) (*Sink, error) {
	s := &Sink{name: name, probe: NewStreamProbe(logger)}
	if name == "-" {
		s.file = os.Stdout
		s.stdout = true
	} else {
		f, err := os.Create(name)
		if err != nil {
			return nil, fmt.Errorf("open output: %w", err)
		}
		s.file = f
	}
	s.w = bufio.NewWriter(s.file)
	return s, nil
}

// Write appends p to the bitstream.
func (s *Sink) Write(p []byte) (int, error) {
	s.probe.Scan(p)
	n, err := s.w.Write(p)
	if err != nil {
		return n, fmt.Errorf("write bitstream: %w", err)
	}
	return n, nil
}

// Close flushes buffered data and closes the file. Standard output is
// flushed but left open. Idempotent.
func (s *Sink) Close() error {
	if s.w == nil {
		return nil
	}
	err := s.w.Flush()
	s.w = nil
	if !s.stdout {
		if cerr := s.file.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}

var _ ports.BitstreamSink = (*Sink)(nil)

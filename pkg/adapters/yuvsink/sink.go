// Package yuvsink writes reconstructed pictures as raw planar YUV,
// the debug counterpart of the primary bitstream output.
package yuvsink

import (
	"bufio"
	"fmt"
	"os"

	"github.com/user/yuvenc/pkg/ports"
)

// Sink is a buffered ports.ReconSink.
type Sink struct {
	name   string
	file   *os.File
	w      *bufio.Writer
	stdout bool
}

// Open creates the named file, or targets standard output when name is
// "-".
func Open(name string) (*Sink, error) {
	s := &Sink{name: name}
	if name == "-" {
		s.file = os.Stdout
		s.stdout = true
	} else {
		f, err := os.Create(name)
		if err != nil {
			return nil, fmt.Errorf("open reconstruction output: %w", err)
		}
		s.file = f
	}
	s.w = bufio.NewWriter(s.file)
	return s, nil
}

// WriteFrame appends one frame, planes in Y, Cb, Cr order.
func (s *Sink) WriteFrame(f *ports.Frame) error {
	for _, plane := range f.Planes {
		if _, err := s.w.Write(plane); err != nil {
			return fmt.Errorf("write reconstruction: %w", err)
		}
	}
	return nil
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
		return fmt.Errorf("close reconstruction output: %w", err)
	}
	return nil
}

var _ ports.ReconSink = (*Sink)(nil)

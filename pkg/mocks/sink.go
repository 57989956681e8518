package mocks

import (
	"bytes"
	"errors"

	"github.com/user/yuvenc/pkg/ports"
)

// ErrWrite is the default write failure injected by Sink.
var ErrWrite = errors.New("mocks: write failure")

// Sink is a mock implementation of ports.BitstreamSink capturing
// everything written.
type Sink struct {
	Buf bytes.Buffer

	// FailWriteAt makes the nth write (1-based) fail. 0 = never.
	FailWriteAt int

	// Recorded calls for verification
	Writes     int
	Closed     bool
	CloseCalls int
}

func (m *Sink) Write(p []byte) (int, error) {
	m.Writes++
	if m.FailWriteAt > 0 && m.Writes == m.FailWriteAt {
		return 0, ErrWrite
	}
	return m.Buf.Write(p)
}

func (m *Sink) Close() error {
	m.Closed = true
	m.CloseCalls++
	return nil
}

var _ ports.BitstreamSink = (*Sink)(nil)

// ReconSink is a mock implementation of ports.ReconSink.
type ReconSink struct {
	Frames     []*ports.Frame
	WriteErr   error
	Closed     bool
	CloseCalls int
}

func (m *ReconSink) WriteFrame(f *ports.Frame) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Frames = append(m.Frames, f)
	return nil
}

func (m *ReconSink) Close() error {
	m.Closed = true
	m.CloseCalls++
	return nil
}

var _ ports.ReconSink = (*ReconSink)(nil)

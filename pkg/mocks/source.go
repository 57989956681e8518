package mocks

import (
	"errors"

	"github.com/user/yuvenc/pkg/ports"
)

// ErrRead is the default read failure injected by Source.
var ErrRead = errors.New("mocks: read failure")

// ErrSkip is the default skip failure injected by Source.
var ErrSkip = errors.New("mocks: skip failure")

// Source is a mock implementation of ports.FrameSource yielding
// FramesTotal frames and then end of stream.
type Source struct {
	FramesTotal int

	// FailReadAt makes the nth read (1-based) fail with ErrRead
	// instead of producing a frame. 0 = never.
	FailReadAt int

	// SkipErr, when set, is returned by Skip.
	SkipErr error

	// Recorded calls for verification
	Reads     int
	SkipCalls []int
	Closed    bool
}

func (m *Source) Read(f *ports.Frame) error {
	m.Reads++
	if m.FailReadAt > 0 && m.Reads == m.FailReadAt {
		return ErrRead
	}
	if m.Reads > m.FramesTotal {
		return ports.ErrEndOfStream
	}
	for p := range f.Planes {
		for i := range f.Planes[p] {
			f.Planes[p][i] = byte(m.Reads)
		}
	}
	return nil
}

func (m *Source) Skip(n int) error {
	m.SkipCalls = append(m.SkipCalls, n)
	return m.SkipErr
}

func (m *Source) Close() error {
	m.Closed = true
	return nil
}

var _ ports.FrameSource = (*Source)(nil)

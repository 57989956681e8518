package mocks

import (
	"errors"

	"github.com/user/yuvenc/pkg/ports"
)

// ErrAlloc is the default allocation failure injected by Allocator.
var ErrAlloc = errors.New("mocks: allocation failure")

// Allocator is a mock implementation of ports.FrameAllocator that can
// fail on demand.
type Allocator struct {
	// FailAt makes the nth allocation (1-based) fail. 0 = never.
	FailAt int

	// Recorded calls for verification
	Calls int
}

func (m *Allocator) New(width, height int) (*ports.Frame, error) {
	m.Calls++
	if m.FailAt > 0 && m.Calls == m.FailAt {
		return nil, ErrAlloc
	}
	chroma := (width / 2) * (height / 2)
	return &ports.Frame{
		Width:  width,
		Height: height,
		Planes: [3][]byte{
			make([]byte, width*height),
			make([]byte, chroma),
			make([]byte, chroma),
		},
	}, nil
}

var _ ports.FrameAllocator = (*Allocator)(nil)

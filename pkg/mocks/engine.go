package mocks

import (
	"errors"
	"fmt"

	"github.com/user/yuvenc/pkg/ports"
)

// ErrSubmit is the default submission failure injected by EngineHandle.
var ErrSubmit = errors.New("mocks: submit failure")

// Engine is a mock implementation of ports.Engine.
type Engine struct {
	OpenFunc func(cfg ports.EngineConfig) (ports.EngineHandle, error)

	// Recorded calls for verification
	OpenCalled bool
	OpenConfig ports.EngineConfig

	// Handle is returned by Open when OpenFunc is nil. Created on
	// demand if left nil.
	Handle *EngineHandle
}

func (m *Engine) Open(cfg ports.EngineConfig) (ports.EngineHandle, error) {
	m.OpenCalled = true
	m.OpenConfig = cfg
	if m.OpenFunc != nil {
		return m.OpenFunc(cfg)
	}
	if m.Handle == nil {
		m.Handle = &EngineHandle{}
	}
	return m.Handle, nil
}

// EngineHandle is a pipelined mock engine: each submitted frame is
// queued, and a unit is emitted only once more than Depth frames are in
// flight, emitted in submission order. Depth 0 behaves one-in-one-out.
type EngineHandle struct {
	Depth int

	SubmitFunc func(f *ports.Frame) (*ports.CompressedUnit, error)

	// FailSubmitAt makes the nth submission (1-based) fail. 0 = never.
	FailSubmitAt int

	// AttachRecon attaches a reconstruction frame to every emitted unit.
	AttachRecon bool

	// Recorded calls for verification
	Submitted  []*ports.Frame
	DrainCalls int
	Closed     bool
	CloseCalls int

	queue []*ports.CompressedUnit
}

func (m *EngineHandle) Submit(f *ports.Frame) (*ports.CompressedUnit, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(f)
	}
	if m.FailSubmitAt > 0 && len(m.Submitted)+1 == m.FailSubmitAt {
		return nil, ErrSubmit
	}
	m.Submitted = append(m.Submitted, f)
	m.queue = append(m.queue, m.unitFor(f))
	if len(m.queue) > m.Depth {
		return m.pop(), nil
	}
	return nil, nil
}

func (m *EngineHandle) Drain() (*ports.CompressedUnit, bool) {
	m.DrainCalls++
	if len(m.queue) == 0 {
		return nil, false
	}
	return m.pop(), true
}

func (m *EngineHandle) Close() error {
	m.Closed = true
	m.CloseCalls++
	return nil
}

func (m *EngineHandle) pop() *ports.CompressedUnit {
	u := m.queue[0]
	m.queue = m.queue[1:]
	return u
}

// unitFor builds a deterministic unit whose payload identifies the
// source frame, so tests can assert forwarding order.
func (m *EngineHandle) unitFor(f *ports.Frame) *ports.CompressedUnit {
	payload := []byte(fmt.Sprintf("unit-%d|", f.PTS))
	u := &ports.CompressedUnit{
		Payload: payload,
		Bits:    uint64(len(payload)) * 8,
		POC:     int32(f.PTS),
		QP:      32,
		PSNR:    [3]float64{40, 41, 42},
	}
	if m.AttachRecon {
		u.Recon = &ports.Frame{Width: f.Width, Height: f.Height, Planes: f.Planes, PTS: f.PTS}
	}
	return u
}

var _ ports.Engine = (*Engine)(nil)
var _ ports.EngineHandle = (*EngineHandle)(nil)

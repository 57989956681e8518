// Package pipeline implements the feed/drain protocol that drives a
// pipelined, latency-bearing encoding engine.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/user/yuvenc/pkg/ports"
	"github.com/user/yuvenc/pkg/stats"
)

// State identifies the driver's position in its lifecycle.
type State int

const (
	// StateFeeding pulls frames from the source and submits them.
	StateFeeding State = iota
	// StateDraining requests buffered output without new submissions.
	StateDraining
	// StateClosed is the terminal state of a successful run.
	StateClosed
	// StateAborted is the terminal state after an unrecoverable failure.
	StateAborted
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateFeeding:
		return "feeding"
	case StateDraining:
		return "draining"
	case StateClosed:
		return "closed"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Config wires a Driver to its collaborators.
type Config struct {
	Source ports.FrameSource
	Engine ports.EngineHandle
	Sink   ports.BitstreamSink
	Recon  ports.ReconSink // optional reconstruction output
	Alloc  ports.FrameAllocator
	Stats  *stats.Running
	Logger ports.Logger

	// Frame dimensions for work buffer allocation.
	Width  int
	Height int

	// FrameLimit bounds the number of submissions. 0 means unlimited:
	// feed until the source is exhausted.
	FrameLimit int
}

// Driver runs the two-phase feed/drain protocol: pull a frame, submit
// it, forward any synchronously emitted unit, and once the source is
// exhausted (or the frame limit reached) drain the engine until no
// output is pending. The driver is single-threaded; Submit and Drain
// are its only suspension points.
type Driver struct {
	cfg       Config
	state     State
	truncated bool
}

// New creates a Driver. The engine handle is exclusively owned by the
// driver for the duration of the run.
func New(cfg Config) *Driver {
	if cfg.Alloc == nil {
		cfg.Alloc = BufferAllocator{}
	}
	return &Driver{cfg: cfg}
}

// State reports the driver's current lifecycle state.
func (d *Driver) State() State {
	return d.state
}

// Truncated reports whether feeding ended on a source read failure
// rather than a clean end of stream.
func (d *Driver) Truncated() bool {
	return d.truncated
}

// Run executes the protocol to completion. On success every submitted
// frame has a forwarded compressed unit and the driver is in
// StateClosed. Any returned error left the driver in StateAborted; the
// caller still owns resource release.
func (d *Driver) Run() error {
	d.state = StateFeeding
	if err := d.feed(); err != nil {
		d.state = StateAborted
		return err
	}

	// Draining is entered even with zero submissions: some engines need
	// a drain call to settle internal state before close.
	d.state = StateDraining
	d.cfg.Logger.Debug("Draining %d in-flight frames", d.cfg.Stats.InFlight())
	if err := d.drain(); err != nil {
		d.state = StateAborted
		return err
	}

	d.state = StateClosed
	return nil
}

func (d *Driver) feed() error {
	log := d.cfg.Logger
	for d.cfg.FrameLimit == 0 || d.cfg.Stats.FramesSubmitted() < uint64(d.cfg.FrameLimit) {
		frame, err := d.cfg.Alloc.New(d.cfg.Width, d.cfg.Height)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFrameAlloc, err)
		}
		frame.PTS = int64(d.cfg.Stats.FramesSubmitted())

		if err := d.cfg.Source.Read(frame); err != nil {
			if !errors.Is(err, ports.ErrEndOfStream) {
				// A read failure ends the stream but is not fatal; the
				// partial run is still drained and reported.
				d.truncated = true
				log.Warn("Failed to read frame %d: %s", d.cfg.Stats.FramesSubmitted(), err)
			}
			return nil
		}

		unit, err := d.cfg.Engine.Submit(frame)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSubmit, err)
		}
		d.cfg.Stats.NoteSubmitted()

		if unit != nil {
			if err := d.forward(unit); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *Driver) drain() error {
	for {
		unit, more := d.cfg.Engine.Drain()
		if !more {
			return nil
		}
		if unit != nil {
			if err := d.forward(unit); err != nil {
				return err
			}
		}
	}
}

// forward sends a compressed unit to the sink and the aggregator in
// engine emission order, regardless of which phase produced it.
func (d *Driver) forward(u *ports.CompressedUnit) error {
	if _, err := d.cfg.Sink.Write(u.Payload); err != nil {
		return fmt.Errorf("%w: %v", ErrSinkWrite, err)
	}
	d.cfg.Stats.Record(u)

	if d.cfg.Recon != nil && u.Recon != nil {
		if err := d.cfg.Recon.WriteFrame(u.Recon); err != nil {
			return fmt.Errorf("%w: %v", ErrSinkWrite, err)
		}
	}

	d.cfg.Logger.Debug("Frame %d: %d bits, QP %d, PSNR %.4f %.4f %.4f",
		u.POC, u.Bits, u.QP, u.PSNR[0], u.PSNR[1], u.PSNR[2])
	return nil
}

package pipeline_test

import (
	"errors"
	"testing"

	"github.com/user/yuvenc/pkg/adapters/logger"
	"github.com/user/yuvenc/pkg/mocks"
	"github.com/user/yuvenc/pkg/pipeline"
	"github.com/user/yuvenc/pkg/stats"
)

type fixture struct {
	source  *mocks.Source
	engine  *mocks.EngineHandle
	sink    *mocks.Sink
	recon   *mocks.ReconSink
	running *stats.Running
	driver  *pipeline.Driver
}

func newFixture(source *mocks.Source, engine *mocks.EngineHandle, limit int) *fixture {
	f := &fixture{
		source:  source,
		engine:  engine,
		sink:    &mocks.Sink{},
		running: stats.NewRunning(),
	}
	f.driver = pipeline.New(pipeline.Config{
		Source:     f.source,
		Engine:     f.engine,
		Sink:       f.sink,
		Stats:      f.running,
		Logger:     logger.NewNoop(),
		Width:      16,
		Height:     16,
		FrameLimit: limit,
	})
	return f
}

func TestDriver_FrameLimit(t *testing.T) {
	tests := []struct {
		name          string
		limit         int
		sourceFrames  int
		wantSubmitted uint64
	}{
		{"unlimited drains the source", 0, 5, 5},
		{"limit below source length", 3, 5, 3},
		{"limit above source length", 5, 3, 3},
		{"limit equal to source length", 5, 5, 5},
		{"limit one on empty source", 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(&mocks.Source{FramesTotal: tt.sourceFrames}, &mocks.EngineHandle{Depth: 2}, tt.limit)

			if err := f.driver.Run(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := f.running.FramesSubmitted(); got != tt.wantSubmitted {
				t.Errorf("expected %d frames submitted, got %d", tt.wantSubmitted, got)
			}
		})
	}
}

func TestDriver_DrainResolvesPipelineDepth(t *testing.T) {
	f := newFixture(&mocks.Source{FramesTotal: 5}, &mocks.EngineHandle{Depth: 3}, 0)

	if err := f.driver.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.running.FramesSubmitted() != 5 {
		t.Errorf("expected 5 frames submitted, got %d", f.running.FramesSubmitted())
	}
	if f.running.FramesCompleted() != 5 {
		t.Errorf("expected 5 frames completed, got %d", f.running.FramesCompleted())
	}
	if f.running.InFlight() != 0 {
		t.Errorf("expected no frames in flight, got %d", f.running.InFlight())
	}
	if f.driver.State() != pipeline.StateClosed {
		t.Errorf("expected closed state, got %s", f.driver.State())
	}
}

func TestDriver_ForwardsInEmissionOrder(t *testing.T) {
	// Depth 2 splits the emissions across feeding and draining; the sink
	// must still see engine emission order.
	f := newFixture(&mocks.Source{FramesTotal: 4}, &mocks.EngineHandle{Depth: 2}, 0)

	if err := f.driver.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "unit-0|unit-1|unit-2|unit-3|"
	if got := f.sink.Buf.String(); got != want {
		t.Errorf("expected sink contents %q, got %q", want, got)
	}
}

func TestDriver_EmptyInput(t *testing.T) {
	f := newFixture(&mocks.Source{FramesTotal: 0}, &mocks.EngineHandle{Depth: 2}, 0)

	if err := f.driver.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.running.FramesSubmitted() != 0 {
		t.Errorf("expected no submissions, got %d", f.running.FramesSubmitted())
	}
	if f.engine.DrainCalls == 0 {
		t.Error("expected draining to be entered even with nothing submitted")
	}
	if f.running.FramesCompleted() != 0 {
		t.Errorf("expected no completed frames, got %d", f.running.FramesCompleted())
	}
	if f.driver.Truncated() {
		t.Error("clean end of stream must not be reported as truncated")
	}
}

func TestDriver_ReadFailureIsNotFatal(t *testing.T) {
	// The 4th read fails, so only 3 of the 5 requested frames make it in.
	f := newFixture(&mocks.Source{FramesTotal: 5, FailReadAt: 4}, &mocks.EngineHandle{Depth: 2}, 5)

	if err := f.driver.Run(); err != nil {
		t.Fatalf("expected read failure to finalize normally, got %v", err)
	}

	if f.running.FramesSubmitted() != 3 {
		t.Errorf("expected 3 frames submitted, got %d", f.running.FramesSubmitted())
	}
	if f.running.FramesCompleted() != 3 {
		t.Errorf("expected 3 frames completed after drain, got %d", f.running.FramesCompleted())
	}
	if !f.driver.Truncated() {
		t.Error("expected the run to be marked truncated")
	}
	if f.driver.State() != pipeline.StateClosed {
		t.Errorf("expected closed state, got %s", f.driver.State())
	}
}

func TestDriver_SubmitFailureAborts(t *testing.T) {
	// Depth 0 emits one-in-one-out, so frame 1's unit is already
	// forwarded when frame 2's submission fails.
	f := newFixture(&mocks.Source{FramesTotal: 5}, &mocks.EngineHandle{Depth: 0, FailSubmitAt: 2}, 0)

	err := f.driver.Run()
	if !errors.Is(err, pipeline.ErrSubmit) {
		t.Fatalf("expected submit error, got %v", err)
	}

	if f.driver.State() != pipeline.StateAborted {
		t.Errorf("expected aborted state, got %s", f.driver.State())
	}
	if f.running.FramesSubmitted() != 1 {
		t.Errorf("expected 1 frame submitted, got %d", f.running.FramesSubmitted())
	}
	if got := f.sink.Buf.String(); got != "unit-0|" {
		t.Errorf("expected already-emitted unit to be forwarded, sink has %q", got)
	}
}

func TestDriver_AllocationFailureAborts(t *testing.T) {
	f := newFixture(&mocks.Source{FramesTotal: 5}, &mocks.EngineHandle{Depth: 0}, 0)
	alloc := &mocks.Allocator{FailAt: 2}
	f.driver = pipeline.New(pipeline.Config{
		Source: f.source,
		Engine: f.engine,
		Sink:   f.sink,
		Alloc:  alloc,
		Stats:  f.running,
		Logger: logger.NewNoop(),
		Width:  16,
		Height: 16,
	})

	err := f.driver.Run()
	if !errors.Is(err, pipeline.ErrFrameAlloc) {
		t.Fatalf("expected allocation error, got %v", err)
	}
	if f.driver.State() != pipeline.StateAborted {
		t.Errorf("expected aborted state, got %s", f.driver.State())
	}
	if f.running.FramesSubmitted() != 1 {
		t.Errorf("expected the failing frame to abort before submission, got %d submitted", f.running.FramesSubmitted())
	}
}

func TestDriver_SinkWriteFailureAborts(t *testing.T) {
	f := newFixture(&mocks.Source{FramesTotal: 3}, &mocks.EngineHandle{Depth: 0}, 0)
	f.sink.FailWriteAt = 1

	err := f.driver.Run()
	if !errors.Is(err, pipeline.ErrSinkWrite) {
		t.Fatalf("expected sink write error, got %v", err)
	}
	if f.driver.State() != pipeline.StateAborted {
		t.Errorf("expected aborted state, got %s", f.driver.State())
	}
}

func TestDriver_ReconForwarding(t *testing.T) {
	f := newFixture(&mocks.Source{FramesTotal: 3}, &mocks.EngineHandle{Depth: 1, AttachRecon: true}, 0)
	recon := &mocks.ReconSink{}
	f.driver = pipeline.New(pipeline.Config{
		Source: f.source,
		Engine: f.engine,
		Sink:   f.sink,
		Recon:  recon,
		Stats:  f.running,
		Logger: logger.NewNoop(),
		Width:  16,
		Height: 16,
	})

	if err := f.driver.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recon.Frames) != 3 {
		t.Errorf("expected 3 reconstruction frames, got %d", len(recon.Frames))
	}
}

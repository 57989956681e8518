package patternsource_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/user/yuvenc/pkg/adapters/patternsource"
	"github.com/user/yuvenc/pkg/pipeline"
	"github.com/user/yuvenc/pkg/ports"
)

func newFrame(t *testing.T, width, height int) *ports.Frame {
	t.Helper()
	f, err := pipeline.BufferAllocator{}.New(width, height)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestSource_FrameCount(t *testing.T) {
	s := patternsource.New(64, 36, 3)
	defer s.Close()

	for i := 0; i < 3; i++ {
		if err := s.Read(newFrame(t, 64, 36)); err != nil {
			t.Fatalf("frame %d: unexpected error: %v", i, err)
		}
	}
	if err := s.Read(newFrame(t, 64, 36)); !errors.Is(err, ports.ErrEndOfStream) {
		t.Errorf("expected end of stream, got %v", err)
	}
}

func TestSource_UnlimitedStream(t *testing.T) {
	s := patternsource.New(64, 36, 0)
	defer s.Close()

	for i := 0; i < 20; i++ {
		if err := s.Read(newFrame(t, 64, 36)); err != nil {
			t.Fatalf("frame %d: unexpected error: %v", i, err)
		}
	}
}

func TestSource_ConsecutiveFramesDiffer(t *testing.T) {
	s := patternsource.New(64, 36, 2)
	defer s.Close()

	a := newFrame(t, 64, 36)
	b := newFrame(t, 64, 36)
	if err := s.Read(a); err != nil {
		t.Fatal(err)
	}
	if err := s.Read(b); err != nil {
		t.Fatal(err)
	}

	if bytes.Equal(a.Planes[0], b.Planes[0]) {
		t.Error("expected consecutive frames to have different luma planes")
	}
}

func TestSource_Skip(t *testing.T) {
	s := patternsource.New(64, 36, 5)
	defer s.Close()

	if err := s.Skip(4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Read(newFrame(t, 64, 36)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Read(newFrame(t, 64, 36)); !errors.Is(err, ports.ErrEndOfStream) {
		t.Errorf("expected end of stream after skip, got %v", err)
	}
}

func TestSource_SkipBeyondRemaining(t *testing.T) {
	s := patternsource.New(64, 36, 2)
	defer s.Close()

	if err := s.Skip(3); err == nil {
		t.Error("expected an error skipping past the stream length")
	}
	if err := s.Skip(-1); err == nil {
		t.Error("expected an error for a negative skip")
	}
}

func TestSource_ScaledOutput(t *testing.T) {
	s := patternsource.New(320, 180, 1)
	defer s.Close()

	f := newFrame(t, 320, 180)
	if err := s.Read(f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The pattern is not a flat field at any resolution.
	first := f.Planes[0][0]
	uniform := true
	for _, v := range f.Planes[0] {
		if v != first {
			uniform = false
			break
		}
	}
	if uniform {
		t.Error("expected a non-uniform luma plane")
	}
}

package yuvsink_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/yuvenc/pkg/adapters/yuvsink"
	"github.com/user/yuvenc/pkg/ports"
)

func TestSink_WriteFrames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recon.yuv")
	s, err := yuvsink.Open(path)
	if err != nil {
		t.Fatal(err)
	}

	var want bytes.Buffer
	for i := 0; i < 2; i++ {
		f := &ports.Frame{
			Width:  4,
			Height: 4,
			Planes: [3][]byte{
				bytes.Repeat([]byte{byte(i)}, 16),
				bytes.Repeat([]byte{byte(i) + 100}, 4),
				bytes.Repeat([]byte{byte(i) + 200}, 4),
			},
		}
		if err := s.WriteFrame(f); err != nil {
			t.Fatalf("frame %d: unexpected error: %v", i, err)
		}
		for _, plane := range f.Planes {
			want.Write(plane)
		}
	}

	if err := s.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want.Bytes()) {
		t.Errorf("expected %d bytes of planar output, got %d", want.Len(), len(got))
	}
}

func TestSink_CloseIdempotent(t *testing.T) {
	s, err := yuvsink.Open(filepath.Join(t.TempDir(), "recon.yuv"))
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second close must be a no-op, got %v", err)
	}
}

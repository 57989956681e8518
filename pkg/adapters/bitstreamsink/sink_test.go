package bitstreamsink_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/yuvenc/pkg/adapters/bitstreamsink"
	"github.com/user/yuvenc/pkg/adapters/logger"
)

func TestSink_WriteAndClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.hevc")
	s, err := bitstreamsink.Open(path, logger.NewNoop())
	if err != nil {
		t.Fatal(err)
	}

	chunks := [][]byte{{0, 0, 0, 1, 0x40}, {0xde, 0xad}, {0xbe, 0xef}}
	var want bytes.Buffer
	for _, c := range chunks {
		n, err := s.Write(c)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != len(c) {
			t.Fatalf("expected %d bytes written, got %d", len(c), n)
		}
		want.Write(c)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want.Bytes()) {
		t.Errorf("expected file content %x, got %x", want.Bytes(), got)
	}
}

func TestSink_CloseIdempotent(t *testing.T) {
	s, err := bitstreamsink.Open(filepath.Join(t.TempDir(), "out.hevc"), logger.NewNoop())
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

func TestSink_OpenBadPath(t *testing.T) {
	if _, err := bitstreamsink.Open(filepath.Join(t.TempDir(), "no", "such", "dir", "out.hevc"), logger.NewNoop()); err == nil {
		t.Error("expected an error creating a file in a missing directory")
	}
}

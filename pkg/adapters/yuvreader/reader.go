// Package yuvreader reads raw planar YUV 4:2:0 frames from a file or
// standard input.
package yuvreader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/user/yuvenc/pkg/ports"
)

var (
	// ErrShortSkip is returned when the input holds fewer frames than a
	// requested skip.
	ErrShortSkip = errors.New("yuvreader: input shorter than requested skip")

	// ErrSkipAfterRead is returned when Skip is called once reading has
	// started.
	ErrSkipAfterRead = errors.New("yuvreader: skip must precede the first read")

	// ErrTruncatedFrame is returned when the input ends in the middle
	// of a frame.
	ErrTruncatedFrame = errors.New("yuvreader: truncated frame")
)

// Reader is a ports.FrameSource over a raw YUV byte stream.
type Reader struct {
	name    string
	file    *os.File
	stdin   bool
	width   int
	height  int
	started bool
}

// Open opens the named file, or standard input when name is "-".
func Open(name string, width, height int) (*Reader, error) {
	r := &Reader{name: name, width: width, height: height}
	if name == "-" {
		r.file = os.Stdin
		r.stdin = true
		return r, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	r.file = f
	return r, nil
}

// Read fills f with the next frame. A clean end exactly on a frame
// boundary yields ports.ErrEndOfStream; ending mid-frame is a read
// failure.
func (r *Reader) Read(f *ports.Frame) error {
	r.started = true
	for i, plane := range f.Planes {
		if _, err := io.ReadFull(r.file, plane); err != nil {
			if i == 0 && err == io.EOF {
				return ports.ErrEndOfStream
			}
			return fmt.Errorf("%w: %v", ErrTruncatedFrame, err)
		}
	}
	return nil
}

// Skip advances past n frames. Seekable inputs seek; standard input is
// consumed and discarded. Either way the skip fails when the input is
// shorter than n frames.
func (r *Reader) Skip(n int) error {
	if r.started {
		return ErrSkipAfterRead
	}
	if n <= 0 {
		return nil
	}
	total := int64(ports.FrameBytes(r.width, r.height)) * int64(n)

	if !r.stdin {
		info, err := r.file.Stat()
		if err == nil && info.Mode().IsRegular() && info.Size() < total {
			return fmt.Errorf("%w: need %d bytes, have %d", ErrShortSkip, total, info.Size())
		}
		if _, err := r.file.Seek(total, io.SeekCurrent); err != nil {
			return fmt.Errorf("seek input: %w", err)
		}
		return nil
	}

	if _, err := io.CopyN(io.Discard, r.file, total); err != nil {
		return fmt.Errorf("%w: %v", ErrShortSkip, err)
	}
	return nil
}

// Close closes the underlying file. Standard input is left open.
func (r *Reader) Close() error {
	if r.stdin {
		return nil
	}
	return r.file.Close()
}

var _ ports.FrameSource = (*Reader)(nil)

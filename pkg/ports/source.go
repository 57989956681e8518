package ports

import "errors"

// ErrEndOfStream is returned by FrameSource.Read when the source is
// cleanly exhausted. Any other error is a read failure, which ends the
// stream for control-flow purposes but is reported distinctly.
var ErrEndOfStream = errors.New("ports: end of stream")

// FrameSource supplies raw frames on demand.
type FrameSource interface {
	// Read fills f with the next frame. After ErrEndOfStream or a read
	// failure the source must not be read again without reopening.
	Read(f *Frame) error

	// Skip advances past n frames. It must be called before the first
	// Read, at most once, and fails when the source cannot honor the
	// skip (for example, input shorter than requested).
	Skip(n int) error

	// Close releases the underlying input.
	Close() error
}

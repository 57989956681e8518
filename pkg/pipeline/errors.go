package pipeline

import "errors"

var (
	// ErrFrameAlloc is returned when a work buffer for a pulled frame
	// cannot be obtained. Unlike a source read failure this is fatal.
	ErrFrameAlloc = errors.New("pipeline: frame allocation failed")

	// ErrSubmit is returned when the engine rejects a frame submission.
	ErrSubmit = errors.New("pipeline: engine submit failed")

	// ErrSinkWrite is returned when writing a compressed unit to the
	// bitstream sink fails.
	ErrSinkWrite = errors.New("pipeline: bitstream write failed")
)

package kvazaar

import "errors"

var (
	// ErrOpenFailed is returned when the encoder cannot be opened with
	// the given configuration.
	ErrOpenFailed = errors.New("kvazaar: failed to open encoder")

	// ErrClosed is returned when a handle is used after Close.
	ErrClosed = errors.New("kvazaar: encoder closed")

	// ErrPictureAlloc is returned when an input picture cannot be
	// allocated for submission.
	ErrPictureAlloc = errors.New("kvazaar: failed to allocate picture")

	// ErrEncodeFailed is returned when the encoder rejects a frame.
	ErrEncodeFailed = errors.New("kvazaar: encoding failed")
)

package pipeline

import (
	"fmt"

	"github.com/user/yuvenc/pkg/ports"
)

// BufferAllocator allocates plain in-memory YUV 4:2:0 work buffers.
type BufferAllocator struct{}

// New returns a frame with freshly allocated planes.
func (BufferAllocator) New(width, height int) (*ports.Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("pipeline: invalid frame size %dx%d", width, height)
	}
	chroma := (width / 2) * (height / 2)
	return &ports.Frame{
		Width:  width,
		Height: height,
		Planes: [3][]byte{
			make([]byte, width*height),
			make([]byte, chroma),
			make([]byte, chroma),
		},
	}, nil
}

var _ ports.FrameAllocator = BufferAllocator{}

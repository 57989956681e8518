package ports

// Frame is a single raw picture in planar YUV 4:2:0, 8 bits per sample.
// A frame is owned by exactly one component at a time: the allocator hands
// it to the driver, the driver hands it to the engine at submission, and
// the engine takes its own reference, so the driver may recycle the frame
// immediately after Submit returns.
type Frame struct {
	Width  int
	Height int

	// Y, Cb, Cr plane data. The luma plane is Width*Height bytes, the two
	// chroma planes are (Width/2)*(Height/2) bytes each.
	Planes [3][]byte

	// PTS is the presentation order index assigned at submission.
	PTS int64
}

// FrameBytes returns the total byte size of one YUV 4:2:0 frame.
func FrameBytes(width, height int) int {
	return width*height + 2*(width/2)*(height/2)
}

// FrameAllocator obtains work buffers for pulled frames. Allocation
// failure is fatal to a run, unlike a source read failure.
type FrameAllocator interface {
	// New returns a frame with all three planes sized for the given
	// dimensions.
	New(width, height int) (*Frame, error)
}

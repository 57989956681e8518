package ports

// BitstreamSink is the append-only byte sink for encoded output. Write
// failures are fatal to the run.
type BitstreamSink interface {
	// Write appends p to the bitstream.
	Write(p []byte) (int, error)

	// Close flushes and releases the sink. When the sink is standard
	// output, Close must not close the process stream.
	Close() error
}

// ReconSink receives reconstructed pictures for debug inspection. It is
// independently optional; its absence must not affect the primary
// bitstream in any way.
type ReconSink interface {
	// WriteFrame appends one reconstructed frame as raw YUV.
	WriteFrame(f *Frame) error

	// Close flushes and releases the sink.
	Close() error
}

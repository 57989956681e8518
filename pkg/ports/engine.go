package ports

// CompressedUnit is one encoded output corresponding to exactly one
// previously submitted frame. The engine may buffer several frames
// internally before emitting the first unit, and emission order is the
// engine's to choose.
type CompressedUnit struct {
	// Payload is the encoded byte stream for this frame. The engine may
	// prepend parameter sets to the first unit it emits.
	Payload []byte

	// Bits is the payload size in bits.
	Bits uint64

	// PSNR holds per-plane quality metrics (Y, Cb, Cr) in dB.
	PSNR [3]float64

	// POC is the picture order count reported by the engine.
	POC int32

	// QP is the quantization parameter the engine used for this frame.
	QP int

	// Recon optionally carries the reconstructed picture for debug
	// output. Nil when the engine does not expose reconstruction.
	Recon *Frame
}

// EngineConfig carries the encoding parameters an engine needs at open.
type EngineConfig struct {
	Width       int
	Height      int
	FPSNum      int
	FPSDenom    int
	QP          int // Base quantization parameter
	Bitrate     int // Target bitrate in bps; 0 selects constant-QP mode
	IntraPeriod int // Distance between intra frames; 0 = only the first
	Threads     int // Engine worker threads; 0 lets the engine decide
}

// Engine opens engine handles. Implementations wrap a concrete codec.
type Engine interface {
	// Open allocates all internal pipeline state for one encoding run.
	Open(cfg EngineConfig) (EngineHandle, error)
}

// EngineHandle is an opaque pipelined transformer with a strict
// lifecycle: open, any interleaving of Submit and Drain, then Close.
// Close is mandatory on every exit path. Submit and Drain may block
// until the engine can accept or produce work; they are the only
// suspension points the driver observes.
type EngineHandle interface {
	// Submit hands one raw frame to the engine. It may synchronously
	// return a compressed unit for some earlier frame, or nil when the
	// pipeline is still filling. A non-nil error is fatal to the run.
	Submit(f *Frame) (*CompressedUnit, error)

	// Drain requests buffered output without submitting new input. It
	// returns (unit, true) when a unit is available, (nil, true) when
	// the engine made progress but has nothing to emit yet, and
	// (nil, false) once no further output is pending.
	Drain() (*CompressedUnit, bool)

	// Close releases all internal engine resources. Safe to call after
	// a failed Submit.
	Close() error
}

// Package stats accumulates per-unit size and quality metrics for one
// encoding run, independent of how many frames the engine buffers.
package stats

import (
	"math"

	"github.com/user/yuvenc/pkg/ports"
)

// Running is a run-scoped accumulator. Frames submitted and frames
// completed are monotonic, with completed ≤ submitted at all times;
// they are equal once draining resolves all outstanding pipelined work.
type Running struct {
	framesSubmitted uint64
	framesCompleted uint64
	totalBits       uint64
	psnrSum         [3]float64
}

// NewRunning creates an empty accumulator.
func NewRunning() *Running {
	return &Running{}
}

// NoteSubmitted counts one frame handed to the engine.
func (r *Running) NoteSubmitted() {
	r.framesSubmitted++
}

// Record accumulates one emitted compressed unit. It is purely
// additive and is called exactly once per unit, whether the unit arose
// during feeding or draining.
func (r *Running) Record(u *ports.CompressedUnit) {
	r.framesCompleted++
	r.totalBits += u.Bits
	r.psnrSum[0] += u.PSNR[0]
	r.psnrSum[1] += u.PSNR[1]
	r.psnrSum[2] += u.PSNR[2]
}

// FramesSubmitted returns the number of frames handed to the engine.
func (r *Running) FramesSubmitted() uint64 {
	return r.framesSubmitted
}

// FramesCompleted returns the number of compressed units recorded.
func (r *Running) FramesCompleted() uint64 {
	return r.framesCompleted
}

// InFlight returns the number of submitted frames the engine has not
// yet emitted output for.
func (r *Running) InFlight() uint64 {
	return r.framesSubmitted - r.framesCompleted
}

// TotalBits returns the accumulated output size in bits.
func (r *Running) TotalBits() uint64 {
	return r.totalBits
}

// Summary is the finalized result of a run.
type Summary struct {
	FramesSubmitted uint64
	FramesCompleted uint64
	TotalBits       uint64

	// AveragePSNR holds per-plane mean quality in dB. With zero
	// completed frames the averages are NaN; formatters render that as
	// undefined rather than dividing by zero downstream.
	AveragePSNR [3]float64
}

// Finalize computes the summary. Safe with zero completed frames.
func (r *Running) Finalize() Summary {
	s := Summary{
		FramesSubmitted: r.framesSubmitted,
		FramesCompleted: r.framesCompleted,
		TotalBits:       r.totalBits,
	}
	if r.framesCompleted == 0 {
		s.AveragePSNR = [3]float64{math.NaN(), math.NaN(), math.NaN()}
		return s
	}
	n := float64(r.framesCompleted)
	s.AveragePSNR = [3]float64{r.psnrSum[0] / n, r.psnrSum[1] / n, r.psnrSum[2] / n}
	return s
}

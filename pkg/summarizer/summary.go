// Package summarizer builds the human-readable run report printed to
// the diagnostic stream after an encoding run.
package summarizer

import (
	"time"

	"github.com/user/yuvenc/pkg/stats"
)

// Report contains everything collected during one encoding run.
type Report struct {
	GeneratedAt time.Time

	// Input and output names as given on the command line ("-" for the
	// standard streams).
	Input  string
	Output string

	// Coded frame dimensions.
	Width  int
	Height int

	// Stats is the finalized accumulator state.
	Stats stats.Summary

	// Truncated is set when feeding ended on a source read failure
	// rather than a clean end of stream.
	Truncated bool

	// EncodingWall and EncodingCPU cover the feed/drain phases only;
	// TotalCPU covers the whole process.
	EncodingWall time.Duration
	EncodingCPU  time.Duration
	TotalCPU     time.Duration
}

// FPS returns the encoding throughput in frames per second.
func (r *Report) FPS() float64 {
	if r.EncodingWall <= 0 {
		return 0
	}
	return float64(r.Stats.FramesCompleted) / r.EncodingWall.Seconds()
}

// CPUUsage returns encoding CPU time over wall time as a percentage.
func (r *Report) CPUUsage() float64 {
	if r.EncodingWall <= 0 {
		return 0
	}
	return r.EncodingCPU.Seconds() / r.EncodingWall.Seconds() * 100
}

// Builder provides a fluent interface for assembling a Report.
type Builder struct {
	report *Report
}

// NewBuilder creates a Builder with the current timestamp.
func NewBuilder() *Builder {
	return &Builder{report: &Report{GeneratedAt: time.Now()}}
}

// WithIO sets the input and output names.
func (b *Builder) WithIO(input, output string) *Builder {
	b.report.Input = input
	b.report.Output = output
	return b
}

// WithDimensions sets the coded frame dimensions.
func (b *Builder) WithDimensions(width, height int) *Builder {
	b.report.Width = width
	b.report.Height = height
	return b
}

// WithStats sets the finalized run statistics.
func (b *Builder) WithStats(s stats.Summary, truncated bool) *Builder {
	b.report.Stats = s
	b.report.Truncated = truncated
	return b
}

// WithTiming sets the timing measurements.
func (b *Builder) WithTiming(encodingWall, encodingCPU, totalCPU time.Duration) *Builder {
	b.report.EncodingWall = encodingWall
	b.report.EncodingCPU = encodingCPU
	b.report.TotalCPU = totalCPU
	return b
}

// Build returns the assembled Report.
func (b *Builder) Build() *Report {
	return b.report
}

package summarizer

import (
	"fmt"
	"math"
	"strings"
)

// Formatter converts a Report to a formatted string.
type Formatter interface {
	Format(report *Report) string
}

// FormatFunc is a function adapter for the Formatter interface.
type FormatFunc func(report *Report) string

// Format implements the Formatter interface.
func (f FormatFunc) Format(report *Report) string {
	return f(report)
}

// TextFormatter renders the classic encoder statistics block.
type TextFormatter struct{}

// NewTextFormatter creates a TextFormatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Format renders the report as plain text.
func (f *TextFormatter) Format(r *Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, " Processed %d frames, %10d bits AVG PSNR: %s %s %s\n",
		r.Stats.FramesCompleted, r.Stats.TotalBits,
		psnrValue(r.Stats.AveragePSNR[0]),
		psnrValue(r.Stats.AveragePSNR[1]),
		psnrValue(r.Stats.AveragePSNR[2]))
	if r.Truncated {
		fmt.Fprintf(&b, " Input ended on a read failure after %d frames.\n",
			r.Stats.FramesSubmitted)
	}
	fmt.Fprintf(&b, " Total CPU time: %.3f s.\n", r.TotalCPU.Seconds())
	fmt.Fprintf(&b, " Encoding time: %.3f s.\n", r.EncodingCPU.Seconds())
	fmt.Fprintf(&b, " Encoding wall time: %.3f s.\n", r.EncodingWall.Seconds())
	fmt.Fprintf(&b, " Encoding CPU usage: %.2f%%\n", r.CPUUsage())
	fmt.Fprintf(&b, " FPS: %.2f\n", r.FPS())

	return b.String()
}

// psnrValue renders one average, or "-" when no frame completed and the
// mean is undefined.
func psnrValue(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%2.4f", v)
}

var _ Formatter = (*TextFormatter)(nil)

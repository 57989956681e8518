// Package patternsource generates synthetic test-pattern frames, for
// exercising an encoder without any input material.
package patternsource

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"github.com/user/yuvenc/pkg/ports"
	xdraw "golang.org/x/image/draw"
)

// Base render resolution. Frames are drawn here and scaled to the
// target size, so bar proportions and text stay constant regardless of
// the output dimensions.
const (
	baseWidth  = 640
	baseHeight = 360
)

// barColors are the classic color-bar hues, left to right.
var barColors = [][3]float64{
	{0.75, 0.75, 0.75},
	{0.75, 0.75, 0},
	{0, 0.75, 0.75},
	{0, 0.75, 0},
	{0.75, 0, 0.75},
	{0.75, 0, 0},
	{0, 0, 0.75},
}

// Source is a ports.FrameSource producing moving color bars with a
// frame counter.
type Source struct {
	width  int
	height int
	frames int // 0 = unlimited
	next   int
}

// New creates a pattern source emitting frames frames, or an unbounded
// stream when frames is 0.
func New(width, height, frames int) *Source {
	return &Source{width: width, height: height, frames: frames}
}

// Read renders the next pattern frame into f.
func (s *Source) Read(f *ports.Frame) error {
	if s.frames > 0 && s.next >= s.frames {
		return ports.ErrEndOfStream
	}
	rgbaToYUV420(s.render(s.next), f)
	s.next++
	return nil
}

// Skip advances the pattern by n frames.
func (s *Source) Skip(n int) error {
	if n < 0 {
		return fmt.Errorf("patternsource: negative skip %d", n)
	}
	if s.frames > 0 && n > s.frames-s.next {
		return fmt.Errorf("patternsource: skip %d beyond %d remaining frames", n, s.frames-s.next)
	}
	s.next += n
	return nil
}

// Close is a no-op; the source holds no external resources.
func (s *Source) Close() error {
	return nil
}

// render draws frame n at the base resolution and scales it to the
// target dimensions.
func (s *Source) render(n int) *image.RGBA {
	dc := gg.NewContext(baseWidth, baseHeight)

	dc.SetRGB(0.08, 0.08, 0.08)
	dc.Clear()

	// Bars drift two pixels per frame so consecutive frames differ.
	barWidth := float64(baseWidth) / float64(len(barColors))
	shift := float64((n * 2) % baseWidth)
	for i, c := range barColors {
		x := float64(i)*barWidth + shift
		if x >= baseWidth {
			x -= baseWidth
		}
		dc.SetRGB(c[0], c[1], c[2])
		dc.DrawRectangle(x, 0, barWidth, float64(baseHeight)*0.75)
		dc.Fill()
		// Wraparound remainder of a bar that ran off the right edge.
		if x+barWidth > baseWidth {
			dc.DrawRectangle(x-baseWidth, 0, barWidth, float64(baseHeight)*0.75)
			dc.Fill()
		}
	}

	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(fmt.Sprintf("frame %d", n),
		float64(baseWidth)/2, float64(baseHeight)*0.875, 0.5, 0.5)

	src := dc.Image()
	if s.width == baseWidth && s.height == baseHeight {
		if rgba, ok := src.(*image.RGBA); ok {
			return rgba
		}
	}
	dst := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

var _ ports.FrameSource = (*Source)(nil)

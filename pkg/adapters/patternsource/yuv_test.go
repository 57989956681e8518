package patternsource

import (
	"image"
	"image/color"
	"testing"

	"github.com/user/yuvenc/pkg/ports"
)

func solidRGBA(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestRGBAToYUV420_SolidColor(t *testing.T) {
	tests := []struct {
		name string
		rgb  color.RGBA
	}{
		{"white", color.RGBA{255, 255, 255, 255}},
		{"black", color.RGBA{0, 0, 0, 255}},
		{"red", color.RGBA{255, 0, 0, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &ports.Frame{
				Width:  8,
				Height: 8,
				Planes: [3][]byte{make([]byte, 64), make([]byte, 16), make([]byte, 16)},
			}
			rgbaToYUV420(solidRGBA(8, 8, tt.rgb), f)

			wantY, wantCb, wantCr := color.RGBToYCbCr(tt.rgb.R, tt.rgb.G, tt.rgb.B)
			for i, v := range f.Planes[0] {
				if v != wantY {
					t.Fatalf("luma sample %d: expected %d, got %d", i, wantY, v)
				}
			}
			for i := range f.Planes[1] {
				if f.Planes[1][i] != wantCb || f.Planes[2][i] != wantCr {
					t.Fatalf("chroma sample %d: expected %d/%d, got %d/%d",
						i, wantCb, wantCr, f.Planes[1][i], f.Planes[2][i])
				}
			}
		})
	}
}

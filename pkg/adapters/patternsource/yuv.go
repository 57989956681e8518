package patternsource

import (
	"image"
	"image/color"

	"github.com/user/yuvenc/pkg/ports"
)

// rgbaToYUV420 converts an RGBA image into the frame's planar YUV
// 4:2:0 buffers. Chroma samples average each 2x2 pixel block.
func rgbaToYUV420(img *image.RGBA, f *ports.Frame) {
	width, height := f.Width, f.Height

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*img.Stride + x*4
			lum, _, _ := color.RGBToYCbCr(img.Pix[idx], img.Pix[idx+1], img.Pix[idx+2])
			f.Planes[0][y*width+x] = lum
		}
	}

	chromaWidth := width / 2
	for cy := 0; cy < height/2; cy++ {
		for cx := 0; cx < chromaWidth; cx++ {
			var cbSum, crSum int
			for dy := 0; dy < 2; dy++ {
				for dx := 0; dx < 2; dx++ {
					idx := (cy*2+dy)*img.Stride + (cx*2+dx)*4
					_, cb, cr := color.RGBToYCbCr(img.Pix[idx], img.Pix[idx+1], img.Pix[idx+2])
					cbSum += int(cb)
					crSum += int(cr)
				}
			}
			f.Planes[1][cy*chromaWidth+cx] = uint8(cbSum / 4)
			f.Planes[2][cy*chromaWidth+cx] = uint8(crSum / 4)
		}
	}
}

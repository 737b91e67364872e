package raster

import (
	"image"
	"math"
)

const (
	srgbGamma = 2.2
	invGamma  = 1.0 / srgbGamma
)

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, srgbGamma)
	}
}

// ACESTonemap applies ACES Filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

// ToNRGBA encodes the buffer to 8-bit sRGB. With tonemap set, colors go
// through ACES first; otherwise they are clamped to [0, 1].
func (fb *FrameBuffer) ToNRGBA(tonemap bool) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	n := fb.Width * fb.Height
	for i := 0; i < n; i++ {
		src := fb.Color[i*4 : i*4+4]
		dst := img.Pix[i*4 : i*4+4]
		for k := 0; k < 3; k++ {
			c := math.Max(src[k], 0)
			if tonemap {
				c = ACESTonemap(c)
			}
			if c > 1 {
				c = 1
			}
			dst[k] = clamp255(math.Pow(c, invGamma) * 255)
		}
		dst[3] = clamp255(src[3] * 255)
	}
	return img
}

func clamp255(v float64) uint8 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

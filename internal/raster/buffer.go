package raster

import (
	"image"
	"math"
)

// FrameBuffer is a linear-light render target with per-pixel scene depth,
// stored as flat slices for cache locality.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []float64 // RGBA interleaved, linear, len = W*H*4
	Depth  []float64 // distance along the view ray, len = W*H, +Inf when empty
}

// NewFrameBuffer allocates a transparent black buffer with +Inf depth.
func NewFrameBuffer(w, h int) *FrameBuffer {
	n := w * h
	depth := make([]float64, n)
	for i := range depth {
		depth[i] = math.Inf(1)
	}
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]float64, n*4),
		Depth:  depth,
	}
}

// At returns the RGBA value of pixel (x, y).
func (fb *FrameBuffer) At(x, y int) [4]float64 {
	i := (y*fb.Width + x) * 4
	return [4]float64{fb.Color[i], fb.Color[i+1], fb.Color[i+2], fb.Color[i+3]}
}

// Set writes the RGBA value of pixel (x, y).
func (fb *FrameBuffer) Set(x, y int, c [4]float64) {
	i := (y*fb.Width + x) * 4
	fb.Color[i], fb.Color[i+1], fb.Color[i+2], fb.Color[i+3] = c[0], c[1], c[2], c[3]
}

// DepthAt returns the scene depth of pixel (x, y).
func (fb *FrameBuffer) DepthAt(x, y int) float64 {
	return fb.Depth[y*fb.Width+x]
}

// Fill sets every pixel to c and clears depth.
func (fb *FrameBuffer) Fill(c [4]float64) {
	for i := 0; i < len(fb.Color); i += 4 {
		fb.Color[i], fb.Color[i+1], fb.Color[i+2], fb.Color[i+3] = c[0], c[1], c[2], c[3]
	}
	for i := range fb.Depth {
		fb.Depth[i] = math.Inf(1)
	}
}

// CopyTo blits fb into dst. Both buffers must have the same size.
func (fb *FrameBuffer) CopyTo(dst *FrameBuffer) {
	copy(dst.Color, fb.Color)
	copy(dst.Depth, fb.Depth)
}

// Clone returns a deep copy.
func (fb *FrameBuffer) Clone() *FrameBuffer {
	c := &FrameBuffer{
		Width:  fb.Width,
		Height: fb.Height,
		Color:  make([]float64, len(fb.Color)),
		Depth:  make([]float64, len(fb.Depth)),
	}
	fb.CopyTo(c)
	return c
}

// FromImage resamples img to fill fb, decoding sRGB to linear.
func (fb *FrameBuffer) FromImage(img *image.NRGBA) {
	w, h := fb.Width, fb.Height
	for y := 0; y < h; y++ {
		v := (float64(y) + 0.5) / float64(h)
		for x := 0; x < w; x++ {
			u := (float64(x) + 0.5) / float64(w)
			r, g, b, a := SampleTexture(img, u, v)
			fb.Set(x, y, [4]float64{srgbToLinear[r], srgbToLinear[g], srgbToLinear[b], float64(a) / 255})
		}
	}
}

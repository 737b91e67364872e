package raster

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestNewFrameBufferEmptyDepth(t *testing.T) {
	fb := NewFrameBuffer(3, 2)
	if len(fb.Color) != 24 || len(fb.Depth) != 6 {
		t.Fatalf("sizes %d/%d", len(fb.Color), len(fb.Depth))
	}
	for i, d := range fb.Depth {
		if !math.IsInf(d, 1) {
			t.Fatalf("depth[%d] = %g", i, d)
		}
	}
}

func TestSetAtAndClone(t *testing.T) {
	fb := NewFrameBuffer(2, 2)
	fb.Set(1, 1, [4]float64{0.1, 0.2, 0.3, 1})
	c := fb.Clone()
	fb.Set(1, 1, [4]float64{})
	if got := c.At(1, 1); got != [4]float64{0.1, 0.2, 0.3, 1} {
		t.Errorf("clone pixel = %v", got)
	}
}

func TestImageRoundTrip(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 0, A: 255})

	fb := NewFrameBuffer(1, 1)
	fb.FromImage(img)
	out := fb.ToNRGBA(false)
	if got := out.NRGBAAt(0, 0); got != (color.NRGBA{R: 200, G: 100, B: 0, A: 255}) {
		t.Errorf("round trip = %v", got)
	}
}

func TestToNRGBAClampsHDR(t *testing.T) {
	fb := NewFrameBuffer(1, 1)
	fb.Fill([4]float64{4, -1, math.NaN(), 1})
	px := fb.ToNRGBA(false).NRGBAAt(0, 0)
	if px.R != 255 || px.G != 0 || px.A != 255 {
		t.Errorf("pixel = %v", px)
	}
	mapped := fb.ToNRGBA(true).NRGBAAt(0, 0)
	if mapped.R == 0 || mapped.R == 255 {
		t.Errorf("tonemapped = %v", mapped)
	}
}

func TestACESTonemapMonotonic(t *testing.T) {
	prev := ACESTonemap(0)
	for x := 0.1; x < 10; x += 0.1 {
		y := ACESTonemap(x)
		if y < prev {
			t.Fatalf("ACES not monotonic at %g", x)
		}
		prev = y
	}
}

// Package quad emits the full-screen quad that carries frustum corners to
// every pixel, and interpolates the per-vertex rays across the target.
package quad

import (
	"errors"
	"math"

	"raymarch-renderer/internal/mathutil"
)

var ErrQuadLayout = errors.New("quad: vertices do not cover the unit square")

// Vertex is one quad corner. Position.Z carries the frustum row index.
type Vertex struct {
	UV       [2]float64
	Position mathutil.Vec3
}

// FullScreen returns the quad in the fixed order the frustum matrix rows use:
// top-left, top-right, bottom-right, bottom-left.
func FullScreen() [4]Vertex {
	return [4]Vertex{
		{UV: [2]float64{0, 1}, Position: mathutil.Vec3{0, 1, 0}}, // topLeft
		{UV: [2]float64{1, 1}, Position: mathutil.Vec3{1, 1, 1}}, // topRight
		{UV: [2]float64{1, 0}, Position: mathutil.Vec3{1, 0, 2}}, // bottomRight
		{UV: [2]float64{0, 0}, Position: mathutil.Vec3{0, 0, 3}}, // bottomLeft
	}
}

// Rays runs the vertex stage: each vertex looks up its frustum row, rescales
// it to unit depth and rotates it into world space.
func Rays(verts [4]Vertex, frustum, cameraToWorld mathutil.Mat4) [4]mathutil.Vec3 {
	var rays [4]mathutil.Vec3
	for i, v := range verts {
		row := int(v.Position[2])
		if row < 0 || row > 3 {
			row = i
		}
		r := frustum.Row(row).XYZ()
		if z := math.Abs(r[2]); z > 0 {
			r = r.Scale(1 / z)
		}
		rays[i] = cameraToWorld.MulDir(r)
	}
	return rays
}

// Draw calls fn once per pixel of a w×h target with the ray interpolated at
// the pixel centre. Row 0 is the top of the target (v = 1).
func Draw(w, h int, verts [4]Vertex, rays [4]mathutil.Vec3, fn func(x, y int, ray mathutil.Vec3)) error {
	tl, tr, br, bl := -1, -1, -1, -1
	for i, v := range verts {
		switch v.UV {
		case [2]float64{0, 1}:
			tl = i
		case [2]float64{1, 1}:
			tr = i
		case [2]float64{1, 0}:
			br = i
		case [2]float64{0, 0}:
			bl = i
		}
	}
	if tl < 0 || tr < 0 || br < 0 || bl < 0 {
		return ErrQuadLayout
	}

	invW := 1.0 / float64(w)
	invH := 1.0 / float64(h)
	for y := 0; y < h; y++ {
		v := 1 - (float64(y)+0.5)*invH
		for x := 0; x < w; x++ {
			u := (float64(x) + 0.5) * invW
			top := rays[tl].Lerp(rays[tr], u)
			bottom := rays[bl].Lerp(rays[br], u)
			fn(x, y, bottom.Lerp(top, v))
		}
	}
	return nil
}

// Package frustum computes the view-frustum corner directions used to
// generate one ray per pixel from a full-screen quad.
package frustum

import (
	"errors"
	"fmt"
	"math"

	"raymarch-renderer/internal/mathutil"
)

// Forward is the reference forward axis of the corner computation. Corners
// point along -Forward, which the camera-to-world transform maps onto the
// camera's viewing direction.
var Forward = mathutil.Vec3{0, 0, -1}

const (
	MinFieldOfView = 1.0
	MaxFieldOfView = 179.0
)

var (
	ErrFieldOfView = errors.New("frustum: field of view must be in (0, 180) degrees")
	ErrAspect      = errors.New("frustum: aspect must be positive")
)

// Intrinsics is the per-frame camera state the corners depend on.
type Intrinsics struct {
	FieldOfView float64 // vertical, degrees
	Aspect      float64 // width / height
}

// Validate reports intrinsics that would produce degenerate corners.
func (in Intrinsics) Validate() error {
	if !(in.FieldOfView > 0 && in.FieldOfView < 180) {
		return fmt.Errorf("%w: got %g", ErrFieldOfView, in.FieldOfView)
	}
	if !(in.Aspect > 0) || math.IsInf(in.Aspect, 0) {
		return fmt.Errorf("%w: got %g", ErrAspect, in.Aspect)
	}
	return nil
}

// Clamp limits the field of view to [MinFieldOfView, MaxFieldOfView].
func (in *Intrinsics) Clamp() {
	in.FieldOfView = mathutil.Clamp(in.FieldOfView, MinFieldOfView, MaxFieldOfView)
}

// Corners returns Compute(in.FieldOfView, in.Aspect).
func (in Intrinsics) Corners() Corners {
	return Compute(in.FieldOfView, in.Aspect)
}

// Corners holds the four frustum directions at unit depth in camera space.
type Corners struct {
	TopLeft     mathutil.Vec3
	TopRight    mathutil.Vec3
	BottomRight mathutil.Vec3
	BottomLeft  mathutil.Vec3
}

// Compute returns the frustum corners for a vertical field of view in degrees
// and a width/height aspect. Inputs are not validated: fov of 0 or 180, or a
// zero aspect, yields degenerate vectors.
func Compute(fieldOfView, aspect float64) Corners {
	scale := math.Tan((fieldOfView * 0.5) * (math.Pi / 180))

	up := mathutil.Vec3{0, 1, 0}.Scale(scale)
	right := mathutil.Vec3{1, 0, 0}.Scale(scale * aspect)
	back := Forward.Neg()

	return Corners{
		TopLeft:     back.Sub(right).Add(up),
		TopRight:    back.Add(right).Add(up),
		BottomRight: back.Add(right).Sub(up),
		BottomLeft:  back.Sub(right).Sub(up),
	}
}

// At returns corner i in the order TopLeft, TopRight, BottomRight, BottomLeft.
func (c Corners) At(i int) mathutil.Vec3 {
	switch i {
	case 0:
		return c.TopLeft
	case 1:
		return c.TopRight
	case 2:
		return c.BottomRight
	case 3:
		return c.BottomLeft
	}
	panic(fmt.Sprintf("frustum: corner index %d out of range", i))
}

// Matrix packs the corners as rows 0..3. The matrix is a transport container
// only; the fourth column is zero.
func (c Corners) Matrix() mathutil.Mat4 {
	var m mathutil.Mat4
	for i := 0; i < 4; i++ {
		v := c.At(i)
		m.SetRow(i, mathutil.Vec4{v[0], v[1], v[2], 0})
	}
	return m
}

// CornersFromMatrix is the inverse of Corners.Matrix.
func CornersFromMatrix(m mathutil.Mat4) Corners {
	return Corners{
		TopLeft:     m.Row(0).XYZ(),
		TopRight:    m.Row(1).XYZ(),
		BottomRight: m.Row(2).XYZ(),
		BottomLeft:  m.Row(3).XYZ(),
	}
}

// Package hook defines the per-frame render callback a camera runs its
// post-process filters through.
package hook

import (
	"raymarch-renderer/internal/frustum"
	"raymarch-renderer/internal/mathutil"
	"raymarch-renderer/internal/raster"
)

// Frame is the camera state injected into a hook for one rendered frame.
type Frame struct {
	Index         int
	Intrinsics    frustum.Intrinsics
	CameraToWorld mathutil.Mat4
}

// Position returns the camera's world position.
func (f Frame) Position() mathutil.Vec3 {
	return f.CameraToWorld.MulPoint(mathutil.Vec3{})
}

// Hook renders src into dst. src and dst have the same size and never alias.
type Hook interface {
	RenderImage(f Frame, src, dst *raster.FrameBuffer) error
}

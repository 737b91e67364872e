// Package camera holds the camera transform, its post-process render loop and
// the fly-through controller that drives it.
package camera

import "raymarch-renderer/internal/mathutil"

// Transform is a camera pose. Angles are degrees; positive pitch looks down,
// positive yaw turns right. Local +Z is the viewing direction.
type Transform struct {
	Position mathutil.Vec3 `json:"position"`
	Pitch    float64       `json:"pitch"`
	Yaw      float64       `json:"yaw"`
}

func (t Transform) Rotation() mathutil.Mat3 {
	return mathutil.EulerYXZ(t.Pitch, t.Yaw, 0)
}

// LocalToWorld is the camera-to-world matrix handed to render hooks.
func (t Transform) LocalToWorld() mathutil.Mat4 {
	return mathutil.FromMat3Translation(t.Rotation(), t.Position)
}

func (t Transform) Forward() mathutil.Vec3 {
	return t.Rotation().Column(2)
}

func (t Transform) Right() mathutil.Vec3 {
	return t.Rotation().Column(0)
}

// Up completes the right-handed basis: Right × Up = Forward.
func (t Transform) Up() mathutil.Vec3 {
	return t.Forward().Cross(t.Right())
}

// Translate moves the transform by a vector expressed in its local axes.
func (t *Transform) Translate(local mathutil.Vec3) {
	t.Position = t.Position.Add(t.Rotation().MulVec3(local))
}

// Package raymarch renders a signed-distance-field scene over a camera's
// source image by marching one ray per pixel.
package raymarch

import (
	"raymarch-renderer/internal/hook"
	"raymarch-renderer/internal/mathutil"
	"raymarch-renderer/internal/uniform"
)

// Settings is the effect's configuration. Ranges noted on fields are
// enforced by Clamp.
type Settings struct {
	// Setup
	MaxDistance   float64 `json:"max_distance"`
	MaxIterations int     `json:"max_iterations"` // [1, 300]
	Accuracy      float64 `json:"accuracy"`       // [0.001, 0.1]

	// Directional light. Without one the light points straight down.
	DirectionalLight bool          `json:"directional_light"`
	LightRotation    mathutil.Vec3 `json:"light_rotation"` // euler degrees
	LightColor       mathutil.Vec4 `json:"light_color"`
	LightIntensity   float64       `json:"light_intensity"`

	// Shadow
	ShadowIntensity float64    `json:"shadow_intensity"` // [0, 4]
	ShadowDistance  [2]float64 `json:"shadow_distance"`  // min, max
	ShadowPenumbra  float64    `json:"shadow_penumbra"`  // [1, 128]

	// Ambient occlusion
	AoStepSize   float64 `json:"ao_step_size"`  // [0.01, 10]
	AoIterations int     `json:"ao_iterations"` // [1, 5]
	AoIntensity  float64 `json:"ao_intensity"`  // [0, 1]

	// Signed distance field
	MainColor             mathutil.Vec4 `json:"main_color"`
	Sphere1               mathutil.Vec4 `json:"sphere1"` // xyz centre, w radius
	Box                   mathutil.Vec4 `json:"box"`     // xyz centre, w half extent
	BoxRound              float64       `json:"box_round"`
	BoxSphereSmooth       float64       `json:"box_sphere_smooth"`
	Sphere2               mathutil.Vec4 `json:"sphere2"`
	SphereIntersectSmooth float64       `json:"sphere_intersect_smooth"`
	ModInterval           mathutil.Vec3 `json:"mod_interval"` // 0 disables repetition on that axis
}

func DefaultSettings() Settings {
	return Settings{
		MaxDistance:   200,
		MaxIterations: 164,
		Accuracy:      0.01,

		DirectionalLight: true,
		LightRotation:    mathutil.Vec3{50, -30, 0},
		LightColor:       mathutil.Vec4{1, 0.96, 0.9, 1},
		LightIntensity:   1.2,

		ShadowIntensity: 1,
		ShadowDistance:  [2]float64{0.1, 50},
		ShadowPenumbra:  12,

		AoStepSize:   0.1,
		AoIterations: 3,
		AoIntensity:  0.25,

		MainColor:             mathutil.Vec4{0.85, 0.45, 0.25, 1},
		Sphere1:               mathutil.Vec4{0, 1.2, 0, 1.3},
		Box:                   mathutil.Vec4{0, 1.2, 0, 1},
		BoxRound:              0.2,
		BoxSphereSmooth:       0.3,
		Sphere2:               mathutil.Vec4{0, 1.2, 0, 1.55},
		SphereIntersectSmooth: 0.3,
	}
}

// Clamp forces every ranged field into its range.
func (s *Settings) Clamp() {
	if s.MaxIterations < 1 {
		s.MaxIterations = 1
	} else if s.MaxIterations > 300 {
		s.MaxIterations = 300
	}
	s.Accuracy = mathutil.Clamp(s.Accuracy, 0.001, 0.1)
	s.ShadowIntensity = mathutil.Clamp(s.ShadowIntensity, 0, 4)
	s.ShadowPenumbra = mathutil.Clamp(s.ShadowPenumbra, 1, 128)
	s.AoStepSize = mathutil.Clamp(s.AoStepSize, 0.01, 10)
	if s.AoIterations < 1 {
		s.AoIterations = 1
	} else if s.AoIterations > 5 {
		s.AoIterations = 5
	}
	s.AoIntensity = mathutil.Clamp(s.AoIntensity, 0, 1)
	if s.MaxDistance < 0 {
		s.MaxDistance = 0
	}
}

// LightDir returns the direction the light travels in world space.
func (s Settings) LightDir() mathutil.Vec3 {
	if !s.DirectionalLight {
		return mathutil.Vec3{0, -1, 0}
	}
	r := s.LightRotation
	return mathutil.EulerYXZ(r[0], r[1], r[2]).MulVec3(mathutil.Vec3{0, 0, 1})
}

// Uniform slot names.
const (
	uLightDir              = "_LightDir"
	uLightCol              = "_LightCol"
	uLightIntensity        = "_LightIntensity"
	uShadowIntensity       = "_ShadowIntensity"
	uShadowPenumbra        = "_ShadowPenumbra"
	uShadowDistance        = "_ShadowDistance"
	uCamFrustum            = "_CamFrustum"
	uCamToWorld            = "_CamToWorld"
	uMaxDistance           = "_maxDistance"
	uAccuracy              = "_Accuracy"
	uMaxIterations         = "_MaxIterations"
	uBoxRound              = "_boxround"
	uBoxSphereSmooth       = "_boxSphereSmooth"
	uSphereIntersectSmooth = "_sphereIntersectSmooth"
	uSphere1               = "_sphere1"
	uSphere2               = "_sphere2"
	uBox1                  = "_box1"
	uMainColor             = "_mainColor"
	uModInterval           = "_modInterval"
	uAoStepSize            = "_AoStepsize"
	uAoIntensity           = "_AoIntensity"
	uAoIterations          = "_AoIterations"
)

// Marshal writes the settings and the frame's camera state into b.
func (s Settings) Marshal(b *uniform.Block, f hook.Frame) {
	ld := s.LightDir()
	b.SetVector(uLightDir, mathutil.Vec4{ld[0], ld[1], ld[2], 0})
	b.SetColor(uLightCol, s.LightColor)
	b.SetFloat(uLightIntensity, s.LightIntensity)
	b.SetFloat(uShadowIntensity, s.ShadowIntensity)
	b.SetFloat(uShadowPenumbra, s.ShadowPenumbra)
	b.SetVector(uShadowDistance, mathutil.Vec4{s.ShadowDistance[0], s.ShadowDistance[1], 0, 0})
	b.SetMatrix(uCamFrustum, f.Intrinsics.Corners().Matrix())
	b.SetMatrix(uCamToWorld, f.CameraToWorld)
	b.SetFloat(uMaxDistance, s.MaxDistance)
	b.SetFloat(uAccuracy, s.Accuracy)
	b.SetInt(uMaxIterations, s.MaxIterations)
	b.SetFloat(uBoxRound, s.BoxRound)
	b.SetFloat(uBoxSphereSmooth, s.BoxSphereSmooth)
	b.SetFloat(uSphereIntersectSmooth, s.SphereIntersectSmooth)
	b.SetVector(uSphere1, s.Sphere1)
	b.SetVector(uSphere2, s.Sphere2)
	b.SetVector(uBox1, s.Box)
	b.SetColor(uMainColor, s.MainColor)
	mi := s.ModInterval
	b.SetVector(uModInterval, mathutil.Vec4{mi[0], mi[1], mi[2], 0})

	b.SetFloat(uAoStepSize, s.AoStepSize)
	b.SetFloat(uAoIntensity, s.AoIntensity)
	b.SetInt(uAoIterations, s.AoIterations)
}

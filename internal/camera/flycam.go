package camera

import (
	"raymarch-renderer/internal/mathutil"
)

const (
	minPitch = -90.0
	maxPitch = 90.0
)

// FlySettings tunes the fly controller.
type FlySettings struct {
	MouseSensitivity float64 `json:"mouse_sensitivity"`
	Speed            float64 `json:"speed"`
	ShiftMultiplier  float64 `json:"shift_multiplier"`
	MaxShift         float64 `json:"max_shift"`
}

func DefaultFlySettings() FlySettings {
	return FlySettings{
		MouseSensitivity: 2,
		Speed:            10,
		ShiftMultiplier:  25,
		MaxShift:         100,
	}
}

// Input is one frame of recorded controls. Axes are in [-1, 1].
type Input struct {
	MouseX     float64 `json:"mouse_x"`
	MouseY     float64 `json:"mouse_y"`
	Horizontal float64 `json:"horizontal"`
	Vertical   float64 `json:"vertical"`
	Sprint     bool    `json:"sprint"`
}

// FlyController integrates mouse look and WASD-style movement. Holding sprint
// accelerates the longer it is held; releasing it decays the boost.
type FlyController struct {
	Settings FlySettings

	totalRun float64
	lookUp   float64 // accumulated mouse Y, clamped
}

// NewFlyController starts from the pose of t so the first update does not
// snap the pitch.
func NewFlyController(s FlySettings, t Transform) *FlyController {
	return &FlyController{
		Settings: s,
		totalRun: 1,
		lookUp:   mathutil.Clamp(-t.Pitch, minPitch, maxPitch),
	}
}

// Update applies one frame of input over dt seconds.
func (c *FlyController) Update(t *Transform, in Input, dt float64) {
	t.Yaw += in.MouseX * c.Settings.MouseSensitivity
	c.lookUp += in.MouseY * c.Settings.MouseSensitivity
	c.lookUp = mathutil.Clamp(c.lookUp, minPitch, maxPitch)
	t.Pitch = -c.lookUp

	move := mathutil.Vec3{in.Horizontal, 0, in.Vertical}
	if in.Sprint {
		move = c.sprint(move, dt)
	} else {
		move = c.walk(move)
	}
	t.Translate(move.Scale(dt))
}

func (c *FlyController) sprint(move mathutil.Vec3, dt float64) mathutil.Vec3 {
	c.totalRun += dt
	move = move.Scale(c.totalRun * c.Settings.ShiftMultiplier)
	for i := range move {
		move[i] = mathutil.Clamp(move[i], -c.Settings.MaxShift, c.Settings.MaxShift)
	}
	return move
}

func (c *FlyController) walk(move mathutil.Vec3) mathutil.Vec3 {
	c.totalRun = mathutil.Clamp(c.totalRun*0.5, 1, 1000)
	return move.Scale(c.Settings.Speed)
}

// Boost returns the current sprint accumulator.
func (c *FlyController) Boost() float64 {
	return c.totalRun
}

package raymarch

import (
	"fmt"

	"raymarch-renderer/internal/frustum"
	"raymarch-renderer/internal/hook"
	"raymarch-renderer/internal/mathutil"
	"raymarch-renderer/internal/mirror"
	"raymarch-renderer/internal/raster"
	"raymarch-renderer/internal/uniform"
)

// Kind is the mirror kind of Effect.
const Kind = "raymarch"

// Effect is the raymarch post-process filter attached to a camera.
type Effect struct {
	Settings Settings

	program *Program
	enabled bool
}

// NewEffect checks the settings against the program's declared uniforms once.
// A nil program yields an effect that copies its source through unchanged.
func NewEffect(s Settings, p *Program) (*Effect, error) {
	if p != nil {
		b := uniform.NewBlock()
		s.Marshal(b, hook.Frame{
			Intrinsics:    frustum.Intrinsics{FieldOfView: 60, Aspect: 1},
			CameraToWorld: mathutil.Mat4Identity(),
		})
		if err := p.Schema().Check(b); err != nil {
			return nil, fmt.Errorf("raymarch: uniform schema: %w", err)
		}
	}
	return &Effect{Settings: s, program: p, enabled: true}, nil
}

func (e *Effect) RenderImage(f hook.Frame, src, dst *raster.FrameBuffer) error {
	if e.program == nil {
		src.CopyTo(dst)
		return nil
	}
	b := uniform.NewBlock()
	e.Settings.Marshal(b, f)
	return e.program.Draw(b, src, dst)
}

func (e *Effect) Kind() string      { return Kind }
func (e *Effect) Enabled() bool     { return e.enabled }
func (e *Effect) SetEnabled(b bool) { e.enabled = b }

func (e *Effect) CopyFrom(src mirror.Filter) error {
	s, ok := src.(*Effect)
	if !ok {
		return fmt.Errorf("raymarch: cannot copy from %s filter", src.Kind())
	}
	e.Settings = s.Settings
	e.program = s.program
	e.enabled = s.enabled
	return nil
}

func (e *Effect) Clone() mirror.Filter {
	c := *e
	return &c
}

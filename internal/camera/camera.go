package camera

import (
	"fmt"

	"raymarch-renderer/internal/frustum"
	"raymarch-renderer/internal/hook"
	"raymarch-renderer/internal/mirror"
	"raymarch-renderer/internal/raster"
)

// Camera renders its filter stack over a source image once per frame.
type Camera struct {
	Transform   Transform
	FieldOfView float64
	Width       int
	Height      int
	Filters     *mirror.Stack
}

func (c *Camera) Intrinsics() frustum.Intrinsics {
	return frustum.Intrinsics{
		FieldOfView: c.FieldOfView,
		Aspect:      float64(c.Width) / float64(c.Height),
	}
}

// Frame captures the camera state for frame index.
func (c *Camera) Frame(index int) hook.Frame {
	return hook.Frame{
		Index:         index,
		Intrinsics:    c.Intrinsics(),
		CameraToWorld: c.Transform.LocalToWorld(),
	}
}

// Render runs every enabled filter in order over src. src is not modified.
// With no enabled filter the result is a copy of src.
func (c *Camera) Render(index int, src *raster.FrameBuffer) (*raster.FrameBuffer, error) {
	if src.Width != c.Width || src.Height != c.Height {
		return nil, fmt.Errorf("camera: source %dx%d, camera %dx%d", src.Width, src.Height, c.Width, c.Height)
	}
	f := c.Frame(index)
	if err := f.Intrinsics.Validate(); err != nil {
		return nil, fmt.Errorf("camera: frame %d: %w", index, err)
	}

	cur := src.Clone()
	next := raster.NewFrameBuffer(c.Width, c.Height)
	for i, flt := range c.Filters.Filters() {
		if !flt.Enabled() {
			continue
		}
		if err := flt.RenderImage(f, cur, next); err != nil {
			return nil, fmt.Errorf("camera: frame %d: filter %d (%s): %w", index, i, flt.Kind(), err)
		}
		cur, next = next, cur
	}
	return cur, nil
}

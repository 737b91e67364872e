package raymarch

import (
	"raymarch-renderer/internal/hook"
	"raymarch-renderer/internal/mirror"
	"raymarch-renderer/internal/raster"
)

type otherFilter struct{}

func (otherFilter) RenderImage(hook.Frame, *raster.FrameBuffer, *raster.FrameBuffer) error { return nil }
func (otherFilter) Kind() string                                                        { return "other" }
func (otherFilter) Enabled() bool                                                       { return true }
func (otherFilter) SetEnabled(bool)                                                     {}
func (otherFilter) CopyFrom(mirror.Filter) error                                        { return nil }
func (otherFilter) Clone() mirror.Filter                                                { return otherFilter{} }

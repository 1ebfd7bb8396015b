package control

import (
	"sync"

	"github.com/foliolabs/folio/internal/application/port"
	"github.com/foliolabs/folio/internal/domain/entity"
)

// ZoomController turns discrete zoom commands and fractional wheel deltas
// into scale changes on the page viewer. Zoom is suppressed while the
// viewer is in presentation mode; presentations keep a fixed fit.
type ZoomController struct {
	viewer port.PageViewer

	mu    sync.Mutex
	wheel entity.WheelAccumulator
}

func NewZoomController(viewer port.PageViewer) *ZoomController {
	return &ZoomController{viewer: viewer}
}

// ZoomIn increases the scale by steps increments.
func (z *ZoomController) ZoomIn(steps int) {
	if steps < 1 || z.viewer.IsInPresentationMode() {
		return
	}
	z.viewer.IncreaseScale(steps)
}

// ZoomOut decreases the scale by steps increments.
func (z *ZoomController) ZoomOut(steps int) {
	if steps < 1 || z.viewer.IsInPresentationMode() {
		return
	}
	z.viewer.DecreaseScale(steps)
}

// ZoomReset restores the default scale.
func (z *ZoomController) ZoomReset(defaultValue string) {
	if z.viewer.IsInPresentationMode() {
		return
	}
	z.viewer.SetScaleValue(defaultValue)
}

// Wheel feeds one wheel delta, in detent units, into the accumulator and
// applies any whole zoom steps it yields. Positive deltas zoom in.
// Fractional remainders carry over to the next event so precise trackpads
// still reach full ticks.
func (z *ZoomController) Wheel(delta float64) {
	if z.viewer.IsInPresentationMode() {
		return
	}
	z.mu.Lock()
	ticks := z.wheel.Accumulate(delta)
	z.mu.Unlock()
	switch {
	case ticks > 0:
		z.viewer.IncreaseScale(ticks)
	case ticks < 0:
		z.viewer.DecreaseScale(-ticks)
	}
}

// ResetWheel discards the accumulated fractional residue. Call when the
// gesture context changes, e.g. the modifier key is released or the
// document is switched.
func (z *ZoomController) ResetWheel() {
	z.mu.Lock()
	z.wheel.Reset()
	z.mu.Unlock()
}

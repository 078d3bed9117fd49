package tool

import "fmt"

// dragger turns successive screen positions into data-space deltas.
// Each step maps the previous and the current screen point separately,
// so the delta stays correct under non-linear mappings.
type dragger struct {
	anchored bool
	sx, sy   float64
}

func (d *dragger) start(ev PointEvent) {
	d.anchored = true
	d.sx, d.sy = ev.SX, ev.SY
}

func (d *dragger) stop() { d.anchored = false }

func (d *dragger) active() bool { return d.anchored }

// delta returns the data-space motion from the anchor to ev under m.
// The anchor is not moved; call advance once every layer is handled.
func (d *dragger) delta(ev PointEvent, m Mapper) (dx, dy float64, err error) {
	if !d.anchored {
		return 0, 0, fmt.Errorf("drag not started: %w", ErrInconsistentState)
	}
	if m == nil {
		return 0, 0, fmt.Errorf("no mapper: %w", ErrOutOfFrame)
	}
	x0, y0, ok0 := m.ToData(d.sx, d.sy)
	x1, y1, ok1 := m.ToData(ev.SX, ev.SY)
	if !ok0 || !ok1 {
		return 0, 0, fmt.Errorf("drag step: %w", ErrOutOfFrame)
	}
	return x1 - x0, y1 - y0, nil
}

func (d *dragger) advance(ev PointEvent) { d.sx, d.sy = ev.SX, ev.SY }

package tool

import (
	"math"

	"geoedit/internal/shapes"
)

// snapToVertex finds the overlay vertex closest to screen point (sx, sy)
// and returns its stored coordinates when it lies within tol. Vertex
// skip is ignored so a moving vertex cannot snap onto itself.
func snapToVertex(sx, sy float64, ov *shapes.Overlay, m Mapper, tol float64, skip int) (x, y float64, ok bool) {
	if ov == nil || m == nil || tol <= 0 {
		return 0, 0, false
	}
	best := math.Inf(1)
	for k := 0; k < ov.Len(); k++ {
		if k == skip {
			continue
		}
		vx, vy, _ := ov.At(k)
		px, py, in := m.ToScreen(vx, vy)
		if !in {
			continue
		}
		d := math.Hypot(px-sx, py-sy)
		if d <= tol && d < best {
			best = d
			x, y, ok = vx, vy, true
		}
	}
	return x, y, ok
}

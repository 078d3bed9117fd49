package tui

import (
	"math"
	"sort"

	"geoedit/internal/geom"
	"geoedit/internal/shapes"
	"geoedit/internal/tool"
)

// Screen coordinates handed to the tools are braille dots relative to the
// top-left corner of the map area: two dots per cell across, four down.
const (
	dotsX = 2
	dotsY = 4
)

var worldBBox = geom.BBox{MinX: -180, MinY: -90, MaxX: 180, MaxY: 90}

// viewport maps data coordinates onto the map area with zoom around the
// centre and a pan offset in cells. It is the tools' Mapper and HitTester.
type viewport struct {
	bbox   geom.BBox
	zoom   float64
	offX   int
	offY   int
	w, h   int
	radius float64 // hit radius in dots
}

func newViewport(radius float64) *viewport {
	return &viewport{bbox: worldBBox, zoom: 1, radius: radius}
}

func (v *viewport) resize(w, h int) { v.w, v.h = w, h }

// fit frames b and resets zoom and pan.
func (v *viewport) fit(b geom.BBox) {
	if !b.Valid() {
		b = b.Pad(1)
	}
	v.bbox = b
	v.zoom = 1
	v.offX, v.offY = 0, 0
}

func (v *viewport) zoomIn() bool {
	if v.zoom >= 64 {
		return false
	}
	v.zoom *= 1.2
	return true
}

func (v *viewport) zoomOut() bool {
	if v.zoom <= 0.05 {
		return false
	}
	v.zoom /= 1.2
	return true
}

func (v *viewport) pan(dx, dy int) {
	v.offX += dx
	v.offY += dy
}

func (v *viewport) ready() bool { return v.bbox.Valid() && v.w > 1 && v.h > 1 }

// span is the dot distance between the first and last dot on each axis.
func (v *viewport) span() (float64, float64) {
	return float64(v.w*dotsX - 1), float64(v.h*dotsY - 1)
}

// ToScreen never reports points outside the map area as failures; callers
// compare distances and clip while drawing.
func (v *viewport) ToScreen(x, y float64) (sx, sy float64, ok bool) {
	if !v.ready() {
		return 0, 0, false
	}
	nx := (x - v.bbox.MinX) / (v.bbox.MaxX - v.bbox.MinX)
	ny := (y - v.bbox.MinY) / (v.bbox.MaxY - v.bbox.MinY)
	zx := 0.5 + (nx-0.5)*v.zoom
	zy := 0.5 + (ny-0.5)*v.zoom
	sw, sh := v.span()
	return zx*sw + float64(v.offX*dotsX), (1-zy)*sh + float64(v.offY*dotsY), true
}

// ToData fails for points outside the map area.
func (v *viewport) ToData(sx, sy float64) (x, y float64, ok bool) {
	if !v.ready() || sx < 0 || sy < 0 || sx >= float64(v.w*dotsX) || sy >= float64(v.h*dotsY) {
		return 0, 0, false
	}
	sw, sh := v.span()
	zx := (sx - float64(v.offX*dotsX)) / sw
	zy := 1 - (sy-float64(v.offY*dotsY))/sh
	nx := 0.5 + (zx-0.5)/v.zoom
	ny := 0.5 + (zy-0.5)/v.zoom
	return v.bbox.MinX + nx*(v.bbox.MaxX-v.bbox.MinX), v.bbox.MinY + ny*(v.bbox.MaxY-v.bbox.MinY), true
}

// cellCenter returns the screen position of the centre of map cell (cx, cy).
func cellCenter(cx, cy int) (float64, float64) {
	return float64(cx*dotsX) + 0.5, float64(cy*dotsY) + 1.5
}

// dot truncates a screen coordinate to the braille dot containing it.
func dot(s float64) int { return int(math.Floor(s)) }

func (v *viewport) HitVertices(sx, sy float64, o *shapes.Overlay) []int {
	type hit struct {
		k int
		d float64
	}
	var hits []hit
	for k := 0; k < o.Len(); k++ {
		x, y, _ := o.At(k)
		px, py, ok := v.ToScreen(x, y)
		if !ok {
			return nil
		}
		if d := math.Hypot(px-sx, py-sy); d <= v.radius {
			hits = append(hits, hit{k, d})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].d < hits[j].d })
	out := make([]int, len(hits))
	for i, h := range hits {
		out[i] = h.k
	}
	return out
}

// HitShapes returns rows under the pointer, topmost (last drawn) first.
// Closed shapes hit on their interior; lines and points within the hit
// radius of their path.
func (v *viewport) HitShapes(sx, sy float64, l *tool.Layer) []int {
	if !v.ready() {
		return nil
	}
	var out []int
	for i := l.Source.Len() - 1; i >= 0; i-- {
		xs, ys, ok := l.Source.Coords(i, l.Fields)
		if !ok || len(xs) == 0 {
			continue
		}
		pts := make([][2]float64, len(xs))
		for j := range xs {
			pts[j][0], pts[j][1], _ = v.ToScreen(xs[j], ys[j])
		}
		closed := isClosed(l.Source, i)
		if (closed && len(pts) >= 3 && insidePolygon(pts, sx, sy)) || nearPath(pts, closed, sx, sy, v.radius) {
			out = append(out, i)
		}
	}
	return out
}

// isClosed reports whether row i is drawn as a ring. Shapes drawn in the
// editor carry no kind and are polygons.
func isClosed(s *shapes.Store, i int) bool {
	switch s.Attr(geom.KindAttr, i) {
	case geom.Line.String(), geom.Point.String():
		return false
	}
	return true
}

func insidePolygon(pts [][2]float64, x, y float64) bool {
	in := false
	for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
		a, b := pts[i], pts[j]
		if (a[1] > y) != (b[1] > y) && x < (b[0]-a[0])*(y-a[1])/(b[1]-a[1])+a[0] {
			in = !in
		}
	}
	return in
}

func nearPath(pts [][2]float64, closed bool, x, y, r float64) bool {
	if len(pts) == 1 {
		return math.Hypot(pts[0][0]-x, pts[0][1]-y) <= r
	}
	n := len(pts) - 1
	if closed {
		n = len(pts)
	}
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%len(pts)]
		if segmentDist(a, b, x, y) <= r {
			return true
		}
	}
	return false
}

func segmentDist(a, b [2]float64, x, y float64) float64 {
	dx, dy := b[0]-a[0], b[1]-a[1]
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(x-a[0], y-a[1])
	}
	t := ((x-a[0])*dx + (y-a[1])*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(x-(a[0]+t*dx), y-(a[1]+t*dy))
}

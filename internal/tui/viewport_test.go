package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoedit/internal/geom"
	"geoedit/internal/shapes"
	"geoedit/internal/tool"
)

func testViewport() *viewport {
	v := newViewport(3)
	v.resize(40, 10)
	v.fit(geom.BBox{MinX: 0, MinY: 0, MaxX: 100, MaxY: 50})
	return v
}

func TestViewportRoundTrip(t *testing.T) {
	v := testViewport()
	for _, setup := range []func(){
		func() {},
		func() { v.zoomIn(); v.zoomIn() },
		func() { v.pan(3, -1) },
	} {
		setup()
		for _, p := range [][2]float64{{50, 25}, {40, 30}, {60, 20}} {
			sx, sy, ok := v.ToScreen(p[0], p[1])
			require.True(t, ok)
			x, y, ok := v.ToData(sx, sy)
			require.True(t, ok, "point %v should stay in frame", p)
			assert.InDelta(t, p[0], x, 1e-9)
			assert.InDelta(t, p[1], y, 1e-9)
		}
	}
}

func TestViewportFrame(t *testing.T) {
	v := testViewport()
	_, _, ok := v.ToData(-0.5, 3)
	assert.False(t, ok)
	_, _, ok = v.ToData(80, 3)
	assert.False(t, ok)
	_, _, ok = v.ToData(79.5, 39.5)
	assert.True(t, ok)

	sx, sy, _ := v.ToScreen(0, 50)
	assert.Equal(t, 0.0, sx)
	assert.Equal(t, 0.0, sy)

	empty := newViewport(3)
	_, _, ok = empty.ToData(1, 1)
	assert.False(t, ok, "no map area yet")
}

func TestViewportFitPadsDegenerateBox(t *testing.T) {
	v := testViewport()
	v.zoomIn()
	v.fit(geom.BBox{MinX: 5, MinY: 5, MaxX: 5, MaxY: 5})
	assert.True(t, v.bbox.Valid())
	assert.Equal(t, 1.0, v.zoom)
}

func TestCellCenterRendersInSameCell(t *testing.T) {
	v := testViewport()
	for _, c := range [][2]int{{0, 0}, {7, 3}, {39, 9}} {
		x, y, ok := v.ToData(cellCenter(c[0], c[1]))
		require.True(t, ok)
		sx, sy, _ := v.ToScreen(x, y)
		assert.Equal(t, c[0], dot(sx)/dotsX)
		assert.Equal(t, c[1], dot(sy)/dotsY)
	}
}

func TestHitVerticesNearestFirst(t *testing.T) {
	v := testViewport()
	o := shapes.NewOverlay()
	// screen x is data x * 0.79 at zoom 1
	o.Reset([]float64{10, 60, 11.3, 13.9}, []float64{25, 25, 25, 25})
	sx, sy, _ := v.ToScreen(12.5, 25)

	hits := v.HitVertices(sx, sy, o)
	assert.Equal(t, []int{2, 3, 0}, hits)
	assert.Empty(t, v.HitVertices(70, 1, o))
}

func TestHitShapes(t *testing.T) {
	v := testViewport()
	s := shapes.NewStore()
	f := shapes.Fields{X: "xs", Y: "ys"}
	s.Append(shapes.Row{Seqs: map[string][]float64{"xs": {0, 50, 50, 0}, "ys": {0, 0, 50, 50}}}, "")
	s.Append(shapes.Row{Seqs: map[string][]float64{"xs": {20, 40, 40}, "ys": {10, 10, 30}}}, "")
	s.Append(shapes.Row{
		Seqs:  map[string][]float64{"xs": {60, 90}, "ys": {25, 25}},
		Attrs: map[string]string{geom.KindAttr: "line"},
	}, "")
	l := &tool.Layer{Source: s, Fields: f}

	sx, sy, _ := v.ToScreen(38, 12)
	assert.Equal(t, []int{1, 0}, v.HitShapes(sx, sy, l), "topmost first")

	sx, sy, _ = v.ToScreen(5, 45)
	assert.Equal(t, []int{0}, v.HitShapes(sx, sy, l))

	sx, sy, _ = v.ToScreen(75, 25)
	assert.Equal(t, []int{2}, v.HitShapes(sx, sy, l), "on the line")

	sx, sy, _ = v.ToScreen(75, 40)
	assert.Empty(t, v.HitShapes(sx, sy, l), "lines have no interior")
}

func TestSegmentDist(t *testing.T) {
	assert.Equal(t, 1.0, segmentDist([2]float64{0, 0}, [2]float64{4, 0}, 2, 1))
	assert.Equal(t, 5.0, segmentDist([2]float64{0, 0}, [2]float64{4, 0}, 7, 4))
	assert.Equal(t, 5.0, segmentDist([2]float64{1, 1}, [2]float64{1, 1}, 4, 5))
}

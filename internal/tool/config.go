package tool

import "geoedit/internal/shapes"

// Mapper converts between screen and data coordinates. ok is false when
// the point falls outside the plotting frame.
type Mapper interface {
	ToData(sx, sy float64) (x, y float64, ok bool)
	ToScreen(x, y float64) (sx, sy float64, ok bool)
}

// HitTester performs spatial hit tests. Results are ordered nearest
// (or topmost) first. Applying a selection mode is left to the caller.
type HitTester interface {
	HitShapes(sx, sy float64, l *Layer) []int
	HitVertices(sx, sy float64, o *shapes.Overlay) []int
}

// Deleter removes the selected shapes of a layer and returns how many
// were removed.
type Deleter func(l *Layer) int

// Point is a data-space coordinate pair.
type Point struct {
	X, Y float64
}

// Layer is a shape renderer the tools act on.
type Layer struct {
	Name   string
	Source *shapes.Store
	Fields shapes.Fields
	// Mapper overrides Config.Mapper for this layer.
	Mapper Mapper
}

// VertexLayer renders the vertex handles.
type VertexLayer struct {
	Overlay *shapes.Overlay
	// Default is shown when no shape is tracked. nil leaves the overlay empty.
	Default *Point
}

// Config is shared by both tools. A nil Deleter or HitTester gets a default.
type Config struct {
	// Drag enables pan gestures that translate shapes or vertices.
	Drag bool
	// NumObjects caps the shape count of the first layer; the oldest
	// shape is evicted before a new one is added. Zero disables the cap.
	NumObjects int
	Layers     []*Layer
	Vertices   *VertexLayer
	// SnapTolerance is the screen distance within which a placed point
	// takes the exact coordinates of an existing overlay vertex.
	SnapTolerance float64
	// EmptyValue pads attribute columns of newly drawn shapes.
	EmptyValue string

	Mapper    Mapper
	HitTester HitTester
	Deleter   Deleter
}

// DeleteSelected is the default Deleter.
func DeleteSelected(l *Layer) int {
	n := l.Source.DeleteSelected()
	if n > 0 {
		l.Source.Emit(true)
	}
	return n
}

func (c Config) withDefaults() Config {
	if c.Deleter == nil {
		c.Deleter = DeleteSelected
	}
	if c.HitTester == nil {
		c.HitTester = noHits{}
	}
	return c
}

type noHits struct{}

func (noHits) HitShapes(float64, float64, *Layer) []int             { return nil }
func (noHits) HitVertices(float64, float64, *shapes.Overlay) []int { return nil }

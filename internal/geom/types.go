package geom

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Valid reports whether the box has a non-zero extent on both axes.
func (b BBox) Valid() bool { return b.MaxX > b.MinX && b.MaxY > b.MinY }

// Pad grows a degenerate box so a single point or a straight
// horizontal/vertical line can still be framed.
func (b BBox) Pad(d float64) BBox {
	if b.MaxX <= b.MinX {
		b.MinX -= d
		b.MaxX += d
	}
	if b.MaxY <= b.MinY {
		b.MinY -= d
		b.MaxY += d
	}
	return b
}

type Kind int

const (
	Point Kind = iota
	Line
	Polygon
)

func (k Kind) String() string {
	switch k {
	case Point:
		return "point"
	case Line:
		return "line"
	case Polygon:
		return "polygon"
	}
	return "unknown"
}

// Feature is one geometry and its properties. Points and lines use
// Rings[0]; polygons list the outer ring first, then holes.
type Feature struct {
	Kind  Kind
	Rings [][][2]float64
	Props map[string]string
}

// Data is a minimal geometry container for rendering and editing.
type Data struct {
	Features []Feature
	BBox     BBox

	seen bool
}

// Add appends f and extends the bounding box. Features without any
// coordinates are dropped.
func (d *Data) Add(f Feature) {
	n := 0
	for _, r := range f.Rings {
		n += len(r)
	}
	if n == 0 {
		return
	}
	for _, r := range f.Rings {
		for _, p := range r {
			d.extend(p[0], p[1])
		}
	}
	d.Features = append(d.Features, f)
}

func (d *Data) extend(x, y float64) {
	if !d.seen {
		d.BBox = BBox{MinX: x, MinY: y, MaxX: x, MaxY: y}
		d.seen = true
		return
	}
	d.BBox.MinX = min(d.BBox.MinX, x)
	d.BBox.MinY = min(d.BBox.MinY, y)
	d.BBox.MaxX = max(d.BBox.MaxX, x)
	d.BBox.MaxY = max(d.BBox.MaxY, y)
}

// Count returns the number of features of kind k.
func (d Data) Count(k Kind) int {
	n := 0
	for _, f := range d.Features {
		if f.Kind == k {
			n++
		}
	}
	return n
}

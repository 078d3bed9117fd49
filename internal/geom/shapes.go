package geom

import "geoedit/internal/shapes"

// KindAttr is the attribute column that records the source geometry type.
const KindAttr = "kind"

// Shapes converts the features into store rows, one per feature, with
// coordinates under the given fields. Polygons contribute their outer
// ring without the closing vertex; holes are not editable and dropped.
func (d Data) Shapes(f shapes.Fields) []shapes.Row {
	rows := make([]shapes.Row, 0, len(d.Features))
	for _, ft := range d.Features {
		ring := ft.Rings[0]
		if ft.Kind == Polygon && len(ring) > 1 && ring[0] == ring[len(ring)-1] {
			ring = ring[:len(ring)-1]
		}
		xs := make([]float64, len(ring))
		ys := make([]float64, len(ring))
		for i, p := range ring {
			xs[i], ys[i] = p[0], p[1]
		}
		r := shapes.Row{
			Seqs:  map[string][]float64{},
			Attrs: map[string]string{KindAttr: ft.Kind.String()},
		}
		if f.X != "" {
			r.Seqs[f.X] = xs
		}
		if f.Y != "" {
			r.Seqs[f.Y] = ys
		}
		for k, v := range ft.Props {
			if k != KindAttr {
				r.Attrs[k] = v
			}
		}
		rows = append(rows, r)
	}
	return rows
}

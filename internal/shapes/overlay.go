package shapes

// Overlay is the flat vertex list behind the vertex-handle glyphs. It is
// always derived from shape data and never authoritative.
type Overlay struct {
	xs      []float64
	ys      []float64
	sel     Selection
	changes Notifier
}

func NewOverlay() *Overlay { return &Overlay{} }

func (o *Overlay) Len() int { return len(o.xs) }

func (o *Overlay) Selection() *Selection { return &o.sel }

func (o *Overlay) Changes() *Notifier { return &o.changes }

func (o *Overlay) Emit(persisted bool) { o.changes.Emit(Change{Persisted: persisted}) }

func (o *Overlay) At(k int) (x, y float64, ok bool) {
	if k < 0 || k >= len(o.xs) {
		return 0, 0, false
	}
	return o.xs[k], o.ys[k], true
}

// Points returns copies of the overlay sequences.
func (o *Overlay) Points() (xs, ys []float64) {
	return append([]float64(nil), o.xs...), append([]float64(nil), o.ys...)
}

// Reset replaces the vertex list. The shorter of xs and ys bounds the
// result. Selected indices past the new end are dropped.
func (o *Overlay) Reset(xs, ys []float64) {
	n := min(len(xs), len(ys))
	o.xs = append(o.xs[:0], xs[:n]...)
	o.ys = append(o.ys[:0], ys[:n]...)
	o.sel.truncate(n)
}

func (o *Overlay) Set(k int, x, y float64) bool {
	if k < 0 || k >= len(o.xs) {
		return false
	}
	o.xs[k], o.ys[k] = x, y
	return true
}

func (o *Overlay) Insert(k int, x, y float64) bool {
	if k < 0 || k > len(o.xs) {
		return false
	}
	o.xs = insertAt(o.xs, k, x)
	o.ys = insertAt(o.ys, k, y)
	o.sel.inserted(k)
	return true
}

func (o *Overlay) Remove(k int) bool {
	if k < 0 || k >= len(o.xs) {
		return false
	}
	o.xs = append(o.xs[:k], o.xs[k+1:]...)
	o.ys = append(o.ys[:k], o.ys[k+1:]...)
	o.sel.removed(k)
	return true
}

package shapes

// Vertices is a mutable view of one shape's coordinate sequences.
// A nil axis is unconfigured and every write to it is skipped.
type Vertices struct {
	xs *[]float64
	ys *[]float64
}

// Len is taken from the x sequence when configured, otherwise from y.
// With neither axis configured it is zero.
func (v Vertices) Len() int {
	switch {
	case v.xs != nil:
		return len(*v.xs)
	case v.ys != nil:
		return len(*v.ys)
	}
	return 0
}

// HasX reports whether the x axis is configured.
func (v Vertices) HasX() bool { return v.xs != nil }

// HasY reports whether the y axis is configured.
func (v Vertices) HasY() bool { return v.ys != nil }

// Consistent reports whether both configured axes have the same length.
func (v Vertices) Consistent() bool {
	if v.xs == nil || v.ys == nil {
		return true
	}
	return len(*v.xs) == len(*v.ys)
}

// At returns vertex k. An unconfigured axis reads as zero.
func (v Vertices) At(k int) (x, y float64, ok bool) {
	if !v.inRange(k, 0) {
		return 0, 0, false
	}
	if v.xs != nil {
		x = (*v.xs)[k]
	}
	if v.ys != nil {
		y = (*v.ys)[k]
	}
	return x, y, true
}

func (v Vertices) Set(k int, x, y float64) bool {
	if !v.inRange(k, 0) {
		return false
	}
	if v.xs != nil {
		(*v.xs)[k] = x
	}
	if v.ys != nil {
		(*v.ys)[k] = y
	}
	return true
}

// Insert places (x, y) at position k, shifting later vertices. k may equal Len.
func (v Vertices) Insert(k int, x, y float64) bool {
	if !v.inRange(k, 1) {
		return false
	}
	if v.xs != nil {
		*v.xs = insertAt(*v.xs, k, x)
	}
	if v.ys != nil {
		*v.ys = insertAt(*v.ys, k, y)
	}
	return true
}

func (v Vertices) Push(x, y float64) {
	if v.xs != nil {
		*v.xs = append(*v.xs, x)
	}
	if v.ys != nil {
		*v.ys = append(*v.ys, y)
	}
}

func (v Vertices) Remove(k int) bool {
	if !v.inRange(k, 0) {
		return false
	}
	if v.xs != nil {
		*v.xs = append((*v.xs)[:k], (*v.xs)[k+1:]...)
	}
	if v.ys != nil {
		*v.ys = append((*v.ys)[:k], (*v.ys)[k+1:]...)
	}
	return true
}

// Translate shifts every vertex by (dx, dy). The iteration bound is Len,
// so a shape with no configured axis is left untouched.
func (v Vertices) Translate(dx, dy float64) {
	n := v.Len()
	for j := 0; j < n; j++ {
		if v.xs != nil && j < len(*v.xs) {
			(*v.xs)[j] += dx
		}
		if v.ys != nil && j < len(*v.ys) {
			(*v.ys)[j] += dy
		}
	}
}

// Coords copies the sequences. An unconfigured axis is returned as zeros
// so the two slices always have the same length.
func (v Vertices) Coords() (xs, ys []float64) {
	n := v.Len()
	xs = make([]float64, n)
	ys = make([]float64, n)
	for j := 0; j < n; j++ {
		xs[j], ys[j], _ = v.At(j)
	}
	return xs, ys
}

// inRange checks k against every configured axis; slack widens the
// upper bound for inserts.
func (v Vertices) inRange(k, slack int) bool {
	if k < 0 || (v.xs == nil && v.ys == nil) {
		return false
	}
	if v.xs != nil && k >= len(*v.xs)+slack {
		return false
	}
	if v.ys != nil && k >= len(*v.ys)+slack {
		return false
	}
	return true
}

func insertAt(s []float64, k int, val float64) []float64 {
	s = append(s, 0)
	copy(s[k+1:], s[k:])
	s[k] = val
	return s
}

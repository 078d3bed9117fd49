package tool

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"geoedit/internal/shapes"
)

var xy = shapes.Fields{X: "xs", Y: "ys"}

// frameMapper maps screen to data one to one inside a w×h frame.
type frameMapper struct{ w, h float64 }

func (m frameMapper) ToData(sx, sy float64) (float64, float64, bool) {
	if sx < 0 || sy < 0 || sx > m.w || sy > m.h {
		return 0, 0, false
	}
	return sx, sy, true
}

func (m frameMapper) ToScreen(x, y float64) (float64, float64, bool) { return x, y, true }

// radiusHits hits vertices within r and shapes containing the point or
// having a vertex within r. Later rows are on top.
type radiusHits struct{ r float64 }

func (h radiusHits) HitVertices(sx, sy float64, o *shapes.Overlay) []int {
	type hit struct {
		k int
		d float64
	}
	var hits []hit
	for k := 0; k < o.Len(); k++ {
		x, y, _ := o.At(k)
		if d := math.Hypot(x-sx, y-sy); d <= h.r {
			hits = append(hits, hit{k, d})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].d < hits[j].d })
	out := make([]int, len(hits))
	for i, v := range hits {
		out[i] = v.k
	}
	return out
}

func (h radiusHits) HitShapes(sx, sy float64, l *Layer) []int {
	var out []int
	for i := l.Source.Len() - 1; i >= 0; i-- {
		xs, ys, _ := l.Source.Coords(i, l.Fields)
		if contains(xs, ys, sx, sy) {
			out = append(out, i)
			continue
		}
		for k := range xs {
			if math.Hypot(xs[k]-sx, ys[k]-sy) <= h.r {
				out = append(out, i)
				break
			}
		}
	}
	return out
}

func contains(xs, ys []float64, x, y float64) bool {
	in := false
	for i, j := 0, len(xs)-1; i < len(xs); j, i = i, i+1 {
		if (ys[i] > y) != (ys[j] > y) && x < (xs[j]-xs[i])*(y-ys[i])/(ys[j]-ys[i])+xs[i] {
			in = !in
		}
	}
	return in
}

type fixture struct {
	store   *shapes.Store
	overlay *shapes.Overlay
	layer   *Layer
	cfg     Config
}

func newFixture(opts ...func(*Config)) *fixture {
	f := &fixture{store: shapes.NewStore(), overlay: shapes.NewOverlay()}
	f.layer = &Layer{Name: "polys", Source: f.store, Fields: xy}
	f.cfg = Config{
		Layers:        []*Layer{f.layer},
		Vertices:      &VertexLayer{Overlay: f.overlay},
		SnapTolerance: 2,
		Mapper:        frameMapper{w: 100, h: 100},
		HitTester:     radiusHits{r: 1.5},
	}
	for _, o := range opts {
		o(&f.cfg)
	}
	return f
}

func (f *fixture) seed(xs, ys []float64) {
	f.store.Append(shapes.Row{Seqs: map[string][]float64{"xs": xs, "ys": ys}}, "")
}

func (f *fixture) coords(t *testing.T, i int) ([]float64, []float64) {
	t.Helper()
	xs, ys, ok := f.store.Coords(i, xy)
	require.True(t, ok, "row %d", i)
	return xs, ys
}

// requireConsistent checks the equal-length invariant on every row.
func (f *fixture) requireConsistent(t *testing.T) {
	t.Helper()
	xs, ys := f.store.Seq("xs"), f.store.Seq("ys")
	require.Len(t, ys, len(xs))
	for i := range xs {
		require.Len(t, ys[i], len(xs[i]), "row %d", i)
	}
}

// counter records the changes emitted by a notifier.
type counter struct{ persisted, preview int }

func count(n *shapes.Notifier) *counter {
	c := &counter{}
	n.Subscribe(func(ch shapes.Change) {
		if ch.Persisted {
			c.persisted++
		} else {
			c.preview++
		}
	})
	return c
}

func at(x, y float64) PointEvent { return PointEvent{SX: x, SY: y} }

var (
	escape    = KeyEvent{Key: KeyEscape}
	backspace = KeyEvent{Key: KeyBackspace}
)

func withDrag(c *Config) { c.Drag = true }

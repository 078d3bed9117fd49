package tool

import (
	"fmt"

	"geoedit/internal/shapes"
)

// base carries the state and helpers both controllers share.
type base struct {
	name   string
	cfg    Config
	active bool
	drag   dragger
}

func (b *base) Name() string { return b.name }

func (b *base) Active() bool { return b.active }

func (b *base) mapperFor(l *Layer) Mapper {
	if l != nil && l.Mapper != nil {
		return l.Mapper
	}
	return b.cfg.Mapper
}

// toData maps the event into l's data space.
func (b *base) toData(ev PointEvent, l *Layer) (x, y float64, err error) {
	m := b.mapperFor(l)
	if m == nil {
		return 0, 0, fmt.Errorf("no mapper: %w", ErrOutOfFrame)
	}
	x, y, ok := m.ToData(ev.SX, ev.SY)
	if !ok {
		return 0, 0, fmt.Errorf("map (%.1f, %.1f): %w", ev.SX, ev.SY, ErrOutOfFrame)
	}
	return x, y, nil
}

func (b *base) overlay() *shapes.Overlay {
	if b.cfg.Vertices == nil {
		return nil
	}
	return b.cfg.Vertices.Overlay
}

// snap replaces (x, y) with the exact coordinates of an overlay vertex
// within tolerance of the event. Vertex skip is never a candidate.
func (b *base) snap(ev PointEvent, x, y float64, l *Layer, skip int) (float64, float64) {
	if sx, sy, ok := snapToVertex(ev.SX, ev.SY, b.overlay(), b.mapperFor(l), b.cfg.SnapTolerance, skip); ok {
		return sx, sy
	}
	return x, y
}

// layerHits are one layer's hit rows, topmost first.
type layerHits struct {
	layer *Layer
	rows  []int
}

// selectShapes hit-tests every layer and merges the hits into each
// layer's selection. It returns the layers that were hit with their hits.
func (b *base) selectShapes(ev PointEvent, mode shapes.Mode) []layerHits {
	var hit []layerHits
	for _, l := range b.cfg.Layers {
		if l == nil || l.Source == nil {
			continue
		}
		idx := b.cfg.HitTester.HitShapes(ev.SX, ev.SY, l)
		l.Source.Selection().Update(idx, mode)
		l.Source.Emit(false)
		if len(idx) > 0 {
			hit = append(hit, layerHits{l, idx})
		}
	}
	return hit
}

// selectVertices hit-tests the overlay and merges the hits into its selection.
func (b *base) selectVertices(ev PointEvent, mode shapes.Mode) []int {
	ov := b.overlay()
	if ov == nil {
		return nil
	}
	idx := b.cfg.HitTester.HitVertices(ev.SX, ev.SY, ov)
	ov.Selection().Update(idx, mode)
	return idx
}

func (b *base) clearSelections() {
	for _, l := range b.cfg.Layers {
		if l == nil || l.Source == nil || l.Source.Selection().Empty() {
			continue
		}
		l.Source.Selection().Clear()
		l.Source.Emit(false)
	}
}

// setVertices publishes a new overlay. An empty list falls back to the
// configured default point.
func (b *base) setVertices(xs, ys []float64) {
	ov := b.overlay()
	if ov == nil {
		return
	}
	if len(xs) == 0 && len(ys) == 0 {
		if d := b.cfg.Vertices.Default; d != nil {
			xs, ys = []float64{d.X}, []float64{d.Y}
		}
	}
	ov.Reset(xs, ys)
	ov.Emit(true)
}

func (b *base) hideVertices() {
	if ov := b.overlay(); ov != nil {
		ov.Selection().Clear()
		b.setVertices(nil, nil)
	}
}

// subscriptions tracks listeners registered for one session so they can
// be released exactly once.
type subscriptions struct {
	subs []sub
}

type sub struct {
	n  *shapes.Notifier
	id shapes.Subscription
}

func (s *subscriptions) add(n *shapes.Notifier, fn func(shapes.Change)) {
	s.subs = append(s.subs, sub{n: n, id: n.Subscribe(fn)})
}

func (s *subscriptions) empty() bool { return len(s.subs) == 0 }

func (s *subscriptions) release() {
	for _, v := range s.subs {
		v.n.Unsubscribe(v.id)
	}
	s.subs = nil
}

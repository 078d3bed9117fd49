package tool

import (
	"fmt"

	"geoedit/internal/shapes"
)

// DrawState is the phase of the draw tool.
type DrawState int

const (
	DrawIdle DrawState = iota
	Drawing
)

func (s DrawState) String() string {
	if s == Drawing {
		return "drawing"
	}
	return "idle"
}

type drawMode int

const (
	drawNew drawMode = iota
	drawEdit
	drawAdd
)

// DrawTool creates shapes in the first layer and extends them vertex by
// vertex. A press starts a shape, taps add vertices, moves preview the
// trailing vertex and a second press commits it.
type DrawTool struct {
	base
	drawing bool
	shape   shapes.Ref
	subs    subscriptions
}

// NewDrawTool returns an inactive draw tool.
func NewDrawTool(cfg Config) *DrawTool {
	return &DrawTool{base: base{name: "draw", cfg: cfg.withDefaults()}}
}

func (t *DrawTool) State() DrawState {
	if t.drawing {
		return Drawing
	}
	return DrawIdle
}

// Shape returns the shape being drawn.
func (t *DrawTool) Shape() (shapes.Ref, bool) { return t.shape, t.drawing }

func (t *DrawTool) target() *Layer {
	if len(t.cfg.Layers) == 0 {
		return nil
	}
	return t.cfg.Layers[0]
}

func (t *DrawTool) Press(ev PointEvent) {
	if !t.active {
		t.skip("press", ErrInactive)
		return
	}
	if t.drawing {
		t.drawing = false
		if err := t.draw(ev, drawEdit, true); err != nil {
			t.skip("press", err)
		}
		t.shape = shapes.Ref{}
		t.showVertices()
		return
	}
	if err := t.draw(ev, drawNew, true); err != nil {
		t.skip("press", err)
		return
	}
	t.drawing = true
	t.showVertices()
}

func (t *DrawTool) Move(ev PointEvent) {
	if !t.active || !t.drawing {
		return
	}
	if err := t.draw(ev, drawEdit, false); err != nil {
		t.skip("move", err)
	}
}

func (t *DrawTool) Tap(ev PointEvent) {
	if !t.active {
		t.skip("tap", ErrInactive)
		return
	}
	if t.drawing {
		if err := t.draw(ev, drawAdd, true); err != nil {
			t.skip("tap", err)
		}
		return
	}
	t.selectShapes(ev, SelectionModeFor(ev.Mods))
}

func (t *DrawTool) KeyUp(ev KeyEvent) {
	if !t.active {
		return
	}
	switch ev.Key {
	case KeyBackspace:
		for _, l := range t.cfg.Layers {
			if l != nil && l.Source != nil && !l.Source.Selection().Empty() {
				t.cfg.Deleter(l)
			}
		}
	case KeyEscape:
		if t.drawing {
			t.cancel()
		}
		t.clearSelections()
	}
}

func (t *DrawTool) PanStart(ev PointEvent) {
	if !t.active || !t.cfg.Drag {
		return
	}
	t.selectShapes(ev, shapes.Append)
	t.drag.start(ev)
}

func (t *DrawTool) Pan(ev PointEvent) { t.dragShapes(ev, false) }

func (t *DrawTool) PanEnd(ev PointEvent) {
	t.dragShapes(ev, true)
	t.drag.stop()
}

// Activate publishes the overlay and subscribes to every layer so the
// overlay follows shape changes made by anyone. The subscriptions live
// until Deactivate.
func (t *DrawTool) Activate() {
	t.active = true
	if t.overlay() == nil {
		t.skip("activate", ErrInactive)
		return
	}
	t.showVertices()
	if !t.subs.empty() {
		return
	}
	for _, l := range t.cfg.Layers {
		if l == nil || l.Source == nil {
			continue
		}
		t.subs.add(l.Source.Changes(), func(c shapes.Change) {
			if c.Persisted {
				t.showVertices()
			}
		})
	}
}

// Deactivate cancels an unfinished shape before hiding the overlay, so
// no placeholder vertex survives a tool switch.
func (t *DrawTool) Deactivate() {
	if t.drawing {
		t.cancel()
	}
	t.subs.release()
	t.hideVertices()
	t.drag.stop()
	t.active = false
}

func (t *DrawTool) draw(ev PointEvent, mode drawMode, commit bool) error {
	l := t.target()
	if l == nil || l.Source == nil {
		return fmt.Errorf("no layer to draw on: %w", ErrInconsistentState)
	}
	if !l.Fields.Any() {
		return fmt.Errorf("layer %q: %w", l.Name, ErrMissingField)
	}
	x, y, err := t.toData(ev, l)
	if err != nil {
		return err
	}
	x, y = t.snap(ev, x, y, l, -1)

	switch mode {
	case drawNew:
		t.evict(l)
		row := shapes.Row{Seqs: map[string][]float64{}}
		if l.Fields.X != "" {
			row.Seqs[l.Fields.X] = []float64{x, x}
		}
		if l.Fields.Y != "" {
			row.Seqs[l.Fields.Y] = []float64{y, y}
		}
		t.shape = l.Source.Append(row, t.cfg.EmptyValue)
	case drawEdit:
		v, _, err := t.current(l)
		if err != nil {
			return err
		}
		v.Set(v.Len()-1, x, y)
	case drawAdd:
		v, _, err := t.current(l)
		if err != nil {
			return err
		}
		last := v.Len() - 1
		px, py, _ := v.At(last)
		v.Set(last, x, y)
		v.Push(px, py)
	}
	l.Source.Emit(commit)
	return nil
}

// current resolves the session shape.
func (t *DrawTool) current(l *Layer) (shapes.Vertices, int, error) {
	if t.shape.Store() != l.Source {
		return shapes.Vertices{}, 0, fmt.Errorf("session shape: %w", ErrInconsistentState)
	}
	i, ok := t.shape.Index()
	if !ok {
		return shapes.Vertices{}, 0, fmt.Errorf("shape %d removed: %w", t.shape.ID(), ErrInconsistentState)
	}
	v, ok := l.Source.Vertices(i, l.Fields)
	if !ok || v.Len() == 0 {
		return shapes.Vertices{}, 0, fmt.Errorf("shape %d empty: %w", t.shape.ID(), ErrInconsistentState)
	}
	return v, i, nil
}

// evict drops the oldest shapes so that one more fits under NumObjects.
func (t *DrawTool) evict(l *Layer) {
	n := t.cfg.NumObjects
	if n <= 0 || l.Source.Len() < n {
		return
	}
	drop := make([]int, 0, l.Source.Len()-n+1)
	for i := 0; i < l.Source.Len()-n+1; i++ {
		drop = append(drop, i)
	}
	l.Source.RemoveRows(drop...)
}

// cancel removes the trailing vertex of the session shape, and the whole
// shape when only its first vertex would remain.
func (t *DrawTool) cancel() {
	t.drawing = false
	defer func() { t.shape = shapes.Ref{} }()
	l := t.target()
	if l == nil || l.Source == nil {
		return
	}
	v, i, err := t.current(l)
	if err != nil {
		t.skip("cancel", err)
		return
	}
	v.Remove(v.Len() - 1)
	if v.Len() <= 1 {
		l.Source.RemoveRows(i)
	}
	l.Source.Emit(true)
}

func (t *DrawTool) dragShapes(ev PointEvent, commit bool) {
	if !t.active || !t.cfg.Drag || !t.drag.active() {
		return
	}
	type step struct {
		l      *Layer
		dx, dy float64
	}
	steps := make([]step, 0, len(t.cfg.Layers))
	for _, l := range t.cfg.Layers {
		if l == nil || l.Source == nil {
			continue
		}
		dx, dy, err := t.drag.delta(ev, t.mapperFor(l))
		if err != nil {
			// keep the anchor so the motion is applied once back in frame
			t.skip("pan", err)
			return
		}
		steps = append(steps, step{l, dx, dy})
	}
	for _, s := range steps {
		for _, i := range s.l.Source.Selection().Indices() {
			if v, ok := s.l.Source.Vertices(i, s.l.Fields); ok {
				v.Translate(s.dx, s.dy)
			}
		}
		s.l.Source.Emit(commit)
	}
	t.drag.advance(ev)
}

// showVertices mirrors every vertex of every layer into the overlay,
// leaving out the trailing vertex of a shape still being drawn.
func (t *DrawTool) showVertices() {
	if !t.active || t.overlay() == nil {
		return
	}
	var xs, ys []float64
	for _, l := range t.cfg.Layers {
		if l == nil || l.Source == nil {
			continue
		}
		live := -1
		if t.drawing && t.shape.Store() == l.Source {
			if i, ok := t.shape.Index(); ok {
				live = i
			}
		}
		for i := 0; i < l.Source.Len(); i++ {
			cx, cy, ok := l.Source.Coords(i, l.Fields)
			if !ok {
				continue
			}
			if i == live && len(cx) > 0 {
				cx, cy = cx[:len(cx)-1], cy[:len(cy)-1]
			}
			xs = append(xs, cx...)
			ys = append(ys, cy...)
		}
	}
	t.setVertices(xs, ys)
}

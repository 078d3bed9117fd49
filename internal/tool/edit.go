package tool

import (
	"fmt"

	"geoedit/internal/shapes"
)

// EditState is the phase of the edit tool.
type EditState int

const (
	EditIdle EditState = iota
	VertexSelected
	Inserting
)

func (s EditState) String() string {
	switch s {
	case VertexSelected:
		return "vertex"
	case Inserting:
		return "inserting"
	default:
		return "idle"
	}
}

// editTarget is the shape whose vertices the overlay mirrors.
type editTarget struct {
	layer *Layer
	ref   shapes.Ref
	subs  subscriptions
}

// EditTool selects a shape, shows its vertices as handles and lets the
// user move, insert and delete them. Pressing a selected handle a second
// time starts an insertion chain after it.
type EditTool struct {
	base
	target    *editTarget
	vertex    int
	inserting bool
}

// NewEditTool returns an inactive edit tool.
func NewEditTool(cfg Config) *EditTool {
	return &EditTool{base: base{name: "edit", cfg: cfg.withDefaults()}, vertex: -1}
}

func (t *EditTool) State() EditState {
	switch {
	case t.inserting:
		return Inserting
	case t.vertex >= 0:
		return VertexSelected
	default:
		return EditIdle
	}
}

// Shape returns the tracked shape, if any.
func (t *EditTool) Shape() (shapes.Ref, bool) {
	if t.target == nil {
		return shapes.Ref{}, false
	}
	return t.target.ref, true
}

// Vertex returns the selected vertex index.
func (t *EditTool) Vertex() (int, bool) { return t.vertex, t.vertex >= 0 }

func (t *EditTool) Activate() {
	t.active = true
	if t.overlay() == nil {
		t.skip("activate", ErrInactive)
		return
	}
	t.updateVertices()
}

// Deactivate drops an unfinished insertion before hiding the overlay.
func (t *EditTool) Deactivate() {
	if t.target != nil && t.inserting {
		t.cancelInsert()
	}
	t.endSession()
	if t.overlay() != nil {
		t.hideVertices()
	}
	t.drag.stop()
	t.active = false
}

func (t *EditTool) Press(ev PointEvent) {
	ov := t.overlay()
	if !t.active || ov == nil {
		t.skip("press", ErrInactive)
		return
	}
	if t.target != nil {
		if _, _, err := t.toData(ev, t.target.layer); err != nil {
			t.skip("press", err)
			return
		}
		hits := t.cfg.HitTester.HitVertices(ev.SX, ev.SY, ov)
		switch {
		case t.inserting:
			// any press ends the chain, keeping the live vertex
			t.inserting = false
			t.commit()
			return
		case len(hits) > 0 && hits[0] == t.vertex:
			if err := t.beginInsert(); err != nil {
				t.skip("press", err)
			}
			return
		case len(hits) > 0:
			t.selectVertex(hits[0])
			ov.Emit(false)
			return
		}
	}
	t.pickShape(ev, shapes.Replace)
}

func (t *EditTool) Move(ev PointEvent) {
	if !t.active || !t.inserting {
		return
	}
	if err := t.moveLive(ev, false); err != nil {
		t.skip("move", err)
	}
}

func (t *EditTool) Tap(ev PointEvent) {
	ov := t.overlay()
	if !t.active || ov == nil {
		t.skip("tap", ErrInactive)
		return
	}
	if t.inserting {
		if err := t.moveLive(ev, true); err != nil {
			t.skip("tap", err)
		}
		return
	}
	mode := SelectionModeFor(ev.Mods)
	if t.target != nil {
		if hits := t.selectVertices(ev, mode); len(hits) > 0 {
			t.syncVertex(hits[0])
			ov.Emit(false)
			return
		}
	}
	t.pickShape(ev, mode)
}

func (t *EditTool) KeyUp(ev KeyEvent) {
	if !t.active {
		return
	}
	switch ev.Key {
	case KeyEscape:
		if t.inserting {
			t.cancelInsert()
			return
		}
		t.clearSelections()
		t.endSession()
		t.hideVertices()
	case KeyBackspace:
		if err := t.deleteVertices(); err != nil {
			t.skip("backspace", err)
		}
	}
}

func (t *EditTool) PanStart(ev PointEvent) {
	if !t.active || !t.cfg.Drag || t.inserting || t.overlay() == nil {
		return
	}
	hits := t.selectVertices(ev, shapes.Append)
	t.syncVertex(hits...)
	t.drag.start(ev)
}

func (t *EditTool) Pan(ev PointEvent) {
	if err := t.dragVertices(ev, false); err != nil {
		t.skip("pan", err)
	}
}

func (t *EditTool) PanEnd(ev PointEvent) {
	if err := t.dragVertices(ev, true); err != nil {
		t.skip("pan end", err)
	}
	t.drag.stop()
}

// resolve re-derives the tracked shape's layer and vertices.
func (t *EditTool) resolve() (*Layer, shapes.Vertices, error) {
	if t.target == nil {
		return nil, shapes.Vertices{}, fmt.Errorf("no shape selected: %w", ErrInconsistentState)
	}
	l := t.target.layer
	i, ok := t.target.ref.Index()
	if !ok {
		return nil, shapes.Vertices{}, fmt.Errorf("shape %d removed: %w", t.target.ref.ID(), ErrInconsistentState)
	}
	if !l.Fields.Any() {
		return nil, shapes.Vertices{}, fmt.Errorf("layer %q: %w", l.Name, ErrMissingField)
	}
	v, _ := l.Source.Vertices(i, l.Fields)
	return l, v, nil
}

func (t *EditTool) selectVertex(k int) {
	t.vertex = k
	if ov := t.overlay(); ov != nil {
		ov.Selection().Set(k)
	}
}

// syncVertex takes the selected vertex from the overlay selection,
// preferring the first of hit that is still selected.
func (t *EditTool) syncVertex(hit ...int) {
	sel := t.overlay().Selection()
	t.vertex = -1
	for _, k := range hit {
		if sel.Contains(k) {
			t.vertex = k
			return
		}
	}
	if k, ok := sel.First(); ok {
		t.vertex = k
	}
}

// beginInsert clones the selected vertex right after itself and selects
// the clone, which then follows the pointer.
func (t *EditTool) beginInsert() error {
	l, v, err := t.resolve()
	if err != nil {
		return err
	}
	k := t.vertex
	x, y, ok := v.At(k)
	if !ok {
		return fmt.Errorf("vertex %d: %w", k, ErrInconsistentState)
	}
	v.Insert(k+1, x, y)
	t.overlay().Insert(k+1, x, y)
	t.selectVertex(k + 1)
	t.inserting = true
	l.Source.Emit(true)
	t.overlay().Emit(true)
	return nil
}

// moveLive writes the pointer position into the inserted vertex. With
// chain set the position is committed and a fresh vertex is inserted
// after it.
func (t *EditTool) moveLive(ev PointEvent, chain bool) error {
	l, v, err := t.resolve()
	if err != nil {
		return err
	}
	ov := t.overlay()
	x, y, err := t.toData(ev, l)
	if err != nil {
		return err
	}
	k := t.vertex
	x, y = t.snap(ev, x, y, l, k)
	px, py, ok := v.At(k)
	if !ok {
		return fmt.Errorf("vertex %d: %w", k, ErrInconsistentState)
	}
	v.Set(k, x, y)
	ov.Set(k, x, y)
	if !chain {
		l.Source.Emit(false)
		ov.Emit(false)
		return nil
	}
	v.Insert(k+1, px, py)
	ov.Insert(k+1, px, py)
	t.selectVertex(k + 1)
	l.Source.Emit(true)
	ov.Emit(true)
	return nil
}

// cancelInsert removes the vertex being inserted and reselects the one
// it was cloned from.
func (t *EditTool) cancelInsert() {
	t.inserting = false
	l, v, err := t.resolve()
	if err != nil {
		t.skip("cancel", err)
		t.updateVertices()
		return
	}
	k := t.vertex
	v.Remove(k)
	t.overlay().Remove(k)
	t.selectVertex(k - 1)
	l.Source.Emit(true)
	t.updateVertices()
}

func (t *EditTool) commit() {
	if l, _, err := t.resolve(); err == nil {
		l.Source.Emit(true)
	}
	t.updateVertices()
}

// deleteVertices removes every selected handle from the overlay and the
// tracked shape.
func (t *EditTool) deleteVertices() error {
	ov := t.overlay()
	if ov == nil || ov.Selection().Empty() {
		return nil
	}
	l, v, err := t.resolve()
	if err != nil {
		return err
	}
	t.inserting = false
	idx := ov.Selection().Indices()
	for j := len(idx) - 1; j >= 0; j-- {
		v.Remove(idx[j])
		ov.Remove(idx[j])
	}
	ov.Selection().Clear()
	t.vertex = -1
	ov.Emit(true)
	l.Source.Emit(true)
	return nil
}

func (t *EditTool) dragVertices(ev PointEvent, commit bool) error {
	ov := t.overlay()
	if !t.active || !t.cfg.Drag || !t.drag.active() || ov == nil {
		return nil
	}
	l, v, err := t.resolve()
	if err != nil {
		return err
	}
	m := t.mapperFor(l)
	dx, dy, err := t.drag.delta(ev, m)
	if err != nil {
		return err
	}
	sel := ov.Selection().Indices()
	for _, k := range sel {
		x, y, ok := ov.At(k)
		if !ok {
			continue
		}
		ov.Set(k, x+dx, y+dy)
		v.Set(k, x+dx, y+dy)
	}
	t.drag.advance(ev)
	if commit && len(sel) == 1 {
		k := sel[0]
		x, y, _ := ov.At(k)
		if sx, sy, ok := m.ToScreen(x, y); ok {
			if nx, ny, ok := snapToVertex(sx, sy, ov, m, t.cfg.SnapTolerance, k); ok {
				ov.Set(k, nx, ny)
				v.Set(k, nx, ny)
			}
		}
	}
	ov.Emit(commit)
	l.Source.Emit(commit)
	return nil
}

// pickShape hit-tests the layers and tracks the first shape hit. A miss
// ends the session.
func (t *EditTool) pickShape(ev PointEvent, mode shapes.Mode) {
	for _, h := range t.selectShapes(ev, mode) {
		// an xor tap may have just deselected the hit
		i := h.rows[0]
		if !h.layer.Source.Selection().Contains(i) {
			continue
		}
		if ref, ok := h.layer.Source.Ref(i); ok {
			t.track(h.layer, ref)
			return
		}
	}
	t.endSession()
	t.updateVertices()
}

// track starts a session on ref. The session listens for persisted
// changes of the shape's store until it ends.
func (t *EditTool) track(l *Layer, ref shapes.Ref) {
	if t.target != nil && t.target.ref == ref {
		t.updateVertices()
		return
	}
	t.endSession()
	t.target = &editTarget{layer: l, ref: ref}
	t.target.subs.add(l.Source.Changes(), func(c shapes.Change) {
		if c.Persisted {
			t.updateVertices()
		}
	})
	if ov := t.overlay(); ov != nil {
		ov.Selection().Clear()
	}
	t.vertex = -1
	t.updateVertices()
}

func (t *EditTool) endSession() {
	if t.target != nil {
		t.target.subs.release()
		t.target = nil
	}
	t.vertex = -1
	t.inserting = false
}

// updateVertices mirrors the tracked shape into the overlay. It is
// suspended while inserting; the overlay is patched directly then.
func (t *EditTool) updateVertices() {
	if t.inserting || t.overlay() == nil {
		return
	}
	if t.target == nil {
		t.setVertices(nil, nil)
		return
	}
	_, v, err := t.resolve()
	if err != nil {
		t.skip("update vertices", err)
		t.endSession()
		t.setVertices(nil, nil)
		return
	}
	t.setVertices(v.Coords())
	if t.vertex >= 0 && !t.overlay().Selection().Contains(t.vertex) {
		t.vertex = -1
	}
}

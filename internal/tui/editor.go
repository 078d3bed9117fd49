package tui

import (
	"fmt"

	"geoedit/internal/config"
	"geoedit/internal/geom"
	"geoedit/internal/logging"
	"geoedit/internal/shapes"
	"geoedit/internal/tool"
)

// editor owns the shape store, the vertex overlay and both tools. It is
// held by pointer so bubbletea's value-copied Model shares one instance.
type editor struct {
	store   *shapes.Store
	overlay *shapes.Overlay
	layer   *tool.Layer
	draw    *tool.DrawTool
	edit    *tool.EditTool
	active  tool.Tool
	empty   string

	// counters fed by change notifications; the view reads them
	commits  int
	previews int
	stale    bool
}

func newEditor(cfg config.Config, vp *viewport) *editor {
	e := &editor{
		store:   shapes.NewStore(),
		overlay: shapes.NewOverlay(),
		empty:   cfg.Tools.EmptyValue,
	}
	e.layer = &tool.Layer{
		Name:   "shapes",
		Source: e.store,
		Fields: shapes.Fields{X: cfg.Fields.X, Y: cfg.Fields.Y},
	}
	vl := &tool.VertexLayer{Overlay: e.overlay}
	if d := cfg.Tools.DefaultVertex; len(d) == 2 {
		vl.Default = &tool.Point{X: d[0], Y: d[1]}
	}
	tc := tool.Config{
		Drag:          cfg.Tools.Drag,
		NumObjects:    cfg.Tools.NumObjects,
		Layers:        []*tool.Layer{e.layer},
		Vertices:      vl,
		SnapTolerance: cfg.Tools.SnapTolerance,
		EmptyValue:    cfg.Tools.EmptyValue,
		Mapper:        vp,
		HitTester:     vp,
	}
	e.draw = tool.NewDrawTool(tc)
	e.edit = tool.NewEditTool(tc)

	e.store.Changes().Subscribe(e.changed)
	e.overlay.Changes().Subscribe(e.changed)
	return e
}

func (e *editor) changed(c shapes.Change) {
	if c.Persisted {
		e.commits++
		e.stale = true
		return
	}
	e.previews++
}

// use switches tools. nil selects the view mode, where pointer gestures
// pan the map instead of editing.
func (e *editor) use(t tool.Tool) {
	if e.active == t {
		return
	}
	if e.active != nil {
		e.active.Deactivate()
	}
	e.active = t
	if t != nil {
		t.Activate()
	}
	logging.L().Debug().Str("tool", e.toolName()).Msg("tool switched")
}

func (e *editor) toolName() string {
	if e.active == nil {
		return "view"
	}
	return e.active.Name()
}

// load replaces every shape with the contents of d.
func (e *editor) load(d geom.Data) {
	e.store.Reset(d.Shapes(e.layer.Fields), e.empty)
	e.store.Emit(true)
}

// appendData adds the shapes of d after the existing ones.
func (e *editor) appendData(d geom.Data) int {
	rows := d.Shapes(e.layer.Fields)
	for _, r := range rows {
		e.store.Append(r, e.empty)
	}
	if len(rows) > 0 {
		e.store.Emit(true)
	}
	return len(rows)
}

// pointer forwards a gesture to the active tool. sx, sy are screen dots.
func (e *editor) pointer(g gesture, sx, sy float64) bool {
	if e.active == nil {
		return false
	}
	ev := tool.PointEvent{SX: sx, SY: sy, Mods: g.mods}
	switch g.kind {
	case gesturePress:
		e.active.Press(ev)
	case gestureTap:
		e.active.Tap(ev)
	case gestureMove:
		e.active.Move(ev)
	case gesturePanStart:
		e.active.PanStart(ev)
	case gesturePan:
		e.active.Pan(ev)
	case gesturePanEnd:
		e.active.PanEnd(ev)
	}
	return true
}

func (e *editor) key(k tool.Key) bool {
	if e.active == nil {
		return false
	}
	e.active.KeyUp(tool.KeyEvent{Key: k})
	return true
}

// state describes the active tool for the status bar.
func (e *editor) state() string {
	switch e.active {
	case nil:
		return "view"
	case e.draw:
		return "draw: " + e.draw.State().String()
	case e.edit:
		s := "edit: " + e.edit.State().String()
		if k, ok := e.edit.Vertex(); ok {
			s += fmt.Sprintf(" #%d", k)
		}
		return s
	}
	return e.active.Name()
}

// bounds returns the bounding box of all stored vertices.
func (e *editor) bounds() (geom.BBox, bool) {
	var d geom.Data
	for i := 0; i < e.store.Len(); i++ {
		xs, ys, ok := e.store.Coords(i, e.layer.Fields)
		if !ok {
			continue
		}
		ring := make([][2]float64, len(xs))
		for j := range xs {
			ring[j] = [2]float64{xs[j], ys[j]}
		}
		d.Add(geom.Feature{Rings: [][][2]float64{ring}})
	}
	return d.BBox, len(d.Features) > 0
}

package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"geoedit/internal/geom"
	"geoedit/internal/tool"
	"geoedit/internal/watch"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		_, _, w, h := m.mapRect()
		m.vp.resize(w, h)
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, h-2)
		}
	case watch.ChangedMsg:
		m.reload()
		return m, m.waitForChange()
	case watch.ErrMsg:
		m.status = "watch error: " + msg.Err.Error()
		return m, m.waitForChange()
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		cmd, quit := m.updateKey(msg)
		if quit {
			return m, tea.Quit
		}
		cmds = append(cmds, cmd)
	case tea.MouseMsg:
		m.updateMouse(msg)
	}
	m.sync()
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) updateKey(msg tea.KeyMsg) (cmd tea.Cmd, quit bool) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return nil, true
	case key.Matches(msg, k.Draw):
		m.switchTool(m.ed.draw)
	case key.Matches(msg, k.Edit):
		m.switchTool(m.ed.edit)
	case key.Matches(msg, k.View):
		m.switchTool(nil)
	case m.showSidebar && key.Matches(msg, k.Open):
		if it, ok := m.l.SelectedItem().(fileItem); ok {
			cmd = m.loadPath(it.path)
		}
	case key.Matches(msg, k.Press):
		x, y := m.hoverCellX, m.hoverCellY
		if !m.hovering {
			_, _, w, h := m.mapRect()
			x, y = w/2, h/2
		}
		sx, sy := cellCenter(x, y)
		if !m.ed.pointer(gesture{kind: gesturePress}, sx, sy) {
			m.status = "view mode: press d to draw or e to edit"
		}
	case key.Matches(msg, k.Escape):
		switch {
		case m.help.ShowAll:
			m.help.ShowAll = false
		case m.inspectPopup != "":
			m.inspectPopup = ""
		default:
			m.ed.key(tool.KeyEscape)
		}
	case key.Matches(msg, k.Delete):
		m.ed.key(tool.KeyBackspace)
	case key.Matches(msg, k.ZoomIn):
		if m.vp.zoomIn() {
			m.status = fmt.Sprintf("zoom: %.2fx", m.vp.zoom)
		}
	case key.Matches(msg, k.ZoomOut):
		if m.vp.zoomOut() {
			m.status = fmt.Sprintf("zoom: %.2fx", m.vp.zoom)
		}
	case key.Matches(msg, k.Fit):
		if b, ok := m.ed.bounds(); ok {
			m.vp.fit(b)
			m.status = "fit to shapes"
		} else {
			m.vp.fit(worldBBox)
			m.status = "no shapes: showing the world"
		}
	case key.Matches(msg, k.Up):
		m.vp.pan(0, -1)
	case key.Matches(msg, k.Down):
		m.vp.pan(0, 1)
	case key.Matches(msg, k.Left):
		m.vp.pan(-2, 0)
	case key.Matches(msg, k.Right):
		m.vp.pan(2, 0)
	case key.Matches(msg, k.Sidebar):
		m.showSidebar = !m.showSidebar
		_, _, w, h := m.mapRect()
		m.vp.resize(w, h)
		if m.showSidebar {
			m.refreshDir()
			m.l.SetSize(sidebarWidth-2, h-2)
		}
	case key.Matches(msg, k.Paste):
		m.pasteMode = true
		m.ta.SetValue("")
		m.status = "paste mode"
		m.ta.Focus()
	case key.Matches(msg, k.Attrs):
		m.showAttrs = !m.showAttrs
		if m.showAttrs {
			m.refreshAttrsFromCurrent()
		}
	case key.Matches(msg, k.Inspect):
		m.inspectPopup = m.inspect()
		m.status = "inspect popup"
	case key.Matches(msg, k.Points):
		m.showPoints = !m.showPoints
		m.status = fmt.Sprintf("points: %v", m.showPoints)
	case key.Matches(msg, k.Lines):
		m.showLines = !m.showLines
		m.status = fmt.Sprintf("lines: %v", m.showLines)
	case key.Matches(msg, k.Polys):
		m.showPolys = !m.showPolys
		m.status = fmt.Sprintf("polys: %v", m.showPolys)
	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return cmd, false
}

func (m *Model) switchTool(t tool.Tool) {
	m.gs.cancel()
	m.ed.use(t)
	m.status = m.ed.toolName() + " tool"
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		m.status = "paste cancelled"
		return m, nil
	case "enter":
		w := strings.TrimSpace(m.ta.Value())
		if w == "" {
			m.status = "paste: empty"
			return m, nil
		}
		d, err := geom.ParseWKT(w)
		if err != nil {
			m.status = "wkt error: " + err.Error()
			return m, nil
		}
		fresh := m.ed.store.Len() == 0
		n := m.ed.appendData(d)
		if fresh {
			m.vp.fit(d.BBox)
		}
		m.status = fmt.Sprintf("appended %d shapes  counts: pts=%d ls=%d poly=%d",
			n, d.Count(geom.Point), d.Count(geom.Line), d.Count(geom.Polygon))
		m.pasteMode = false
		m.ta.Blur()
		m.sync()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

func (m *Model) updateMouse(msg tea.MouseMsg) {
	ox, oy, w, h := m.mapRect()
	m.vp.resize(w, h)
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, h-2)
	}
	cx, cy := msg.X-ox, msg.Y-oy
	m.hovering = cx >= 0 && cx < w && cy >= 0 && cy < h
	if m.hovering {
		m.hoverCellX, m.hoverCellY = cx, cy
		m.hoverLon, m.hoverLat, m.hoverHasGeo = m.vp.ToData(cellCenter(cx, cy))
	} else {
		m.hoverHasGeo = false
	}
	if tea.MouseEvent(msg).IsWheel() {
		if m.hovering {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				m.vp.zoomIn()
			case tea.MouseButtonWheelDown:
				m.vp.zoomOut()
			}
		}
		return
	}
	if m.pasteMode || m.showAttrs {
		return
	}
	for _, g := range m.gs.feed(msg) {
		gx, gy := g.x-ox, g.y-oy
		if m.ed.active == nil {
			m.viewGesture(g, gx, gy)
			continue
		}
		sx, sy := cellCenter(gx, gy)
		m.ed.pointer(g, sx, sy)
	}
}

// viewGesture pans the map with a left drag while no tool is active.
func (m *Model) viewGesture(g gesture, x, y int) {
	switch g.kind {
	case gesturePanStart:
		m.panX, m.panY = x, y
	case gesturePan, gesturePanEnd:
		m.vp.pan(x-m.panX, y-m.panY)
		m.panX, m.panY = x, y
	}
}

// sync refreshes views that depend on committed shape data.
func (m *Model) sync() {
	if !m.ed.stale {
		return
	}
	m.ed.stale = false
	if m.showAttrs {
		m.refreshAttrsFromCurrent()
	}
}

// inspect describes the first selected shape and the selected vertex.
func (m Model) inspect() string {
	s := m.ed.store
	i, ok := s.Selection().First()
	if !ok {
		return "no shape selected"
	}
	xs, ys, _ := s.Coords(i, m.ed.layer.Fields)
	name := filepath.Base(m.selPath)
	if m.selPath == "" {
		name = "<unsaved>"
	}
	meta := []string{
		fmt.Sprintf("file: %s", name),
		fmt.Sprintf("shape: #%d", i+1),
		fmt.Sprintf("vertices: %d", len(xs)),
	}
	if b, ok := bboxOf(xs, ys); ok {
		meta = append(meta, fmt.Sprintf("bbox: [%.5f, %.5f, %.5f, %.5f]", b.MinX, b.MinY, b.MaxX, b.MaxY))
	}
	for _, c := range s.AttrColumns() {
		if v := s.Attr(c, i); v != "" {
			meta = append(meta, fmt.Sprintf("%s: %s", c, v))
		}
	}
	if k, ok := m.ed.edit.Vertex(); ok && m.ed.active == tool.Tool(m.ed.edit) {
		if x, y, ok := m.ed.overlay.At(k); ok {
			meta = append(meta, fmt.Sprintf("vertex #%d: x=%.6f y=%.6f", k, x, y))
		}
	}
	return strings.Join(meta, "\n")
}

func bboxOf(xs, ys []float64) (geom.BBox, bool) {
	var d geom.Data
	ring := make([][2]float64, len(xs))
	for j := range xs {
		ring[j] = [2]float64{xs[j], ys[j]}
	}
	d.Add(geom.Feature{Rings: [][][2]float64{ring}})
	return d.BBox, len(d.Features) > 0
}

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"geoedit/internal/geom"
)

type cellLayer uint8

const (
	layerBlank cellLayer = iota
	layerFill
	layerEdge
	layerSelected
	layerHandle
	layerActive
	layerHover
)

var layerStyles = map[cellLayer]lipgloss.Style{
	layerFill:     fillStyle,
	layerEdge:     edgeStyle,
	layerSelected: selStyle,
	layerHandle:   handleStyle,
	layerActive:   activeStyle,
	layerHover:    hoverStyle,
}

// cell is one rendered map cell: its glyph and the topmost layer that drew it.
type cell struct {
	r     rune
	layer cellLayer
}

// renderMap draws the store's shapes with braille dots and the vertex
// overlay as handle glyphs on top.
func (m Model) renderMap(w, h int) string {
	grid := make([][]cell, h)
	for y := range grid {
		grid[y] = make([]cell, w)
		for x := range grid[y] {
			grid[y][x] = cell{r: ' '}
		}
	}
	if m.vp.ready() {
		m.drawShapes(grid, w, h)
		m.drawHandles(grid, w, h)
	}
	lines := make([]string, h)
	for y, row := range grid {
		lines[y] = renderRow(row)
	}
	return strings.Join(lines, "\n")
}

func (m Model) visible(kind string) bool {
	switch kind {
	case geom.Point.String():
		return m.showPoints
	case geom.Line.String():
		return m.showLines
	}
	return m.showPolys
}

func (m Model) project(xs, ys []float64) [][2]int {
	pts := make([][2]int, 0, len(xs))
	for i := range xs {
		sx, sy, ok := m.vp.ToScreen(xs[i], ys[i])
		if !ok {
			continue
		}
		pts = append(pts, [2]int{dot(sx), dot(sy)})
	}
	return pts
}

func (m Model) drawShapes(grid [][]cell, w, h int) {
	fill := newBrailleBuf(w, h)
	edges := newBrailleBuf(w, h)
	sel := newBrailleBuf(w, h)
	s := m.ed.store
	for i := 0; i < s.Len(); i++ {
		if !m.visible(s.Attr(geom.KindAttr, i)) {
			continue
		}
		xs, ys, ok := s.Coords(i, m.ed.layer.Fields)
		if !ok || len(xs) == 0 {
			continue
		}
		pts := m.project(xs, ys)
		if len(pts) == 0 {
			continue
		}
		buf := edges
		if s.Selection().Contains(i) {
			buf = sel
		}
		closed := isClosed(s, i)
		if closed {
			fill.fillPolygon(pts)
		}
		buf.drawPath(pts, closed)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			f, e, s := fill.mask(x, y), edges.mask(x, y), sel.mask(x, y)
			mask := f | e | s
			if mask == 0 {
				continue
			}
			layer := layerFill
			switch {
			case s != 0:
				layer = layerSelected
			case e != 0:
				layer = layerEdge
			}
			grid[y][x] = cell{r: rune(0x2800 + int(mask)), layer: layer}
		}
	}
}

// drawHandles marks overlay vertices. Selected vertices get a filled
// diamond; the handle under the pointer gets the hover circle.
func (m Model) drawHandles(grid [][]cell, w, h int) {
	o := m.ed.overlay
	hovered := -1
	if m.hovering {
		sx, sy := cellCenter(m.hoverCellX, m.hoverCellY)
		if hits := m.vp.HitVertices(sx, sy, o); len(hits) > 0 {
			hovered = hits[0]
		}
	}
	for k := 0; k < o.Len(); k++ {
		x, y, _ := o.At(k)
		sx, sy, ok := m.vp.ToScreen(x, y)
		if !ok {
			continue
		}
		cx, cy := dot(sx)/dotsX, dot(sy)/dotsY
		if sx < 0 || sy < 0 || cx >= w || cy >= h {
			continue
		}
		c := cell{r: '○', layer: layerHandle}
		switch {
		case k == hovered:
			c = cell{r: '◯', layer: layerHover}
		case o.Selection().Contains(k):
			c = cell{r: '◆', layer: layerActive}
		}
		if c.layer >= grid[cy][cx].layer {
			grid[cy][cx] = c
		}
	}
}

// renderRow styles runs of cells that share a layer in one call.
func renderRow(row []cell) string {
	var b strings.Builder
	start := 0
	for i := 1; i <= len(row); i++ {
		if i < len(row) && row[i].layer == row[start].layer {
			continue
		}
		run := make([]rune, 0, i-start)
		for _, c := range row[start:i] {
			run = append(run, c.r)
		}
		if st, ok := layerStyles[row[start].layer]; ok {
			b.WriteString(st.Render(string(run)))
		} else {
			b.WriteString(string(run))
		}
		start = i
	}
	return b.String()
}

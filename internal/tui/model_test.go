package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geoedit/internal/config"
	"geoedit/internal/geom"
	"geoedit/internal/tool"
	"geoedit/internal/watch"
)

func testConfig(t *testing.T) config.Config {
	cfg := config.Default()
	cfg.OpenDir = t.TempDir()
	return cfg
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func sized(m Model) Model { return send(m, tea.WindowSizeMsg{Width: 80, Height: 24}) }

func keyRune(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// map cell (x, y) sits at terminal (x, y+headerHeight) while the sidebar is hidden
func leftClick(x, y int) []tea.Msg {
	return []tea.Msg{
		mouse(tea.MouseActionPress, tea.MouseButtonLeft, x, y+headerHeight),
		mouse(tea.MouseActionRelease, tea.MouseButtonLeft, x, y+headerHeight),
	}
}

func rightClick(x, y int) []tea.Msg {
	return []tea.Msg{
		mouse(tea.MouseActionPress, tea.MouseButtonRight, x, y+headerHeight),
		mouse(tea.MouseActionRelease, tea.MouseButtonRight, x, y+headerHeight),
	}
}

func TestDrawWithMouse(t *testing.T) {
	m := sized(New(testConfig(t)))
	m = send(m, keyRune("d"))
	require.Equal(t, tool.Tool(m.ed.draw), m.ed.active)

	m = send(m, rightClick(10, 4)...)
	assert.Equal(t, tool.Drawing, m.ed.draw.State())
	m = send(m, leftClick(20, 4)...)
	m = send(m, rightClick(30, 8)...)

	require.Equal(t, 1, m.ed.store.Len())
	assert.Equal(t, tool.DrawIdle, m.ed.draw.State())
	xs, ys, ok := m.ed.store.Coords(0, m.ed.layer.Fields)
	require.True(t, ok)
	require.Len(t, xs, 3)

	cells := [][2]int{{10, 4}, {20, 4}, {30, 8}}
	for i := range xs {
		sx, sy, _ := m.vp.ToScreen(xs[i], ys[i])
		assert.Equal(t, cells[i], [2]int{dot(sx) / dotsX, dot(sy) / dotsY})
	}
	assert.Positive(t, m.ed.commits)
	assert.Contains(t, m.View(), "geoedit")
}

func TestKeyboardPressAndToolSwitch(t *testing.T) {
	m := sized(New(testConfig(t)))
	m = send(m, keyRune("d"), tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, 1, m.ed.store.Len(), "press at the map centre starts a shape")

	m = send(m, keyRune("v"))
	assert.Nil(t, m.ed.active)
	assert.Zero(t, m.ed.store.Len(), "leaving the draw tool cancels the degenerate shape")
	assert.Zero(t, m.ed.overlay.Len())
	assert.Equal(t, "view", m.ed.state())
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestEditLoadedFile(t *testing.T) {
	cfg := testConfig(t)
	path := filepath.Join(cfg.OpenDir, "square.wkt")
	writeFile(t, path, "POLYGON ((0 0, 10 0, 10 10, 0 10, 0 0))")

	m := NewWithPath(cfg, path)
	t.Cleanup(func() { _ = m.Close() })
	require.NotNil(t, m.watcher)
	m = sized(m)
	require.Equal(t, 1, m.ed.store.Len())
	assert.Equal(t, geom.BBox{MaxX: 10, MaxY: 10}, m.vp.bbox)

	m = send(m, keyRune("e"))
	m = send(m, leftClick(39, 10)...)
	_, tracking := m.ed.edit.Shape()
	require.True(t, tracking)
	require.Equal(t, 4, m.ed.overlay.Len(), "closing vertex is not a handle")

	// bottom-left corner of the map is vertex (0, 0)
	m = send(m, leftClick(0, 20)...)
	k, ok := m.ed.edit.Vertex()
	require.True(t, ok)
	assert.Equal(t, 0, k)

	m = send(m, tea.KeyMsg{Type: tea.KeyBackspace})
	xs, _, _ := m.ed.store.Coords(0, m.ed.layer.Fields)
	assert.Equal(t, []float64{10, 10, 0}, xs)
	assert.Equal(t, 3, m.ed.overlay.Len())

	m = send(m, keyRune("i"))
	assert.Contains(t, m.inspectPopup, "vertices: 3")
	assert.Contains(t, m.inspectPopup, "kind: polygon")
	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, m.inspectPopup)

	m = send(m, keyRune("a"))
	require.True(t, m.showAttrs)
	assert.Len(t, m.tbl.Rows(), 1)

	// the file changes on disk: rows are replaced and the table follows
	writeFile(t, path, "POLYGON ((0 0, 10 0, 10 10, 0 0))\nLINESTRING (1 1, 2 2)")
	m = send(m, watch.ChangedMsg{Path: path})
	assert.Equal(t, 2, m.ed.store.Len())
	assert.Len(t, m.tbl.Rows(), 2)
	assert.Zero(t, m.ed.overlay.Len(), "the tracked shape was replaced")
	assert.Contains(t, m.status, "reloaded")
}

func TestPasteAppendsShapes(t *testing.T) {
	m := sized(New(testConfig(t)))
	m = send(m, keyRune("p"))
	require.True(t, m.pasteMode)

	m.ta.SetValue("NOPE (1)")
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.pasteMode)
	assert.Contains(t, m.status, "wkt error")

	m.ta.SetValue("LINESTRING (0 0, 5 5)")
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.pasteMode)
	assert.Equal(t, 1, m.ed.store.Len())
	assert.Equal(t, geom.BBox{MaxX: 5, MaxY: 5}, m.vp.bbox)

	m = send(m, keyRune("p"))
	m.ta.SetValue("POINT (1 1)")
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 2, m.ed.store.Len())
	assert.Equal(t, geom.BBox{MaxX: 5, MaxY: 5}, m.vp.bbox, "existing shapes keep the frame")
}

func TestViewModePansMap(t *testing.T) {
	m := sized(New(testConfig(t)))
	m = send(m,
		mouse(tea.MouseActionPress, tea.MouseButtonLeft, 10, 5),
		mouse(tea.MouseActionMotion, tea.MouseButtonLeft, 14, 6),
		mouse(tea.MouseActionRelease, tea.MouseButtonLeft, 15, 6),
	)
	assert.Equal(t, 5, m.vp.offX)
	assert.Equal(t, 1, m.vp.offY)
	assert.Zero(t, m.ed.store.Len())
}

func TestQuit(t *testing.T) {
	m := sized(New(testConfig(t)))
	_, cmd := m.Update(keyRune("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

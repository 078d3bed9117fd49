package tui

import (
	"os"

	"github.com/charmbracelet/bubbles/help"
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"geoedit/internal/config"
	"geoedit/internal/watch"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

type Model struct {
	width  int
	height int

	showSidebar bool

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string
	watcher *watch.Watcher

	// Editing
	ed *editor
	vp *viewport
	gs *gestures
	// last cell of a view-mode pan
	panX, panY int

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// layer visibility
	showPoints bool
	showLines  bool
	showPolys  bool

	// inspect popup
	inspectPopup string

	// hover state, in map cells
	hovering    bool
	hoverCellX  int
	hoverCellY  int
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64

	// attributes table
	showAttrs bool
	tbl       table.Model

	keys keyMap
	help help.Model
}

func New(cfg config.Config) Model {
	m := Model{
		status:     "geoedit ready",
		showPoints: true,
		showLines:  true,
		showPolys:  true,
		vp:         newViewport(hitRadius(cfg)),
		gs:         &gestures{},
		keys:       defaultKeys(),
		help:       help.New(),
	}
	m.ed = newEditor(cfg, m.vp)
	m.cwd = cfg.OpenDir
	if m.cwd == "" || m.cwd == "." {
		m.cwd, _ = os.Getwd()
	}
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	m.l.DisableQuitKeybindings()
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here (POINT, LINESTRING, POLYGON and their MULTI forms). Enter appends the shapes; Esc cancels."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// attributes table setup (columns follow the store)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// hitRadius is the pointer hit radius in dots. It never drops below one
// cell so a click on a vertex glyph always hits it.
func hitRadius(cfg config.Config) float64 {
	return max(cfg.Tools.SnapTolerance, dotsY)
}

// NewWithPath preloads a file's data at launch.
func NewWithPath(cfg config.Config, path string) Model {
	m := New(cfg)
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return m.waitForChange() }

// waitForChange keeps one watcher command in flight while a file is open.
func (m Model) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Wait()
}

// Close releases the file watcher.
func (m Model) Close() error {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Close()
}

// mapRect returns the map area's origin and size in cells. It must match
// the layout built in View.
func (m Model) mapRect() (x, y, w, h int) {
	contentHeight := max(4, m.height-headerHeight-footerHeight)
	contentWidth := max(10, m.width)
	sw := 0
	if m.showSidebar {
		sw = sidebarWidth
		x = sidebarWidth + 1
	}
	w = max(10, contentWidth-sw-1)
	return x, headerHeight, w, contentHeight
}

package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"geoedit/internal/geom"
	"geoedit/internal/logging"
	"geoedit/internal/watch"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(name)
		if geom.Supported(ext) {
			items = append(items, fileItem{title: name, desc: ext, path: filepath.Join(m.cwd, name)})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

func counts(d geom.Data) string {
	return fmt.Sprintf("  counts: pts=%d ls=%d poly=%d", d.Count(geom.Point), d.Count(geom.Line), d.Count(geom.Polygon))
}

// loadPath replaces the shapes with the contents of p, frames them and
// starts watching p for changes.
func (m *Model) loadPath(p string) tea.Cmd {
	d, err := geom.Load(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		logging.L().Warn().Err(err).Str("path", p).Msg("load failed")
		return nil
	}
	m.selPath = p
	m.ed.load(d)
	m.vp.fit(d.BBox)
	m.status = "loaded: " + filepath.Base(p) + counts(d)
	logging.L().Info().Str("path", p).Int("shapes", len(d.Features)).Msg("loaded")
	m.sync()
	return m.watchFile(p)
}

// reload re-reads the open file after it changed on disk. The viewport
// is kept so the user does not lose their place.
func (m *Model) reload() {
	if m.selPath == "" {
		return
	}
	d, err := geom.Load(m.selPath)
	if err != nil {
		// editors often truncate before writing; the next event retries
		m.status = "reload error: " + err.Error()
		logging.L().Debug().Err(err).Str("path", m.selPath).Msg("reload failed")
		return
	}
	m.ed.load(d)
	m.status = "reloaded: " + filepath.Base(m.selPath) + counts(d)
	m.sync()
}

func (m *Model) watchFile(p string) tea.Cmd {
	if m.watcher != nil {
		if abs, err := filepath.Abs(p); err == nil && abs == m.watcher.Path() {
			return nil
		}
		m.watcher.Close()
		m.watcher = nil
	}
	w, err := watch.New(p)
	if err != nil {
		m.status += "  (not watching: " + err.Error() + ")"
		return nil
	}
	m.watcher = w
	return w.Wait()
}

package tui

import (
	"strconv"

	table "github.com/charmbracelet/bubbles/table"
)

// refreshAttrsFromCurrent rebuilds the table from the store's attribute
// columns, one row per shape, with the cursor on the first selected shape.
func (m *Model) refreshAttrsFromCurrent() {
	cols, rows := m.buildAttributes()
	// If there are no rows, disable attributes view to avoid rendering panics
	if len(rows) == 0 {
		// Do not touch table internals here to avoid re-render during SetColumns
		m.showAttrs = false
		m.status = "no shapes"
		return
	}
	tcols := make([]table.Column, 0, len(cols)+1)
	tcols = append(tcols, table.Column{Title: "#", Width: 4})
	maxColW := 24
	for _, c := range cols {
		tcols = append(tcols, table.Column{Title: c, Width: min(len(c)+2, maxColW)})
	}
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		row := make([]string, 0, len(tcols))
		row = append(row, strconv.Itoa(i+1))
		row = append(row, r...)
		trows = append(trows, table.Row(row))
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
	if i, ok := m.ed.store.Selection().First(); ok {
		m.tbl.SetCursor(i)
	}
}

// buildAttributes returns the attribute columns plus a vertex count, and
// one row of values per shape.
func (m *Model) buildAttributes() ([]string, [][]string) {
	s := m.ed.store
	cols := append(s.AttrColumns(), "vertices")
	rows := make([][]string, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		vals := make([]string, 0, len(cols))
		for _, c := range cols[:len(cols)-1] {
			vals = append(vals, s.Attr(c, i))
		}
		xs, _, _ := s.Coords(i, m.ed.layer.Fields)
		vals = append(vals, strconv.Itoa(len(xs)))
		rows = append(rows, vals)
	}
	return cols, rows
}

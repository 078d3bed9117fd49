// Package shapes holds the columnar shape store, the vertex overlay and
// the selection and change-notification types they share.
package shapes

import "sort"

// Fields names the coordinate columns of a layer. An empty name leaves
// that axis unconfigured.
type Fields struct {
	X string
	Y string
}

// Any reports whether at least one axis is configured.
func (f Fields) Any() bool { return f.X != "" || f.Y != "" }

// RowID is a stable row identity that survives removals of other rows.
type RowID uint64

// Row is one shape handed to Append or Reset. Seqs are borrowed: the
// store copies them the first time they are mutated.
type Row struct {
	Seqs  map[string][]float64
	Attrs map[string]string
}

// Store is a columnar shape table. Each row is one shape; sequence
// columns hold one coordinate list per row, attribute columns one string.
type Store struct {
	seqs    map[string][][]float64
	owned   map[string][]bool
	attrs   map[string][]string
	attrCol []string
	ids     []RowID
	nextID  RowID
	sel     Selection
	changes Notifier
}

func NewStore() *Store {
	return &Store{
		seqs:  map[string][][]float64{},
		owned: map[string][]bool{},
		attrs: map[string][]string{},
	}
}

// Len returns the number of rows.
func (s *Store) Len() int { return len(s.ids) }

func (s *Store) Selection() *Selection { return &s.sel }

func (s *Store) Changes() *Notifier { return &s.changes }

// Emit notifies subscribers. persisted marks a commit point.
func (s *Store) Emit(persisted bool) { s.changes.Emit(Change{Persisted: persisted}) }

// Seq returns the sequence column for field, creating it (one nil
// sequence per row) if it does not exist yet.
func (s *Store) Seq(field string) [][]float64 {
	col, ok := s.seqs[field]
	if !ok {
		col = make([][]float64, len(s.ids))
		s.seqs[field] = col
		s.owned[field] = make([]bool, len(s.ids))
	}
	return col
}

// SeqColumns returns the sequence column names in sorted order.
func (s *Store) SeqColumns() []string {
	out := make([]string, 0, len(s.seqs))
	for k := range s.seqs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// AttrColumns returns attribute column names in creation order.
func (s *Store) AttrColumns() []string { return append([]string(nil), s.attrCol...) }

// Attr returns the attribute value of row i, or "" when absent.
func (s *Store) Attr(col string, i int) string {
	vals, ok := s.attrs[col]
	if !ok || i < 0 || i >= len(vals) {
		return ""
	}
	return vals[i]
}

// Append adds a row and returns a reference to it. Columns the row does
// not mention are padded: sequence columns with nil, attribute columns
// with empty.
func (s *Store) Append(r Row, empty string) Ref {
	n := len(s.ids)
	for f := range r.Seqs {
		s.Seq(f)
	}
	for c := range r.Attrs {
		s.attrColumn(c, empty)
	}
	for f, col := range s.seqs {
		s.seqs[f] = append(col, r.Seqs[f])
		s.owned[f] = append(s.owned[f], false)
	}
	for c, col := range s.attrs {
		v, ok := r.Attrs[c]
		if !ok {
			v = empty
		}
		s.attrs[c] = append(col, v)
	}
	s.nextID++
	s.ids = append(s.ids, s.nextID)
	return Ref{store: s, id: s.ids[n]}
}

func (s *Store) attrColumn(c, empty string) {
	if _, ok := s.attrs[c]; ok {
		return
	}
	col := make([]string, len(s.ids))
	for i := range col {
		col[i] = empty
	}
	s.attrs[c] = col
	s.attrCol = append(s.attrCol, c)
}

// RemoveRows deletes the given rows. Out-of-range and duplicate indices
// are ignored. Selected indices are shifted to stay aligned.
func (s *Store) RemoveRows(idx ...int) int {
	idx = uniq(idx)
	sort.Sort(sort.Reverse(sort.IntSlice(idx)))
	removed := 0
	for _, i := range idx {
		if i < 0 || i >= len(s.ids) {
			continue
		}
		for f, col := range s.seqs {
			s.seqs[f] = append(col[:i], col[i+1:]...)
			s.owned[f] = append(s.owned[f][:i], s.owned[f][i+1:]...)
		}
		for c, col := range s.attrs {
			s.attrs[c] = append(col[:i], col[i+1:]...)
		}
		s.ids = append(s.ids[:i], s.ids[i+1:]...)
		s.sel.removed(i)
		removed++
	}
	return removed
}

// DeleteSelected removes every selected row and clears the selection.
func (s *Store) DeleteSelected() int {
	n := s.RemoveRows(s.sel.Indices()...)
	s.sel.Clear()
	return n
}

// Reset replaces all rows. Row identities are not reused.
func (s *Store) Reset(rows []Row, empty string) {
	for f := range s.seqs {
		s.seqs[f] = s.seqs[f][:0]
		s.owned[f] = s.owned[f][:0]
	}
	for c := range s.attrs {
		s.attrs[c] = s.attrs[c][:0]
	}
	s.ids = s.ids[:0]
	s.sel.Clear()
	for _, r := range rows {
		s.Append(r, empty)
	}
}

// Index returns the current row index of id.
func (s *Store) Index(id RowID) (int, bool) {
	for i, v := range s.ids {
		if v == id {
			return i, true
		}
	}
	return 0, false
}

// Ref returns a stable reference to row i.
func (s *Store) Ref(i int) (Ref, bool) {
	if i < 0 || i >= len(s.ids) {
		return Ref{}, false
	}
	return Ref{store: s, id: s.ids[i]}, true
}

// Vertices returns a mutable handle on row i's coordinate sequences.
// Borrowed sequences are copied here, so the handle always owns what
// it writes to. The handle is valid until rows are added or removed.
func (s *Store) Vertices(i int, f Fields) (Vertices, bool) {
	if i < 0 || i >= len(s.ids) {
		return Vertices{}, false
	}
	var v Vertices
	if f.X != "" {
		v.xs = s.growable(f.X, i)
	}
	if f.Y != "" {
		v.ys = s.growable(f.Y, i)
	}
	return v, true
}

func (s *Store) growable(field string, i int) *[]float64 {
	col := s.Seq(field)
	if !s.owned[field][i] {
		col[i] = append([]float64(nil), col[i]...)
		s.owned[field][i] = true
	}
	return &col[i]
}

// Ref identifies a row independently of its current index.
type Ref struct {
	store *Store
	id    RowID
}

// Index resolves the reference. ok is false when the row is gone.
func (r Ref) Index() (int, bool) {
	if r.store == nil {
		return 0, false
	}
	return r.store.Index(r.id)
}

func (r Ref) Valid() bool {
	_, ok := r.Index()
	return ok
}

func (r Ref) Store() *Store { return r.store }

func (r Ref) ID() RowID { return r.id }

// Coords copies row i's coordinates without taking ownership of
// borrowed sequences. Unconfigured axes read as zeros.
func (s *Store) Coords(i int, f Fields) (xs, ys []float64, ok bool) {
	if i < 0 || i >= len(s.ids) {
		return nil, nil, false
	}
	var bx, by []float64
	if f.X != "" {
		bx = s.Seq(f.X)[i]
	}
	if f.Y != "" {
		by = s.Seq(f.Y)[i]
	}
	n := len(bx)
	if f.X == "" {
		n = len(by)
	}
	xs = make([]float64, n)
	ys = make([]float64, n)
	copy(xs, bx)
	copy(ys, by)
	return xs, ys, true
}

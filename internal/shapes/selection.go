package shapes

import "sort"

// Mode controls how a hit-test result is merged into a Selection.
type Mode int

const (
	Replace Mode = iota
	Append
	Xor
)

func (m Mode) String() string {
	switch m {
	case Replace:
		return "replace"
	case Append:
		return "append"
	case Xor:
		return "xor"
	default:
		return "unknown"
	}
}

// Selection is a sorted set of selected indices.
type Selection struct {
	indices []int
}

func (s *Selection) Indices() []int { return append([]int(nil), s.indices...) }

func (s *Selection) Empty() bool { return len(s.indices) == 0 }

// First returns the lowest selected index.
func (s *Selection) First() (int, bool) {
	if len(s.indices) == 0 {
		return 0, false
	}
	return s.indices[0], true
}

func (s *Selection) Contains(i int) bool {
	k := sort.SearchInts(s.indices, i)
	return k < len(s.indices) && s.indices[k] == i
}

// Set replaces the selection with idx.
func (s *Selection) Set(idx ...int) {
	s.indices = s.indices[:0]
	for _, i := range idx {
		s.add(i)
	}
}

func (s *Selection) Clear() { s.indices = nil }

// Update merges hits according to mode. Replace with no hits clears the selection.
func (s *Selection) Update(hits []int, mode Mode) {
	switch mode {
	case Append:
		for _, i := range hits {
			s.add(i)
		}
	case Xor:
		for _, i := range uniq(hits) {
			if s.Contains(i) {
				s.remove(i)
			} else {
				s.add(i)
			}
		}
	default:
		s.Set(hits...)
	}
}

func (s *Selection) add(i int) {
	if i < 0 {
		return
	}
	k := sort.SearchInts(s.indices, i)
	if k < len(s.indices) && s.indices[k] == i {
		return
	}
	s.indices = append(s.indices, 0)
	copy(s.indices[k+1:], s.indices[k:])
	s.indices[k] = i
}

func (s *Selection) remove(i int) {
	k := sort.SearchInts(s.indices, i)
	if k < len(s.indices) && s.indices[k] == i {
		s.indices = append(s.indices[:k], s.indices[k+1:]...)
	}
}

// removed drops index i and shifts every higher index down by one,
// keeping the selection aligned with rows after a removal.
func (s *Selection) removed(i int) {
	out := s.indices[:0]
	for _, j := range s.indices {
		switch {
		case j < i:
			out = append(out, j)
		case j > i:
			out = append(out, j-1)
		}
	}
	s.indices = out
}

// inserted shifts every index at or above i up by one.
func (s *Selection) inserted(i int) {
	for k, j := range s.indices {
		if j >= i {
			s.indices[k] = j + 1
		}
	}
}

// truncate drops indices >= n.
func (s *Selection) truncate(n int) {
	k := sort.SearchInts(s.indices, n)
	s.indices = s.indices[:k]
}

func uniq(v []int) []int {
	seen := make(map[int]bool, len(v))
	out := make([]int, 0, len(v))
	for _, i := range v {
		if !seen[i] {
			seen[i] = true
			out = append(out, i)
		}
	}
	return out
}

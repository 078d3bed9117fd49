package shapes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionUpdate(t *testing.T) {
	tests := []struct {
		name string
		init []int
		hits []int
		mode Mode
		want []int
	}{
		{"replace", []int{1, 2}, []int{5, 3}, Replace, []int{3, 5}},
		{"replace with miss clears", []int{1}, nil, Replace, nil},
		{"append", []int{1}, []int{0, 1}, Append, []int{0, 1}},
		{"xor", []int{1, 2}, []int{2, 3, 3}, Xor, []int{1, 3}},
		{"negative ignored", nil, []int{-1, 4}, Append, []int{4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Selection
			s.Set(tt.init...)
			s.Update(tt.hits, tt.mode)
			if tt.want == nil {
				assert.True(t, s.Empty())
				return
			}
			assert.Equal(t, tt.want, s.Indices())
		})
	}
}

func TestSelectionFirstContains(t *testing.T) {
	var s Selection
	_, ok := s.First()
	assert.False(t, ok)

	s.Set(7, 3)
	first, ok := s.First()
	assert.True(t, ok)
	assert.Equal(t, 3, first)
	assert.True(t, s.Contains(7))
	assert.False(t, s.Contains(5))
	assert.Equal(t, "xor", Xor.String())
}

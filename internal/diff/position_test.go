package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineIndexPosition(t *testing.T) {
	t.Parallel()
	idx := NewLineIndex("ab\ncde\n\nf")

	cases := []struct {
		offset, line, column int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{2, 1, 3}, // the newline itself
		{3, 2, 1},
		{6, 2, 4},
		{7, 3, 1},
		{8, 4, 1},
		{9, 4, 2}, // one past the end
	}
	for _, tc := range cases {
		line, col := idx.Position(tc.offset)
		assert.Equal(t, tc.line, line, "offset %d", tc.offset)
		assert.Equal(t, tc.column, col, "offset %d", tc.offset)
	}
}

func TestLineIndexEmptyText(t *testing.T) {
	t.Parallel()
	idx := NewLineIndex("")
	line, col := idx.Position(0)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)
}

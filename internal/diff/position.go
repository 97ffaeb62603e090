package diff

import "sort"

// LineIndex maps byte offsets in a text to 1-based line and column numbers.
// Columns are byte counts, matching go/token.Position semantics.
type LineIndex struct {
	starts []int
}

// NewLineIndex builds the index for text in a single pass.
func NewLineIndex(text string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{starts: starts}
}

// Position returns the line and column containing offset. Offsets past the
// end of the text map to the position just past the last character.
func (x *LineIndex) Position(offset int) (line, column int) {
	i := sort.Search(len(x.starts), func(i int) bool { return x.starts[i] > offset }) - 1
	return i + 1, offset - x.starts[i] + 1
}

package diff

import "strings"

// ShowInvisibles substitutes the whitespace characters that commonly appear
// in formatting edits with visible glyphs, so that an edit like "insert two
// spaces" reads as something other than an empty-looking string. All other
// characters, including other Unicode whitespace, pass through unchanged.
func ShowInvisibles(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case ' ':
			b.WriteRune('·') // U+00B7 middle dot
		case '\n':
			b.WriteRune('⏎') // U+23CE return symbol
		case '\t':
			b.WriteRune('↹') // U+21B9 tab with shift tab
		case '\r':
			b.WriteRune('␍') // U+240D symbol for carriage return
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Package fixer applies coalesced edits back to source files.
package fixer

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fmtlint/fmtlint/internal/diff"
	tt "github.com/fmtlint/fmtlint/internal/types"
)

// Apply replays edits against source and returns the patched text. Edits must
// be sorted by ascending offset and must not overlap; each deleted span is
// verified against the original before it is consumed, so a stale edit fails
// loudly instead of corrupting the file.
func Apply(source string, edits []diff.Edit) (string, error) {
	var b strings.Builder
	b.Grow(len(source))

	last := 0
	for _, e := range edits {
		end := e.Offset + len(e.Deleted)
		switch {
		case e.Offset < last:
			return "", fmt.Errorf("overlapping edit at offset %d", e.Offset)
		case end > len(source):
			return "", fmt.Errorf("edit at offset %d extends past end of source (%d > %d)", e.Offset, end, len(source))
		case source[e.Offset:end] != e.Deleted:
			return "", fmt.Errorf("edit at offset %d does not match source text", e.Offset)
		}
		b.WriteString(source[last:e.Offset])
		b.WriteString(e.Inserted)
		last = end
	}
	b.WriteString(source[last:])
	return b.String(), nil
}

// Fixer rewrites files in place from the fixable issues reported against
// them.
type Fixer struct {
	DryRun bool
}

func New(dryRun bool) *Fixer {
	return &Fixer{DryRun: dryRun}
}

// Fix applies every fixable issue reported against filename. Issues without
// an edit are skipped. In dry-run mode the would-be fixes are printed and the
// file is left untouched.
func (f *Fixer) Fix(filename string, issues []tt.Issue) error {
	edits := make([]diff.Edit, 0, len(issues))
	for _, issue := range issues {
		if issue.Filename != filename || !issue.Fixable() {
			continue
		}
		edits = append(edits, *issue.Edit)
	}
	if len(edits) == 0 {
		return nil
	}

	sort.Slice(edits, func(i, j int) bool {
		return edits[i].Offset < edits[j].Offset
	})

	if f.DryRun {
		for _, e := range edits {
			fmt.Printf("Would fix %s at offset %d: %s `%s`\n",
				filename, e.Offset, e.Op, diff.ShowInvisibles(previewText(e)))
		}
		return nil
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	fixed, err := Apply(string(content), edits)
	if err != nil {
		return fmt.Errorf("failed to apply edits to %s: %w", filename, err)
	}

	if err := os.WriteFile(filename, []byte(fixed), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	fmt.Printf("Fixed %d issue(s) in %s\n", len(edits), filename)
	return nil
}

func previewText(e diff.Edit) string {
	if e.Op == diff.OpDelete {
		return e.Deleted
	}
	return e.Inserted
}

package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// RawOp is one element of the character-level edit script produced by the
// underlying diff algorithm.
type RawOp = diffmatchpatch.Diff

// EditOp classifies a coalesced edit.
type EditOp int

const (
	OpInsert EditOp = iota
	OpDelete
	OpReplace
)

func (op EditOp) String() string {
	switch op {
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpReplace:
		return "replace"
	default:
		return fmt.Sprintf("EditOp(%d)", int(op))
	}
}

// Edit is a single reportable change anchored to a byte offset in the
// original text. Deleted is the text removed starting at Offset; Inserted is
// the text placed there instead. Inserts have empty Deleted, deletes have
// empty Inserted.
type Edit struct {
	Op       EditOp
	Offset   int
	Deleted  string
	Inserted string
}

// lineBreaks are the characters that end a logical line. \r\n is covered by
// \r; U+2028 and U+2029 are the Unicode line and paragraph separators.
const lineBreaks = "\n\r\u2028\u2029"

// Diff computes the coalesced edit sequence that transforms source into
// target. Edits come back in ascending offset order and never overlap.
func Diff(source, target string) ([]Edit, error) {
	dmp := diffmatchpatch.New()
	ops := dmp.DiffMain(source, target, false)
	// Lossless cleanup only shifts edit boundaries; it never removes equal
	// runs, so a line break in unchanged text always survives to flush the
	// batch in Coalesce.
	ops = dmp.DiffCleanupSemanticLossless(ops)
	return Coalesce(ops)
}

type batchState int

const (
	idle batchState = iota
	batching
)

// coalescer folds a raw edit script into line-aware edits. offset tracks the
// position in the original text and only advances on the source side:
// consumed equal runs and flushed deletions move it, insertions never do.
type coalescer struct {
	state  batchState
	offset int
	batch  []RawOp
	edits  []Edit
}

// Coalesce merges a raw character-level edit script into reportable edits.
// Edits separated only by unchanged text on the same line are combined into
// one; an unchanged run containing a line break flushes the pending batch, so
// no reported edit silently spans a line boundary it did not itself change.
func Coalesce(ops []RawOp) ([]Edit, error) {
	var c coalescer
	for _, op := range ops {
		switch op.Type {
		case diffmatchpatch.DiffInsert, diffmatchpatch.DiffDelete:
			c.push(op)
		case diffmatchpatch.DiffEqual:
			if c.state == idle {
				c.offset += len(op.Text)
				continue
			}
			if strings.ContainsAny(op.Text, lineBreaks) {
				c.flush()
				c.offset += len(op.Text)
			} else {
				c.push(op)
			}
		default:
			// The diff algorithm is contracted to emit only the three kinds
			// above. Dropping an op here would corrupt the round trip.
			return nil, fmt.Errorf("diff: unknown edit operation %d", op.Type)
		}
	}
	c.flush()
	return c.edits, nil
}

func (c *coalescer) push(op RawOp) {
	c.batch = append(c.batch, op)
	c.state = batching
}

// flush classifies and emits the pending batch. Equal text inside a batch
// exists on both sides, so it contributes to both accumulations.
func (c *coalescer) flush() {
	if c.state == idle {
		return
	}

	var deleted, inserted strings.Builder
	for _, op := range c.batch {
		switch op.Type {
		case diffmatchpatch.DiffDelete:
			deleted.WriteString(op.Text)
		case diffmatchpatch.DiffInsert:
			inserted.WriteString(op.Text)
		case diffmatchpatch.DiffEqual:
			deleted.WriteString(op.Text)
			inserted.WriteString(op.Text)
		}
	}

	del, ins := deleted.String(), inserted.String()
	switch {
	case del != "" && ins != "":
		c.edits = append(c.edits, Edit{Op: OpReplace, Offset: c.offset, Deleted: del, Inserted: ins})
	case ins != "":
		c.edits = append(c.edits, Edit{Op: OpInsert, Offset: c.offset, Inserted: ins})
	case del != "":
		c.edits = append(c.edits, Edit{Op: OpDelete, Offset: c.offset, Deleted: del})
	}

	c.offset += len(del)
	c.batch = c.batch[:0]
	c.state = idle
}

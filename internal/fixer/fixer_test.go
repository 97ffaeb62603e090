package fixer

import (
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmtlint/fmtlint/internal/diff"
	tt "github.com/fmtlint/fmtlint/internal/types"
)

func TestApply(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		source string
		edits  []diff.Edit
		want   string
	}{
		{
			name:   "insert",
			source: "hello",
			edits:  []diff.Edit{{Op: diff.OpInsert, Offset: 5, Inserted: " world"}},
			want:   "hello world",
		},
		{
			name:   "delete",
			source: "hello world",
			edits:  []diff.Edit{{Op: diff.OpDelete, Offset: 5, Deleted: " world"}},
			want:   "hello",
		},
		{
			name:   "replace",
			source: "hello world",
			edits:  []diff.Edit{{Op: diff.OpReplace, Offset: 6, Deleted: "world", Inserted: "universe"}},
			want:   "hello universe",
		},
		{
			name:   "multiple edits in order",
			source: "a=1\nb=2\n",
			edits: []diff.Edit{
				{Op: diff.OpReplace, Offset: 1, Deleted: "=", Inserted: " = "},
				{Op: diff.OpReplace, Offset: 5, Deleted: "=", Inserted: " = "},
			},
			want: "a = 1\nb = 2\n",
		},
		{
			name:   "no edits",
			source: "unchanged",
			edits:  nil,
			want:   "unchanged",
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Apply(tc.source, tc.edits)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestApplyRejectsStaleEdit(t *testing.T) {
	t.Parallel()
	_, err := Apply("hello", []diff.Edit{{Op: diff.OpDelete, Offset: 0, Deleted: "bye"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match")
}

func TestApplyRejectsOverlap(t *testing.T) {
	t.Parallel()
	edits := []diff.Edit{
		{Op: diff.OpDelete, Offset: 0, Deleted: "ab"},
		{Op: diff.OpDelete, Offset: 1, Deleted: "bc"},
	}
	_, err := Apply("abcd", edits)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overlapping")
}

func TestApplyRejectsOutOfRange(t *testing.T) {
	t.Parallel()
	_, err := Apply("ab", []diff.Edit{{Op: diff.OpDelete, Offset: 1, Deleted: "bcd"}})
	require.Error(t, err)
}

func TestApplyRoundTripsDiff(t *testing.T) {
	t.Parallel()
	source := "func main(){\nx:=1\nreturn\n}\n"
	target := "func main() {\n\tx := 1\n\treturn\n}\n"

	edits, err := diff.Diff(source, target)
	require.NoError(t, err)
	got, err := Apply(source, edits)
	require.NoError(t, err)
	assert.Equal(t, target, got)
}

func issueFor(filename string, e diff.Edit) tt.Issue {
	ed := e
	return tt.Issue{
		Rule:     "format",
		Filename: filename,
		Start:    token.Position{Filename: filename, Offset: e.Offset},
		Edit:     &ed,
	}
}

func TestFixRewritesFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(path, []byte("x:=1\n"), 0o644))

	issues := []tt.Issue{
		issueFor(path, diff.Edit{Op: diff.OpReplace, Offset: 1, Deleted: ":=", Inserted: " := "}),
	}

	require.NoError(t, New(false).Fix(path, issues))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x := 1\n", string(content))
}

func TestFixDryRunLeavesFileAlone(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(path, []byte("x:=1\n"), 0o644))

	issues := []tt.Issue{
		issueFor(path, diff.Edit{Op: diff.OpReplace, Offset: 1, Deleted: ":=", Inserted: " := "}),
	}

	require.NoError(t, New(true).Fix(path, issues))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x:=1\n", string(content))
}

func TestFixSkipsUnfixableAndForeignIssues(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(path, []byte("x:=1\n"), 0o644))

	issues := []tt.Issue{
		{Rule: "format", Filename: path}, // no edit
		issueFor(filepath.Join(dir, "other.go"),
			diff.Edit{Op: diff.OpDelete, Offset: 0, Deleted: "x"}),
	}

	require.NoError(t, New(false).Fix(path, issues))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x:=1\n", string(content))
}

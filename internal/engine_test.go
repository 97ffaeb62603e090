package internal

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmtlint/fmtlint/internal/config"
	"github.com/fmtlint/fmtlint/internal/diff"
	tt "github.com/fmtlint/fmtlint/internal/types"
)

var assignSpacing = regexp.MustCompile(` *:= *`)

// spaceEqualsFormatter normalizes the spacing around assignment operators, a
// stand-in for a real external formatter. Like a real formatter it is a fixed
// point: running it over already formatted text changes nothing.
func spaceEqualsFormatter(_ context.Context, source string) (string, error) {
	return assignSpacing.ReplaceAllString(source, " := "), nil
}

func newTestEngine(t *testing.T, f FormatFunc) *Engine {
	t.Helper()
	e := NewEngine(nil, config.NewResolver(nil, "", nil))
	e.SetFormatter(f)
	return e
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestEngineRun(t *testing.T) {
	t.Parallel()
	path := writeFile(t, t.TempDir(), "main.go", "x:=1\ny:=2\n")

	e := newTestEngine(t, spaceEqualsFormatter)
	issues, err := e.Run(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, issues, 2)

	first := issues[0]
	assert.Equal(t, RuleName, first.Rule)
	assert.Equal(t, path, first.Filename)
	assert.Equal(t, tt.SeverityWarning, first.Severity)
	assert.Equal(t, 1, first.Start.Line)
	assert.Equal(t, 2, first.Start.Column)
	assert.True(t, strings.HasPrefix(first.Message, "Replace `"), first.Message)
	assert.Contains(t, first.Message, "·:=·")
	require.True(t, first.Fixable())
	assert.Equal(t, diff.OpReplace, first.Edit.Op)

	second := issues[1]
	assert.Equal(t, 2, second.Start.Line)
	assert.Greater(t, second.Start.Offset, first.End.Offset)
}

func TestEngineRunCleanFile(t *testing.T) {
	t.Parallel()

	// The stub must not disturb clean input, or this test would report
	// phantom issues.
	formatted, err := spaceEqualsFormatter(context.Background(), "x := 1\n")
	require.NoError(t, err)
	require.Equal(t, "x := 1\n", formatted)

	path := writeFile(t, t.TempDir(), "main.go", "x := 1\n")

	e := newTestEngine(t, spaceEqualsFormatter)
	issues, err := e.Run(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestEngineRunSource(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, spaceEqualsFormatter)
	issues, err := e.RunSource(context.Background(), []byte("x:=1\n"))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "", issues[0].Filename)
}

func TestEngineSeverityOff(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte("severity: off\n"), 0o644))
	path := writeFile(t, dir, "main.go", "x:=1\n")

	e := newTestEngine(t, spaceEqualsFormatter)
	issues, err := e.Run(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestEngineIgnorePath(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "main.go", "x:=1\n")

	e := newTestEngine(t, spaceEqualsFormatter)
	e.IgnorePath(dir)
	issues, err := e.Run(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestEngineFormatterError(t *testing.T) {
	t.Parallel()
	path := writeFile(t, t.TempDir(), "main.go", "x:=1\n")

	e := newTestEngine(t, func(context.Context, string) (string, error) {
		return "", errors.New("boom")
	})
	_, err := e.Run(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestEngineCacheSkipsFormatter(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "main.go", "x:=1\n")

	var calls atomic.Int32
	e := newTestEngine(t, func(ctx context.Context, source string) (string, error) {
		calls.Add(1)
		return spaceEqualsFormatter(ctx, source)
	})

	cache, err := NewCache(filepath.Join(dir, ".cache"))
	require.NoError(t, err)
	e.SetCache(cache)

	first, err := e.Run(context.Background(), path)
	require.NoError(t, err)
	second, err := e.Run(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, first, second)

	// A content change invalidates the entry.
	require.NoError(t, os.WriteFile(path, []byte("y:=2\n"), 0o644))
	_, err = e.Run(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestEngineMessageTruncation(t *testing.T) {
	t.Parallel()
	long := strings.Repeat("a", 80)
	path := writeFile(t, t.TempDir(), "main.go", "start")

	e := newTestEngine(t, func(_ context.Context, source string) (string, error) {
		return source + long, nil
	})
	issues, err := e.Run(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "…")
	assert.Less(t, len(issues[0].Message), len(long))
}

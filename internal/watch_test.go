package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	tt "github.com/fmtlint/fmtlint/internal/types"
)

func TestWatchLifecycle(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	noop := func(string, []tt.Issue) {}

	e := newTestEngine(t, spaceEqualsFormatter)
	require.NoError(t, e.StartWatching([]string{dir}, noop))
	require.Error(t, e.StartWatching([]string{dir}, noop), "double start must fail")

	require.NoError(t, e.StopWatching())
	require.NoError(t, e.StopWatching(), "stop is idempotent")

	// A stopped engine can start watching again.
	require.NoError(t, e.StartWatching([]string{dir}, noop))
	require.NoError(t, e.StopWatching())
}

func TestWatchReportsOnWrite(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "main.go", "x := 1\n")

	e := newTestEngine(t, spaceEqualsFormatter)
	reports := make(chan []tt.Issue, 1)
	err := e.StartWatching([]string{dir}, func(_ string, issues []tt.Issue) {
		select {
		case reports <- issues:
		default:
		}
	})
	require.NoError(t, err)
	defer func() { _ = e.StopWatching() }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("x:=1\n"), 0o644))

	select {
	case issues := <-reports:
		require.Len(t, issues, 1)
		require.Equal(t, path, issues[0].Filename)
	case <-time.After(5 * time.Second):
		t.Fatal("no re-check report after file write")
	}
}

package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScannerFiltersByExtension(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()

	files := map[string]string{
		"file1.go":        "package main",
		"file2.go":        "package test",
		"file3.txt":       "This is a text file",
		"subdir/file4.go": "package subdir",
	}
	for path, content := range files {
		fullPath := filepath.Join(tempDir, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0o755))
		require.NoError(t, os.WriteFile(fullPath, []byte(content), 0o644))
	}

	scanned, err := New(tempDir, ".go").Scan()
	require.NoError(t, err)
	assert.Len(t, scanned, 3)

	found := make(map[string]bool)
	for _, f := range scanned {
		found[f.Path] = true
		assert.Greater(t, f.Size, int64(0))
	}
	assert.True(t, found[filepath.Join(tempDir, "file1.go")])
	assert.True(t, found[filepath.Join(tempDir, "subdir", "file4.go")])
	assert.False(t, found[filepath.Join(tempDir, "file3.txt")])
}

func TestScannerNoExtensionsMatchesAll(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "anything.bin"), []byte{1}, 0o644))

	scanned, err := New(tempDir).Scan()
	require.NoError(t, err)
	assert.Len(t, scanned, 1)
}

// Package scanner discovers candidate files under a directory tree.
package scanner

import (
	"io/fs"
	"path/filepath"
)

// FileInfo describes one discovered file.
type FileInfo struct {
	Path string
	Size int64
}

// Scanner walks a root directory collecting files, optionally restricted to
// a set of extensions.
type Scanner struct {
	rootDir    string
	extensions []string
}

// New creates a scanner rooted at rootDir. With no extensions, every regular
// file matches; the caller applies finer filtering.
func New(rootDir string, extensions ...string) *Scanner {
	return &Scanner{
		rootDir:    rootDir,
		extensions: extensions,
	}
}

// Scan walks the tree and returns the matching files.
func (s *Scanner) Scan() ([]FileInfo, error) {
	var files []FileInfo
	err := filepath.WalkDir(s.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !s.isTargetFile(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, FileInfo{Path: path, Size: info.Size()})
		return nil
	})
	return files, err
}

func (s *Scanner) isTargetFile(path string) bool {
	if len(s.extensions) == 0 {
		return true
	}
	ext := filepath.Ext(path)
	for _, want := range s.extensions {
		if ext == want {
			return true
		}
	}
	return false
}

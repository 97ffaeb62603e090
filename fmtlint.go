// Package fmtlint compares files against the output of an external formatter
// and reports every difference as a located, fixable issue.
package fmtlint

import (
	"context"

	"go.uber.org/zap"

	"github.com/fmtlint/fmtlint/internal"
	"github.com/fmtlint/fmtlint/internal/config"
	"github.com/fmtlint/fmtlint/internal/fixer"
	tt "github.com/fmtlint/fmtlint/internal/types"
)

// Issue is a single formatting difference reported against a file.
type Issue = tt.Issue

func newDefaultEngine() *internal.Engine {
	logger := zap.NewNop()
	return internal.NewEngine(logger, config.NewResolver(logger, "", nil))
}

// Check runs the configured formatter over filename and returns one issue per
// coalesced difference. Configuration is discovered from .fmtlint.yaml files
// between the filesystem root and the file's directory.
func Check(ctx context.Context, filename string) ([]Issue, error) {
	return newDefaultEngine().Run(ctx, filename)
}

// CheckSource is like Check but for in-memory source.
func CheckSource(ctx context.Context, source []byte) ([]Issue, error) {
	return newDefaultEngine().RunSource(ctx, source)
}

// Fix checks filename and rewrites it with every fixable edit applied.
func Fix(ctx context.Context, filename string) error {
	issues, err := Check(ctx, filename)
	if err != nil {
		return err
	}
	return fixer.New(false).Fix(filename, issues)
}

// Package lint is the public entry point for running formatting checks over
// files and directories.
package lint

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/fmtlint/fmtlint/internal"
	"github.com/fmtlint/fmtlint/internal/config"
	tt "github.com/fmtlint/fmtlint/internal/types"
	"github.com/fmtlint/fmtlint/scanner"
)

// LintEngine is the engine surface the processing helpers need.
type LintEngine interface {
	Run(ctx context.Context, filePath string) ([]tt.Issue, error)
	RunSource(ctx context.Context, source []byte) ([]tt.Issue, error)
	ShouldCheck(path string) bool
	IgnorePath(path string)
}

// New builds a check engine backed by hierarchical configuration resolution.
// configPath, when non-empty, pins the configuration to one file instead of
// discovering .fmtlint.yaml files; overrides is the inline tree from CLI
// flags and wins every conflict.
func New(logger *zap.Logger, configPath string, overrides map[string]any) *internal.Engine {
	resolver := config.NewResolver(logger, configPath, overrides)
	return internal.NewEngine(logger, resolver)
}

// ProcessFile checks a single file.
func ProcessFile(ctx context.Context, engine LintEngine, filePath string) ([]tt.Issue, error) {
	return engine.Run(ctx, filePath)
}

// ProcessSource checks an in-memory source.
func ProcessSource(ctx context.Context, engine LintEngine, source []byte) ([]tt.Issue, error) {
	return engine.RunSource(ctx, source)
}

// ProcessFiles checks every given path (file or directory) and returns the
// combined issues.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	paths []string,
	processor func(context.Context, LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for _, path := range paths {
		issues, err := ProcessPath(ctx, logger, engine, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return allIssues, err
		}
		allIssues = append(allIssues, issues...)
	}
	return allIssues, nil
}

// ProcessPath checks one path. Directories are scanned recursively and their
// files checked by a bounded worker pool; a progress bar tracks large runs.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	path string,
	processor func(context.Context, LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !engine.ShouldCheck(path) {
			return nil, nil
		}
		return processor(ctx, engine, path)
	}

	scanned, err := scanner.New(path).Scan()
	if err != nil {
		return nil, fmt.Errorf("error scanning %s: %w", path, err)
	}

	var files []string
	for _, f := range scanned {
		if engine.ShouldCheck(f.Path) {
			files = append(files, f.Path)
		}
	}
	if len(files) == 0 {
		return nil, nil
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription(path),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
	)

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		allIssues []tt.Issue
		firstErr  error
	)

	sem := make(chan struct{}, runtime.NumCPU())

loop:
	for _, filePath := range files {
		select {
		case <-ctx.Done():
			firstErr = ctx.Err()
			break loop
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(fp string) {
			defer wg.Done()
			defer func() { <-sem }()

			issues, err := processor(ctx, engine, fp)
			_ = bar.Add(1)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if logger != nil {
					logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
				}
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			allIssues = append(allIssues, issues...)
		}(filePath)
	}

	wg.Wait()
	fmt.Println()

	return allIssues, firstErr
}

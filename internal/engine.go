package internal

import (
	"context"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/fmtlint/fmtlint/internal/config"
	"github.com/fmtlint/fmtlint/internal/diff"
	"github.com/fmtlint/fmtlint/internal/runner"
	tt "github.com/fmtlint/fmtlint/internal/types"
)

// RuleName is the single rule every formatting issue is reported under.
const RuleName = "format"

// maxDisplayRunes bounds the edit text quoted in issue messages. Large
// rewrites would otherwise dump whole files into a one-line diagnostic.
const maxDisplayRunes = 40

// Formatter produces the formatted rendition of a source text. It is the
// only collaborator the engine needs; the production implementation shells
// out to an external binary.
type Formatter interface {
	Format(ctx context.Context, source string) (string, error)
}

// FormatFunc adapts a function to the Formatter interface.
type FormatFunc func(ctx context.Context, source string) (string, error)

func (f FormatFunc) Format(ctx context.Context, source string) (string, error) {
	return f(ctx, source)
}

// Engine manages the formatting-check process: it resolves the configuration
// for each file, runs the external formatter, and turns the differences into
// located issues.
type Engine struct {
	logger       *zap.Logger
	resolver     *config.Resolver
	formatter    Formatter
	cache        *Cache
	ignoredPaths []string

	// watch mode state, see watch.go
	watchState
}

// NewEngine creates a new check engine on top of a config resolver.
func NewEngine(logger *zap.Logger, resolver *config.Resolver) *Engine {
	return &Engine{
		logger:   logger,
		resolver: resolver,
	}
}

// SetFormatter replaces the external formatter invocation for every file.
// Tests use it to avoid spawning a real binary.
func (e *Engine) SetFormatter(f Formatter) {
	e.formatter = f
}

// SetCache attaches a result cache so unchanged files skip the external
// formatter entirely.
func (e *Engine) SetCache(c *Cache) {
	e.cache = c
}

// IgnorePath excludes a path (and everything under it) from checking.
func (e *Engine) IgnorePath(path string) {
	e.ignoredPaths = append(e.ignoredPaths, filepath.Clean(path))
}

// ShouldCheck reports whether path is a checkable file: not ignored, and its
// extension appears in the extension list of the configuration that governs
// it. Differently configured subtrees can check different file types.
func (e *Engine) ShouldCheck(path string) bool {
	if e.isIgnored(path) {
		return false
	}
	cfg, err := e.resolver.ForFile(path)
	if err != nil {
		return false
	}
	for _, pattern := range cfg.Ignore {
		if ok, _ := filepath.Match(pattern, filepath.Base(path)); ok {
			return false
		}
	}
	ext := filepath.Ext(path)
	for _, want := range cfg.Extensions {
		if ext == want {
			return true
		}
	}
	return false
}

func (e *Engine) isIgnored(path string) bool {
	clean := filepath.Clean(path)
	for _, ignored := range e.ignoredPaths {
		if clean == ignored || strings.HasPrefix(clean, ignored+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Run checks a single file and returns the formatting issues found in it.
func (e *Engine) Run(ctx context.Context, filename string) ([]tt.Issue, error) {
	if e.isIgnored(filename) {
		return nil, nil
	}

	cfg, err := e.resolver.ForFile(filename)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	if e.cache != nil {
		if issues, ok := e.cache.Get(filename, content, cfg); ok {
			return issues, nil
		}
	}

	issues, err := e.check(ctx, filename, string(content), cfg)
	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		e.cache.Set(filename, content, cfg, issues)
	}
	return issues, nil
}

// RunSource checks an in-memory source using the configuration of the
// current working directory.
func (e *Engine) RunSource(ctx context.Context, source []byte) ([]tt.Issue, error) {
	cfg, err := e.resolver.ForFile("source")
	if err != nil {
		return nil, err
	}
	return e.check(ctx, "", string(source), cfg)
}

func (e *Engine) check(ctx context.Context, filename, source string, cfg *config.Config) ([]tt.Issue, error) {
	if cfg.Severity == tt.SeverityOff {
		return nil, nil
	}

	formatted, err := e.formatterFor(cfg).Format(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("error running formatter: %w", err)
	}

	edits, err := diff.Diff(source, formatted)
	if err != nil {
		return nil, err
	}
	if len(edits) == 0 {
		return nil, nil
	}

	index := diff.NewLineIndex(source)
	issues := make([]tt.Issue, 0, len(edits))
	for _, edit := range edits {
		issues = append(issues, buildIssue(filename, cfg.Severity, index, edit))
	}
	return issues, nil
}

func (e *Engine) formatterFor(cfg *config.Config) Formatter {
	if e.formatter != nil {
		return e.formatter
	}
	return runner.New(cfg.Formatter, cfg.Options)
}

func buildIssue(filename string, severity tt.Severity, index *diff.LineIndex, edit diff.Edit) tt.Issue {
	startLine, startColumn := index.Position(edit.Offset)
	endLine, endColumn := index.Position(edit.Offset + len(edit.Deleted))

	e := edit
	return tt.Issue{
		Rule:       RuleName,
		Category:   "style",
		Filename:   filename,
		Message:    editMessage(edit),
		Suggestion: edit.Inserted,
		Severity:   severity,
		Start: token.Position{
			Filename: filename,
			Offset:   edit.Offset,
			Line:     startLine,
			Column:   startColumn,
		},
		End: token.Position{
			Filename: filename,
			Offset:   edit.Offset + len(edit.Deleted),
			Line:     endLine,
			Column:   endColumn,
		},
		Edit: &e,
	}
}

func editMessage(edit diff.Edit) string {
	switch edit.Op {
	case diff.OpInsert:
		return fmt.Sprintf("Insert `%s`", displayText(edit.Inserted))
	case diff.OpDelete:
		return fmt.Sprintf("Delete `%s`", displayText(edit.Deleted))
	default:
		return fmt.Sprintf("Replace `%s` with `%s`", displayText(edit.Deleted), displayText(edit.Inserted))
	}
}

func displayText(s string) string {
	if utf8.RuneCountInString(s) > maxDisplayRunes {
		runes := []rune(s)
		s = string(runes[:maxDisplayRunes]) + "…"
	}
	return diff.ShowInvisibles(s)
}

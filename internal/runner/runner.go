// Package runner executes the configured external formatter.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	"github.com/fmtlint/fmtlint/internal/config"
)

// Runner invokes one formatter command. The source text is fed on stdin and
// the formatted text is read from stdout, so no temporary files are needed.
type Runner struct {
	command string
	args    []string
}

// New builds a runner for the given formatter configuration. Scalar options
// are rendered as trailing --key=value flags in deterministic (sorted) order;
// nested option trees are formatter-specific and left to explicit args.
func New(f config.Formatter, options map[string]any) *Runner {
	args := append([]string{}, f.Args...)

	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch v := options[k].(type) {
		case bool:
			if v {
				args = append(args, "--"+k)
			}
		case string, int, int64, float64:
			args = append(args, fmt.Sprintf("--%s=%v", k, v))
		}
	}

	return &Runner{command: f.Command, args: args}
}

// Format runs the formatter against source and returns its output. A non-zero
// exit is an error carrying the formatter's stderr.
func (r *Runner) Format(ctx context.Context, source string) (string, error) {
	cmd := exec.CommandContext(ctx, r.command, r.args...)
	cmd.Stdin = strings.NewReader(source)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("formatter %s: %w: %s", r.command, err, msg)
		}
		return "", fmt.Errorf("formatter %s: %w", r.command, err)
	}
	return stdout.String(), nil
}

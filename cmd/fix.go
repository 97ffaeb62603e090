package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fmtlint/fmtlint/internal/fixer"
	tt "github.com/fmtlint/fmtlint/internal/types"
	"github.com/fmtlint/fmtlint/lint"
)

var dryRun bool

var fixCmd = &cobra.Command{
	Use:   "fix [paths...]",
	Short: "Automatically apply the formatter's edits",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine := newEngine()
		runAutoFix(ctx, logger, engine, args, dryRun)
	},
}

func init() {
	fixCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show fixes without applying them")
}

func runAutoFix(ctx context.Context, logger *zap.Logger, engine lint.LintEngine, paths []string, dryRun bool) {
	fix := fixer.New(dryRun)

	for _, path := range paths {
		issues, err := lint.ProcessPath(ctx, logger, engine, path, lint.ProcessFile)
		if err != nil {
			logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			continue
		}

		// Apply per file so a failure in one file leaves the others fixed.
		byFile := make(map[string][]tt.Issue)
		for _, issue := range issues {
			byFile[issue.Filename] = append(byFile[issue.Filename], issue)
		}
		for filename, fileIssues := range byFile {
			if err := fix.Fix(filename, fileIssues); err != nil {
				logger.Error("Error fixing issues", zap.String("file", filename), zap.Error(err))
			}
		}
	}
}

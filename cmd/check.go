package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fmtlint/fmtlint/formatter"
	"github.com/fmtlint/fmtlint/internal"
	tt "github.com/fmtlint/fmtlint/internal/types"
	"github.com/fmtlint/fmtlint/lint"
)

var (
	ignorePaths    string
	jsonOutput     bool
	outPath        string
	cacheDirectory string
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check files against the configured formatter",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine := newEngine()
		applyIgnorePaths(engine)

		if cacheDirectory != "" {
			cache, err := internal.NewCache(cacheDirectory)
			if err != nil {
				logger.Fatal("Failed to open result cache", zap.Error(err))
			}
			engine.SetCache(cache)
			defer func() {
				if err := cache.Save(); err != nil {
					logger.Error("Failed to save result cache", zap.Error(err))
				}
			}()
		}

		issues, err := lint.ProcessFiles(ctx, logger, engine, args, lint.ProcessFile)
		if err != nil {
			logger.Error("Error processing files", zap.Error(err))
			os.Exit(1)
		}

		printIssues(logger, issues, jsonOutput, outPath)

		if len(issues) > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	checkCmd.Flags().StringVar(&ignorePaths, "ignore-paths", "", "Comma-separated list of paths to ignore")
	checkCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output issues in JSON format")
	checkCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
	checkCmd.Flags().StringVar(&cacheDirectory, "cache-dir", "", "Directory for the result cache (disabled when empty)")
}

func applyIgnorePaths(engine *internal.Engine) {
	if ignorePaths == "" {
		return
	}
	for _, path := range strings.Split(ignorePaths, ",") {
		engine.IgnorePath(strings.TrimSpace(path))
	}
}

func printIssues(logger *zap.Logger, issues []tt.Issue, isJSON bool, jsonPath string) {
	issuesByFile := make(map[string][]tt.Issue)
	for _, issue := range issues {
		issuesByFile[issue.Filename] = append(issuesByFile[issue.Filename], issue)
	}

	sortedFiles := make([]string, 0, len(issuesByFile))
	for filename := range issuesByFile {
		sortedFiles = append(sortedFiles, filename)
	}
	sort.Strings(sortedFiles)

	if !isJSON {
		for _, filename := range sortedFiles {
			fileIssues := issuesByFile[filename]
			sourceCode, err := internal.ReadSourceCode(filename)
			if err != nil {
				logger.Error("Error reading source file", zap.String("file", filename), zap.Error(err))
				continue
			}
			output := formatter.GenerateFormattedIssue(fileIssues, sourceCode)
			fmt.Println(output)
		}
		return
	}

	d, err := json.Marshal(issuesByFile)
	if err != nil {
		logger.Error("Error marshalling issues to JSON", zap.Error(err))
		return
	}
	if jsonPath == "" {
		fmt.Println(string(d))
		return
	}
	if err := os.WriteFile(jsonPath, d, 0o644); err != nil {
		logger.Error("Error writing JSON output file", zap.Error(err))
	}
}

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fmtlint/fmtlint/formatter"
	"github.com/fmtlint/fmtlint/internal"
	tt "github.com/fmtlint/fmtlint/internal/types"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Re-check files whenever they change",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			args = []string{"."}
		}

		engine := newEngine()
		err := engine.StartWatching(args, func(filename string, issues []tt.Issue) {
			if len(issues) == 0 {
				fmt.Printf("%s: clean\n", filename)
				return
			}
			sourceCode, err := internal.ReadSourceCode(filename)
			if err != nil {
				logger.Error("Error reading source file", zap.String("file", filename), zap.Error(err))
				return
			}
			fmt.Println(formatter.GenerateFormattedIssue(issues, sourceCode))
		})
		if err != nil {
			logger.Fatal("Failed to start watching", zap.Error(err))
		}
		defer func() { _ = engine.StopWatching() }()

		fmt.Printf("Watching %v for changes. Press Ctrl+C to stop.\n", args)

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
	},
}

package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fmtlint/fmtlint/internal"
	"github.com/fmtlint/fmtlint/lint"
)

var (
	cfgFile       string
	timeout       time.Duration
	severityFlag  string
	formatterFlag string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:              "fmtlint [paths...]",
	Short:            "fmtlint - report and fix formatting differences using an external formatter",
	TraverseChildren: true, // Prioritize subcommands
	Run: func(cmd *cobra.Command, args []string) {
		// no subcommand
		if len(args) == 0 {
			// display help when only 'fmtlint' is entered
			_ = cmd.Help()
			return
		}
		// Format: fmtlint [path1 path2 ...] => behaves like the check subcommand
		checkCmd.Run(checkCmd, args)
	},
}

func Execute() error {
	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to configuration file (skips discovery)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Set a timeout for the whole run")
	rootCmd.PersistentFlags().StringVar(&severityFlag, "severity", "", "Override severity (error|warning|info|off)")
	rootCmd.PersistentFlags().StringVar(&formatterFlag, "formatter", "", "Override the formatter command")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(watchCmd)
}

// inlineOverrides turns CLI flags into the highest-precedence config tree.
func inlineOverrides() map[string]any {
	overrides := make(map[string]any)
	if severityFlag != "" {
		overrides["severity"] = severityFlag
	}
	if formatterFlag != "" {
		overrides["formatter"] = map[string]any{"command": formatterFlag}
	}
	if len(overrides) == 0 {
		return nil
	}
	return overrides
}

func newEngine() *internal.Engine {
	return lint.New(logger, cfgFile, inlineOverrides())
}

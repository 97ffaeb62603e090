package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/fmtlint/fmtlint/internal/config"
)

// configCmd prints the effective (merged) configuration for a path, which is
// the easiest way to see what the hierarchical merge resolved to.
var configCmd = &cobra.Command{
	Use:   "config [path]",
	Short: "Print the effective configuration for a path",
	Run: func(cmd *cobra.Command, args []string) {
		target := "."
		if len(args) > 0 {
			target = args[0]
		}

		resolver := config.NewResolver(logger, cfgFile, inlineOverrides())
		cfg, err := resolver.ForDir(target)
		if err != nil {
			logger.Error("Error resolving configuration", zap.Error(err))
			os.Exit(1)
		}

		d, err := yaml.Marshal(cfg)
		if err != nil {
			logger.Error("Error encoding configuration", zap.Error(err))
			os.Exit(1)
		}
		fmt.Print(string(d))
	},
}

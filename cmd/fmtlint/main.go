package main

import (
	"os"

	"github.com/fmtlint/fmtlint/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

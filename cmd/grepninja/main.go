package main

import (
	"fmt"
	"os"

	"github.com/cheerioskun/grepninja/internal/cmd"
)

func main() {
	rootCmd := cmd.NewRootCommand(cmd.DefaultEnv())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

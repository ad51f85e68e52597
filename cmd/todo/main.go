// Package main is the entry point for the todo CLI.
package main

import (
	"fmt"
	"os"

	"github.com/jacksmith/todo/internal/cli"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "todo",
	Short: "todo - a small prioritized task list",
	Long: `todo keeps a single ordered list of tasks in the current directory.

Each task has text, a priority (low, medium or high) and a completed flag.
Every change is saved before it is shown, so the list on screen always
matches what is on disk.

Run "todo init" once, then "todo add", "todo list" or "todo ui".`,
	Version:       Version,
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// logLevel overrides log_level from .todoconfig.yaml when set.
var logLevel string

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "diagnostic log level (debug, info, warn, error)")
	rootCmd.SetVersionTemplate("todo version {{.Version}}\n")
}

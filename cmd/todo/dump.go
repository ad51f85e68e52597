package main

import (
	"os"

	"github.com/jacksmith/todo/internal/model"
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Export the task list as YAML",
	Long: `Export the task list as YAML with pending and completed counts.

This is a one-way export for viewing or sharing; it cannot be re-imported.`,
	Args: cobra.NoArgs,
	RunE: runDump,
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	data, err := model.ExportYAML(a.tasks.Tasks())
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

package main

import (
	"fmt"

	"github.com/jacksmith/todo/internal/storage"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a todo list in the current directory",
	Long: `Create a .todo/ directory that holds the task list.

Settings such as the default priority or the storage backend live in an
optional .todoconfig.yaml next to .todo/.

Fails if .todo/ already exists in the current directory.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := storage.Init("."); err != nil {
		return err
	}
	fmt.Println("Initialized todo in .todo/")
	return nil
}

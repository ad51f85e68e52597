package main

import (
	"fmt"
	"os"

	"github.com/jacksmith/todo/internal/cli"
	"github.com/jacksmith/todo/internal/model"
	"github.com/jacksmith/todo/internal/ops"
	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Search tasks by text",
	Long: `Search for tasks whose text contains the query (case-insensitive).

Results keep list order.`,
	Args: cobra.ExactArgs(1),
	RunE: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	query := args[0]

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	results := ops.ListTasks(a.tasks, ops.TaskFilter{Query: query})
	if len(results) == 0 {
		fmt.Printf("No tasks match %q\n", query)
		return nil
	}

	table := cli.NewTable()
	table.SetMaxWidth(2, cli.DefaultMaxTextWidth)
	for _, r := range results {
		text := r.Task.Text
		if r.Task.Completed {
			text = cli.Strike(text)
		}
		table.AddRow(model.ShortID(r.Task.ID), cli.Checkbox(r.Task.Completed), text)
	}
	table.Render(os.Stdout)
	return nil
}

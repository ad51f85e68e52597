package main

import (
	"fmt"
	"os"

	"github.com/jacksmith/todo/internal/model"
	"github.com/jacksmith/todo/internal/ops"
	"github.com/jacksmith/todo/internal/view"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List tasks in the order they were added.

Completed tasks are shown struck through. The summary line counts the
whole list, not just the filtered rows, and is omitted when the list is
empty.

Filter flags:
  --pending     Show only tasks that are not completed
  --completed   Show only completed tasks
  --priority    Show only tasks with the given priority`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var (
	listPending   bool
	listCompleted bool
	listPriority  string
)

func init() {
	listCmd.Flags().BoolVar(&listPending, "pending", false, "show only pending tasks")
	listCmd.Flags().BoolVar(&listCompleted, "completed", false, "show only completed tasks")
	listCmd.Flags().StringVarP(&listPriority, "priority", "p", "", "filter by priority (low, medium, high)")
	listCmd.RegisterFlagCompletionFunc("priority", completePriorities)
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	if listPending && listCompleted {
		return fmt.Errorf("conflicting filters: --pending, --completed (use only one at a time)")
	}
	priority, err := parsePriorityFlag(listPriority)
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	filter := ops.TaskFilter{Priority: priority}
	switch {
	case listPending:
		done := false
		filter.Completed = &done
	case listCompleted:
		done := true
		filter.Completed = &done
	}

	if filter.Completed == nil && filter.Priority == "" {
		view.WriteFrame(os.Stdout, a.renderer.Current())
		return nil
	}

	results := ops.ListTasks(a.tasks, filter)
	if len(results) == 0 {
		if a.tasks.Len() == 0 {
			view.WriteFrame(os.Stdout, a.renderer.Current())
		} else {
			fmt.Println("No matching tasks.")
		}
		return nil
	}

	matched := make([]model.Task, len(results))
	for i, r := range results {
		matched[i] = r.Task
	}
	frame := a.renderer.Render(matched)
	frame.Stats = a.renderer.Current().Stats
	view.WriteFrame(os.Stdout, frame)
	return nil
}

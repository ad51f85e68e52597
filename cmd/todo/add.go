package main

import (
	"fmt"
	"strings"

	"github.com/jacksmith/todo/internal/cli"
	"github.com/jacksmith/todo/internal/control"
	"github.com/jacksmith/todo/internal/model"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a new task",
	Long: `Add a task to the end of the list.

Multiple arguments are joined with spaces. If --priority is not given, the
default_priority from .todoconfig.yaml is used (medium unless configured).

Examples:
  todo add "Buy milk"
  todo add Buy milk --priority=high
  todo add "Call the bank" -p l`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var addPriority string

func init() {
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "task priority (low, medium, high)")
	addCmd.RegisterFlagCompletionFunc("priority", completePriorities)
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	priority, err := parsePriorityFlag(addPriority)
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	out, err := a.ctrl.Dispatch(control.AddRequested{
		Text:     strings.Join(args, " "),
		Priority: priority,
	})
	if err != nil {
		return err
	}
	if out.Task == nil {
		return &cli.ValidationError{Field: "text", Message: "task text must not be blank"}
	}

	fmt.Printf("%s %s %s\n", model.ShortID(out.Task.ID), cli.PriorityBadge(out.Task.Priority), out.Task.Text)
	return nil
}

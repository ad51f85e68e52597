package main

import (
	"fmt"

	"github.com/jacksmith/todo/internal/cli"
	"github.com/jacksmith/todo/internal/control"
	"github.com/jacksmith/todo/internal/model"
	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:     "toggle <id>",
	Aliases: []string{"check", "done"},
	Short:   "Mark a task completed, or pending again",
	Long: `Flip the completed flag of a task.

The id may be the full id or any unique prefix or suffix of it, such as the
short id shown by "todo list".`,
	Args:              cobra.ExactArgs(1),
	RunE:              runToggle,
	ValidArgsFunction: completeTaskIDs,
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}

func runToggle(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	id, err := a.resolve(args[0])
	if err != nil {
		return err
	}

	if _, err := a.ctrl.Dispatch(control.ToggleRequested{ID: id}); err != nil {
		return err
	}

	task, _ := a.tasks.Find(id)
	if task.Completed {
		fmt.Printf("%s %s %s\n", model.ShortID(id), cli.Checkbox(true), cli.Strike(task.Text))
	} else {
		fmt.Printf("%s %s %s\n", model.ShortID(id), cli.Checkbox(false), task.Text)
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/jacksmith/todo/internal/control"
	"github.com/jacksmith/todo/internal/model"
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:               "rm <id>",
	Aliases:           []string{"delete"},
	Short:             "Delete a task",
	Args:              cobra.ExactArgs(1),
	RunE:              runRm,
	ValidArgsFunction: completeTaskIDs,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	id, err := a.resolve(args[0])
	if err != nil {
		return err
	}
	task, _ := a.tasks.Find(id)

	if _, err := a.ctrl.Dispatch(control.DeleteRequested{ID: id}); err != nil {
		return err
	}

	fmt.Printf("Deleted %s %s\n", model.ShortID(id), task.Text)
	return nil
}

package main

import (
	"fmt"

	"github.com/jacksmith/todo/internal/cli"
	"github.com/jacksmith/todo/internal/control"
	"github.com/jacksmith/todo/internal/model"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a task",
	Long: `Change a task's text or priority. Its position and completed flag are kept.

Use flags to change specific fields, or -i to edit in $EDITOR.

Examples:
  todo edit 3f9c21aa --text="Buy oat milk"
  todo edit 3f9c --priority=high
  todo edit 3f9c -i`,
	Args:              cobra.ExactArgs(1),
	RunE:              runEdit,
	ValidArgsFunction: completeTaskIDs,
}

var (
	editText        string
	editPriority    string
	editInteractive bool
)

func init() {
	editCmd.Flags().StringVar(&editText, "text", "", "set task text")
	editCmd.Flags().StringVarP(&editPriority, "priority", "p", "", "set task priority (low, medium, high)")
	editCmd.Flags().BoolVarP(&editInteractive, "interactive", "i", false, "edit in $EDITOR")
	editCmd.RegisterFlagCompletionFunc("priority", completePriorities)
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	id, err := a.resolve(args[0])
	if err != nil {
		return err
	}

	if editInteractive {
		return runEditInteractive(a, id)
	}

	task, _ := a.tasks.Find(id)
	text := task.Text
	priority := task.Priority
	hasChanges := false

	if editText != "" {
		if model.NormalizeText(editText) == "" {
			return &cli.ValidationError{Field: "text", Message: "task text must not be blank"}
		}
		text = editText
		hasChanges = true
	}
	if editPriority != "" {
		p, err := parsePriorityFlag(editPriority)
		if err != nil {
			return err
		}
		priority = p
		hasChanges = true
	}
	if !hasChanges {
		return fmt.Errorf("no changes specified")
	}

	if _, err := a.ctrl.Dispatch(control.EditCommitted{ID: id, Text: text, Priority: priority}); err != nil {
		return err
	}

	fmt.Printf("%s updated.\n", model.ShortID(id))
	return nil
}

// runEditInteractive edits through the renderer's edit session: the session
// is opened, the editor result becomes the draft, and the draft is either
// committed or cancelled.
func runEditInteractive(a *app, id string) error {
	out, err := a.ctrl.Dispatch(control.EditStarted{ID: id})
	if err != nil {
		return err
	}
	session, ok := a.renderer.Editing()
	if !out.Editing || !ok {
		return &cli.NotFoundError{Ref: id}
	}

	cancel := func() {
		_, _ = a.ctrl.Dispatch(control.EditCancelled{ID: id})
	}

	doc, err := cli.EditTask(model.Task{ID: id, Text: session.Text, Priority: session.Priority})
	if err != nil {
		cancel()
		return err
	}

	if doc.Text == session.Text && doc.Priority == session.Priority {
		cancel()
		fmt.Println("No changes.")
		return nil
	}

	if _, err := a.ctrl.Dispatch(control.DraftChanged{Text: doc.Text, Priority: doc.Priority}); err != nil {
		cancel()
		return err
	}
	if _, err := a.ctrl.Dispatch(control.EditCommitted{ID: id, Text: doc.Text, Priority: doc.Priority}); err != nil {
		return err
	}

	fmt.Printf("%s updated.\n", model.ShortID(id))
	return nil
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jacksmith/todo/internal/cli"
	"github.com/jacksmith/todo/internal/control"
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove completed tasks",
	Long: `Remove every completed task, keeping the order of the rest.

With --all every task is removed. On a terminal you are asked to confirm;
otherwise pass --yes. Set confirm_clear_all: false in .todoconfig.yaml to
skip the question.`,
	Args: cobra.NoArgs,
	RunE: runClear,
}

var (
	clearAll bool
	clearYes bool
)

// stdin is where confirmation answers are read from.
var stdin io.Reader = os.Stdin

func init() {
	clearCmd.Flags().BoolVar(&clearAll, "all", false, "remove every task, not only completed ones")
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "do not ask for confirmation")
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if !clearAll {
		out, err := a.ctrl.Dispatch(control.ClearCompletedRequested{})
		if err != nil {
			return err
		}
		fmt.Printf("Cleared %d completed %s.\n", out.Removed, plural(out.Removed, "task", "tasks"))
		return nil
	}

	n := a.tasks.Len()
	if n == 0 {
		fmt.Println("No tasks to clear.")
		return nil
	}

	confirmed := clearYes || !a.cfg.ConfirmClearAll
	if !confirmed {
		if !cli.IsInputTerminal(stdin) {
			return fmt.Errorf("refusing to delete all %d tasks without confirmation (use --yes)", n)
		}
		confirmed, err = cli.Confirm(stdin, os.Stdout,
			fmt.Sprintf("Delete all %d %s?", n, plural(n, "task", "tasks")))
		if err != nil {
			return err
		}
	}

	out, err := a.ctrl.Dispatch(control.ClearAllRequested{Confirmed: confirmed})
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Println("Cancelled.")
		return nil
	}
	fmt.Printf("Deleted %d %s.\n", out.Removed, plural(out.Removed, "task", "tasks"))
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

package main

import (
	"github.com/jacksmith/todo/internal/tui"
	"github.com/spf13/cobra"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive task list",
	Long: `Open a full-screen view of the task list.

Keys:
  a / enter   add a task (tab cycles priority, enter saves, esc closes)
  space       toggle the selected task
  e           edit the selected task in place (tab cycles priority,
              enter saves, esc cancels)
  d           delete the selected task
  c           remove completed tasks
  X           remove every task (asks y/n first)
  j/k, ↑/↓    move the selection
  q           quit`,
	Args: cobra.NoArgs,
	RunE: runUI,
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

func runUI(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	return tui.Run(a.ctrl, a.renderer,
		tui.WithDefaultPriority(a.cfg.DefaultPriority),
		tui.WithConfirmClearAll(a.cfg.ConfirmClearAll),
	)
}

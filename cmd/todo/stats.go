package main

import (
	"fmt"
	"os"

	"github.com/jacksmith/todo/internal/cli"
	"github.com/jacksmith/todo/internal/model"
	"github.com/jacksmith/todo/internal/ops"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show pending and completed counts",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	frame := a.renderer.Current()
	if frame.Stats == nil {
		fmt.Println(cli.Gray("No tasks yet."))
		return nil
	}
	fmt.Println(frame.Stats.String())

	summary := ops.Summarize(a.tasks)
	if summary.Pending == 0 {
		return nil
	}
	table := cli.NewTable()
	for i := len(model.Priorities) - 1; i >= 0; i-- {
		p := model.Priorities[i]
		table.AddRow(cli.PriorityBadge(p), fmt.Sprintf("%d", summary.ByPriority[p]))
	}
	fmt.Println()
	fmt.Println("Pending by priority:")
	table.Render(os.Stdout)
	return nil
}

package main

import (
	"os"
	"strings"

	"github.com/jacksmith/todo/internal/cli"
	"github.com/jacksmith/todo/internal/model"
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for todo.

To load completions:

Bash:
  $ source <(todo completion bash)

Zsh:
  # If shell completion is not already enabled in your environment,
  # enable it once with:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  $ todo completion zsh > "${fpath[1]}/_todo"

Fish:
  $ todo completion fish | source
`,
}

var completionBashCmd = &cobra.Command{
	Use:   "bash",
	Short: "Generate bash completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenBashCompletion(os.Stdout)
	},
}

var completionZshCmd = &cobra.Command{
	Use:   "zsh",
	Short: "Generate zsh completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenZshCompletion(os.Stdout)
	},
}

var completionFishCmd = &cobra.Command{
	Use:   "fish",
	Short: "Generate fish completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenFishCompletion(os.Stdout, true)
	},
}

func init() {
	completionCmd.AddCommand(completionBashCmd)
	completionCmd.AddCommand(completionZshCmd)
	completionCmd.AddCommand(completionFishCmd)
	rootCmd.AddCommand(completionCmd)
}

// completeTaskIDs offers short IDs of tasks whose short ID starts with the
// typed text, described by their state and text.
func completeTaskIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	a, err := openApp()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer a.Close()

	toCompleteLower := strings.ToLower(toComplete)
	var completions []string
	for _, t := range a.tasks.Tasks() {
		short := model.ShortID(t.ID)
		if !strings.HasPrefix(strings.ToLower(short), toCompleteLower) {
			continue
		}
		state := "pending"
		if t.Completed {
			state = "done"
		}
		completions = append(completions, short+"\t"+state+": "+cli.Truncate(t.Text, 40))
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// completePriorities offers the priority names.
func completePriorities(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var completions []string
	for _, p := range model.Priorities {
		if strings.HasPrefix(string(p), strings.ToLower(toComplete)) {
			completions = append(completions, string(p))
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

package cmd

import (
	"github.com/spf13/cobra"
)

var flagExcludeActive bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured workspaces",
	Long: `List the configured workspace names, one per line, in config file order.

With --exclude-active the workspace of the current tmux client's session is
left out, which makes the output suitable for feeding a chooser such as fzf.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return current.orch.List(cmd.Context(), flagExcludeActive)
	},
}

func init() {
	listCmd.Flags().BoolVar(&flagExcludeActive, "exclude-active", false, "omit the workspace of the current tmux session")
	rootCmd.AddCommand(listCmd)
}

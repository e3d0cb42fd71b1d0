package cmd

import (
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview <workspace>",
	Short: "Print the current pane content of a workspace session",
	Long: `Print what the active pane of the workspace's session currently shows,
including colors and trailing spaces.

Any running session can be previewed, configured or not. A session that is
not running is reported on stdout and is not an error.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeWorkspaces,
	RunE: func(cmd *cobra.Command, args []string) error {
		return current.orch.Preview(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

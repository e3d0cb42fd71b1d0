package cmd

import (
	"github.com/spf13/cobra"
)

var selectCmd = &cobra.Command{
	Use:   "select <workspace>",
	Short: "Switch the tmux client to a workspace",
	Long: `Switch the current tmux client to the session of the named workspace.

The session is created, detached and rooted at the workspace directory, when
it does not exist yet. An existing session is reused as is.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeWorkspaces,
	RunE: func(cmd *cobra.Command, args []string) error {
		return current.orch.Switch(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(selectCmd)
}

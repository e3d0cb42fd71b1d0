package cmd

import (
	"github.com/spf13/cobra"

	"github.com/timvw/tmw/internal/logging"
	"github.com/timvw/tmw/internal/picker"
)

var (
	flagPickExcludeActive bool
	flagTheme             string
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Choose a workspace interactively",
	Long: `Open an interactive chooser listing the configured workspaces with a live
preview of the highlighted one. Type to filter, Enter switches to the
highlighted workspace, Esc quits without switching.

Meant to be bound to a key inside tmux, e.g.

  bind-key w display-popup -E -w 80% -h 80% tmw pick --exclude-active`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := &picker.Picker{
			Source:        current.orch,
			ExcludeActive: flagPickExcludeActive,
			Theme:         picker.ThemeByName(flagTheme),
		}
		name, err := p.Run(cmd.Context())
		if err != nil {
			return err
		}
		if name == "" {
			logging.Debug("pick cancelled")
			return nil
		}
		return current.orch.Switch(cmd.Context(), name)
	},
}

func init() {
	pickCmd.Flags().BoolVar(&flagPickExcludeActive, "exclude-active", false, "omit the workspace of the current tmux session")
	pickCmd.Flags().StringVar(&flagTheme, "theme", "dark", "color theme: dark, light")
	rootCmd.AddCommand(pickCmd)
}

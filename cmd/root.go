package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/timvw/tmw/internal/config"
	tmwerr "github.com/timvw/tmw/internal/errors"
	"github.com/timvw/tmw/internal/logging"
	"github.com/timvw/tmw/internal/mux"
	telem "github.com/timvw/tmw/internal/otel"
	"github.com/timvw/tmw/internal/workspace"
)

// Version is injected at build time with -ldflags "-X github.com/timvw/tmw/cmd.Version=...".
var Version = "dev"

var (
	// Global flags.
	flagConfigPath string
	flagSocket     string
	flagVerbose    bool
	flagJSONLog    bool
)

// app is what the persistent pre-run builds for the command being executed.
type app struct {
	cfg  *config.Config
	tel  *telem.Telemetry
	orch *workspace.Orchestrator
}

var current *app

var rootCmd = &cobra.Command{
	Use:   "tmw",
	Short: "Switch between tmux workspaces",
	Long: `tmw maps named workspaces (a name and a working directory) onto tmux
sessions.

Workspaces are read from a config file (default ~/.config/tmw/config.yml,
created on first use). Selecting a workspace creates its session on demand
and switches the current tmux client to it.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		current = a
		return nil
	},
}

// Execute runs the root command and exits with the error's exit code.
func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	shutdown()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(tmwerr.GetExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config-path", "", "config file (default: $TMW_CONFIG or ~/.config/tmw/config.yml)")
	rootCmd.PersistentFlags().StringVar(&flagSocket, "socket", "", "tmux socket name, passed as -L (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log every tmux invocation to stderr")
	rootCmd.PersistentFlags().BoolVar(&flagJSONLog, "json-log", false, "write logs as JSON")
}

// loadConfig resolves the config path and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	path := flagConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if flagSocket != "" {
		cfg.Tmux.SocketName = flagSocket
	}
	return cfg, nil
}

func newApp(ctx context.Context, cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logging.Setup(flagVerbose || cfg.Log.Verbose, flagJSONLog || cfg.Log.JSON, os.Stderr)
	logging.Debug("config loaded", "path", cfg.ConfigFile, "workspaces", len(cfg.Workspaces),
		"socket", cfg.Tmux.SocketName)

	// Wire build version into OTEL service metadata
	telem.Version = Version

	// Initialize OTEL (no-op if no endpoint configured)
	tel, err := telem.Init(ctx, telem.OTELConfig{
		Endpoint: cfg.OTEL.Endpoint,
		Headers:  cfg.OTEL.Headers,
	})
	if err != nil {
		logging.Warn("otel init failed", "error", err)
		tel = nil
	}

	var metrics *telem.Metrics
	if tel != nil {
		metrics = tel.Metrics
	}

	m := mux.NewTmux(mux.Options{
		Binary:  cfg.Tmux.Binary,
		Socket:  cfg.Tmux.SocketName,
		Metrics: metrics,
	})

	orch := workspace.New(cfg.Registry(), m)
	orch.Out = cmd.OutOrStdout()
	orch.Metrics = metrics
	if tel != nil {
		orch.Tracer = tel.Tracer
	}

	return &app{cfg: cfg, tel: tel, orch: orch}, nil
}

// shutdown flushes telemetry of the last executed command.
func shutdown() {
	if current == nil {
		return
	}
	current.tel.Shutdown(context.Background())
	current = nil
}

// completeWorkspaces completes the single workspace argument from the
// registry.
func completeWorkspaces(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cfg, err := loadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var names []string
	for _, n := range cfg.Registry().Names() {
		if strings.HasPrefix(n, toComplete) {
			names = append(names, n)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

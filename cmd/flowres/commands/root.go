package commands

import (
	"fmt"
	"os"

	"github.com/panyam/flowres/config"
	"github.com/spf13/cobra"
)

// options shared by every command, filled in before a command runs.
type options struct {
	configFile string
	envFile    string
	cfg        *config.Config
}

// NewRootCommand builds the flowres command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{cfg: config.Default()}
	rootCmd := &cobra.Command{
		Use:   "flowres",
		Short: "flowres resolves the types of control-flow expressions",
		Long: `flowres loads tree files, resolves the types of loops, when, try,
jumps and elvis expressions in them and reports what it found: the typed
tree, the flow events of the pass or its control-flow graph.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadEnvFiles(opts.envFile); err != nil {
				return err
			}
			cfg, err := config.Load(opts.configFile)
			if err != nil {
				return err
			}
			if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			opts.cfg = cfg
			return cfg.Apply()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", os.Getenv(config.EnvPrefix+"CONFIG"), "Path to a YAML config file")
	flags.StringVar(&opts.envFile, "env-file", ".env", "Environment file loaded before the config")
	opts.cfg.BindFlags(flags)

	rootCmd.AddCommand(
		newResolveCommand(opts),
		newEventsCommand(opts),
		newGraphCommand(opts),
		newValidateCommand(opts),
		newVersionCommand(),
	)
	return rootCmd
}

// Execute runs the root command.  It is called by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

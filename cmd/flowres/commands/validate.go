package commands

import (
	"errors"

	"github.com/panyam/flowres/resolve"
	"github.com/spf13/cobra"
)

func newValidateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file...>",
		Short: "Loads and resolves tree files and reports their errors",
		Long: `The validate command loads each file with its imports and resolves it
without printing the tree.  Each file gets an ok line or its diagnostics.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l := newLoader(opts)
			if !l.LoadFilesAndValidate(cmd.OutOrStdout(), args, resolve.WithMaxErrors(opts.cfg.MaxErrors)) {
				return errors.New("validation failed")
			}
			return nil
		},
	}
}

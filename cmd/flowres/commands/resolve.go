package commands

import (
	"fmt"

	"github.com/panyam/flowres/decl"
	"github.com/panyam/flowres/loader"
	"github.com/panyam/flowres/resolve"
	"github.com/spf13/cobra"
)

func newResolveCommand(opts *options) *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "resolve <file...>",
		Short: "Resolves tree files and prints the typed trees",
		Long: `The resolve command loads each file with its imports, resolves it and
prints the typed tree followed by its diagnostics.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			metrics := resolve.NewMetrics()
			failed := 0
			for _, file := range args {
				checked, err := load(opts, file, resolve.WithMetrics(metrics))
				if err != nil {
					return err
				}
				if !quiet {
					fmt.Fprintf(out, "// %s\n%s\n", file, decl.Sprint(checked.Tree))
				}
				checked.Errors.Fprint(out, file)
				if checked.Errors.HasErrors() {
					failed++
				}
			}
			if opts.cfg.Metrics {
				metrics.WritePrometheus(out)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files have errors", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print diagnostics")
	return cmd
}

// newLoader builds a loader reading from the configured root, or from the
// paths as given when there is none.
func newLoader(opts *options) *loader.Loader {
	var files loader.FileResolver = loader.NewDefaultFileResolver()
	if opts.cfg.Root != "" {
		files = &loader.FSResolver{FS: loader.NewLocalFS(opts.cfg.Root)}
	}
	return loader.NewLoader(&loader.YAMLParser{}, files, opts.cfg.MaxDepth)
}

// load reads file with the configured limits and resolves it.
func load(opts *options, file string, extra ...resolve.Option) (*loader.Checked, error) {
	resolveOpts := append([]resolve.Option{resolve.WithMaxErrors(opts.cfg.MaxErrors)}, extra...)
	return newLoader(opts).LoadAndResolve(file, resolveOpts...)
}

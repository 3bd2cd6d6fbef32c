package commands

import (
	"fmt"

	"github.com/panyam/flowres/flow"
	"github.com/panyam/flowres/resolve"
	"github.com/panyam/flowres/viz"
	"github.com/spf13/cobra"
)

func newGraphCommand(opts *options) *cobra.Command {
	var unreachable bool
	cmd := &cobra.Command{
		Use:   "graph <file>",
		Short: "Prints the control-flow graph of a file",
		Long: `The graph command resolves a file, builds its control-flow graph from the
flow events and prints it in DOT or mermaid format.  Dead nodes and edges
are drawn dashed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := viz.ForFormat(opts.cfg.GraphFormat)
			if err != nil {
				return err
			}
			builder := flow.NewGraphBuilder()
			checked, err := load(opts, args[0], resolve.WithSink(builder))
			if err != nil {
				return err
			}
			out, err := gen.Generate(args[0], builder.Graph())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)

			if unreachable {
				for _, id := range builder.Unreachable() {
					n := checked.Tree.Node(id)
					fmt.Fprintf(cmd.ErrOrStderr(), "%s:%s: unreachable code: %s\n", args[0], n.Pos().LineColStr(), shorten(n.String(), 40))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&unreachable, "unreachable", "u", false, "List unreachable statements on stderr")
	return cmd
}

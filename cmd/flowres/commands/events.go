package commands

import (
	"fmt"
	"strings"

	"github.com/panyam/flowres/flow"
	"github.com/panyam/flowres/resolve"
	"github.com/spf13/cobra"
)

func newEventsCommand(opts *options) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "events <file>",
		Short: "Prints the flow events a resolution pass emits",
		Long: `The events command resolves a file and prints every flow event in the
order it was emitted, indented by construct nesting.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec := flow.NewRecorder()
			checked, err := load(opts, args[0], resolve.WithSink(rec))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			depth := 0
			for _, e := range rec.Events {
				if !all && e.Kind.IsStructural() {
					continue
				}
				if closes[e.Kind] && depth > 0 {
					depth--
				}
				line := e.String()
				if e.Node != nil {
					line = fmt.Sprintf("%-40s %s", line, shorten(e.Node.String(), 40))
				}
				fmt.Fprintf(out, "%s%s\n", strings.Repeat("  ", depth), line)
				if opens[e.Kind] {
					depth++
				}
			}
			checked.Errors.Fprint(cmd.ErrOrStderr(), args[0])
			return nil
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include statement and function events")
	return cmd
}

// Events that open and close a nesting level in the listing.
var (
	opens = map[flow.EventKind]bool{
		flow.EnterWhile: true, flow.EnterDoWhile: true, flow.EnterWhen: true,
		flow.EnterBranchCondition: true, flow.EnterTry: true, flow.EnterCatch: true,
		flow.EnterFinally: true, flow.EnterElvisEvent: true, flow.EnterFunctionEvent: true,
	}
	closes = map[flow.EventKind]bool{
		flow.ExitWhile: true, flow.ExitDoWhile: true, flow.ExitWhen: true,
		flow.ExitBranchCondition: true, flow.ExitTry: true, flow.ExitCatch: true,
		flow.ExitFinally: true, flow.ExitElvisEvent: true, flow.ExitFunctionEvent: true,
	}
)

func shorten(s string, limit int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= limit {
		return s
	}
	return s[:limit-3] + "..."
}

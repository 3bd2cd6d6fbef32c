// package viz renders control-flow graphs as diagrams.
package viz

import (
	"fmt"
	"strings"

	"github.com/panyam/flowres/flow"
)

// GraphGenerator renders a control-flow graph.
type GraphGenerator interface {
	Generate(name string, g *flow.Graph) (string, error)
}

// ForFormat returns the generator for "dot" or "mermaid".
func ForFormat(format string) (GraphGenerator, error) {
	switch strings.ToLower(format) {
	case "dot", "graphviz":
		return &DotGenerator{}, nil
	case "mermaid":
		return &MermaidGenerator{}, nil
	}
	return nil, fmt.Errorf("unknown graph format %q", format)
}

func nodeID(n int) string {
	return fmt.Sprintf("n%d", n)
}

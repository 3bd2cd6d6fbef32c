package viz

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/panyam/flowres/flow"
)

// --- DOT Generator ---

// DotGenerator draws dead nodes and edges dashed and grey.
type DotGenerator struct{}

func (g *DotGenerator) Generate(name string, graph *flow.Graph) (string, error) {
	if graph == nil {
		return "", fmt.Errorf("no graph to render for %q", name)
	}
	var b bytes.Buffer
	b.WriteString(fmt.Sprintf("digraph \"%s\" {\n", dotEscape(name)))
	b.WriteString("  rankdir=TB;\n")
	b.WriteString(fmt.Sprintf("  label=\"Control flow for %s\";\n", dotEscape(name)))
	b.WriteString("  node [shape=box, style=rounded];\n")

	for _, node := range graph.Nodes {
		var attrs []string
		attrs = append(attrs, fmt.Sprintf("label=\"%s\"", dotEscape(node.Label)))
		switch node.Kind {
		case flow.GraphStart:
			attrs = append(attrs, "shape=circle")
		case flow.GraphEnd:
			attrs = append(attrs, "shape=doublecircle")
		}
		if node.Dead {
			attrs = append(attrs, "style=\"rounded,dashed\"", "color=gray")
		}
		b.WriteString(fmt.Sprintf("  %s [%s];\n", nodeID(node.ID), strings.Join(attrs, ", ")))
	}

	for _, edge := range graph.Edges {
		var attrs []string
		if edge.Label != "" {
			attrs = append(attrs, fmt.Sprintf("label=\"%s\"", dotEscape(edge.Label)))
		}
		if edge.Dead {
			attrs = append(attrs, "style=dashed", "color=gray")
		}
		if len(attrs) == 0 {
			b.WriteString(fmt.Sprintf("  %s -> %s;\n", nodeID(edge.From), nodeID(edge.To)))
		} else {
			b.WriteString(fmt.Sprintf("  %s -> %s [%s];\n", nodeID(edge.From), nodeID(edge.To), strings.Join(attrs, ", ")))
		}
	}
	b.WriteString("}\n")
	return b.String(), nil
}

func dotEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return strings.ReplaceAll(s, "\n", `\n`)
}

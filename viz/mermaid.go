package viz

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/panyam/flowres/flow"
)

// --- Mermaid Generator ---

type MermaidGenerator struct{}

func (g *MermaidGenerator) Generate(name string, graph *flow.Graph) (string, error) {
	if graph == nil {
		return "", fmt.Errorf("no graph to render for %q", name)
	}
	var b bytes.Buffer
	b.WriteString("graph TD;\n")
	b.WriteString(fmt.Sprintf("  subgraph %s[\"%s\"]\n", mermaidSubgraphID(name), mermaidEscape(name)))

	var dead []string
	for _, node := range graph.Nodes {
		label := mermaidEscape(node.Label)
		switch node.Kind {
		case flow.GraphStart, flow.GraphEnd:
			b.WriteString(fmt.Sprintf("    %s([\"%s\"]);\n", nodeID(node.ID), label))
		default:
			b.WriteString(fmt.Sprintf("    %s[\"%s\"];\n", nodeID(node.ID), label))
		}
		if node.Dead {
			dead = append(dead, nodeID(node.ID))
		}
	}

	for _, edge := range graph.Edges {
		arrow := "-->"
		if edge.Dead {
			arrow = "-.->"
		}
		if edge.Label != "" {
			b.WriteString(fmt.Sprintf("    %s %s|\"%s\"| %s;\n", nodeID(edge.From), arrow, mermaidEscape(edge.Label), nodeID(edge.To)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s %s;\n", nodeID(edge.From), arrow, nodeID(edge.To)))
		}
	}
	b.WriteString("  end\n")

	if len(dead) > 0 {
		b.WriteString("  classDef dead stroke-dasharray: 5 5,color:#999;\n")
		b.WriteString(fmt.Sprintf("  class %s dead;\n", strings.Join(dead, ",")))
	}
	return b.String(), nil
}

func mermaidEscape(s string) string {
	s = strings.ReplaceAll(s, `"`, "#quot;")
	return strings.ReplaceAll(s, "\n", " ")
}

func mermaidSubgraphID(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "graph"
	}
	return b.String()
}

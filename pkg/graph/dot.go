package graph

import (
	"fmt"
	"strings"

	"github.com/ha1tch/edgeroute/pkg/geom"
)

// GenerateDOT converts a graph to Graphviz DOT format. Placed nodes are
// pinned with pos so that neato -n keeps the routing coordinates.
func GenerateDOT(g *Graph, title string) string {
	var sb strings.Builder

	sb.WriteString("digraph G {\n")
	sb.WriteString("    node [shape=box, style=rounded, fontname=\"Helvetica\", fontsize=11,\n")
	sb.WriteString(fmt.Sprintf("          width=%.3f, height=%.3f, fixedsize=true];\n",
		geom.NodeWidth/72, geom.NodeHeight/72))
	sb.WriteString("    edge [fontname=\"Helvetica\", fontsize=10];\n")
	sb.WriteString("\n")

	if title != "" {
		sb.WriteString("    labelloc=\"t\";\n")
		sb.WriteString(fmt.Sprintf("    label=\"%s\";\n", escapeDOT(title)))
		sb.WriteString("\n")
	}

	for _, n := range g.Nodes {
		attrs := []string{fmt.Sprintf("label=\"%s\"", escapeDOT(n.DisplayLabel()))}
		if n.Placed {
			// DOT's Y axis points up; 0-y avoids printing -0.
			attrs = append(attrs, fmt.Sprintf("pos=\"%g,%g!\"", n.X, 0-n.Y))
		}
		if n.Status == StatusBlocked {
			attrs = append(attrs, "color=red")
		}
		sb.WriteString(fmt.Sprintf("    \"%s\" [%s];\n", escapeDOT(n.ID), strings.Join(attrs, ", ")))
	}
	sb.WriteString("\n")

	for _, e := range g.Edges {
		var attrs []string
		if e.Label != "" {
			attrs = append(attrs, fmt.Sprintf("label=\"%s\"", escapeDOT(e.Label)))
		}
		if e.Weight > 0 && e.Weight != DefaultWeight {
			attrs = append(attrs, fmt.Sprintf("penwidth=%g", e.Weight))
		}
		line := fmt.Sprintf("    \"%s\" -> \"%s\"", escapeDOT(e.From), escapeDOT(e.To))
		if len(attrs) > 0 {
			line += " [" + strings.Join(attrs, ", ") + "]"
		}
		sb.WriteString(line + ";\n")
	}

	sb.WriteString("}\n")
	return sb.String()
}

func escapeDOT(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "<", "\\<")
	s = strings.ReplaceAll(s, ">", "\\>")
	return s
}

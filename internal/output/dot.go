package output

import (
	"fmt"
	"io"
	"strings"
)

// RenderDOT renders the found paths in Graphviz DOT format. Endpoints are
// drawn as ellipses, intermediate articles as boxes.
func RenderDOT(w io.Writer, r *Report) error {
	fmt.Fprintln(w, "digraph six_degrees {")
	fmt.Fprintln(w, "  rankdir=LR;")
	fmt.Fprintln(w, "  node [shape=box, style=rounded];")
	fmt.Fprintln(w, "")

	endpoints := make(map[string]bool)
	for _, leg := range r.Legs {
		endpoints[leg.From.Title] = true
		endpoints[leg.To.Title] = true
	}

	// Render nodes
	seen := make(map[string]bool)
	for _, leg := range r.Legs {
		for _, title := range append([]string{leg.From.Title}, leg.Path...) {
			if seen[title] {
				continue
			}
			seen[title] = true
			if endpoints[title] {
				fmt.Fprintf(w, "  %s [label=%s, shape=ellipse];\n", quoteID(title), quoteID(title))
			} else {
				fmt.Fprintf(w, "  %s [label=%s];\n", quoteID(title), quoteID(title))
			}
		}
	}

	fmt.Fprintln(w, "")

	// Render edges
	for i, leg := range r.Legs {
		if !leg.Found() {
			continue
		}
		style := ""
		if i%2 == 1 {
			style = ", style=dashed"
		}
		for j := 1; j < len(leg.Path); j++ {
			fmt.Fprintf(w, "  %s -> %s [label=\"%d\"%s];\n", quoteID(leg.Path[j-1]), quoteID(leg.Path[j]), i+1, style)
		}
	}

	fmt.Fprintln(w, "}")
	return nil
}

func quoteID(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return "\"" + s + "\""
}

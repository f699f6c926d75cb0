package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/pfrederiksen/six-degrees/internal/search"
)

// RenderText renders each leg as an arrow chain with intermediate
// articles in brackets
func RenderText(w io.Writer, r *Report) error {
	fmt.Fprintf(w, "\nResults (completed in %.1fs):\n", r.Elapsed.Seconds())

	for _, leg := range r.Legs {
		fmt.Fprintf(w, "%s => %s: %s\n", leg.From.Title, leg.To.Title, formatLeg(leg, r.MaxDepth))
	}

	for _, leg := range r.Legs {
		if leg.Found() {
			fmt.Fprintf(w, "Path length %s -> %s: %d hops\n", leg.From.Title, leg.To.Title, leg.Path.Hops())
		}
	}
	return nil
}

func formatLeg(leg Leg, maxDepth int) string {
	if leg.Err != nil {
		return "search failed: " + leg.Err.Error()
	}
	if len(leg.Path) == 0 {
		return fmt.Sprintf("no path found within depth %d", maxDepth)
	}
	return FormatPath(leg.Path)
}

// FormatPath joins a path as "A => [B] => C"
func FormatPath(p search.Path) string {
	parts := make([]string, len(p))
	for i, title := range p {
		if i == 0 || i == len(p)-1 {
			parts[i] = title
		} else {
			parts[i] = "[" + title + "]"
		}
	}
	return strings.Join(parts, " => ")
}

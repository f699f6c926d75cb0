package search

import (
	"slices"
	"strings"
)

// Path is an ordered chain of article titles
type Path []string

// Hops returns the number of links followed along the path
func (p Path) Hops() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// String joins the titles with arrows
func (p Path) String() string {
	return strings.Join(p, " -> ")
}

// Assemble joins the forward and backward visited maps at a shared node.
// When several nodes are shared, the lexicographically smallest one is used
// so that the result does not depend on map iteration order.
func Assemble(forward, backward map[string]Path) (Path, bool) {
	var shared []string
	for node := range forward {
		if _, ok := backward[node]; ok {
			shared = append(shared, node)
		}
	}
	if len(shared) == 0 {
		return nil, false
	}
	slices.Sort(shared)
	return AssembleAt(forward, backward, shared[0])
}

// AssembleAt joins the start->meeting and meeting->target paths, dropping
// the duplicated meeting node.
func AssembleAt(forward, backward map[string]Path, meeting string) (Path, bool) {
	head, ok := forward[meeting]
	if !ok || len(head) == 0 {
		return nil, false
	}
	tail, ok := backward[meeting]
	if !ok || len(tail) == 0 {
		return nil, false
	}

	full := make(Path, 0, len(head)+len(tail)-1)
	full = append(full, head...)
	full = append(full, tail[1:]...)
	return slices.Compact(full), true
}

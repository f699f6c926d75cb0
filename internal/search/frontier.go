package search

import (
	"context"
)

// Direction tells which end of the search a Frontier grows from
type Direction int

const (
	// Forward frontiers grow from the start node by appending
	Forward Direction = iota
	// Backward frontiers grow from the target node by prepending
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// FetchFunc returns the ordered neighbors of a node
type FetchFunc func(ctx context.Context, title string) []string

type entry struct {
	node string
	path Path
}

// Frontier is the BFS state for one direction of a search run.
// Every queued node is also a key in visited, mapped to the same path.
type Frontier struct {
	dir       Direction
	batchSize int
	fanOut    int
	queue     []entry
	visited   map[string]Path
}

// NewFrontier creates a frontier seeded with origin
func NewFrontier(dir Direction, origin string, batchSize, fanOut int) *Frontier {
	seed := Path{origin}
	return &Frontier{
		dir:       dir,
		batchSize: batchSize,
		fanOut:    fanOut,
		queue:     []entry{{node: origin, path: seed}},
		visited:   map[string]Path{origin: seed},
	}
}

// Direction returns the frontier's direction
func (f *Frontier) Direction() Direction {
	return f.dir
}

// Pending returns the number of queued nodes
func (f *Frontier) Pending() int {
	return len(f.queue)
}

// Visited returns the visited map. Callers must not modify it.
func (f *Frontier) Visited() map[string]Path {
	return f.visited
}

// Has reports whether node was reached by this frontier
func (f *Frontier) Has(node string) bool {
	_, ok := f.visited[node]
	return ok
}

// ExpandLevel pops up to batchSize queued nodes in FIFO order and records
// their unvisited neighbors. It stops at the first neighbor already visited
// by other and returns it as the meeting node. The meeting node therefore
// depends on the order fetch returns neighbors in.
func (f *Frontier) ExpandLevel(ctx context.Context, fetch FetchFunc, other *Frontier) (string, bool) {
	if len(f.queue) == 0 {
		return "", false
	}

	n := min(len(f.queue), f.batchSize)
	var next []entry

	for range n {
		current := f.queue[0]
		f.queue = f.queue[1:]

		links := fetch(ctx, current.node)
		if f.fanOut > 0 && len(links) > f.fanOut {
			links = links[:f.fanOut]
		}

		for _, link := range links {
			if _, seen := f.visited[link]; seen {
				continue
			}

			path := f.extend(current.path, link)
			f.visited[link] = path
			next = append(next, entry{node: link, path: path})

			if other.Has(link) {
				f.queue = append(f.queue, next...)
				return link, true
			}
		}
	}

	f.queue = append(f.queue, next...)
	return "", false
}

func (f *Frontier) extend(path Path, link string) Path {
	out := make(Path, 0, len(path)+1)
	if f.dir == Backward {
		out = append(out, link)
		return append(out, path...)
	}
	out = append(out, path...)
	return append(out, link)
}

package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"
	"sync/atomic"
)

// Graph is an in-memory directed link graph between articles. Link order
// is preserved as added, the way the wiki API returns links in a stable order.
type Graph struct {
	mu       sync.RWMutex
	articles map[string]struct{}
	links    map[string][]string // article -> outbound links
	backrefs map[string][]string // article -> inbound links
	edges    int

	fetches atomic.Int64
}

// New creates a new empty graph
func New() *Graph {
	return &Graph{
		articles: make(map[string]struct{}),
		links:    make(map[string][]string),
		backrefs: make(map[string][]string),
	}
}

// AddArticle registers an article with no links
func (g *Graph) AddArticle(title string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.articles[title] = struct{}{}
}

// AddLinks adds from->to links in order. Duplicate links are ignored.
func (g *Graph) AddLinks(from string, to ...string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.articles[from] = struct{}{}
	for _, t := range to {
		g.articles[t] = struct{}{}
		if slices.Contains(g.links[from], t) {
			continue
		}
		g.links[from] = append(g.links[from], t)
		g.backrefs[t] = append(g.backrefs[t], from)
		g.edges++
	}
}

// Links returns the outbound links of an article
func (g *Graph) Links(title string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return slices.Clone(g.links[title])
}

// LinksTo returns the articles linking to title
func (g *Graph) LinksTo(title string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return slices.Clone(g.backrefs[title])
}

// HasArticle checks if an article exists in the graph
func (g *Graph) HasArticle(title string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.articles[title]
	return ok
}

// ArticleCount returns the number of articles
func (g *Graph) ArticleCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.articles)
}

// LinkCount returns the number of links
func (g *Graph) LinkCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.edges
}

// Neighbors returns outbound links. The locale is ignored: a Graph holds
// a single wiki.
func (g *Graph) Neighbors(_ context.Context, title, _ string) []string {
	g.fetches.Add(1)
	return g.Links(title)
}

// Backlinks returns inbound links
func (g *Graph) Backlinks(_ context.Context, title, _ string) []string {
	g.fetches.Add(1)
	return g.LinksTo(title)
}

// Fetches returns how many times Neighbors or Backlinks was called
func (g *Graph) Fetches() int64 {
	return g.fetches.Load()
}

// Load reads a graph from JSON of the form {"A": ["B", "C"], ...}
func Load(r io.Reader) (*Graph, error) {
	var raw map[string][]string
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode link graph: %w", err)
	}

	titles := make([]string, 0, len(raw))
	for title := range raw {
		titles = append(titles, title)
	}
	slices.Sort(titles)

	g := New()
	for _, title := range titles {
		g.AddLinks(title, raw[title]...)
	}
	return g, nil
}

// LoadFile reads a graph from a JSON file
func LoadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open link graph: %w", err)
	}
	defer f.Close()
	return Load(f)
}

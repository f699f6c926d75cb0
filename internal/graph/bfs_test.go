package graph

import (
	"testing"
)

func TestBFS(t *testing.T) {
	g := New()

	// Create a simple graph:
	//     A
	//    / \
	//   B   C
	//   |
	//   D
	g.AddLinks("A", "B", "C")
	g.AddLinks("B", "D")

	levels := g.BFS("A")

	if len(levels) != 3 {
		t.Fatalf("expected 3 levels, got %d", len(levels))
	}

	if len(levels[0].Articles) != 1 || levels[0].Articles[0] != "A" {
		t.Errorf("level 0 should contain only A")
	}

	if len(levels[1].Articles) != 2 {
		t.Errorf("level 1 should contain 2 articles, got %d", len(levels[1].Articles))
	}

	if len(levels[2].Articles) != 1 || levels[2].Articles[0] != "D" {
		t.Errorf("level 2 should contain only D")
	}
}

func TestBFSNonexistentStart(t *testing.T) {
	g := New()
	g.AddArticle("A")

	levels := g.BFS("nonexistent")
	if levels != nil {
		t.Error("expected nil for nonexistent start article")
	}
}

func TestBFSCycle(t *testing.T) {
	g := New()

	//     A -> B -> C
	//     ^---------/
	g.AddLinks("A", "B")
	g.AddLinks("B", "C")
	g.AddLinks("C", "A")

	levels := g.BFS("A")

	total := 0
	for _, level := range levels {
		total += len(level.Articles)
	}

	if total != 3 {
		t.Errorf("expected to visit 3 articles exactly once, got %d", total)
	}
}

func TestDistance(t *testing.T) {
	g := New()
	g.AddLinks("A", "B", "C")
	g.AddLinks("B", "D")
	g.AddLinks("C", "D")
	g.AddLinks("D", "target")
	g.AddArticle("island")

	tests := []struct {
		from, to string
		want     int
	}{
		{"A", "A", 0},
		{"A", "B", 1},
		{"A", "D", 2},
		{"A", "target", 3},
		{"target", "A", -1},
		{"A", "island", -1},
		{"missing", "A", -1},
	}

	for _, tt := range tests {
		if got := g.Distance(tt.from, tt.to); got != tt.want {
			t.Errorf("Distance(%q, %q) = %d, want %d", tt.from, tt.to, got, tt.want)
		}
	}
}

package output

import (
	"time"

	"github.com/pfrederiksen/six-degrees/internal/search"
	"github.com/pfrederiksen/six-degrees/internal/wiki"
)

// Leg is one search direction of a report
type Leg struct {
	From wiki.Ref
	To   wiki.Ref
	Path search.Path
	Err  error
}

// Found reports whether the leg produced a path
func (l Leg) Found() bool {
	return l.Err == nil && len(l.Path) > 0
}

// URLs returns the path as article URLs
func (l Leg) URLs() []string {
	urls := make([]string, 0, len(l.Path))
	for _, title := range l.Path {
		urls = append(urls, wiki.ArticleURL(l.From.Lang, title))
	}
	return urls
}

// Report is the result of a path or degree check
type Report struct {
	Legs     []Leg
	MaxDepth int
	Elapsed  time.Duration
}

// NewReport builds a two-leg report from a degree check
func NewReport(a, b wiki.Ref, res search.Result, maxDepth int, elapsed time.Duration) *Report {
	return &Report{
		Legs: []Leg{
			{From: a, To: b, Path: res.AtoB, Err: res.ErrAtoB},
			{From: b, To: a, Path: res.BtoA, Err: res.ErrBtoA},
		},
		MaxDepth: maxDepth,
		Elapsed:  elapsed,
	}
}

// Package search implements a depth-bounded bidirectional BFS over a link
// graph whose edges are fetched on demand.
//
// Paths returned are not guaranteed to be shortest. Fan-out and batch caps
// discard edges, and the meeting node is the first one found in the order
// the Source enumerates links. A nil path means "no path found within the
// bound", not "no path exists".
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Default search limits
const (
	DefaultMaxDepth  = 5
	DefaultBatchSize = 50
	DefaultFanOut    = 30
)

var (
	// ErrInvalidNode is returned for empty or unusable article titles
	ErrInvalidNode = errors.New("invalid node identifier")
	// ErrInvalidLocale is returned when no locale is given
	ErrInvalidLocale = errors.New("invalid locale")
)

// Source returns the outbound links of an article. Implementations must be
// safe for concurrent use and return an empty slice when links cannot be
// fetched.
type Source interface {
	Neighbors(ctx context.Context, title, locale string) []string
}

// BacklinkSource is a Source that can also list inbound links
type BacklinkSource interface {
	Source
	Backlinks(ctx context.Context, title, locale string) []string
}

// Options configures a search run
type Options struct {
	MaxDepth  int
	BatchSize int
	FanOut    int
	// Backlinks expands the backward frontier with inbound links when the
	// Source supports them. Otherwise outbound links are used.
	Backlinks bool
}

// DefaultOptions returns the stock search limits
func DefaultOptions() Options {
	return Options{
		MaxDepth:  DefaultMaxDepth,
		BatchSize: DefaultBatchSize,
		FanOut:    DefaultFanOut,
		Backlinks: true,
	}
}

// State of a search run
type State int

const (
	Running State = iota
	Found
	Exhausted
)

func (s State) String() string {
	switch s {
	case Found:
		return "found"
	case Exhausted:
		return "exhausted"
	default:
		return "running"
	}
}

// Outcome describes how a search run ended
type Outcome struct {
	RunID   string
	State   State
	Path    Path
	Levels  int
	Meeting string
}

// Engine runs bidirectional searches against a Source
type Engine struct {
	source Source
	opts   Options
}

// NewEngine creates an Engine. Zero-valued limits fall back to defaults.
func NewEngine(source Source, opts Options) *Engine {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.FanOut <= 0 {
		opts.FanOut = DefaultFanOut
	}
	return &Engine{
		source: source,
		opts:   opts,
	}
}

// Options returns the effective options
func (e *Engine) Options() Options {
	return e.opts
}

// FindPath returns a start->target path, or nil if none was found within
// MaxDepth levels.
func (e *Engine) FindPath(ctx context.Context, start, target, locale string) (Path, error) {
	out, err := e.Search(ctx, start, target, locale)
	if err != nil {
		return nil, err
	}
	return out.Path, nil
}

// Search runs the search and reports the final state
func (e *Engine) Search(ctx context.Context, start, target, locale string) (*Outcome, error) {
	if err := validateNode(start); err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	if err := validateNode(target); err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}
	if strings.TrimSpace(locale) == "" {
		return nil, ErrInvalidLocale
	}

	out := &Outcome{RunID: uuid.NewString(), State: Running}
	if start == target {
		out.State = Found
		out.Path = Path{start}
		return out, nil
	}

	log := slog.With("run", out.RunID, "locale", locale)
	log.Debug("Starting search", "start", start, "target", target, "maxDepth", e.opts.MaxDepth)

	forward := NewFrontier(Forward, start, e.opts.BatchSize, e.opts.FanOut)
	backward := NewFrontier(Backward, target, e.opts.BatchSize, e.opts.FanOut)
	fetchForward, fetchBackward := e.fetchers(locale)

	for out.State == Running {
		// One side may run dry while the other still has work; an empty
		// frontier is a no-op on expansion.
		if (forward.Pending() == 0 && backward.Pending() == 0) || out.Levels >= e.opts.MaxDepth {
			out.State = Exhausted
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		out.Levels++
		log.Debug("Expanding level",
			"level", out.Levels,
			"forward", forward.Pending(),
			"backward", backward.Pending())

		if meeting, ok := forward.ExpandLevel(ctx, fetchForward, backward); ok {
			out.Meeting = meeting
			out.State = Found
			break
		}
		if meeting, ok := backward.ExpandLevel(ctx, fetchBackward, forward); ok {
			out.Meeting = meeting
			out.State = Found
			break
		}
	}

	if out.State == Exhausted {
		log.Debug("No path within bound", "levels", out.Levels)
		return out, nil
	}

	path, ok := AssembleAt(forward.Visited(), backward.Visited(), out.Meeting)
	if !ok {
		path, ok = Assemble(forward.Visited(), backward.Visited())
	}
	if !ok {
		out.State = Exhausted
		return out, nil
	}
	out.Path = path

	log.Debug("Path found", "levels", out.Levels, "meeting", out.Meeting, "hops", path.Hops())
	return out, nil
}

func (e *Engine) fetchers(locale string) (FetchFunc, FetchFunc) {
	forward := func(ctx context.Context, title string) []string {
		return e.source.Neighbors(ctx, title, locale)
	}
	if bs, ok := e.source.(BacklinkSource); ok && e.opts.Backlinks {
		return forward, func(ctx context.Context, title string) []string {
			return bs.Backlinks(ctx, title, locale)
		}
	}
	return forward, forward
}

// validateNode rejects titles that cannot name a single article
func validateNode(title string) error {
	switch {
	case strings.TrimSpace(title) == "":
		return fmt.Errorf("%w: empty title", ErrInvalidNode)
	case !utf8.ValidString(title):
		return fmt.Errorf("%w: %q is not valid UTF-8", ErrInvalidNode, title)
	case strings.ContainsAny(title, "|\n\r\t"):
		return fmt.Errorf("%w: %q contains a reserved character", ErrInvalidNode, title)
	}
	return nil
}

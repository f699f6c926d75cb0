package search

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Saver persists state accumulated during a check, such as a link cache
type Saver interface {
	Save(ctx context.Context) error
}

// Result holds both directions of a degree check. A nil path with a nil
// error means no path was found within the bound.
type Result struct {
	AtoB    Path
	BtoA    Path
	ErrAtoB error
	ErrBtoA error
}

// Checker searches a->b and b->a concurrently
type Checker struct {
	engine *Engine
	saver  Saver
}

// CheckerOption configures a Checker
type CheckerOption func(*Checker)

// WithSaver saves the given state once both directions finish
func WithSaver(s Saver) CheckerOption {
	return func(c *Checker) {
		c.saver = s
	}
}

// NewChecker creates a Checker around engine
func NewChecker(engine *Engine, opts ...CheckerOption) *Checker {
	c := &Checker{engine: engine}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check runs both searches and waits for them. A failure in one direction
// is recorded in its slot and does not stop the other.
func (c *Checker) Check(ctx context.Context, a, b, locale string) Result {
	var res Result
	var g errgroup.Group

	g.Go(func() error {
		res.AtoB, res.ErrAtoB = c.run(ctx, a, b, locale)
		return nil
	})
	g.Go(func() error {
		res.BtoA, res.ErrBtoA = c.run(ctx, b, a, locale)
		return nil
	})
	_ = g.Wait()

	if c.saver != nil {
		// Save even when ctx was cancelled by an interrupt
		if err := c.saver.Save(context.WithoutCancel(ctx)); err != nil {
			slog.Warn("Failed to save cache", "error", err)
		}
	}

	return res
}

func (c *Checker) run(ctx context.Context, start, target, locale string) (path Path, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("search %s -> %s panicked: %v", start, target, r)
		}
	}()

	path, err = c.engine.FindPath(ctx, start, target, locale)
	if err != nil {
		slog.Warn("Search failed", "start", start, "target", target, "error", err)
	}
	return path, err
}

// Package linksource serves article links to the search engine through a
// cache and a shared rate limiter.
//
// Fetch failures never reach the caller: a node whose links cannot be
// fetched looks like a node without links. Failures are logged and not
// cached, so a later run may retry them.
package linksource

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/sync/singleflight"

	"github.com/pfrederiksen/six-degrees/internal/cache"
)

// DefaultMaxLinks caps how many links of one article are kept
const DefaultMaxLinks = 100

// Fetcher retrieves links from the remote wiki
type Fetcher interface {
	Links(ctx context.Context, title, lang string) ([]string, error)
	LinksHere(ctx context.Context, title, lang string) ([]string, error)
}

// Limiter blocks until a remote request may be made
type Limiter interface {
	Wait(ctx context.Context) (time.Duration, error)
}

// Options configures a Source
type Options struct {
	// MaxLinks truncates each fetched list
	MaxLinks int
	// Retries is how many times a temporary failure is retried
	Retries int
	// Backoff spaces retries. Defaults to exponential backoff.
	Backoff func() backoff.BackOff
}

// Stats are counters for one Source
type Stats struct {
	Fetches   int64
	Failures  int64
	CacheHits int64
}

// Source implements search.Source and search.BacklinkSource
type Source struct {
	fetcher Fetcher
	store   cache.Store
	limiter Limiter
	opts    Options
	flight  singleflight.Group

	fetches   atomic.Int64
	failures  atomic.Int64
	cacheHits atomic.Int64
}

// New creates a Source
func New(fetcher Fetcher, store cache.Store, limiter Limiter, opts Options) *Source {
	if opts.MaxLinks <= 0 {
		opts.MaxLinks = DefaultMaxLinks
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	if opts.Backoff == nil {
		opts.Backoff = func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		}
	}
	return &Source{
		fetcher: fetcher,
		store:   store,
		limiter: limiter,
		opts:    opts,
	}
}

// Neighbors returns the outbound links of title
func (s *Source) Neighbors(ctx context.Context, title, locale string) []string {
	return s.get(ctx, cache.Links(locale, title), s.fetcher.Links)
}

// Backlinks returns the articles linking to title
func (s *Source) Backlinks(ctx context.Context, title, locale string) []string {
	return s.get(ctx, cache.LinksHere(locale, title), s.fetcher.LinksHere)
}

// Stats returns a snapshot of the counters
func (s *Source) Stats() Stats {
	return Stats{
		Fetches:   s.fetches.Load(),
		Failures:  s.failures.Load(),
		CacheHits: s.cacheHits.Load(),
	}
}

// Save persists the underlying cache
func (s *Source) Save(ctx context.Context) error {
	return s.store.Save(ctx)
}

type fetchFunc func(ctx context.Context, title, lang string) ([]string, error)

func (s *Source) get(ctx context.Context, key cache.Key, fetch fetchFunc) []string {
	if links, ok := s.store.Get(ctx, key); ok {
		s.cacheHits.Add(1)
		cacheLookups.WithLabelValues("hit").Inc()
		return links
	}
	cacheLookups.WithLabelValues("miss").Inc()

	// Concurrent searches often reach the same article; only one of them
	// spends rate limit budget on it. The shared fetch belongs to no single
	// caller, so it runs detached and each caller stops waiting on its own
	// cancellation.
	shared := context.WithoutCancel(ctx)
	ch := s.flight.DoChan(key.String(), func() (any, error) {
		if links, ok := s.store.Get(shared, key); ok {
			return links, nil
		}
		return s.fetch(shared, key, fetch), nil
	})

	select {
	case res := <-ch:
		links, _ := res.Val.([]string)
		return slices.Clone(links)
	case <-ctx.Done():
		return nil
	}
}

func (s *Source) fetch(ctx context.Context, key cache.Key, fetch fetchFunc) []string {
	operation := func() ([]string, error) {
		waited, err := s.limiter.Wait(ctx)
		rateLimitWait.Observe(waited.Seconds())
		if err != nil {
			return nil, backoff.Permanent(err)
		}

		s.fetches.Add(1)
		links, err := fetch(ctx, key.Title, key.Locale)
		if err != nil {
			if isTemporary(err) {
				slog.Debug("Temporary fetch failure", "key", key.String(), "error", err)
				return nil, err
			}
			return nil, backoff.Permanent(err)
		}
		return links, nil
	}

	links, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(s.opts.Backoff()),
		backoff.WithMaxTries(uint(s.opts.Retries+1)))
	if err != nil {
		s.failures.Add(1)
		outcome := "error"
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			outcome = "cancelled"
		}
		requestsTotal.WithLabelValues(key.Relation, outcome).Inc()
		slog.Warn("Failed to fetch links",
			"title", key.Title,
			"locale", key.Locale,
			"relation", key.Relation,
			"error", err)
		return nil
	}
	requestsTotal.WithLabelValues(key.Relation, "ok").Inc()

	if len(links) > s.opts.MaxLinks {
		links = links[:s.opts.MaxLinks]
	}
	if err := s.store.Put(ctx, key, links); err != nil {
		slog.Warn("Failed to cache links", "key", key.String(), "error", err)
	}
	return links
}

// isTemporary reports whether err is worth retrying
func isTemporary(err error) bool {
	var t interface{ Temporary() bool }
	if errors.As(err, &t) {
		return t.Temporary()
	}
	return false
}

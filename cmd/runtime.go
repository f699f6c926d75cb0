package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pfrederiksen/six-degrees/internal/awsx"
	"github.com/pfrederiksen/six-degrees/internal/cache"
	"github.com/pfrederiksen/six-degrees/internal/config"
	"github.com/pfrederiksen/six-degrees/internal/graph"
	"github.com/pfrederiksen/six-degrees/internal/linksource"
	"github.com/pfrederiksen/six-degrees/internal/ratelimit"
	"github.com/pfrederiksen/six-degrees/internal/search"
	"github.com/pfrederiksen/six-degrees/internal/wiki"
)

// runtime wires a search engine to either Wikipedia or an offline graph.
// store and links are nil in graph-file mode.
type runtime struct {
	engine *search.Engine
	store  cache.Store
	links  *linksource.Source
	graph  *graph.Graph
}

func newRuntime(ctx context.Context, cfg *config.Config) (*runtime, error) {
	rt := &runtime{}

	if cfg.GraphFile != "" {
		g, err := graph.LoadFile(cfg.GraphFile)
		if err != nil {
			return nil, err
		}
		slog.Info("Link graph loaded",
			"file", cfg.GraphFile,
			"articles", g.ArticleCount(),
			"links", g.LinkCount())
		rt.graph = g
		rt.engine = search.NewEngine(g, cfg.SearchOptions())
		return rt, nil
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	rt.store = store

	if n, err := store.Len(ctx); err == nil {
		slog.Info("Cache loaded", "backend", cfg.Cache.Backend, "entries", n)
	}

	client := wiki.NewClient(
		wiki.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		wiki.WithEndpoint(cfg.Endpoint),
		wiki.WithUserAgent(cfg.UserAgent),
	)
	rt.links = linksource.New(client, store, ratelimit.PerMinute(cfg.RateLimit), linksource.Options{
		MaxLinks: cfg.MaxLinks,
		Retries:  cfg.Retries,
	})
	rt.engine = search.NewEngine(rt.links, cfg.SearchOptions())
	return rt, nil
}

func openStore(ctx context.Context, cfg *config.Config) (cache.Store, error) {
	opts := cache.Options{
		Backend: cfg.Cache.Backend,
		Path:    cfg.Cache.Path,
		Bucket:  cfg.Cache.S3.Bucket,
		Key:     cfg.Cache.S3.Key,
		Logger:  slog.Default(),
	}

	if cfg.Cache.Backend == cache.BackendS3 {
		awsCfg, err := awsx.LoadConfig(ctx, cfg.Cache.S3.Profile, cfg.Cache.S3.Region)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		slog.Debug("AWS config loaded",
			"region", awsCfg.Region,
			"profile", cfg.Cache.S3.Profile)
		opts.S3 = awsx.NewClients(awsCfg).S3
	}

	store, err := cache.Open(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return store, nil
}

// Save persists the cache. It runs even when ctx is already cancelled.
func (rt *runtime) Save(ctx context.Context) {
	if rt.store == nil {
		return
	}
	if err := rt.store.Save(context.WithoutCancel(ctx)); err != nil {
		slog.Warn("Failed to save cache", "error", err)
	}
}

func (rt *runtime) Close() {
	if rt.store == nil {
		return
	}
	if err := rt.store.Close(); err != nil {
		slog.Warn("Failed to close cache", "error", err)
	}
}

func (rt *runtime) logStats() {
	switch {
	case rt.links != nil:
		stats := rt.links.Stats()
		slog.Info("Search complete",
			"fetches", stats.Fetches,
			"failures", stats.Failures,
			"cacheHits", stats.CacheHits)
	case rt.graph != nil:
		slog.Info("Search complete", "lookups", rt.graph.Fetches())
	}
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/six-degrees/internal/api"
	"github.com/pfrederiksen/six-degrees/internal/search"
)

const shutdownTimeout = 10 * time.Second

var (
	serveAddr    string
	serveTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve path searches over HTTP",
	Long: `serve exposes searches as a JSON API:

  GET /api/v1/path?from=<article>&to=<article>&lang=<wiki>
  GET /api/v1/degrees?a=<article>&b=<article>&lang=<wiki>
  GET /api/v1/health
  GET /metrics

All requests share one link cache and one rate limiter. The cache is saved
after every degree check and on shutdown.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: from config)")
	serveCmd.Flags().DurationVar(&serveTimeout, "request-timeout", 2*time.Minute, "Maximum search time per request")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Serve.Addr = serveAddr
	}

	ctx, stop := signalContext()
	defer stop()

	rt, err := newRuntime(ctx, cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	var opts []search.CheckerOption
	if rt.store != nil {
		opts = append(opts, search.WithSaver(rt.store))
	}

	srv := &http.Server{
		Addr: cfg.Serve.Addr,
		Handler: api.NewRouter(&api.RouterDeps{
			Engine:   rt.engine,
			Checker:  search.NewChecker(rt.engine, opts...),
			Store:    rt.store,
			Language: cfg.Language,
			Version:  version,
			Timeout:  serveTimeout,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Listening", "addr", cfg.Serve.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("Shutdown incomplete", "error", err)
		}
	}

	rt.Save(ctx)
	return nil
}

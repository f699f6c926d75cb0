package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/six-degrees/internal/output"
	"github.com/pfrederiksen/six-degrees/internal/search"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "six-degrees [article-a] [article-b]",
	Short: "Find link paths between two Wikipedia articles",
	Long: `six-degrees checks how closely two Wikipedia articles are linked.

Given two articles (URLs or titles), six-degrees searches for a chain of
links from the first to the second and from the second back to
the first. Both directions run concurrently, each as a bidirectional
breadth-first search bounded by --depth levels.

Link lists are cached between runs, so repeated searches get faster and
put less load on the Wikipedia API.

Examples:
  # Check two articles by URL
  six-degrees https://en.wikipedia.org/wiki/Kevin_Bacon https://en.wikipedia.org/wiki/Albert_Einstein

  # Bare titles on another wiki
  six-degrees "Berlin" "Paris" --lang de

  # Keep the cache in S3
  six-degrees Rome Carthage --cache-backend s3 --s3-bucket my-bucket --profile prod

  # Search an offline link graph as JSON
  six-degrees A B --graph-file links.json --format json`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE:         runCheck,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version
	registerFlags(rootCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	a, b, err := parseRefs(args[0], args[1], cfg.Language)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	rt, err := newRuntime(ctx, cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	slog.Info("Starting degree check",
		"a", a.Title,
		"b", b.Title,
		"lang", a.Lang,
		"depth", cfg.MaxDepth)

	var opts []search.CheckerOption
	if rt.store != nil {
		opts = append(opts, search.WithSaver(rt.store))
	}
	checker := search.NewChecker(rt.engine, opts...)

	start := time.Now()
	res := checker.Check(ctx, a.Title, b.Title, a.Lang)
	report := output.NewReport(a, b, res, cfg.MaxDepth, time.Since(start))

	rt.logStats()

	if err := render(os.Stdout, report); err != nil {
		return err
	}
	if ctx.Err() != nil {
		return fmt.Errorf("interrupted: %w", ctx.Err())
	}
	return nil
}

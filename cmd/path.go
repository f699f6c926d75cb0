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

var pathCmd = &cobra.Command{
	Use:   "path [from] [to]",
	Short: "Find a link path in one direction only",
	Long: `path searches for a chain of links from one article to another without
checking the reverse direction.

Examples:
  six-degrees path "Kevin Bacon" "Albert Einstein"
  six-degrees path https://fr.wikipedia.org/wiki/Paris Lyon --depth 3`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE:         runPath,
}

func init() {
	rootCmd.AddCommand(pathCmd)
}

func runPath(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	from, to, err := parseRefs(args[0], args[1], cfg.Language)
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
	defer rt.Save(ctx)

	start := time.Now()
	out, err := rt.engine.Search(ctx, from.Title, to.Title, from.Lang)
	elapsed := time.Since(start)

	leg := output.Leg{From: from, To: to, Err: err}
	if err == nil {
		leg.Path = out.Path
		slog.Debug("Search finished",
			"run", out.RunID,
			"state", out.State,
			"levels", out.Levels,
			"meeting", out.Meeting)
	}
	rt.logStats()

	report := &output.Report{Legs: []output.Leg{leg}, MaxDepth: cfg.MaxDepth, Elapsed: elapsed}
	if rerr := render(os.Stdout, report); rerr != nil {
		return rerr
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if out.State != search.Found {
		slog.Info("No path found", "levels", out.Levels)
	}
	return nil
}

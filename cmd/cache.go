package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/six-degrees/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the link cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:          "stats",
	Short:        "Print the number of cached link lists",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runCacheStats,
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheStats(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Len(ctx)
	if err != nil {
		return fmt.Errorf("count cache entries: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Backend: %s\n", cfg.Cache.Backend)
	switch cfg.Cache.Backend {
	case cache.BackendBadger:
		fmt.Fprintf(os.Stdout, "Path:    %s\n", cfg.Cache.Path)
	case cache.BackendS3:
		fmt.Fprintf(os.Stdout, "Object:  s3://%s/%s\n", cfg.Cache.S3.Bucket, cfg.Cache.S3.Key)
	}
	fmt.Fprintf(os.Stdout, "Entries: %d\n", n)
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/six-degrees/internal/config"
	"github.com/pfrederiksen/six-degrees/internal/output"
	"github.com/pfrederiksen/six-degrees/internal/wiki"
)

// formats accepted by --format
var formats = []string{"text", "json", "dot"}

var (
	// Global flags
	configPath   string
	rateLimit    int
	depth        int
	batchSize    int
	fanOut       int
	maxLinks     int
	backlinks    bool
	lang         string
	cacheBackend string
	cachePath    string
	s3Bucket     string
	s3Key        string
	profile      string
	region       string
	graphFile    string
	format       string
	debug        bool
)

func registerFlags(cmd *cobra.Command) {
	defaults := config.Default()
	flags := cmd.PersistentFlags()

	flags.StringVar(&configPath, "config", "", "YAML config file")
	flags.IntVar(&rateLimit, "rate-limit", defaults.RateLimit, "Maximum API requests per minute (0 disables)")
	flags.IntVar(&depth, "depth", defaults.MaxDepth, "Maximum search levels")
	flags.IntVar(&batchSize, "batch-size", defaults.BatchSize, "Articles expanded per level")
	flags.IntVar(&fanOut, "fan-out", defaults.FanOut, "Links followed per article")
	flags.IntVar(&maxLinks, "max-links", defaults.MaxLinks, "Links kept per fetched article")
	flags.BoolVar(&backlinks, "backlinks", defaults.Backlinks, "Expand the target side over incoming links")
	flags.StringVar(&lang, "lang", defaults.Language, "Wiki language for bare titles")
	flags.StringVar(&cacheBackend, "cache-backend", defaults.Cache.Backend, "Link cache: memory, badger, s3")
	flags.StringVar(&cachePath, "cache-path", defaults.Cache.Path, "Badger cache directory")
	flags.StringVar(&s3Bucket, "s3-bucket", "", "Bucket for the s3 cache backend")
	flags.StringVar(&s3Key, "s3-key", defaults.Cache.S3.Key, "Object key for the s3 cache backend")
	flags.StringVar(&profile, "profile", "", "AWS profile to use")
	flags.StringVar(&region, "region", "", "AWS region (default: from config/environment)")
	flags.StringVar(&graphFile, "graph-file", "", "Search a JSON link graph instead of Wikipedia")
	flags.StringVar(&format, "format", "text", "Output format: text, json, dot")
	flags.BoolVar(&debug, "debug", false, "Enable debug logging")
}

// loadSettings sets up logging and layers explicitly set flags over the
// config file
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	setupLogging()

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("rate-limit") {
		cfg.RateLimit = rateLimit
	}
	if flags.Changed("depth") {
		cfg.MaxDepth = depth
	}
	if flags.Changed("batch-size") {
		cfg.BatchSize = batchSize
	}
	if flags.Changed("fan-out") {
		cfg.FanOut = fanOut
	}
	if flags.Changed("max-links") {
		cfg.MaxLinks = maxLinks
	}
	if flags.Changed("backlinks") {
		cfg.Backlinks = backlinks
	}
	if flags.Changed("lang") {
		cfg.Language = lang
	}
	if flags.Changed("cache-backend") {
		cfg.Cache.Backend = cacheBackend
	}
	if flags.Changed("cache-path") {
		cfg.Cache.Path = cachePath
	}
	if flags.Changed("s3-bucket") {
		cfg.Cache.S3.Bucket = s3Bucket
	}
	if flags.Changed("s3-key") {
		cfg.Cache.S3.Key = s3Key
	}
	if flags.Changed("profile") {
		cfg.Cache.S3.Profile = profile
	}
	if flags.Changed("region") {
		cfg.Cache.S3.Region = region
	}
	if flags.Changed("graph-file") {
		cfg.GraphFile = graphFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	if !slices.Contains(formats, format) {
		return nil, fmt.Errorf("unknown format: %s (must be text, dot, or json)", format)
	}
	return cfg, nil
}

func setupLogging() {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// parseRefs resolves two arguments to articles on the same wiki
func parseRefs(rawA, rawB, language string) (wiki.Ref, wiki.Ref, error) {
	a, b := wiki.ParseRef(rawA, language), wiki.ParseRef(rawB, language)
	if a.Lang != b.Lang {
		return a, b, fmt.Errorf("articles are on different wikis: %s and %s", a.Lang, b.Lang)
	}
	return a, b, nil
}

func render(w io.Writer, report *output.Report) error {
	switch format {
	case "text":
		return output.RenderText(w, report)
	case "dot":
		return output.RenderDOT(w, report)
	case "json":
		return output.RenderJSON(w, report)
	default:
		return fmt.Errorf("unknown format: %s (must be text, dot, or json)", format)
	}
}

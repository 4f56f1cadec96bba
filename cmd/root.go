package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/julienpequegnot/rssgen/internal/batch"
	"github.com/julienpequegnot/rssgen/internal/config"
	"github.com/julienpequegnot/rssgen/internal/database"
	"github.com/julienpequegnot/rssgen/internal/feed"
	"github.com/julienpequegnot/rssgen/internal/history"
	"github.com/julienpequegnot/rssgen/internal/site"
	"github.com/julienpequegnot/rssgen/internal/sitelist"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// errReported marks a failure that was already written to stderr.
var errReported = errors.New("failure already reported")

var rootCmd = &cobra.Command{
	Use:   "rssgen",
	Short: "Find the RSS/Atom feed of any website",
	Long: `rssgen discovers a syndication feed URL for a site given only its address.

Known platforms (YouTube, Substack, Telegram, BitChute) get their feed built
directly; any other site is probed for common feed paths, alternate link tags
and feed-looking links.

  rssgen --input <input_file> [--output <output_file>]
  rssgen --url <site_url>

If no output file is given, output will be written to rss-feeds.txt`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runRoot,
}

var (
	rootInput       string
	rootOutput      string
	rootURL         string
	rootConcurrency int
	rootRecord      bool
	rootJSON        bool
)

func init() {
	rootCmd.Version = "0.1.0"
	rootCmd.Flags().StringVar(&rootInput, "input", "", "File with one site URL per line")
	rootCmd.Flags().StringVar(&rootOutput, "output", "", "Output file for feed URLs (default from config, rss-feeds.txt)")
	rootCmd.Flags().StringVar(&rootURL, "url", "", "Resolve a single site URL and print its feed")
	rootCmd.Flags().IntVarP(&rootConcurrency, "concurrency", "c", 0, "Sites resolved in parallel (0 = use config)")
	rootCmd.Flags().BoolVar(&rootRecord, "record", false, "Record every resolution in the history database")
	rootCmd.Flags().BoolVar(&rootJSON, "json", false, "Print the single-URL result as JSON")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	if rootURL == "" && rootInput == "" {
		return cmd.Help()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := newLogger(cfg, cmd.ErrOrStderr())
	fetcher := feed.NewFetcher(time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second, cfg.Fetch.MaxBodyBytes)
	resolver := feed.NewResolver(fetcher, log)

	var repo *history.Repository
	if rootRecord || cfg.History.Enabled {
		db, err := database.New(config.DBPath())
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer db.Close()
		repo = history.NewRepository(db)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if rootURL != "" {
		return runSingle(ctx, cmd, resolver, repo, log)
	}

	concurrency := cfg.Fetch.Concurrency
	if rootConcurrency > 0 {
		concurrency = rootConcurrency
	}
	output := cfg.Output.File
	if rootOutput != "" {
		output = rootOutput
	}
	return runBatch(ctx, cmd, resolver, repo, log, concurrency, output)
}

func runSingle(ctx context.Context, cmd *cobra.Command, resolver *feed.Resolver, repo *history.Repository, log *logrus.Logger) error {
	s := strings.TrimSpace(rootURL)
	category := site.Classify(s)

	res, err := resolver.Resolve(ctx, s, category)
	record(repo, log, batch.Outcome{Site: s, Category: category, Result: res, Err: err})
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Failed to generate RSS for: %s (%v)\n", s, err)
		return errReported
	}

	if rootJSON {
		out, err := json.Marshal(map[string]string{
			"url":      s,
			"category": category.String(),
			"feed":     res.FeedURL,
			"title":    res.Title,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), res.FeedURL)
	return nil
}

func runBatch(ctx context.Context, cmd *cobra.Command, resolver *feed.Resolver, repo *history.Repository, log *logrus.Logger, concurrency int, output string) error {
	lines, err := sitelist.ReadSites(rootInput)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Failed to read input file: %v\n", err)
		return errReported
	}

	sites := batch.Prepare(lines)
	runner := batch.NewRunner(resolver, concurrency, log)
	outcomes := runner.Run(ctx, sites)

	for _, o := range outcomes {
		record(repo, log, o)
	}

	feeds := batch.Feeds(outcomes)
	if err := sitelist.WriteFeeds(output, feeds); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Failed to write output file: %v\n", err)
		return errReported
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d feeds to %s (%d of %d sites failed)\n",
		len(feeds), output, batch.Failed(outcomes), len(sites))
	return nil
}

// record appends o to the history log when one is open. Recording errors are
// logged and never fail the run.
func record(repo *history.Repository, log *logrus.Logger, o batch.Outcome) {
	if repo == nil {
		return
	}
	var feedURL, title string
	if o.Result != nil {
		feedURL, title = o.Result.FeedURL, o.Result.Title
	}
	if _, err := repo.Record(o.Site, o.Category.String(), feedURL, title, o.Err); err != nil {
		log.WithField("url", o.Site).Errorf("failed to record resolution: %v", err)
	}
}

func newLogger(cfg *config.Config, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

// Package batch resolves a list of sites with a bounded worker pool.
package batch

import (
	"context"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/julienpequegnot/rssgen/internal/feed"
	"github.com/julienpequegnot/rssgen/internal/site"
)

type Resolver interface {
	Resolve(ctx context.Context, rawURL string, category site.Category) (*feed.Result, error)
}

// Outcome is the resolution of one site. Exactly one of Result and Err is set.
type Outcome struct {
	Site     string
	Category site.Category
	Result   *feed.Result
	Err      error
}

type Runner struct {
	resolver    Resolver
	concurrency int
	log         logrus.FieldLogger
}

func NewRunner(resolver Resolver, concurrency int, log logrus.FieldLogger) *Runner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Runner{resolver: resolver, concurrency: concurrency, log: log}
}

// Prepare trims lines and drops blanks and # comments.
func Prepare(lines []string) []string {
	sites := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sites = append(sites, line)
	}
	return sites
}

// Run classifies and resolves every site. A failing site is logged and
// recorded in its Outcome; it never stops the batch. Outcomes keep the
// order of sites.
func (r *Runner) Run(ctx context.Context, sites []string) []Outcome {
	outcomes := make([]Outcome, len(sites))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, s := range sites {
		i, s := i, s
		g.Go(func() error {
			category := site.Classify(s)
			res, err := r.resolver.Resolve(ctx, s, category)
			outcomes[i] = Outcome{Site: s, Category: category, Result: res, Err: err}
			if err != nil {
				r.log.WithFields(logrus.Fields{
					"url":      s,
					"category": category.String(),
				}).Warnf("Failed to generate RSS: %v", err)
			}
			return nil
		})
	}
	// Workers never return an error.
	_ = g.Wait()

	return outcomes
}

// Feeds returns the sorted, de-duplicated feed URLs of successful outcomes.
func Feeds(outcomes []Outcome) []string {
	var feeds []string
	for _, o := range outcomes {
		if o.Err == nil && o.Result != nil {
			feeds = append(feeds, o.Result.FeedURL)
		}
	}
	slices.Sort(feeds)
	return slices.Compact(feeds)
}

// Failed counts outcomes that carry an error.
func Failed(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}

package feed

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/julienpequegnot/rssgen/internal/failure"
	"github.com/julienpequegnot/rssgen/internal/site"
)

// Result is a resolved feed. Title is only known for the video platform.
type Result struct {
	FeedURL string
	Title   string
}

type resolveFunc func(ctx context.Context, rawURL string) (*Result, error)

// Resolver turns a site URL and its category into a feed URL. It holds no
// per-resolution state, so one Resolver may serve concurrent callers.
type Resolver struct {
	fetcher *Fetcher
	log     logrus.FieldLogger
	byKind  map[site.Category]resolveFunc
}

func NewResolver(fetcher *Fetcher, log logrus.FieldLogger) *Resolver {
	r := &Resolver{fetcher: fetcher, log: log}
	r.byKind = map[site.Category]resolveFunc{
		site.VideoPlatform:    r.resolveVideoPlatform,
		site.Newsletter:       construct(newsletterFeed),
		site.MessagingChannel: construct(messagingFeed),
		site.VideoShareA:      construct(bitchuteFeed),
		site.VideoShareB:      construct(odyseeFeed),
		site.VideoShareC:      construct(rumbleFeed),
		site.GenericBlog:      r.discover,
	}
	return r
}

// Resolve dispatches to exactly one resolver. Unrecognized sites fail
// without touching the network.
func (r *Resolver) Resolve(ctx context.Context, rawURL string, category site.Category) (*Result, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, failure.InvalidURL(rawURL)
	}

	resolve, ok := r.byKind[category]
	if !ok {
		return nil, failure.UnknownSiteType(rawURL)
	}

	res, err := resolve(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	r.log.WithFields(logrus.Fields{
		"url":      rawURL,
		"category": category.String(),
		"feed":     res.FeedURL,
	}).Debug("resolved feed")
	return res, nil
}

// construct adapts a pure URL builder to a resolveFunc.
func construct(build func(rawURL string) (string, error)) resolveFunc {
	return func(_ context.Context, rawURL string) (*Result, error) {
		feedURL, err := build(rawURL)
		if err != nil {
			return nil, err
		}
		return &Result{FeedURL: feedURL}, nil
	}
}

// internal/feed/discover.go
package feed

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/julienpequegnot/rssgen/internal/failure"
)

// feedSuffixes are probed in this order; the first confirmed one wins.
var feedSuffixes = []string{
	"/feed",
	"/feed/",
	"/rss",
	"/rss.xml",
	"/atom.xml",
	"/index.xml",
}

type probeCandidate struct {
	url       string
	confirmed bool
}

// patternCandidates builds one candidate per suffix. A base URL that already
// ends with the suffix is used unmodified.
func patternCandidates(rawURL string) []probeCandidate {
	base := strings.TrimRight(rawURL, "/")
	candidates := make([]probeCandidate, 0, len(feedSuffixes))
	for _, suffix := range feedSuffixes {
		u := base + suffix
		if strings.HasSuffix(base, suffix) {
			u = base
		}
		candidates = append(candidates, probeCandidate{url: u})
	}
	return candidates
}

// discover searches a generic site in three tiers: well-known feed paths,
// alternate link tags, then any feed-looking href on the page.
func (r *Resolver) discover(ctx context.Context, rawURL string) (*Result, error) {
	if feedURL, ok := r.probePatterns(ctx, rawURL); ok {
		return &Result{FeedURL: feedURL}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, failure.IO(err)
	}

	resp, err := r.fetcher.Get(ctx, rawURL)
	if err != nil {
		r.log.WithFields(logrus.Fields{"url": rawURL, "error": err}).Debug("page fetch failed")
		return nil, failure.InvalidURL(rawURL)
	}
	body, err := resp.Text()
	resp.Close()
	if err != nil {
		return nil, failure.RSSNotFound(rawURL)
	}

	if href, ok := alternateFeedLink(body); ok {
		return &Result{FeedURL: resolveHref(rawURL, href)}, nil
	}

	if feedURL, ok := r.scanLinks(ctx, rawURL, body); ok {
		return &Result{FeedURL: feedURL}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, failure.IO(err)
	}

	return nil, failure.RSSNotFound(rawURL)
}

func (r *Resolver) probePatterns(ctx context.Context, rawURL string) (string, bool) {
	for _, c := range patternCandidates(rawURL) {
		if ctx.Err() != nil {
			return "", false
		}
		r.probe(ctx, &c)
		if c.confirmed {
			return c.url, true
		}
	}
	return "", false
}

// probe confirms c when it answers 2xx with a feed content type or a body
// that opens an <rss> or <feed> element.
func (r *Resolver) probe(ctx context.Context, c *probeCandidate) {
	resp, err := r.fetcher.Get(ctx, c.url)
	if err != nil {
		r.log.WithFields(logrus.Fields{"url": c.url, "tier": "pattern", "error": err}).Debug("probe failed")
		return
	}
	defer resp.Close()

	if !resp.OK() {
		r.log.WithFields(logrus.Fields{"url": c.url, "tier": "pattern", "status": resp.StatusCode}).Debug("probe rejected")
		return
	}

	if isFeedContentType(resp.ContentType) {
		c.confirmed = true
		return
	}

	body, err := resp.Text()
	if err != nil {
		return
	}
	c.confirmed = strings.Contains(body, "<rss") || strings.Contains(body, "<feed")
}

// alternateFeedLink prefers RSS over Atom.
func alternateFeedLink(body string) (string, bool) {
	if href, ok := AlternateLink(body, mimeRSS); ok {
		return href, true
	}
	return AlternateLink(body, mimeAtom)
}

// scanLinks fetches each feed-looking href in document order and returns the
// first one that answers 2xx.
func (r *Resolver) scanLinks(ctx context.Context, rawURL, body string) (string, bool) {
	for _, href := range FeedLikeHrefs(body) {
		if ctx.Err() != nil {
			return "", false
		}
		c := probeCandidate{url: absolutize(rawURL, href)}
		resp, err := r.fetcher.Get(ctx, c.url)
		if err != nil {
			r.log.WithFields(logrus.Fields{"url": c.url, "tier": "links", "error": err}).Debug("probe failed")
			continue
		}
		c.confirmed = resp.OK()
		resp.Close()
		if c.confirmed {
			return c.url, true
		}
	}
	return "", false
}

func isFeedContentType(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "xml") || strings.Contains(ct, "rss") || strings.Contains(ct, "atom")
}

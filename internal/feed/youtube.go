package feed

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/julienpequegnot/rssgen/internal/failure"
)

const (
	youtubeFeedTemplate = "https://www.youtube.com/feeds/videos.xml?channel_id=%s"

	// UnknownChannel is the title used when a channel page carries no og:title.
	UnknownChannel = "Unknown Channel"
)

func (r *Resolver) resolveVideoPlatform(ctx context.Context, rawURL string) (*Result, error) {
	if id, ok := channelIDFromPath(rawURL); ok {
		return &Result{
			FeedURL: fmt.Sprintf(youtubeFeedTemplate, id),
			Title:   UnknownChannel,
		}, nil
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, failure.InvalidURL(rawURL)
	}

	resp, err := r.fetcher.Get(ctx, rawURL)
	if err != nil {
		r.log.WithFields(logrus.Fields{"url": rawURL, "error": err}).Debug("channel page fetch failed")
		return nil, failure.InvalidURL(rawURL)
	}
	defer resp.Close()

	body, err := resp.Text()
	if err != nil {
		return nil, failure.RSSNotFound(rawURL)
	}

	feedURL, ok := channelFeedFromBody(rawURL, body)
	if !ok {
		return nil, failure.RSSNotFound(rawURL)
	}

	return &Result{
		FeedURL: feedURL,
		Title:   ChannelTitle(body),
	}, nil
}

// channelFeedFromBody tries, in order, the advertised RSS link, the
// channelId meta tag and a raw channel id scan.
func channelFeedFromBody(pageURL, body string) (string, bool) {
	if link, ok := RSSLink(body); ok {
		return resolveHref(pageURL, link), true
	}
	if id, ok := MetaContent(body, `itemprop="channelId"`); ok && id != "" {
		return fmt.Sprintf(youtubeFeedTemplate, id), true
	}
	if id, ok := ChannelID(body); ok {
		return fmt.Sprintf(youtubeFeedTemplate, id), true
	}
	return "", false
}

// ChannelTitle returns the og:title of a channel page, or UnknownChannel.
func ChannelTitle(body string) string {
	if title, ok := MetaContent(body, `property="og:title"`); ok && title != "" {
		return title
	}
	return UnknownChannel
}

// channelIDFromPath extracts <ID> from a .../channel/<ID> URL.
func channelIDFromPath(rawURL string) (string, bool) {
	const marker = "/channel/"
	idx := strings.Index(rawURL, marker)
	if idx < 0 {
		return "", false
	}
	id := firstSegment(rawURL[idx+len(marker):])
	return id, id != ""
}

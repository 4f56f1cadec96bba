package feed

import (
	"fmt"
	"strings"

	"github.com/julienpequegnot/rssgen/internal/failure"
)

const (
	telegramFeedTemplate = "https://rsshub.app/telegram/channel/%s"
	bitchuteFeedTemplate = "https://api.bitchute.com/feeds/rss/channel/%s"
)

var telegramMarkers = []string{"/t.me/", "/telegram.me/"}

// telegramReserved are path elements that never name a channel.
var telegramReserved = map[string]bool{
	"s":        true,
	"joinchat": true,
	"addlist":  true,
}

// newsletterFeed builds https://<host>/feed.
func newsletterFeed(rawURL string) (string, error) {
	_, rest, ok := strings.Cut(rawURL, "//")
	if !ok {
		return "", failure.InvalidURL(rawURL)
	}
	host := firstSegment(strings.TrimRight(rest, "/"))
	if host == "" {
		return "", failure.InvalidURL(rawURL)
	}
	return "https://" + host + "/feed", nil
}

// messagingFeed maps a channel link to the RSSHub telegram bridge. Web
// preview links (/s/<name>) resolve to the same channel.
func messagingFeed(rawURL string) (string, error) {
	for _, marker := range telegramMarkers {
		idx := strings.Index(rawURL, marker)
		if idx < 0 {
			continue
		}
		rest := rawURL[idx+len(marker):]
		if strings.HasPrefix(rest, "s/") {
			rest = rest[len("s/"):]
		}
		name := firstSegment(rest)
		if name == "" || telegramReserved[name] || strings.HasPrefix(name, "+") {
			return "", failure.InvalidURL(rawURL)
		}
		return fmt.Sprintf(telegramFeedTemplate, name), nil
	}
	return "", failure.InvalidURL(rawURL)
}

// bitchuteFeed takes the path element after the last "channel" element.
func bitchuteFeed(rawURL string) (string, error) {
	parts := strings.Split(strings.TrimRight(rawURL, "/"), "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "channel" {
			continue
		}
		if i+1 < len(parts) {
			if name := firstSegment(parts[i+1]); name != "" {
				return fmt.Sprintf(bitchuteFeedTemplate, name), nil
			}
		}
		break
	}
	return "", failure.InvalidURL(rawURL)
}

func odyseeFeed(string) (string, error) {
	return "", failure.RSSNotFound("Odysee RSS not implemented")
}

func rumbleFeed(string) (string, error) {
	return "", failure.RSSNotFound("Rumble RSS not implemented")
}

// firstSegment returns s up to the first path, query or fragment delimiter.
func firstSegment(s string) string {
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		return s[:i]
	}
	return s
}

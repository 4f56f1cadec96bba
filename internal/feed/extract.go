package feed

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	mimeRSS  = "application/rss+xml"
	mimeAtom = "application/atom+xml"
)

var (
	rssLinkRegex = regexp.MustCompile(`<link[^>]+type=["']application/rss\+xml["'][^>]+href=["']([^"']+)["']`)

	// Alternatives are tried left to right; the first group that matched wins.
	channelIDRegex = regexp.MustCompile(`channelId"\s*:\s*"([A-Za-z0-9_-]{24})"|itemprop="channelId" content="([A-Za-z0-9_-]{24})"|<meta itemprop="channelId" content="([A-Za-z0-9_-]{24})"`)

	hrefRegex = regexp.MustCompile(`(?:<a|<link)[^>]+href=["']([^"'>]+)["'][^>]*>`)

	alternateLinkRegexes = map[string]*regexp.Regexp{
		mimeRSS:  alternateLinkRegex(mimeRSS),
		mimeAtom: alternateLinkRegex(mimeAtom),
	}
)

func alternateLinkRegex(mimeType string) *regexp.Regexp {
	return regexp.MustCompile(`<link[^>]+rel=["']alternate["'][^>]+type=["']` +
		regexp.QuoteMeta(mimeType) +
		`["'][^>]+href=["']([^"']+)["']`)
}

// AlternateLink returns the href of the first <link rel="alternate"> tag
// whose type is mimeType.
func AlternateLink(body, mimeType string) (string, bool) {
	re, ok := alternateLinkRegexes[mimeType]
	if !ok {
		re = alternateLinkRegex(mimeType)
	}
	return firstGroup(re, body)
}

// RSSLink returns the href of the first link tag typed application/rss+xml,
// with or without rel="alternate".
func RSSLink(body string) (string, bool) {
	return firstGroup(rssLinkRegex, body)
}

// ChannelID scans raw markup or embedded JSON for a 24 character channel id.
func ChannelID(body string) (string, bool) {
	m := channelIDRegex.FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	for _, g := range m[1:] {
		if g != "" {
			return g, true
		}
	}
	return "", false
}

// MetaContent finds the first line containing needle followed by a
// content="..." attribute and returns the attribute value.
func MetaContent(body, needle string) (string, bool) {
	const attr = `content="`
	for _, line := range strings.Split(body, "\n") {
		idx := strings.Index(line, needle)
		if idx < 0 {
			continue
		}
		rest := line[idx:]
		c := strings.Index(rest, attr)
		if c < 0 {
			continue
		}
		rest = rest[c+len(attr):]
		end := strings.IndexByte(rest, '"')
		if end < 0 {
			continue
		}
		return strings.TrimSuffix(rest[:end], "\r"), true
	}
	return "", false
}

// FeedLikeHrefs returns, in document order, every <a>/<link> href that looks
// like a feed: it mentions rss or atom, or ends in .xml.
func FeedLikeHrefs(body string) []string {
	var hrefs []string
	for _, m := range hrefRegex.FindAllStringSubmatch(body, -1) {
		lower := strings.ToLower(m[1])
		if strings.Contains(lower, "rss") || strings.Contains(lower, "atom") || strings.HasSuffix(lower, ".xml") {
			hrefs = append(hrefs, m[1])
		}
	}
	return hrefs
}

// absolutize joins href to the page URL. Scheme-qualified hrefs are kept,
// root-relative and relative hrefs are appended to the trimmed page URL.
func absolutize(pageURL, href string) string {
	base := strings.TrimRight(pageURL, "/")

	if u, err := url.Parse(href); err == nil && u.Scheme != "" {
		return href
	}
	if strings.HasPrefix(href, "//") {
		if u, err := url.Parse(pageURL); err == nil && u.Scheme != "" {
			return u.Scheme + ":" + href
		}
		return "https:" + href
	}
	if strings.HasPrefix(href, "/") {
		return base + href
	}
	return base + "/" + href
}

// resolveHref resolves an advertised link against the page URL the way a
// browser does, so a root-relative href lands on the host root.
func resolveHref(pageURL, href string) string {
	base, err := url.Parse(pageURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return absolutize(pageURL, href)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return absolutize(pageURL, href)
	}
	return base.ResolveReference(ref).String()
}

func firstGroup(re *regexp.Regexp, body string) (string, bool) {
	m := re.FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	return m[1], true
}

package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

const defaultMaxBody = 5 * 1024 * 1024

// Fetcher issues plain GET requests with a bounded timeout. No custom
// headers, cookies or redirect policy are applied.
type Fetcher struct {
	parser  *gofeed.Parser
	client  *http.Client
	maxBody int64
}

func NewFetcher(timeout time.Duration, maxBody int64) *Fetcher {
	if maxBody <= 0 {
		maxBody = defaultMaxBody
	}
	return &Fetcher{
		parser:  gofeed.NewParser(),
		client:  &http.Client{Timeout: timeout},
		maxBody: maxBody,
	}
}

// Response is an open HTTP response. Callers must Close it.
type Response struct {
	StatusCode  int
	ContentType string

	body  io.ReadCloser
	limit int64
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Text reads the (size-limited) body.
func (r *Response) Text() (string, error) {
	data, err := io.ReadAll(io.LimitReader(r.body, r.limit))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (r *Response) Close() error {
	return r.body.Close()
}

func (f *Fetcher) Get(ctx context.Context, rawURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		body:        resp.Body,
		limit:       f.maxBody,
	}, nil
}

type FeedItem struct {
	Title       string
	URL         string
	PublishedAt *time.Time
}

// Summary describes a parsed feed.
type Summary struct {
	Title    string
	Link     string
	FeedType string
	Items    []FeedItem
}

// Inspect downloads and fully parses a feed. Resolution never calls it.
func (f *Fetcher) Inspect(ctx context.Context, feedURL string) (*Summary, error) {
	resp, err := f.Get(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Close()

	if !resp.OK() {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := resp.Text()
	if err != nil {
		return nil, fmt.Errorf("failed to read feed: %w", err)
	}

	parsed, err := f.parser.Parse(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	summary := &Summary{
		Title:    parsed.Title,
		Link:     parsed.Link,
		FeedType: parsed.FeedType,
	}
	for _, item := range parsed.Items {
		fi := FeedItem{
			Title: item.Title,
			URL:   item.Link,
		}
		if item.PublishedParsed != nil {
			fi.PublishedAt = item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			fi.PublishedAt = item.UpdatedParsed
		}
		summary.Items = append(summary.Items, fi)
	}

	return summary, nil
}

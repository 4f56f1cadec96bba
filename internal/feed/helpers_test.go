package feed

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

// countingTransport counts outgoing requests before delegating.
type countingTransport struct {
	n atomic.Int64
}

func (c *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.n.Add(1)
	return http.DefaultTransport.RoundTrip(req)
}

func newTestResolver(t *testing.T) (*Resolver, *countingTransport) {
	t.Helper()
	return newTimedResolver(t, 5*time.Second)
}

func newTimedResolver(t *testing.T, timeout time.Duration) (*Resolver, *countingTransport) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	fetcher := NewFetcher(timeout, 0)
	ct := &countingTransport{}
	fetcher.client.Transport = ct

	return NewResolver(fetcher, log), ct
}

// route describes a canned response for one path. A delayed route sleeps
// before answering; a truncated route promises more body than it sends.
type route struct {
	status      int
	contentType string
	body        string
	delay       time.Duration
	truncated   bool
}

// siteServer serves canned routes, 404s everything else and records the
// requested paths in order.
type siteServer struct {
	*httptest.Server

	mu     sync.Mutex
	routes map[string]route
	paths  []string
}

func newSiteServer(t *testing.T, routes map[string]route) *siteServer {
	t.Helper()

	s := &siteServer{routes: routes}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.paths = append(s.paths, r.URL.Path)
		rt, ok := s.routes[r.URL.Path]
		s.mu.Unlock()

		if !ok {
			http.NotFound(w, r)
			return
		}
		if rt.delay > 0 {
			time.Sleep(rt.delay)
		}
		if rt.contentType != "" {
			w.Header().Set("Content-Type", rt.contentType)
		}
		status := rt.status
		if status == 0 {
			status = http.StatusOK
		}
		if rt.truncated {
			w.Header().Set("Content-Length", strconv.Itoa(len(rt.body)+1024))
		}
		w.WriteHeader(status)
		io.WriteString(w, rt.body)
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *siteServer) requested() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.paths...)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

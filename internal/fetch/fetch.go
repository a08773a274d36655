// Package fetch resolves web page titles for URL citations, honoring
// robots.txt before touching a host.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
	"golang.org/x/net/html"
)

const (
	defaultTimeout = 10 * time.Second
	userAgent      = "citeflow/1.0 (https://github.com/citeflow/citeflow)"
	maxBodySize    = 1 << 20
)

// ErrDisallowed is returned when robots.txt forbids fetching the page.
var ErrDisallowed = errors.New("fetch: disallowed by robots.txt")

// ErrNoTitle is returned when the page has no usable <title>.
var ErrNoTitle = errors.New("fetch: page has no title")

// Titler fetches page titles with per-host robots.txt caching.
type Titler struct {
	httpClient *http.Client

	mu     sync.RWMutex
	robots map[string]*robotstxt.RobotsData
}

// Option configures a Titler.
type Option func(*Titler)

// WithHTTPClient overrides the HTTP client, mainly for tests.
func WithHTTPClient(c *http.Client) Option {
	return func(t *Titler) { t.httpClient = c }
}

// NewTitler creates a page title fetcher.
func NewTitler(opts ...Option) *Titler {
	t := &Titler{
		httpClient: &http.Client{Timeout: defaultTimeout},
		robots:     make(map[string]*robotstxt.RobotsData),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Title fetches rawURL and returns the text of its <title> element.
// Returns ErrDisallowed if robots.txt blocks the path.
func (t *Titler) Title(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	allowed, err := t.allowed(ctx, u)
	if err == nil && !allowed {
		return "", ErrDisallowed
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch page: status %d", resp.StatusCode)
	}

	title, err := extractTitle(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", err
	}
	if title == "" {
		return "", ErrNoTitle
	}
	return title, nil
}

// allowed checks robots.txt for the URL's host, caching per host. A
// robots.txt that cannot be fetched or parsed permits the request.
func (t *Titler) allowed(ctx context.Context, u *url.URL) (bool, error) {
	t.mu.RLock()
	data, ok := t.robots[u.Host]
	t.mu.RUnlock()

	if !ok {
		var err error
		data, err = t.fetchRobots(ctx, u)
		if err != nil {
			return true, err
		}
		t.mu.Lock()
		t.robots[u.Host] = data
		t.mu.Unlock()
	}
	return data.TestAgent(u.Path, "citeflow"), nil
}

func (t *Titler) fetchRobots(ctx context.Context, u *url.URL) (*robotstxt.RobotsData, error) {
	robotsURL := u.Scheme + "://" + u.Host + "/robots.txt"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return robotstxt.FromResponse(resp)
}

// extractTitle walks the parsed HTML for the first <title> element.
func extractTitle(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}

	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" {
			var sb strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					sb.WriteString(c.Data)
				}
			}
			title = cleanTitle(sb.String())
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return title, nil
}

// cleanTitle collapses whitespace and strips a trailing site-name
// suffix like " | The Example Times" or " - Example News".
func cleanTitle(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	for _, sep := range []string{" | ", " — ", " – "} {
		if i := strings.LastIndex(s, sep); i > 0 {
			s = s[:i]
		}
	}
	return strings.TrimSpace(s)
}

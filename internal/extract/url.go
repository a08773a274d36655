package extract

import (
	"context"
	"net/url"
	"strings"

	"github.com/citeflow/citeflow/internal/citation"
	"github.com/citeflow/citeflow/internal/provider"
)

// TitleFetcher optionally resolves a URL to its page title. The fetch
// package provides the real implementation; the extractor works without
// one, falling back to the slug.
type TitleFetcher interface {
	Title(ctx context.Context, url string) (string, error)
}

// URL is the fallback extractor for links no other provider claims.
type URL struct {
	fetcher TitleFetcher
}

// NewURL creates the generic URL extractor. fetcher may be nil.
func NewURL(fetcher TitleFetcher) *URL {
	return &URL{fetcher: fetcher}
}

func (e *URL) Name() string { return "url-extract" }

// Search derives minimal metadata from a URL: the page title when a
// fetcher is configured and allowed, otherwise the slug, otherwise the
// bare domain.
func (e *URL) Search(ctx context.Context, query string) (*citation.Record, error) {
	raw := strings.TrimSpace(query)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, provider.ErrNotFound
	}
	domain := strings.TrimPrefix(strings.ToLower(u.Host), "www.")

	rec := citation.Record{
		Type:           citation.URL,
		URL:            raw,
		AccessDate:     accessDate(),
		OriginProvider: e.Name(),
		RawQuery:       query,
	}

	if e.fetcher != nil {
		if title, err := e.fetcher.Title(ctx, raw); err == nil && title != "" {
			rec.Title = title
			return &rec, nil
		}
	}

	if slug := lastPathSegment(u.Path); slug != "" {
		rec.Title = slugTitle(slug)
	}
	if rec.Title == "" {
		rec.Title = domain
	}
	return &rec, nil
}

package extract

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/citeflow/citeflow/internal/citation"
	"github.com/citeflow/citeflow/internal/domains"
	"github.com/citeflow/citeflow/internal/provider"
)

// Newspaper derives article metadata from a news-site URL: publication
// from the domain table, headline from the slug, date from the path.
type Newspaper struct{}

// NewNewspaper creates the newspaper extractor.
func NewNewspaper() *Newspaper { return &Newspaper{} }

func (e *Newspaper) Name() string { return "newspaper-extract" }

var pathDate = regexp.MustCompile(`/(\d{4})/(\d{2})/(\d{2})/`)

// Search extracts article metadata from a newspaper URL.
func (e *Newspaper) Search(ctx context.Context, query string) (*citation.Record, error) {
	raw := strings.TrimSpace(query)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, provider.ErrNotFound
	}

	rec := citation.Record{
		Type:           citation.Newspaper,
		URL:            raw,
		Newspaper:      domains.NewspaperName(u.Host),
		AccessDate:     accessDate(),
		OriginProvider: e.Name(),
		RawQuery:       query,
	}

	if slug := lastPathSegment(u.Path); slug != "" {
		rec.Title = slugTitle(slug)
	}

	if m := pathDate.FindStringSubmatch(raw); m != nil {
		if t, err := time.Parse("2006/01/02", m[1]+"/"+m[2]+"/"+m[3]); err == nil {
			rec.Date = t.Format("January 2, 2006")
			rec.Year = m[1]
		}
	}

	if !rec.Resolvable() {
		return nil, provider.ErrNotFound
	}
	return &rec, nil
}

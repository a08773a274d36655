package extract

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/citeflow/citeflow/internal/citation"
	"github.com/citeflow/citeflow/internal/domains"
	"github.com/citeflow/citeflow/internal/provider"
)

// Government handles .gov URLs (agency from the domain table, title
// from the slug) and Federal Register references.
type Government struct{}

// NewGovernment creates the government document extractor.
func NewGovernment() *Government { return &Government{} }

func (e *Government) Name() string { return "government-extract" }

var frReference = regexp.MustCompile(`(?i)(\d+)\s+FR\s+(\d+)`)

// Search extracts government document metadata from a URL or gazette
// reference.
func (e *Government) Search(ctx context.Context, query string) (*citation.Record, error) {
	clean := strings.TrimRight(strings.TrimSpace(query), ".,;:)")

	rec := citation.Record{
		Type:           citation.Government,
		AccessDate:     accessDate(),
		OriginProvider: e.Name(),
		RawQuery:       query,
	}

	if strings.HasPrefix(clean, "http://") || strings.HasPrefix(clean, "https://") {
		u, err := url.Parse(clean)
		if err != nil || u.Host == "" {
			return nil, provider.ErrNotFound
		}
		rec.URL = clean
		rec.Agency = domains.GovAgency(u.Host)
		if slug := lastPathSegment(u.Path); slug != "" {
			rec.Title = slugTitle(slug)
		}
	} else {
		rec.Agency = "U.S. Government"
		if m := frReference.FindStringSubmatch(clean); m != nil {
			rec.Title = "Federal Register Vol. " + m[1] + ", Page " + m[2]
			rec.DocumentNumber = m[1] + " FR " + m[2]
		}
	}

	if !rec.Resolvable() {
		return nil, provider.ErrNotFound
	}
	return &rec, nil
}

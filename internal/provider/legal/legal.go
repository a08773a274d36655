package legal

import (
	"context"
	"strings"

	"github.com/citeflow/citeflow/internal/citation"
	"github.com/citeflow/citeflow/internal/provider"
)

// Composite chains the legal sources in cost order: the UK parser for
// neutral citations, the landmark cache, then CourtListener.
type Composite struct {
	uk            *UKCitations
	landmark      *Landmark
	courtListener *CourtListener
}

// NewComposite creates the combined legal provider.
func NewComposite(cl *CourtListener) *Composite {
	return &Composite{
		uk:            NewUKCitations(),
		landmark:      NewLandmark(),
		courtListener: cl,
	}
}

func (c *Composite) Name() string { return "legal" }

// Search tries each source in order and returns the first hit.
func (c *Composite) Search(ctx context.Context, query string) (*citation.Record, error) {
	if strings.Contains(query, "[") && strings.Contains(query, "]") {
		if rec, err := c.uk.Search(ctx, query); err == nil {
			return rec, nil
		}
	}
	if rec, err := c.landmark.Search(ctx, query); err == nil {
		return rec, nil
	}
	if c.courtListener == nil {
		return nil, provider.ErrNotFound
	}
	return c.courtListener.Search(ctx, query)
}

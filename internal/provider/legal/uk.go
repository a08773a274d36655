package legal

import (
	"context"
	"regexp"
	"strings"

	"github.com/citeflow/citeflow/internal/citation"
	"github.com/citeflow/citeflow/internal/provider"
)

// UKCitations parses UK neutral citations like "[2019] UKSC 41" or
// "[2022] EWHC 456 (QB)" directly from the query text. No network.
type UKCitations struct{}

// NewUKCitations creates the UK neutral-citation provider.
func NewUKCitations() *UKCitations { return &UKCitations{} }

func (u *UKCitations) Name() string { return "uk-citations" }

var neutralPattern = regexp.MustCompile(`\[(\d{4})\]\s+([A-Za-z]+(?:\s+[A-Za-z]+)?)\s+(\d+)(\s*\([A-Za-z]+\))?`)

// Search extracts a neutral citation from the query. The text before
// the bracket, if any, is taken as the case name.
func (u *UKCitations) Search(ctx context.Context, query string) (*citation.Record, error) {
	m := neutralPattern.FindStringSubmatch(query)
	if m == nil {
		return nil, provider.ErrNotFound
	}
	year, court, num, division := m[1], strings.ToUpper(m[2]), m[3], m[4]
	neutral := "[" + year + "] " + court + " " + num + division

	caseName := query
	if idx := strings.Index(query, "["); idx >= 0 {
		caseName = query[:idx]
	}
	caseName = strings.TrimRight(strings.TrimSpace(caseName), ",")
	if caseName == "" {
		caseName = "Unknown Case"
	}

	return &citation.Record{
		Type:           citation.Legal,
		CaseName:       caseName,
		Citation:       neutral,
		Year:           year,
		Court:          court,
		Jurisdiction:   "UK",
		OriginProvider: u.Name(),
		RawQuery:       query,
	}, nil
}

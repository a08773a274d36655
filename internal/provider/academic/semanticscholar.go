package academic

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/citeflow/citeflow/internal/citation"
	"github.com/citeflow/citeflow/internal/provider"
)

const s2BaseURL = "https://api.semanticscholar.org/graph/v1/paper"

// SemanticScholar searches the Semantic Scholar graph API. Its value
// over Crossref is author-aware ranking: for "Author Title" queries it
// rescores the top candidates by how well author names and title words
// overlap the query.
type SemanticScholar struct {
	http    *provider.HTTPClient
	baseURL string
}

// S2Option configures a SemanticScholar provider.
type S2Option func(*SemanticScholar)

// WithS2BaseURL overrides the API base URL (for testing).
func WithS2BaseURL(u string) S2Option {
	return func(s *SemanticScholar) { s.baseURL = u }
}

// WithS2APIKey sets the API key. Unauthenticated use works at a lower
// rate limit.
func WithS2APIKey(key string) S2Option {
	return func(s *SemanticScholar) {
		if key != "" {
			s.http = provider.NewHTTPClient(provider.WithHeader("x-api-key", key))
		}
	}
}

// WithS2HTTPClient sets a custom HTTP client.
func WithS2HTTPClient(hc *provider.HTTPClient) S2Option {
	return func(s *SemanticScholar) { s.http = hc }
}

// NewSemanticScholar creates a Semantic Scholar provider.
func NewSemanticScholar(opts ...S2Option) *SemanticScholar {
	s := &SemanticScholar{
		http:    provider.NewHTTPClient(),
		baseURL: s2BaseURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SemanticScholar) Name() string { return "semanticscholar" }

type s2SearchResponse struct {
	Total int       `json:"total"`
	Data  []s2Paper `json:"data"`
}

type s2Paper struct {
	PaperID string     `json:"paperId"`
	Title   string     `json:"title"`
	Authors []s2Author `json:"authors"`
}

type s2Author struct {
	Name string `json:"name"`
}

type s2Details struct {
	PaperID          string     `json:"paperId"`
	Title            string     `json:"title"`
	Authors          []s2Author `json:"authors"`
	Venue            string     `json:"venue"`
	PublicationVenue *struct {
		Name string `json:"name"`
	} `json:"publicationVenue"`
	Year        int    `json:"year"`
	Volume      string `json:"volume"`
	Issue       string `json:"issue"`
	Pages       string `json:"pages"`
	URL         string `json:"url"`
	ExternalIDs struct {
		DOI string `json:"DOI"`
	} `json:"externalIds"`
}

// Search fetches the top 5 candidates, rescores them against the query,
// and returns the full details of the winner.
func (s *SemanticScholar) Search(ctx context.Context, query string) (*citation.Record, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", "5")
	params.Set("fields", "paperId,title,authors")

	var resp s2SearchResponse
	if err := s.http.GetJSON(ctx, s.Name(), s.baseURL+"/search", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, provider.ErrNotFound
	}

	best := bestMatch(resp.Data, query)
	return s.fetchDetails(ctx, best.PaperID, query)
}

// titleStopWords are ignored in title-overlap scoring.
var titleStopWords = map[string]bool{
	"the": true, "a": true, "an": true, "of": true, "and": true,
	"in": true, "on": true, "for": true, "to": true,
}

// bestMatch scores candidates: +10 per author last name found in the
// query, +5 per first name, +2 per overlapping content word in the
// title.
func bestMatch(papers []s2Paper, query string) s2Paper {
	queryLower := strings.ToLower(query)
	queryWords := contentWords(queryLower)

	best := papers[0]
	bestScore := 0
	for _, paper := range papers {
		score := 0
		for _, author := range paper.Authors {
			parts := strings.Fields(strings.ToLower(author.Name))
			if len(parts) == 0 {
				continue
			}
			last := parts[len(parts)-1]
			if len(last) > 2 && strings.Contains(queryLower, last) {
				score += 10
			}
			if len(parts) > 1 {
				first := parts[0]
				if len(first) > 2 && strings.Contains(queryLower, first) {
					score += 5
				}
			}
		}
		for word := range contentWords(strings.ToLower(paper.Title)) {
			if queryWords[word] {
				score += 2
			}
		}
		if score > bestScore {
			bestScore = score
			best = paper
		}
	}
	return best
}

func contentWords(s string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		if !titleStopWords[w] {
			words[w] = true
		}
	}
	return words
}

func (s *SemanticScholar) fetchDetails(ctx context.Context, paperID, rawQuery string) (*citation.Record, error) {
	params := url.Values{}
	params.Set("fields", "title,authors,venue,publicationVenue,year,volume,issue,pages,externalIds,url")

	var details s2Details
	if err := s.http.GetJSON(ctx, s.Name(), s.baseURL+"/"+paperID, params, &details); err != nil {
		return nil, err
	}

	var authors []string
	for _, a := range details.Authors {
		if a.Name != "" {
			authors = append(authors, a.Name)
		}
	}

	venue := details.Venue
	if details.PublicationVenue != nil && details.PublicationVenue.Name != "" {
		venue = details.PublicationVenue.Name
	}

	recURL := details.URL
	if recURL == "" && details.ExternalIDs.DOI != "" {
		recURL = "https://doi.org/" + details.ExternalIDs.DOI
	}

	var year string
	if details.Year > 0 {
		year = strconv.Itoa(details.Year)
	}

	return &citation.Record{
		Type:           citation.Journal,
		Title:          details.Title,
		Authors:        authors,
		Year:           year,
		Journal:        venue,
		Volume:         details.Volume,
		Issue:          details.Issue,
		Pages:          details.Pages,
		DOI:            details.ExternalIDs.DOI,
		URL:            recURL,
		OriginProvider: s.Name(),
		RawQuery:       rawQuery,
	}, nil
}

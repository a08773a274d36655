package academic

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/citeflow/citeflow/internal/citation"
	"github.com/citeflow/citeflow/internal/provider"
)

const openAlexBaseURL = "https://api.openalex.org/works"

// OpenAlex searches the OpenAlex corpus. Broadest coverage, good for
// older publications and open-access content.
type OpenAlex struct {
	http    *provider.HTTPClient
	baseURL string
}

// OpenAlexOption configures an OpenAlex provider.
type OpenAlexOption func(*OpenAlex)

// WithOpenAlexBaseURL overrides the API base URL (for testing).
func WithOpenAlexBaseURL(u string) OpenAlexOption {
	return func(o *OpenAlex) { o.baseURL = u }
}

// WithOpenAlexHTTPClient sets a custom HTTP client.
func WithOpenAlexHTTPClient(hc *provider.HTTPClient) OpenAlexOption {
	return func(o *OpenAlex) { o.http = hc }
}

// NewOpenAlex creates an OpenAlex provider.
func NewOpenAlex(opts ...OpenAlexOption) *OpenAlex {
	o := &OpenAlex{
		http:    provider.NewHTTPClient(),
		baseURL: openAlexBaseURL,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *OpenAlex) Name() string { return "openalex" }

type openAlexResponse struct {
	Results []openAlexWork `json:"results"`
}

type openAlexWork struct {
	ID              string `json:"id"`
	DisplayName     string `json:"display_name"`
	PublicationYear int    `json:"publication_year"`
	DOI             string `json:"doi"`
	Authorships     []struct {
		Author struct {
			DisplayName string `json:"display_name"`
		} `json:"author"`
	} `json:"authorships"`
	PrimaryLocation *struct {
		Source *struct {
			DisplayName string `json:"display_name"`
		} `json:"source"`
	} `json:"primary_location"`
	Biblio struct {
		Volume    string `json:"volume"`
		Issue     string `json:"issue"`
		FirstPage string `json:"first_page"`
		LastPage  string `json:"last_page"`
	} `json:"biblio"`
}

// Search returns the single best match for query.
func (o *OpenAlex) Search(ctx context.Context, query string) (*citation.Record, error) {
	records, err := o.SearchAll(ctx, query, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, provider.ErrNotFound
	}
	return &records[0], nil
}

// SearchAll returns up to limit matches.
func (o *OpenAlex) SearchAll(ctx context.Context, query string, limit int) ([]citation.Record, error) {
	if limit <= 0 {
		limit = 5
	}
	params := url.Values{}
	params.Set("search", query)
	params.Set("per-page", strconv.Itoa(limit))

	var resp openAlexResponse
	if err := o.http.GetJSON(ctx, o.Name(), o.baseURL, params, &resp); err != nil {
		return nil, err
	}

	records := make([]citation.Record, 0, len(resp.Results))
	for _, work := range resp.Results {
		records = append(records, o.normalize(work, query))
	}
	return records, nil
}

func (o *OpenAlex) normalize(work openAlexWork, rawQuery string) citation.Record {
	var authors []string
	for _, a := range work.Authorships {
		if name := a.Author.DisplayName; name != "" {
			authors = append(authors, name)
		}
	}

	var journal string
	if work.PrimaryLocation != nil && work.PrimaryLocation.Source != nil {
		journal = work.PrimaryLocation.Source.DisplayName
	}

	doi := strings.TrimPrefix(work.DOI, "https://doi.org/")

	var year string
	if work.PublicationYear > 0 {
		year = strconv.Itoa(work.PublicationYear)
	}

	var pages string
	if work.Biblio.FirstPage != "" {
		pages = work.Biblio.FirstPage
		if work.Biblio.LastPage != "" {
			pages += "-" + work.Biblio.LastPage
		}
	}

	recURL := work.DOI
	if recURL == "" {
		recURL = work.ID
	}

	return citation.Record{
		Type:           citation.Journal,
		Title:          work.DisplayName,
		Authors:        authors,
		Year:           year,
		Journal:        journal,
		Volume:         work.Biblio.Volume,
		Issue:          work.Biblio.Issue,
		Pages:          pages,
		DOI:            doi,
		URL:            recURL,
		OriginProvider: o.Name(),
		RawQuery:       rawQuery,
	}
}

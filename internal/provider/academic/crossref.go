// Package academic implements the scholarly search providers: Crossref,
// OpenAlex, Semantic Scholar, and PubMed.
package academic

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/citeflow/citeflow/internal/citation"
	"github.com/citeflow/citeflow/internal/provider"
)

const crossrefBaseURL = "https://api.crossref.org/works"

// Crossref searches the official DOI registry. Best coverage for journal
// articles with DOIs and recent publications.
type Crossref struct {
	http    *provider.HTTPClient
	baseURL string
}

// CrossrefOption configures a Crossref provider.
type CrossrefOption func(*Crossref)

// WithCrossrefBaseURL overrides the API base URL (for testing).
func WithCrossrefBaseURL(u string) CrossrefOption {
	return func(c *Crossref) { c.baseURL = u }
}

// WithCrossrefHTTPClient sets a custom HTTP client.
func WithCrossrefHTTPClient(hc *provider.HTTPClient) CrossrefOption {
	return func(c *Crossref) { c.http = hc }
}

// NewCrossref creates a Crossref provider.
func NewCrossref(opts ...CrossrefOption) *Crossref {
	c := &Crossref{
		http:    provider.NewHTTPClient(),
		baseURL: crossrefBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Crossref) Name() string { return "crossref" }

type crossrefResponse struct {
	Message struct {
		Items []crossrefItem `json:"items"`
	} `json:"message"`
}

type crossrefItem struct {
	Title           []string         `json:"title"`
	Author          []crossrefAuthor `json:"author"`
	ContainerTitle  []string         `json:"container-title"`
	PublishedPrint  *crossrefDate    `json:"published-print"`
	PublishedOnline *crossrefDate    `json:"published-online"`
	Created         *crossrefDate    `json:"created"`
	Type            string           `json:"type"`
	Volume          string           `json:"volume"`
	Issue           string           `json:"issue"`
	Page            string           `json:"page"`
	DOI             string           `json:"DOI"`
	Publisher       string           `json:"publisher"`
}

type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

type crossrefDate struct {
	DateParts [][]int `json:"date-parts"`
}

func (d *crossrefDate) year() string {
	if d == nil || len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 {
		return ""
	}
	return strconv.Itoa(d.DateParts[0][0])
}

// Search returns the single best bibliographic match for query.
func (c *Crossref) Search(ctx context.Context, query string) (*citation.Record, error) {
	records, err := c.SearchAll(ctx, query, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, provider.ErrNotFound
	}
	return &records[0], nil
}

// SearchAll returns up to limit matches, relevance ordered.
func (c *Crossref) SearchAll(ctx context.Context, query string, limit int) ([]citation.Record, error) {
	if limit <= 0 {
		limit = 5
	}
	params := url.Values{}
	params.Set("query.bibliographic", query)
	params.Set("rows", strconv.Itoa(limit))

	var resp crossrefResponse
	if err := c.http.GetJSON(ctx, c.Name(), c.baseURL, params, &resp); err != nil {
		return nil, err
	}

	records := make([]citation.Record, 0, len(resp.Message.Items))
	for _, item := range resp.Message.Items {
		records = append(records, c.normalize(item, query))
	}
	return records, nil
}

// LookupID resolves a DOI directly.
func (c *Crossref) LookupID(ctx context.Context, doi string) (*citation.Record, error) {
	doi = citation.NormalizeDOI(doi)
	if doi == "" {
		return nil, fmt.Errorf("%w: not a DOI", provider.ErrNotFound)
	}

	var resp struct {
		Message crossrefItem `json:"message"`
	}
	if err := c.http.GetJSON(ctx, c.Name(), c.baseURL+"/"+doi, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Message.DOI == "" {
		return nil, provider.ErrNotFound
	}
	rec := c.normalize(resp.Message, doi)
	return &rec, nil
}

func (c *Crossref) normalize(item crossrefItem, rawQuery string) citation.Record {
	var authors []string
	for _, a := range item.Author {
		switch {
		case a.Given != "" && a.Family != "":
			authors = append(authors, a.Given+" "+a.Family)
		case a.Family != "":
			authors = append(authors, a.Family)
		}
	}

	year := item.PublishedPrint.year()
	if year == "" {
		year = item.PublishedOnline.year()
	}
	if year == "" {
		year = item.Created.year()
	}

	typ := citation.Journal
	switch item.Type {
	case "book", "monograph", "edited-book", "book-chapter", "book-section":
		typ = citation.Book
	}

	var title, journal string
	if len(item.Title) > 0 {
		title = item.Title[0]
	}
	if len(item.ContainerTitle) > 0 {
		journal = item.ContainerTitle[0]
	}

	rec := citation.Record{
		Type:           typ,
		Title:          title,
		Authors:        authors,
		Year:           year,
		Journal:        journal,
		Volume:         item.Volume,
		Issue:          item.Issue,
		Pages:          item.Page,
		DOI:            item.DOI,
		Publisher:      item.Publisher,
		OriginProvider: c.Name(),
		RawQuery:       rawQuery,
	}
	if item.DOI != "" {
		rec.URL = "https://doi.org/" + item.DOI
	}
	return rec
}

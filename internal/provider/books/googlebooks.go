// Package books implements the book search providers: Google Books and
// Open Library.
package books

import (
	"context"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/citeflow/citeflow/internal/citation"
	"github.com/citeflow/citeflow/internal/domains"
	"github.com/citeflow/citeflow/internal/provider"
)

const googleBooksBaseURL = "https://www.googleapis.com/books/v1/volumes"

// GoogleBooks searches the Google Books volumes API. Best source for
// publisher and edition metadata; also handles ISBN lookups via the
// "isbn:" query prefix.
type GoogleBooks struct {
	http    *provider.HTTPClient
	baseURL string
}

// GoogleBooksOption configures a GoogleBooks provider.
type GoogleBooksOption func(*GoogleBooks)

// WithGoogleBooksBaseURL overrides the API base URL (for testing).
func WithGoogleBooksBaseURL(u string) GoogleBooksOption {
	return func(g *GoogleBooks) { g.baseURL = u }
}

// WithGoogleBooksHTTPClient sets a custom HTTP client.
func WithGoogleBooksHTTPClient(hc *provider.HTTPClient) GoogleBooksOption {
	return func(g *GoogleBooks) { g.http = hc }
}

// NewGoogleBooks creates a Google Books provider.
func NewGoogleBooks(opts ...GoogleBooksOption) *GoogleBooks {
	g := &GoogleBooks{
		http:    provider.NewHTTPClient(),
		baseURL: googleBooksBaseURL,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *GoogleBooks) Name() string { return "googlebooks" }

type googleBooksResponse struct {
	Items []googleBooksItem `json:"items"`
}

type googleBooksItem struct {
	VolumeInfo struct {
		Title               string   `json:"title"`
		Subtitle            string   `json:"subtitle"`
		Authors             []string `json:"authors"`
		Publisher           string   `json:"publisher"`
		PublishedDate       string   `json:"publishedDate"`
		InfoLink            string   `json:"infoLink"`
		IndustryIdentifiers []struct {
			Type       string `json:"type"`
			Identifier string `json:"identifier"`
		} `json:"industryIdentifiers"`
	} `json:"volumeInfo"`
}

// Search returns the single best book match for query.
func (g *GoogleBooks) Search(ctx context.Context, query string) (*citation.Record, error) {
	records, err := g.SearchAll(ctx, query, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, provider.ErrNotFound
	}
	return &records[0], nil
}

// SearchAll returns up to limit book matches.
func (g *GoogleBooks) SearchAll(ctx context.Context, query string, limit int) ([]citation.Record, error) {
	if limit <= 0 {
		limit = 5
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(limit))
	params.Set("printType", "books")

	var resp googleBooksResponse
	if err := g.http.GetJSON(ctx, g.Name(), g.baseURL, params, &resp); err != nil {
		return nil, err
	}

	records := make([]citation.Record, 0, len(resp.Items))
	for _, item := range resp.Items {
		records = append(records, g.normalize(item, query))
	}
	return records, nil
}

var isbnClean = regexp.MustCompile(`[^0-9X]`)

// CleanISBN strips separators and lowercase from an ISBN string.
func CleanISBN(isbn string) string {
	return isbnClean.ReplaceAllString(strings.ToUpper(isbn), "")
}

// LookupID resolves an ISBN.
func (g *GoogleBooks) LookupID(ctx context.Context, isbn string) (*citation.Record, error) {
	isbn = CleanISBN(isbn)
	if isbn == "" {
		return nil, provider.ErrNotFound
	}
	return g.Search(ctx, "isbn:"+isbn)
}

func (g *GoogleBooks) normalize(item googleBooksItem, rawQuery string) citation.Record {
	info := item.VolumeInfo

	title := info.Title
	if info.Subtitle != "" {
		title += ": " + info.Subtitle
	}

	var year string
	if len(info.PublishedDate) >= 4 {
		year = info.PublishedDate[:4]
	}

	var isbn string
	for _, id := range info.IndustryIdentifiers {
		if id.Type == "ISBN_13" || id.Type == "ISBN_10" {
			isbn = id.Identifier
			break
		}
	}

	return citation.Record{
		Type:           citation.Book,
		Title:          title,
		Authors:        info.Authors,
		Year:           year,
		Publisher:      info.Publisher,
		Place:          domains.PublisherPlace(info.Publisher, ""),
		ISBN:           isbn,
		URL:            info.InfoLink,
		OriginProvider: g.Name(),
		RawQuery:       rawQuery,
	}
}

package books

import (
	"context"
	"net/url"
	"strconv"

	"github.com/citeflow/citeflow/internal/citation"
	"github.com/citeflow/citeflow/internal/domains"
	"github.com/citeflow/citeflow/internal/provider"
)

const openLibraryBaseURL = "https://openlibrary.org"

// OpenLibrary searches the Internet Archive's Open Library. Free, no
// key, and strongest for older and public-domain books.
type OpenLibrary struct {
	http    *provider.HTTPClient
	baseURL string
}

// OpenLibraryOption configures an OpenLibrary provider.
type OpenLibraryOption func(*OpenLibrary)

// WithOpenLibraryBaseURL overrides the API base URL (for testing).
func WithOpenLibraryBaseURL(u string) OpenLibraryOption {
	return func(o *OpenLibrary) { o.baseURL = u }
}

// WithOpenLibraryHTTPClient sets a custom HTTP client.
func WithOpenLibraryHTTPClient(hc *provider.HTTPClient) OpenLibraryOption {
	return func(o *OpenLibrary) { o.http = hc }
}

// NewOpenLibrary creates an Open Library provider.
func NewOpenLibrary(opts ...OpenLibraryOption) *OpenLibrary {
	o := &OpenLibrary{
		http:    provider.NewHTTPClient(),
		baseURL: openLibraryBaseURL,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *OpenLibrary) Name() string { return "openlibrary" }

type openLibraryDoc struct {
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	FirstPublishYear int      `json:"first_publish_year"`
	Publisher        []string `json:"publisher"`
	ISBN             []string `json:"isbn"`
}

// Search returns the single best book match for query.
func (o *OpenLibrary) Search(ctx context.Context, query string) (*citation.Record, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", "1")

	var resp struct {
		Docs []openLibraryDoc `json:"docs"`
	}
	if err := o.http.GetJSON(ctx, o.Name(), o.baseURL+"/search.json", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Docs) == 0 {
		return nil, provider.ErrNotFound
	}
	rec := o.normalize(resp.Docs[0], query)
	return &rec, nil
}

// LookupID resolves an ISBN via the edition endpoint, fetching author
// names through their referenced records.
func (o *OpenLibrary) LookupID(ctx context.Context, isbn string) (*citation.Record, error) {
	isbn = CleanISBN(isbn)
	if isbn == "" {
		return nil, provider.ErrNotFound
	}

	var edition struct {
		Title   string `json:"title"`
		Authors []struct {
			Key string `json:"key"`
		} `json:"authors"`
		Publishers  []string `json:"publishers"`
		PublishDate string   `json:"publish_date"`
	}
	if err := o.http.GetJSON(ctx, o.Name(), o.baseURL+"/isbn/"+isbn+".json", nil, &edition); err != nil {
		return nil, err
	}
	if edition.Title == "" {
		return nil, provider.ErrNotFound
	}

	var authors []string
	for _, ref := range edition.Authors {
		if ref.Key == "" {
			continue
		}
		var author struct {
			Name string `json:"name"`
		}
		if err := o.http.GetJSON(ctx, o.Name(), o.baseURL+ref.Key+".json", nil, &author); err != nil {
			continue
		}
		if author.Name != "" {
			authors = append(authors, author.Name)
		}
	}

	var publisher string
	if len(edition.Publishers) > 0 {
		publisher = edition.Publishers[0]
	}

	var year string
	if len(edition.PublishDate) >= 4 {
		year = edition.PublishDate[len(edition.PublishDate)-4:]
	}

	return &citation.Record{
		Type:           citation.Book,
		Title:          edition.Title,
		Authors:        authors,
		Year:           year,
		Publisher:      publisher,
		Place:          domains.PublisherPlace(publisher, ""),
		ISBN:           isbn,
		URL:            o.baseURL + "/isbn/" + isbn,
		OriginProvider: o.Name(),
		RawQuery:       "ISBN:" + isbn,
	}, nil
}

func (o *OpenLibrary) normalize(doc openLibraryDoc, rawQuery string) citation.Record {
	var publisher string
	if len(doc.Publisher) > 0 {
		publisher = doc.Publisher[0]
	}
	var isbn string
	if len(doc.ISBN) > 0 {
		isbn = doc.ISBN[0]
	}
	var year string
	if doc.FirstPublishYear > 0 {
		year = strconv.Itoa(doc.FirstPublishYear)
	}

	return citation.Record{
		Type:           citation.Book,
		Title:          doc.Title,
		Authors:        doc.AuthorName,
		Year:           year,
		Publisher:      publisher,
		Place:          domains.PublisherPlace(publisher, ""),
		ISBN:           isbn,
		OriginProvider: o.Name(),
		RawQuery:       rawQuery,
	}
}

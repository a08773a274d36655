package academic

import (
	"context"
	"encoding/json"
	"net/url"
	"regexp"
	"strings"

	"github.com/citeflow/citeflow/internal/citation"
	"github.com/citeflow/citeflow/internal/provider"
)

const pubmedBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// PubMed searches NCBI's biomedical literature index via the E-utilities
// two-step flow: ESearch resolves a query to a PMID, ESummary fetches
// the article record.
type PubMed struct {
	http    *provider.HTTPClient
	baseURL string
	apiKey  string
}

// PubMedOption configures a PubMed provider.
type PubMedOption func(*PubMed)

// WithPubMedBaseURL overrides the API base URL (for testing).
func WithPubMedBaseURL(u string) PubMedOption {
	return func(p *PubMed) { p.baseURL = u }
}

// WithPubMedAPIKey sets the NCBI API key, which raises the rate limit.
func WithPubMedAPIKey(key string) PubMedOption {
	return func(p *PubMed) { p.apiKey = key }
}

// WithPubMedHTTPClient sets a custom HTTP client.
func WithPubMedHTTPClient(hc *provider.HTTPClient) PubMedOption {
	return func(p *PubMed) { p.http = hc }
}

// NewPubMed creates a PubMed provider. NCBI allows 3 req/s without a
// key, so the client is throttled below the package default.
func NewPubMed(opts ...PubMedOption) *PubMed {
	p := &PubMed{
		http:    provider.NewHTTPClient(provider.WithRateLimit(3)),
		baseURL: pubmedBaseURL,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *PubMed) Name() string { return "pubmed" }

// Search resolves a query to its best PubMed article. An exact phrase
// search runs first; if it matches nothing the bare query is retried.
func (p *PubMed) Search(ctx context.Context, query string) (*citation.Record, error) {
	pmid, err := p.searchPMID(ctx, query)
	if err != nil {
		return nil, err
	}
	return p.fetchSummary(ctx, pmid, query)
}

var nonDigits = regexp.MustCompile(`\D`)

// LookupID resolves a PMID directly. Non-digit characters (e.g. a
// "PMID:" prefix) are stripped.
func (p *PubMed) LookupID(ctx context.Context, pmid string) (*citation.Record, error) {
	pmid = nonDigits.ReplaceAllString(pmid, "")
	if pmid == "" {
		return nil, provider.ErrNotFound
	}
	return p.fetchSummary(ctx, pmid, "PMID:"+pmid)
}

func (p *PubMed) searchPMID(ctx context.Context, query string) (string, error) {
	var lastErr error
	for _, term := range []string{`"` + query + `"`, query} {
		params := url.Values{}
		params.Set("db", "pubmed")
		params.Set("term", term)
		params.Set("retmode", "json")
		params.Set("retmax", "1")
		if p.apiKey != "" {
			params.Set("api_key", p.apiKey)
		}

		var resp struct {
			ESearchResult struct {
				IDList []string `json:"idlist"`
			} `json:"esearchresult"`
		}
		if err := p.http.GetJSON(ctx, p.Name(), p.baseURL+"/esearch.fcgi", params, &resp); err != nil {
			lastErr = err
			continue
		}
		if len(resp.ESearchResult.IDList) > 0 {
			return resp.ESearchResult.IDList[0], nil
		}
	}
	if lastErr != nil {
		return "", lastErr
	}
	return "", provider.ErrNotFound
}

type pubmedArticle struct {
	Title           string `json:"title"`
	PubDate         string `json:"pubdate"`
	Source          string `json:"source"`
	FullJournalName string `json:"fulljournalname"`
	Volume          string `json:"volume"`
	Issue           string `json:"issue"`
	Pages           string `json:"pages"`
	Authors         []struct {
		Name string `json:"name"`
	} `json:"authors"`
	ArticleIDs []struct {
		IDType string `json:"idtype"`
		Value  string `json:"value"`
	} `json:"articleids"`
	Error string `json:"error"`
}

var yearLead = regexp.MustCompile(`^(\d{4})`)

func (p *PubMed) fetchSummary(ctx context.Context, pmid, rawQuery string) (*citation.Record, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("id", pmid)
	params.Set("retmode", "json")
	if p.apiKey != "" {
		params.Set("api_key", p.apiKey)
	}

	// ESummary keys each article by its PMID inside "result".
	var resp struct {
		Result map[string]json.RawMessage `json:"result"`
	}
	if err := p.http.GetJSON(ctx, p.Name(), p.baseURL+"/esummary.fcgi", params, &resp); err != nil {
		return nil, err
	}

	raw, ok := resp.Result[pmid]
	if !ok {
		return nil, provider.ErrNotFound
	}
	var article pubmedArticle
	if err := json.Unmarshal(raw, &article); err != nil {
		return nil, provider.ErrInvalidResponse
	}
	if article.Error != "" || article.Title == "" {
		return nil, provider.ErrNotFound
	}

	var authors []string
	for _, a := range article.Authors {
		if a.Name != "" {
			authors = append(authors, a.Name)
		}
	}

	var year string
	if m := yearLead.FindStringSubmatch(article.PubDate); m != nil {
		year = m[1]
	}

	var doi string
	for _, id := range article.ArticleIDs {
		if id.IDType == "doi" {
			doi = id.Value
			break
		}
	}

	journal := article.FullJournalName
	if journal == "" {
		journal = article.Source
	}

	return &citation.Record{
		Type:           citation.Medical,
		Title:          strings.TrimSuffix(article.Title, "."),
		Authors:        authors,
		Year:           year,
		Journal:        journal,
		Volume:         article.Volume,
		Issue:          article.Issue,
		Pages:          article.Pages,
		DOI:            doi,
		PMID:           pmid,
		URL:            "https://pubmed.ncbi.nlm.nih.gov/" + pmid + "/",
		OriginProvider: p.Name(),
		RawQuery:       rawQuery,
	}, nil
}

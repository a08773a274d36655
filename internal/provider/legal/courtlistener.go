package legal

import (
	"context"
	"encoding/json"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/citeflow/citeflow/internal/citation"
	"github.com/citeflow/citeflow/internal/provider"
)

const courtListenerBaseURL = "https://www.courtlistener.com/api/rest/v3/search/"

// CourtListener searches the Free Law Project's case-law index. Free
// text recall on case names is poor, so each query expands into an
// ordered attempt list, cheapest and most specific first:
//
//  1. exact phrase
//  2. keywords with "v." and punctuation stripped
//  3. fuzzy terms (term~)
//  4. plaintiff name only, if one is extractable and not generic
//
// The first attempt yielding a usable record wins; an attempt that
// fails or returns nothing just advances to the next.
type CourtListener struct {
	http           *provider.HTTPClient
	baseURL        string
	attemptTimeout time.Duration
}

// CourtListenerOption configures a CourtListener provider.
type CourtListenerOption func(*CourtListener)

// WithCourtListenerBaseURL overrides the API base URL (for testing).
func WithCourtListenerBaseURL(u string) CourtListenerOption {
	return func(c *CourtListener) { c.baseURL = u }
}

// WithCourtListenerAPIKey sets the API token.
func WithCourtListenerAPIKey(key string) CourtListenerOption {
	return func(c *CourtListener) {
		if key != "" {
			c.http = provider.NewHTTPClient(provider.WithHeader("Authorization", "Token "+key))
		}
	}
}

// WithCourtListenerHTTPClient sets a custom HTTP client.
func WithCourtListenerHTTPClient(hc *provider.HTTPClient) CourtListenerOption {
	return func(c *CourtListener) { c.http = hc }
}

// WithAttemptTimeout bounds each individual search attempt. A slow
// attempt burns only its own budget, not the later attempts'.
func WithAttemptTimeout(d time.Duration) CourtListenerOption {
	return func(c *CourtListener) { c.attemptTimeout = d }
}

// NewCourtListener creates a CourtListener provider.
func NewCourtListener(opts ...CourtListenerOption) *CourtListener {
	c := &CourtListener{
		http:           provider.NewHTTPClient(),
		baseURL:        courtListenerBaseURL,
		attemptTimeout: 8 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *CourtListener) Name() string { return "courtlistener" }

type searchAttempt struct {
	name string
	q    string
	// matchPlaintiff, when set, requires the result's case name to
	// contain this party (guards the broad plaintiff-only attempt).
	matchPlaintiff string
}

// genericParties are plaintiff names too common to search alone.
var genericParties = map[string]bool{
	"state": true, "people": true, "united": true, "states": true,
	"board": true, "city": true, "county": true, "in re": true,
}

var (
	versusToken = regexp.MustCompile(`(?i)\s+v\.?\s+`)
	nonWord     = regexp.MustCompile(`[^\w\s]`)
)

// searchAttempts builds the ordered attempt plan for a query.
func searchAttempts(query string) []searchAttempt {
	keyword := cleanQuery(query)
	attempts := []searchAttempt{
		{name: "phrase", q: `"` + query + `"`},
		{name: "keyword", q: keyword},
		{name: "fuzzy", q: makeFuzzy(keyword)},
	}
	if plaintiff, _, ok := extractParties(query); ok &&
		len(plaintiff) > 4 && !genericParties[strings.ToLower(plaintiff)] {
		attempts = append(attempts, searchAttempt{
			name:           "plaintiff",
			q:              plaintiff,
			matchPlaintiff: strings.ToLower(plaintiff),
		})
	}
	return attempts
}

// cleanQuery removes the "v." connector and punctuation.
func cleanQuery(query string) string {
	clean := versusToken.ReplaceAllString(query, " ")
	clean = nonWord.ReplaceAllString(clean, "")
	return strings.TrimSpace(clean)
}

// makeFuzzy appends the Lucene fuzzy operator to content words.
func makeFuzzy(query string) string {
	terms := strings.Fields(query)
	for i, t := range terms {
		if len(t) > 3 && !isDigits(t) {
			terms[i] = t + "~"
		}
	}
	return strings.Join(terms, " ")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// extractParties splits an "A v. B" query into its parties.
func extractParties(query string) (plaintiff, defendant string, ok bool) {
	parts := versusToken.Split(query, 2)
	if len(parts) < 2 {
		return "", "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}

type courtListenerResult struct {
	CaseName    string          `json:"caseName"`
	DateFiled   string          `json:"dateFiled"`
	Citation    json.RawMessage `json:"citation"`
	Court       string          `json:"court"`
	AbsoluteURL string          `json:"absolute_url"`
}

// Search runs the attempt plan and returns the first usable case.
func (c *CourtListener) Search(ctx context.Context, query string) (*citation.Record, error) {
	for _, attempt := range searchAttempts(query) {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		rec, err := c.try(ctx, attempt, query)
		if err != nil {
			continue
		}
		if rec != nil && rec.Resolvable() {
			return rec, nil
		}
	}
	return nil, provider.ErrNotFound
}

func (c *CourtListener) try(ctx context.Context, attempt searchAttempt, rawQuery string) (*citation.Record, error) {
	if c.attemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.attemptTimeout)
		defer cancel()
	}
	params := url.Values{}
	params.Set("q", attempt.q)
	params.Set("type", "o")
	params.Set("order_by", "score desc")
	params.Set("format", "json")

	var resp struct {
		Results []courtListenerResult `json:"results"`
	}
	if err := c.http.GetJSON(ctx, c.Name(), c.baseURL, params, &resp); err != nil {
		return nil, err
	}

	limit := len(resp.Results)
	if limit > 10 {
		limit = 10
	}
	for _, result := range resp.Results[:limit] {
		if result.CaseName == "" {
			continue
		}
		if attempt.matchPlaintiff != "" &&
			!strings.Contains(strings.ToLower(result.CaseName), attempt.matchPlaintiff) {
			continue
		}
		return c.normalize(result, rawQuery), nil
	}
	return nil, provider.ErrNotFound
}

var dateYear = regexp.MustCompile(`^(\d{4})`)

func (c *CourtListener) normalize(result courtListenerResult, rawQuery string) *citation.Record {
	var year string
	if m := dateYear.FindStringSubmatch(result.DateFiled); m != nil {
		year = m[1]
	}

	// The citation field is a string in some API versions, a list in
	// others.
	var cite string
	if len(result.Citation) > 0 {
		var many []string
		if err := json.Unmarshal(result.Citation, &many); err == nil {
			if len(many) > 0 {
				cite = many[0]
			}
		} else {
			_ = json.Unmarshal(result.Citation, &cite)
		}
	}

	var recURL string
	if result.AbsoluteURL != "" {
		recURL = "https://www.courtlistener.com" + result.AbsoluteURL
	}

	return &citation.Record{
		Type:           citation.Legal,
		CaseName:       result.CaseName,
		Citation:       cite,
		Year:           year,
		Court:          result.Court,
		Jurisdiction:   "US",
		URL:            recURL,
		OriginProvider: c.Name(),
		RawQuery:       rawQuery,
	}
}

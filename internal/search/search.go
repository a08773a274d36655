// Package search routes a classified citation query to the providers
// responsible for its source type and merges their results.
package search

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/citeflow/citeflow/internal/citation"
	"github.com/citeflow/citeflow/internal/classify"
	"github.com/citeflow/citeflow/internal/provider"
)

// DefaultProviderTimeout bounds a single provider call.
const DefaultProviderTimeout = 12 * time.Second

// Binding is one entry in a source type's provider chain.
type Binding struct {
	// Provider is the registry name of the provider to call.
	Provider string
	// Cap limits how many records a multi-result provider may
	// contribute. Ignored for single-result providers.
	Cap int
	// Single marks providers that return at most one record.
	Single bool
}

// routes maps each source type to its provider chain, in invocation
// order. Routing is exclusive on purpose: legal queries never reach
// academic or book providers (which would return commentary about a
// case rather than the case itself), book queries never reach journal
// providers, and journal/unknown queries never reach book providers.
var routes = map[citation.SourceType][]Binding{
	citation.Journal: {
		{Provider: "crossref", Cap: 2},
		{Provider: "openalex", Cap: 2},
		{Provider: "semanticscholar", Cap: 2},
	},
	citation.Unknown: {
		{Provider: "crossref", Cap: 2},
		{Provider: "openalex", Cap: 2},
		{Provider: "semanticscholar", Cap: 2},
	},
	citation.Medical: {
		{Provider: "pubmed", Cap: 3},
		{Provider: "crossref", Cap: 3},
	},
	citation.Book: {
		{Provider: "googlebooks", Cap: 3},
		{Provider: "openlibrary", Cap: 3},
	},
	citation.Legal: {
		{Provider: "legal", Single: true},
	},
	citation.Interview: {
		{Provider: "interview-extract", Single: true},
	},
	citation.Newspaper: {
		{Provider: "newspaper-extract", Single: true},
	},
	citation.Government: {
		{Provider: "government-extract", Single: true},
	},
	citation.URL: {
		{Provider: "url-extract", Single: true},
	},
}

// Routes returns the provider chain for a source type. Types without an
// entry fall back to the Unknown chain.
func Routes(t citation.SourceType) []Binding {
	if chain, ok := routes[t]; ok {
		return chain
	}
	return routes[citation.Unknown]
}

// Orchestrator runs the per-type provider chains. Provider calls within
// one Search are strictly sequential so that chain order stays
// predictable; fan-out is deliberately avoided.
type Orchestrator struct {
	registry *provider.Registry
	timeout  time.Duration
	logger   *log.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithProviderTimeout overrides the per-provider call timeout.
func WithProviderTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithLogger sets the logger for provider failures.
func WithLogger(l *log.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// New creates an Orchestrator over the given provider registry.
func New(registry *provider.Registry, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		registry: registry,
		timeout:  DefaultProviderTimeout,
		logger:   log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Search invokes the provider chain for the classified query and
// returns up to maxResults unique records. A provider error or timeout
// counts as zero results from that provider; the chain continues.
// Records deduplicate on lowercased title (case name for legal),
// earlier providers winning ties.
func (o *Orchestrator) Search(ctx context.Context, res classify.Result, maxResults int) []citation.Record {
	if maxResults <= 0 {
		maxResults = 5
	}

	// A query carrying a DOI (bare, or embedded in a publisher URL like
	// journals.uchicago.edu/doi/10.1086/737056) resolves directly via
	// Crossref instead of free-text search. A failed lookup falls back
	// to the normal chain.
	if doi := citation.ExtractDOI(res.Query); doi != "" {
		if rec := o.lookupDOI(ctx, doi); rec != nil {
			return []citation.Record{*rec}
		}
	}

	var out []citation.Record
	seen := make(map[string]bool)

	for _, b := range Routes(res.Type) {
		if len(out) >= maxResults {
			break
		}
		p, ok := o.registry.Get(b.Provider)
		if !ok {
			continue
		}

		records, err := o.call(ctx, p, b, res.Query)
		if err != nil {
			if !provider.IsNotFound(err) {
				o.logger.Printf("search: provider %s: %v", b.Provider, err)
			}
			continue
		}

		for _, rec := range records {
			if len(out) >= maxResults {
				break
			}
			if !rec.Resolvable() {
				continue
			}
			key := rec.DedupKey()
			if key != "" && seen[key] {
				continue
			}
			if key != "" {
				seen[key] = true
			}
			out = append(out, rec)
		}
	}
	return out
}

// SearchOne returns the single best record for the classified query:
// the first record of the chain, or false if every provider came up
// empty.
func (o *Orchestrator) SearchOne(ctx context.Context, res classify.Result) (*citation.Record, bool) {
	results := o.Search(ctx, res, 1)
	if len(results) == 0 {
		return nil, false
	}
	return &results[0], true
}

// lookupDOI fetches a record by DOI through the crossref provider when
// it is registered and can resolve identifiers. Returns nil when the
// lookup fails or yields an unusable record.
func (o *Orchestrator) lookupDOI(ctx context.Context, doi string) *citation.Record {
	p, ok := o.registry.Get("crossref")
	if !ok {
		return nil
	}
	lookup, ok := p.(provider.IDLookup)
	if !ok {
		return nil
	}

	cctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	rec, err := lookup.LookupID(cctx, doi)
	if err != nil {
		if !provider.IsNotFound(err) {
			o.logger.Printf("search: doi lookup %s: %v", doi, err)
		}
		return nil
	}
	if rec == nil || !rec.Resolvable() {
		return nil
	}
	return rec
}

// call invokes one provider with its own timeout. Multi-result
// providers are used when the binding allows more than one record.
func (o *Orchestrator) call(ctx context.Context, p provider.Searcher, b Binding, query string) ([]citation.Record, error) {
	cctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	if ms, ok := p.(provider.MultiSearcher); ok && !b.Single && b.Cap > 1 {
		return ms.SearchAll(cctx, query, b.Cap)
	}
	rec, err := p.Search(cctx, query)
	if err != nil {
		return nil, err
	}
	return []citation.Record{*rec}, nil
}

// Package provider defines the interfaces bibliographic search backends
// implement, plus the registry and shared HTTP plumbing they are built
// on. Concrete providers live in the academic, books, and legal
// subpackages and in internal/extract.
package provider

import (
	"context"
	"sort"

	"github.com/citeflow/citeflow/internal/citation"
)

// Searcher is the minimal provider capability: resolve a free-text query
// to the single best metadata record. Implementations return ErrNotFound
// (or a wrapped form of it) when the query yields nothing.
type Searcher interface {
	// Name identifies the provider in routing tables, provenance
	// fields, and logs.
	Name() string

	Search(ctx context.Context, query string) (*citation.Record, error)
}

// MultiSearcher is an optional capability for providers that can return
// several candidate records per query. The orchestrator type-asserts
// for it and falls back to single-result Search when absent.
type MultiSearcher interface {
	Searcher

	SearchAll(ctx context.Context, query string, limit int) ([]citation.Record, error)
}

// IDLookup is an optional capability for providers that resolve a
// strong identifier (DOI, ISBN, PMID) directly.
type IDLookup interface {
	LookupID(ctx context.Context, id string) (*citation.Record, error)
}

// Registry holds the provider set for one resolver instance. It is
// built explicitly at startup and injected wherever providers are
// needed; there is no package-level global. Construction-time writes
// only: a Registry is read-only once handed to the orchestrator.
type Registry struct {
	providers map[string]Searcher
}

// NewRegistry returns a Registry containing the given providers.
func NewRegistry(providers ...Searcher) *Registry {
	r := &Registry{providers: make(map[string]Searcher, len(providers))}
	for _, p := range providers {
		r.Register(p)
	}
	return r
}

// Register adds a provider, replacing any previous provider of the same
// name.
func (r *Registry) Register(p Searcher) {
	r.providers[p.Name()] = p
}

// Get returns the named provider and whether it is registered.
func (r *Registry) Get(name string) (Searcher, bool) {
	p, ok := r.providers[name]
	return p, ok
}

// Names returns the registered provider names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

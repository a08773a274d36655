package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/citeflow/citeflow/internal/citation"
	"github.com/citeflow/citeflow/internal/classify"
	"github.com/citeflow/citeflow/internal/provider"
)

type fakeSearcher struct {
	name    string
	records []citation.Record
	err     error
	calls   int
	delay   time.Duration
}

func (f *fakeSearcher) Name() string { return f.name }

func (f *fakeSearcher) Search(ctx context.Context, query string) (*citation.Record, error) {
	f.calls++
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	if len(f.records) == 0 {
		return nil, provider.ErrNotFound
	}
	return &f.records[0], nil
}

func (f *fakeSearcher) SearchAll(ctx context.Context, query string, limit int) ([]citation.Record, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if limit > len(f.records) {
		limit = len(f.records)
	}
	return f.records[:limit], nil
}

func journalRec(title string) citation.Record {
	return citation.Record{Type: citation.Journal, Title: title}
}

func TestSearchChainOrderAndDedup(t *testing.T) {
	crossref := &fakeSearcher{name: "crossref", records: []citation.Record{
		journalRec("The Structure of Scientific Revolutions"),
		journalRec("A Second Paper"),
	}}
	openalex := &fakeSearcher{name: "openalex", records: []citation.Record{
		journalRec("The Structure of Scientific Revolutions"), // dup of crossref's
		journalRec("A Third Paper"),
	}}
	s2 := &fakeSearcher{name: "semanticscholar"}

	o := New(provider.NewRegistry(crossref, openalex, s2))
	got := o.Search(context.Background(), classify.Result{Type: citation.Journal, Query: "scientific revolutions"}, 5)

	if len(got) != 3 {
		t.Fatalf("got %d records, want 3 (duplicate dropped)", len(got))
	}
	if got[0].Title != "The Structure of Scientific Revolutions" || got[2].Title != "A Third Paper" {
		t.Errorf("unexpected order: %q, %q, %q", got[0].Title, got[1].Title, got[2].Title)
	}
}

func TestSearchStopsAtMaxResults(t *testing.T) {
	crossref := &fakeSearcher{name: "crossref", records: []citation.Record{
		journalRec("One"), journalRec("Two"),
	}}
	openalex := &fakeSearcher{name: "openalex", records: []citation.Record{journalRec("Three")}}

	o := New(provider.NewRegistry(crossref, openalex))
	got := o.Search(context.Background(), classify.Result{Type: citation.Journal, Query: "q"}, 2)

	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if openalex.calls != 0 {
		t.Errorf("openalex called %d times after max reached, want 0", openalex.calls)
	}
}

func TestSearchProviderErrorContinuesChain(t *testing.T) {
	crossref := &fakeSearcher{name: "crossref", err: errors.New("boom")}
	openalex := &fakeSearcher{name: "openalex", records: []citation.Record{journalRec("Survivor")}}

	o := New(provider.NewRegistry(crossref, openalex))
	got := o.Search(context.Background(), classify.Result{Type: citation.Journal, Query: "q"}, 5)

	if len(got) != 1 || got[0].Title != "Survivor" {
		t.Fatalf("got %v, want the second provider's record", got)
	}
}

func TestSearchProviderTimeoutContinuesChain(t *testing.T) {
	slow := &fakeSearcher{name: "legal", delay: time.Second, records: []citation.Record{
		{Type: citation.Legal, CaseName: "Slow v. Fast"},
	}}
	o := New(provider.NewRegistry(slow), WithProviderTimeout(10*time.Millisecond))

	got := o.Search(context.Background(), classify.Result{Type: citation.Legal, Query: "slow v fast"}, 5)
	if len(got) != 0 {
		t.Fatalf("got %d records from a timed-out provider, want 0", len(got))
	}
}

func TestLegalNeverReachesAcademicProviders(t *testing.T) {
	crossref := &fakeSearcher{name: "crossref", records: []citation.Record{journalRec("Commentary on Roe")}}
	books := &fakeSearcher{name: "googlebooks", records: []citation.Record{journalRec("A Book About Roe")}}
	legal := &fakeSearcher{name: "legal", records: []citation.Record{
		{Type: citation.Legal, CaseName: "Roe v. Wade", Citation: "410 U.S. 113"},
	}}

	o := New(provider.NewRegistry(crossref, books, legal))
	got := o.Search(context.Background(), classify.Result{Type: citation.Legal, Query: "Roe v. Wade"}, 5)

	if len(got) != 1 || got[0].CaseName != "Roe v. Wade" {
		t.Fatalf("got %v, want only the legal record", got)
	}
	if crossref.calls != 0 || books.calls != 0 {
		t.Errorf("academic/book providers called (%d, %d), want 0", crossref.calls, books.calls)
	}
}

func TestJournalExcludesBookProviders(t *testing.T) {
	for _, typ := range []citation.SourceType{citation.Journal, citation.Unknown} {
		books := &fakeSearcher{name: "googlebooks", records: []citation.Record{journalRec("Irrelevant")}}
		crossref := &fakeSearcher{name: "crossref", records: []citation.Record{journalRec("Paper")}}

		o := New(provider.NewRegistry(books, crossref))
		o.Search(context.Background(), classify.Result{Type: typ, Query: "q"}, 5)

		if books.calls != 0 {
			t.Errorf("%v: book provider called %d times, want 0", typ, books.calls)
		}
	}
}

func TestBookRoutesToBookProvidersOnly(t *testing.T) {
	crossref := &fakeSearcher{name: "crossref", records: []citation.Record{journalRec("Paper")}}
	books := &fakeSearcher{name: "googlebooks", records: []citation.Record{
		{Type: citation.Book, Title: "The Big Book"},
	}}

	o := New(provider.NewRegistry(crossref, books))
	got := o.Search(context.Background(), classify.Result{Type: citation.Book, Query: "big book"}, 5)

	if len(got) != 1 || got[0].Title != "The Big Book" {
		t.Fatalf("got %v, want only the book record", got)
	}
	if crossref.calls != 0 {
		t.Errorf("crossref called %d times for a book query, want 0", crossref.calls)
	}
}

func TestSearchSkipsUnresolvableRecords(t *testing.T) {
	crossref := &fakeSearcher{name: "crossref", records: []citation.Record{
		{Type: citation.Journal}, // no title
		journalRec("Good Paper"),
	}}
	o := New(provider.NewRegistry(crossref))
	got := o.Search(context.Background(), classify.Result{Type: citation.Journal, Query: "q"}, 5)

	if len(got) != 1 || got[0].Title != "Good Paper" {
		t.Fatalf("got %v, want only the resolvable record", got)
	}
}

func TestSearchOne(t *testing.T) {
	o := New(provider.NewRegistry(&fakeSearcher{name: "crossref"}))
	if _, ok := o.SearchOne(context.Background(), classify.Result{Type: citation.Journal, Query: "q"}); ok {
		t.Error("SearchOne() = ok with no results, want absent")
	}

	o = New(provider.NewRegistry(&fakeSearcher{name: "crossref", records: []citation.Record{journalRec("Hit")}}))
	rec, ok := o.SearchOne(context.Background(), classify.Result{Type: citation.Journal, Query: "q"})
	if !ok || rec.Title != "Hit" {
		t.Fatalf("SearchOne() = %v, %v", rec, ok)
	}
}

type fakeLookup struct {
	fakeSearcher
	lookupRec   *citation.Record
	lookupErr   error
	lookupCalls int
	lastID      string
}

func (f *fakeLookup) LookupID(ctx context.Context, id string) (*citation.Record, error) {
	f.lookupCalls++
	f.lastID = id
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	return f.lookupRec, nil
}

func TestSearchDOIFastPath(t *testing.T) {
	looked := journalRec("Resolved by DOI")
	crossref := &fakeLookup{
		fakeSearcher: fakeSearcher{name: "crossref", records: []citation.Record{journalRec("Free-Text Hit")}},
		lookupRec:    &looked,
	}
	openalex := &fakeSearcher{name: "openalex", records: []citation.Record{journalRec("Also Irrelevant")}}
	o := New(provider.NewRegistry(crossref, openalex))

	queries := []string{
		"https://www.journals.uchicago.edu/doi/10.1086/737056",
		"Kuhn paradigm shifts 10.1086/737056",
	}
	for _, q := range queries {
		crossref.calls, crossref.lookupCalls, openalex.calls = 0, 0, 0

		got := o.Search(context.Background(), classify.Result{Type: citation.Journal, Query: q}, 5)
		if len(got) != 1 || got[0].Title != "Resolved by DOI" {
			t.Fatalf("%q: got %v, want the looked-up record only", q, got)
		}
		if crossref.lastID != "10.1086/737056" {
			t.Errorf("%q: looked up %q", q, crossref.lastID)
		}
		if crossref.calls != 0 || openalex.calls != 0 {
			t.Errorf("%q: free-text providers called (%d, %d) despite DOI hit", q, crossref.calls, openalex.calls)
		}
	}
}

func TestSearchDOILookupFailureFallsBack(t *testing.T) {
	crossref := &fakeLookup{
		fakeSearcher: fakeSearcher{name: "crossref", records: []citation.Record{journalRec("Free-Text Hit")}},
		lookupErr:    provider.ErrNotFound,
	}
	o := New(provider.NewRegistry(crossref))

	got := o.Search(context.Background(), classify.Result{Type: citation.Journal, Query: "obscure paper 10.9999/gone"}, 5)
	if crossref.lookupCalls != 1 {
		t.Errorf("lookup called %d times, want 1", crossref.lookupCalls)
	}
	if len(got) != 1 || got[0].Title != "Free-Text Hit" {
		t.Fatalf("got %v, want fallback to the free-text chain", got)
	}
}

func TestSearchDOIUnresolvableLookupFallsBack(t *testing.T) {
	crossref := &fakeLookup{
		fakeSearcher: fakeSearcher{name: "crossref", records: []citation.Record{journalRec("Free-Text Hit")}},
		lookupRec:    &citation.Record{Type: citation.Journal}, // no title
	}
	o := New(provider.NewRegistry(crossref))

	got := o.Search(context.Background(), classify.Result{Type: citation.Journal, Query: "10.1000/empty"}, 5)
	if len(got) != 1 || got[0].Title != "Free-Text Hit" {
		t.Fatalf("got %v, want fallback past the unusable lookup record", got)
	}
}

func TestUnregisteredProviderSkipped(t *testing.T) {
	// Chain lists crossref first; only openalex registered.
	openalex := &fakeSearcher{name: "openalex", records: []citation.Record{journalRec("Present")}}
	o := New(provider.NewRegistry(openalex))
	got := o.Search(context.Background(), classify.Result{Type: citation.Journal, Query: "q"}, 5)

	if len(got) != 1 || got[0].Title != "Present" {
		t.Fatalf("got %v, want the registered provider's record", got)
	}
}

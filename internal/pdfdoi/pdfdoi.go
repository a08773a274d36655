// Package pdfdoi resolves a PDF file to a citation by scanning its
// opening pages for a DOI, falling back to a title search.
package pdfdoi

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/citeflow/citeflow/internal/citation"
	"github.com/citeflow/citeflow/internal/provider"
)

// DOI pattern: 10.XXXX/... where XXXX is 4+ digits
var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

// ExtractDOI searches the first few pages of a PDF for a DOI. An
// absent DOI is not an error; the result is simply empty.
func ExtractDOI(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	// The DOI is almost always on the first page.
	maxPages := 3
	if r.NumPage() < maxPages {
		maxPages = r.NumPage()
	}

	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if doi := FindDOI(text); doi != "" {
			return doi, nil
		}
	}
	return "", nil
}

// ExtractTitle guesses the title from the first page: the first
// substantial line that doesn't look like a running header.
func ExtractTitle(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	if r.NumPage() < 1 {
		return "", nil
	}
	page := r.Page(1)
	if page.V.IsNull() {
		return "", nil
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 20 && !isHeaderLine(line) {
			return line, nil
		}
	}
	return "", nil
}

// FindDOI returns the first valid DOI in text.
func FindDOI(text string) string {
	for _, match := range doiPattern.FindAllString(text, -1) {
		match = strings.TrimRight(match, ".,;:)")
		if isValidDOI(match) {
			return match
		}
	}
	return ""
}

func isValidDOI(doi string) bool {
	if len(doi) < 10 || !strings.HasPrefix(doi, "10.") {
		return false
	}
	slash := strings.Index(doi, "/")
	return slash != -1 && slash < len(doi)-1
}

func isHeaderLine(line string) bool {
	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "journal"):
		return true
	case strings.Contains(lower, "volume") && strings.Contains(lower, "issue"):
		return true
	case strings.Contains(lower, "copyright"):
		return true
	case strings.Contains(lower, "article") && strings.Contains(lower, "published"):
		return true
	}
	return false
}

// Resolver turns a PDF into a citation record via a DOI lookup
// provider (typically Crossref), with a title search as fallback.
type Resolver struct {
	lookup   provider.IDLookup
	searcher provider.Searcher
}

// NewResolver creates a Resolver. searcher may be nil to disable the
// title fallback.
func NewResolver(lookup provider.IDLookup, searcher provider.Searcher) *Resolver {
	return &Resolver{lookup: lookup, searcher: searcher}
}

// Resolve extracts identity from the PDF at path and resolves it to a
// full record.
func (r *Resolver) Resolve(ctx context.Context, path string) (*citation.Record, error) {
	doi, err := ExtractDOI(path)
	if err != nil {
		return nil, err
	}
	if doi != "" {
		rec, err := r.lookup.LookupID(ctx, doi)
		if err == nil {
			return rec, nil
		}
		if !provider.IsNotFound(err) {
			return nil, err
		}
	}

	if r.searcher == nil {
		return nil, provider.ErrNotFound
	}
	title, err := ExtractTitle(path)
	if err != nil || title == "" {
		return nil, provider.ErrNotFound
	}
	return r.searcher.Search(ctx, title)
}

// Package citation defines the core domain types for resolved citations.
package citation

import (
	"encoding/json"
	"strings"
)

// SourceType identifies the kind of source a citation refers to.
// The set is closed: it gates which providers are eligible for a search
// and which short-form rules apply.
type SourceType int

const (
	Unknown SourceType = iota
	Journal
	Book
	Legal
	Interview
	Newspaper
	Government
	Medical
	URL
)

var typeNames = map[SourceType]string{
	Unknown:    "unknown",
	Journal:    "journal",
	Book:       "book",
	Legal:      "legal",
	Interview:  "interview",
	Newspaper:  "newspaper",
	Government: "government",
	Medical:    "medical",
	URL:        "url",
}

func (t SourceType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// MarshalJSON encodes the type as its lowercase name.
func (t SourceType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a lowercase type name.
func (t *SourceType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = ParseSourceType(s)
	return nil
}

// ParseSourceType parses a type name (case-insensitive). Unrecognized
// names map to Unknown.
func ParseSourceType(s string) SourceType {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, name := range typeNames {
		if name == s {
			return t
		}
	}
	return Unknown
}

// Record is the canonical sparse metadata record for a resolved source.
// Different source types populate different subsets; a Record is immutable
// once produced by a provider or extractor.
type Record struct {
	Type SourceType `json:"type"`

	// Common fields
	Title   string   `json:"title,omitempty"`
	Authors []string `json:"authors,omitempty"` // ordered, "First Last" form
	Year    string   `json:"year,omitempty"`
	URL     string   `json:"url,omitempty"`

	// Strong identifiers (at most one is meaningful per record)
	DOI  string `json:"doi,omitempty"`
	ISBN string `json:"isbn,omitempty"`
	PMID string `json:"pmid,omitempty"`

	// Journal / medical article fields
	Journal string `json:"journal,omitempty"`
	Volume  string `json:"volume,omitempty"`
	Issue   string `json:"issue,omitempty"`
	Pages   string `json:"pages,omitempty"`

	// Book fields
	Publisher string `json:"publisher,omitempty"`
	Place     string `json:"place,omitempty"`
	Edition   string `json:"edition,omitempty"`

	// Legal case fields
	CaseName     string `json:"case_name,omitempty"`
	Citation     string `json:"citation,omitempty"` // reporter citation, e.g. "410 U.S. 113"
	Court        string `json:"court,omitempty"`
	Jurisdiction string `json:"jurisdiction,omitempty"`

	// Interview fields
	Interviewee string `json:"interviewee,omitempty"`
	Interviewer string `json:"interviewer,omitempty"`
	Location    string `json:"location,omitempty"`
	Date        string `json:"date,omitempty"`

	// Newspaper fields
	Newspaper string `json:"newspaper,omitempty"`

	// Government document fields
	Agency         string `json:"agency,omitempty"`
	DocumentNumber string `json:"document_number,omitempty"`

	AccessDate string `json:"access_date,omitempty"`

	// Provenance
	OriginProvider string `json:"origin_provider,omitempty"`
	RawQuery       string `json:"raw_query,omitempty"`
}

// Resolvable reports whether the record carries the minimum fields needed
// to format a citation of its type.
//
// Minimality rules:
//   - Legal needs a case name
//   - Interview needs an interviewee or an interviewer
//   - Newspaper, Government, and URL need a title or a URL
//   - everything else needs a title
func (r Record) Resolvable() bool {
	switch r.Type {
	case Legal:
		return r.CaseName != ""
	case Interview:
		return r.Interviewee != "" || r.Interviewer != ""
	case Newspaper, Government, URL:
		return r.Title != "" || r.URL != ""
	default:
		return r.Title != ""
	}
}

// FirstAuthor returns the first author, or "" if there are none.
func (r Record) FirstAuthor() string {
	if len(r.Authors) == 0 {
		return ""
	}
	return r.Authors[0]
}

// LastName extracts the last name from a "First Last" author string.
// Single-word names are returned as-is.
func LastName(author string) string {
	parts := strings.Fields(author)
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

package citation

import (
	"net/url"
	"strings"
)

// SourceKey is a derived, type-tagged identity string used for
// deduplication and "cited before" lookups. Two records describe the same
// source iff their keys are equal and non-empty. An empty key never
// matches anything, including another empty key: records without a
// derivable identity are conservatively treated as distinct works.
type SourceKey string

// IsZero reports whether no identity could be derived.
func (k SourceKey) IsZero() bool { return k == "" }

// Equal reports same-source identity. Empty keys never match.
func (k SourceKey) Equal(other SourceKey) bool {
	return k != "" && k == other
}

// Key derives the SourceKey for a record. The first applicable rule wins:
//
//  1. normalized DOI
//  2. normalized URL
//  3. legal case name + reporter citation
//  4. title + first author
//  5. case name alone
func (r Record) Key() SourceKey {
	if doi := NormalizeDOI(r.DOI); doi != "" {
		return SourceKey("doi:" + doi)
	}
	if u := NormalizeURL(r.URL); u != "" {
		return SourceKey("url:" + u)
	}
	if r.CaseName != "" && r.Citation != "" {
		return SourceKey("case:" + normalizeText(r.CaseName) + "|" + normalizeText(r.Citation))
	}
	if r.Title != "" && r.FirstAuthor() != "" {
		return SourceKey("work:" + normalizeText(r.Title) + "|" + normalizeText(r.FirstAuthor()))
	}
	if r.CaseName != "" {
		return SourceKey("case:" + normalizeText(r.CaseName))
	}
	return ""
}

// NormalizeDOI strips resolver prefixes and lowercases a DOI.
// Returns "" for input that is not a DOI.
func NormalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	for _, prefix := range []string{
		"https://doi.org/",
		"http://doi.org/",
		"https://dx.doi.org/",
		"http://dx.doi.org/",
		"doi:",
	} {
		if strings.HasPrefix(strings.ToLower(doi), prefix) {
			doi = doi[len(prefix):]
			break
		}
	}
	doi = strings.ToLower(strings.TrimSpace(doi))
	if !strings.HasPrefix(doi, "10.") || !strings.Contains(doi, "/") {
		return ""
	}
	return doi
}

// NormalizeURL canonicalizes a URL for identity comparison: lowercased
// scheme and host, query string and fragment stripped, trailing slash
// removed. Returns "" for anything that does not parse as an http(s) URL.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ""
	}
	host := strings.ToLower(u.Host)
	host = strings.TrimPrefix(host, "www.")
	path := strings.TrimSuffix(u.Path, "/")
	return strings.ToLower(u.Scheme) + "://" + host + path
}

// normalizeText lowercases and collapses whitespace and punctuation that
// commonly varies between transcriptions of the same source.
func normalizeText(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	replacer := strings.NewReplacer(".", "", ",", "", ":", "", ";", "", "’", "'", "“", "", "”", "", "\"", "")
	s = replacer.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// DedupKey returns the within-search deduplication key for a record:
// the lowercased title (case name for legal records) truncated to 50
// characters. Weaker than SourceKey on purpose - providers frequently
// disagree on identifiers but agree on titles.
func (r Record) DedupKey() string {
	s := r.Title
	if r.Type == Legal && r.CaseName != "" {
		s = r.CaseName
	}
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) > 50 {
		s = s[:50]
	}
	return s
}

// Package format renders resolved citations in the supported styles.
// Output uses <i> tags for italics so it can be written back into Word
// footnotes unchanged.
package format

import (
	"sort"
	"strings"

	"github.com/citeflow/citeflow/internal/citation"
)

// Formatter renders one citation style.
type Formatter interface {
	// Name is the style's registry key ("chicago", "apa", ...).
	Name() string
	// Format renders a full citation.
	Format(r *citation.Record) string
	// FormatShort renders the style's short form for a source cited
	// earlier in the document. page is an optional pinpoint.
	FormatShort(r *citation.Record, page string) string
	// FormatIbid renders an immediate-repeat citation.
	FormatIbid(page string) string
}

// Registry maps style names to formatters.
type Registry struct {
	styles map[string]Formatter
}

// NewRegistry returns a registry with every built-in style. The map is
// explicit: adding a style means adding it here.
func NewRegistry() *Registry {
	styles := []Formatter{
		&Chicago{},
		&APA{},
		&MLA{},
		&Bluebook{},
		&OSCOLA{},
	}
	reg := &Registry{styles: make(map[string]Formatter, len(styles))}
	for _, s := range styles {
		reg.styles[s.Name()] = s
	}
	return reg
}

// Get returns the formatter for a style name (case-insensitive).
func (reg *Registry) Get(name string) (Formatter, bool) {
	f, ok := reg.styles[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}

// Names returns the registered style names, sorted.
func (reg *Registry) Names() []string {
	names := make([]string, 0, len(reg.styles))
	for name := range reg.styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ibid renders the universal immediate-repeat form. Always lowercase,
// never italicized, in every style.
func ibid(page string) string {
	if page != "" {
		return "ibid., " + page + "."
	}
	return "ibid."
}

func italic(s string) string {
	if s == "" {
		return ""
	}
	return "<i>" + s + "</i>"
}

func quote(s string) string {
	if s == "" {
		return ""
	}
	return `"` + s + `"`
}

// splitName splits "First Middle Last" into (first-names, last).
func splitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return name, ""
	}
	return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1]
}

// invertName converts "First Last" to "Last, First".
func invertName(name string) string {
	first, last := splitName(name)
	if last == "" {
		return name
	}
	return last + ", " + first
}

func lastName(name string) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return name
	}
	return parts[len(parts)-1]
}

// authorsShort joins author surnames for short forms: "Watson and
// Crick", "Novak et al."
func authorsShort(authors []string, max int) string {
	if len(authors) == 0 {
		return ""
	}
	if len(authors) > max {
		return lastName(authors[0]) + " et al."
	}
	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = lastName(a)
	}
	if len(names) == 1 {
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}

// shortTitle truncates a title to its first four words for short forms.
func shortTitle(title string) string {
	words := strings.Fields(title)
	if len(words) <= 4 {
		return title
	}
	return strings.Join(words[:4], " ")
}

// shortCaseName returns the first party of "A v. B" for legal short
// forms.
func shortCaseName(caseName string) string {
	for _, sep := range []string{" v. ", " v "} {
		if i := strings.Index(caseName, sep); i > 0 {
			return caseName[:i]
		}
	}
	return caseName
}

// agencyShort abbreviates long agency names to their initials
// ("National Institutes of Health" -> "NIH").
func agencyShort(agency string) string {
	words := strings.Fields(agency)
	if len(words) <= 3 {
		return agency
	}
	var sb strings.Builder
	for _, w := range words {
		r := rune(w[0])
		if r >= 'A' && r <= 'Z' {
			sb.WriteRune(r)
		}
	}
	if sb.Len() >= 2 {
		return sb.String()
	}
	return agency
}

// doiURL normalizes a DOI to its resolver URL.
func doiURL(doi string) string {
	if strings.HasPrefix(doi, "http") {
		return doi
	}
	return "https://doi.org/" + doi
}

// joinComma joins the non-empty parts with commas and ensures a single
// trailing period.
func joinComma(parts []string) string {
	return terminate(join(parts, ", "))
}

func join(parts []string, sep string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func terminate(s string) string {
	if s == "" || strings.HasSuffix(s, ".") {
		return s
	}
	return s + "."
}

// firstPage extracts the first page of a range like "752-778".
func firstPage(pages string) string {
	for _, sep := range []string{"-", "–"} {
		if i := strings.Index(pages, sep); i > 0 {
			return strings.TrimSpace(pages[:i])
		}
	}
	return strings.TrimSpace(pages)
}

// yearOf returns the record's year, falling back to a four-digit run in
// its date.
func yearOf(r *citation.Record) string {
	if r.Year != "" {
		return r.Year
	}
	for i := 0; i+4 <= len(r.Date); i++ {
		if isDigits(r.Date[i : i+4]) {
			return r.Date[i : i+4]
		}
	}
	return ""
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

// fallback is the last-resort rendering when a record has nothing to
// format.
func fallback(r *citation.Record) string {
	if r.RawQuery != "" {
		return r.RawQuery
	}
	if r.URL != "" {
		return r.URL
	}
	return "Unknown source"
}

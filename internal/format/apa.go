package format

import (
	"strings"

	"github.com/citeflow/citeflow/internal/citation"
)

// APA renders APA 7th Edition citations.
type APA struct{}

func (a *APA) Name() string { return "apa" }

func (a *APA) Format(r *citation.Record) string {
	switch r.Type {
	case citation.Book:
		return a.book(r)
	case citation.Legal:
		return a.legal(r)
	case citation.Interview:
		return a.interview(r)
	case citation.Newspaper:
		return a.newspaper(r)
	case citation.Government:
		return a.government(r)
	case citation.URL:
		return a.url(r)
	case citation.Journal, citation.Medical:
		return a.journal(r)
	default:
		if r.Title != "" {
			return a.journal(r)
		}
		return fallback(r)
	}
}

// authors renders "Last, F., & Last, F." with an ellipsis past three.
func (a *APA) authors(authors []string) string {
	if len(authors) == 0 {
		return ""
	}
	const max = 3
	formatted := make([]string, 0, max)
	for _, name := range authors {
		if len(formatted) == max {
			break
		}
		first, last := splitName(name)
		if last == "" {
			formatted = append(formatted, name)
			continue
		}
		formatted = append(formatted, last+", "+first[:1]+".")
	}
	if len(authors) > max {
		return strings.Join(formatted[:len(formatted)-1], ", ") + ", ... " + formatted[len(formatted)-1]
	}
	if len(formatted) > 1 {
		return strings.Join(formatted[:len(formatted)-1], ", ") + ", & " + formatted[len(formatted)-1]
	}
	return formatted[0]
}

func apaYear(r *citation.Record) string {
	if y := yearOf(r); y != "" {
		return y
	}
	return "n.d."
}

// journal: Author, A. (Year). Title. Journal, Vol(Issue), pages. DOI
func (a *APA) journal(r *citation.Record) string {
	var parts []string
	parts = append(parts, a.authors(r.Authors), "("+apaYear(r)+").")
	if r.Title != "" {
		parts = append(parts, r.Title+".")
	}

	journal := italic(r.Journal)
	if r.Volume != "" {
		journal += ", " + italic(r.Volume)
		if r.Issue != "" {
			journal += "(" + r.Issue + ")"
		}
	}
	if r.Pages != "" {
		journal += ", " + r.Pages
	}
	if journal != "" {
		parts = append(parts, journal+".")
	}

	if r.DOI != "" {
		parts = append(parts, doiURL(r.DOI))
	} else if r.URL != "" {
		parts = append(parts, r.URL)
	}
	return join(parts, " ")
}

// book: Author, A. (Year). Title. Publisher.
func (a *APA) book(r *citation.Record) string {
	var parts []string
	parts = append(parts, a.authors(r.Authors), "("+apaYear(r)+").")
	if r.Title != "" {
		parts = append(parts, italic(r.Title)+".")
	}
	if r.Publisher != "" {
		parts = append(parts, r.Publisher+".")
	}
	if r.DOI != "" {
		parts = append(parts, doiURL(r.DOI))
	}
	return join(parts, " ")
}

// legal defers to Bluebook conventions: Case Name, Citation (Court Year).
func (a *APA) legal(r *citation.Record) string {
	var paren []string
	if r.Court != "" && !strings.Contains(r.Citation, "U.S.") {
		paren = append(paren, r.Court)
	}
	if y := yearOf(r); y != "" {
		paren = append(paren, y)
	}

	s := italic(r.CaseName)
	if r.Citation != "" {
		s += ", " + r.Citation
	}
	if p := join(paren, " "); p != "" {
		s += " (" + p + ")"
	}
	return terminate(s)
}

// interview: Last, F. (Year). [Interview conducted in Location].
func (a *APA) interview(r *citation.Record) string {
	var parts []string
	if r.Interviewee != "" {
		first, last := splitName(r.Interviewee)
		if last != "" {
			parts = append(parts, last+", "+first[:1]+".")
		} else {
			parts = append(parts, r.Interviewee)
		}
	}
	parts = append(parts, "("+apaYear(r)+").")

	desc := "[Interview]"
	if r.Location != "" {
		desc = "[Interview conducted in " + r.Location + "]"
	}
	parts = append(parts, desc+".")
	return join(parts, " ")
}

// newspaper: Author, A. (Date). Title. Newspaper. URL
func (a *APA) newspaper(r *citation.Record) string {
	date := r.Date
	if date == "" {
		date = "n.d."
	}
	var parts []string
	parts = append(parts, a.authors(r.Authors), "("+date+").")
	if r.Title != "" {
		parts = append(parts, r.Title+".")
	}
	if r.Newspaper != "" {
		parts = append(parts, italic(r.Newspaper)+".")
	}
	if r.URL != "" {
		parts = append(parts, r.URL)
	}
	return join(parts, " ")
}

// government: Agency. (Year). Title. URL
func (a *APA) government(r *citation.Record) string {
	agency := r.Agency
	if agency == "" {
		agency = "U.S. Government"
	}
	var parts []string
	parts = append(parts, agency+".", "("+apaYear(r)+").")
	if r.Title != "" {
		parts = append(parts, italic(r.Title)+".")
	}
	if r.URL != "" {
		parts = append(parts, r.URL)
	}
	return join(parts, " ")
}

func (a *APA) url(r *citation.Record) string {
	var parts []string
	if r.Title != "" {
		parts = append(parts, r.Title+".")
	}
	parts = append(parts, "("+apaYear(r)+").")
	if r.URL != "" {
		parts = append(parts, r.URL)
	}
	return join(parts, " ")
}

// FormatShort renders the APA author-date short form: Author (Year, p. X).
func (a *APA) FormatShort(r *citation.Record, page string) string {
	year := apaYear(r)
	paren := "(" + year + ")"
	if page != "" {
		paren = "(" + year + ", p. " + page + ")"
	}

	switch r.Type {
	case citation.Legal:
		s := italic(shortCaseName(r.CaseName)) + " (" + year + ")"
		if page != "" {
			s += " at " + page
		}
		return terminate(s)
	case citation.Interview:
		return terminate(join([]string{lastName(r.Interviewee), "(" + year + ")"}, " "))
	case citation.Government:
		return terminate(join([]string{agencyShort(r.Agency), paren}, " "))
	case citation.URL:
		return terminate(join([]string{quote(shortTitle(r.Title)), "(" + year + ")"}, " "))
	default:
		return terminate(join([]string{authorsShort(r.Authors, 2), paren}, " "))
	}
}

func (a *APA) FormatIbid(page string) string { return ibid(page) }

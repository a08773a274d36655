package format

import (
	"strings"

	"github.com/citeflow/citeflow/internal/citation"
)

// OSCOLA renders Oxford Standard for Citation of Legal Authorities
// citations, used for UK legal writing. OSCOLA omits full stops after
// abbreviations and prefers neutral citations.
type OSCOLA struct{}

func (o *OSCOLA) Name() string { return "oscola" }

func (o *OSCOLA) Format(r *citation.Record) string {
	switch r.Type {
	case citation.Legal:
		return o.legal(r)
	case citation.Book:
		return o.book(r)
	case citation.Interview:
		return o.interview(r)
	case citation.Newspaper:
		return o.newspaper(r)
	case citation.Government:
		return o.government(r)
	case citation.URL:
		return o.url(r)
	case citation.Journal, citation.Medical:
		return o.journal(r)
	default:
		if r.CaseName != "" {
			return o.legal(r)
		}
		if r.Title != "" {
			return o.journal(r)
		}
		return fallback(r)
	}
}

// authors: first name then surname, "and" before the last, "and
// others" past three.
func (o *OSCOLA) authors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return authors[0]
	case 2:
		return authors[0] + " and " + authors[1]
	case 3:
		return authors[0] + ", " + authors[1] + " and " + authors[2]
	default:
		return authors[0] + " and others"
	}
}

// legal: Case Name [Year] Court Number. OSCOLA uses "v", not "v.", and
// no trailing period.
func (o *OSCOLA) legal(r *citation.Record) string {
	var parts []string
	if r.CaseName != "" {
		name := strings.ReplaceAll(r.CaseName, " v. ", " v ")
		parts = append(parts, italic(name))
	}
	if r.Citation != "" {
		parts = append(parts, r.Citation)
		// Traditional report citations carry the year separately.
		if y := yearOf(r); y != "" && !strings.Contains(r.Citation, "[") && !strings.Contains(r.Citation, y) {
			parts = append(parts, "("+y+")")
		}
	}
	if len(parts) == 0 {
		return fallback(r)
	}
	return join(parts, " ")
}

// journal: Author, 'Title' (Year) Volume Journal FirstPage.
func (o *OSCOLA) journal(r *citation.Record) string {
	var parts []string
	if s := o.authors(r.Authors); s != "" {
		parts = append(parts, s+",")
	}
	if r.Title != "" {
		parts = append(parts, "'"+r.Title+"'")
	}
	y := yearOf(r)
	if r.Volume != "" {
		if y != "" {
			parts = append(parts, "("+y+")")
		}
		parts = append(parts, r.Volume)
	} else if y != "" {
		parts = append(parts, "["+y+"]")
	}
	parts = append(parts, r.Journal)
	if r.Pages != "" {
		parts = append(parts, firstPage(r.Pages))
	}
	return join(parts, " ")
}

// book: Author, Title (Edition edn, Publisher Year).
func (o *OSCOLA) book(r *citation.Record) string {
	var parts []string
	if s := o.authors(r.Authors); s != "" {
		parts = append(parts, s+",")
	}
	parts = append(parts, italic(r.Title))

	var paren []string
	if r.Edition != "" {
		paren = append(paren, r.Edition+" edn")
	}
	pub := join([]string{r.Publisher, r.Year}, " ")
	if pub != "" {
		paren = append(paren, pub)
	}
	if p := join(paren, ", "); p != "" {
		parts = append(parts, "("+p+")")
	}
	return join(parts, " ")
}

// interview: Interview with Name (Location, Date).
func (o *OSCOLA) interview(r *citation.Record) string {
	parts := []string{"Interview with", r.Interviewee}
	var paren []string
	if r.Location != "" {
		paren = append(paren, r.Location)
	}
	if r.Date != "" {
		paren = append(paren, r.Date)
	} else if r.Year != "" {
		paren = append(paren, r.Year)
	}
	if p := join(paren, ", "); p != "" {
		parts = append(parts, "("+p+")")
	}
	return join(parts, " ")
}

// newspaper: Author, 'Title' Newspaper (Date) <URL> accessed Date.
func (o *OSCOLA) newspaper(r *citation.Record) string {
	var parts []string
	if s := o.authors(r.Authors); s != "" {
		parts = append(parts, s+",")
	}
	if r.Title != "" {
		parts = append(parts, "'"+r.Title+"'")
	}
	parts = append(parts, italic(r.Newspaper))
	if r.Date != "" {
		parts = append(parts, "("+r.Date+")")
	} else if r.Year != "" {
		parts = append(parts, "("+r.Year+")")
	}
	parts = append(parts, o.accessed(r))
	return join(parts, " ")
}

// government: Title (Citation, Year) <URL> accessed Date.
func (o *OSCOLA) government(r *citation.Record) string {
	var parts []string
	parts = append(parts, italic(r.Title))
	var paren []string
	if r.DocumentNumber != "" {
		paren = append(paren, r.DocumentNumber)
	}
	if y := yearOf(r); y != "" {
		paren = append(paren, y)
	}
	if p := join(paren, ", "); p != "" {
		parts = append(parts, "("+p+")")
	}
	parts = append(parts, o.accessed(r))
	s := join(parts, " ")
	if s == "" {
		return fallback(r)
	}
	return s
}

// url: 'Title' <URL> accessed Date.
func (o *OSCOLA) url(r *citation.Record) string {
	var parts []string
	if s := o.authors(r.Authors); s != "" {
		parts = append(parts, s+",")
	}
	if r.Title != "" {
		parts = append(parts, "'"+r.Title+"'")
	}
	parts = append(parts, o.accessed(r))
	s := join(parts, " ")
	if s == "" {
		return fallback(r)
	}
	return s
}

// accessed renders the <URL> accessed Date tail OSCOLA appends to
// online sources.
func (o *OSCOLA) accessed(r *citation.Record) string {
	if r.URL == "" {
		return ""
	}
	s := "<" + r.URL + ">"
	if r.AccessDate != "" {
		s += " accessed " + r.AccessDate
	}
	return s
}

// FormatShort renders OSCOLA short forms: case name alone with a
// paragraph pinpoint, author surname with page for secondary sources.
func (o *OSCOLA) FormatShort(r *citation.Record, page string) string {
	switch r.Type {
	case citation.Legal:
		name := strings.ReplaceAll(shortCaseName(r.CaseName), " v. ", " v ")
		s := italic(name)
		if page != "" {
			s += " [" + page + "]"
		}
		return s
	case citation.Interview:
		if r.Interviewee != "" {
			return "Interview with " + r.Interviewee + " (n)"
		}
		return "Interview (n)"
	case citation.Government, citation.URL:
		if t := shortTitle(r.Title); t != "" {
			return "'" + t + "'"
		}
		return fallback(r)
	default:
		var parts []string
		if s := authorsShort(r.Authors, 1); s != "" {
			parts = append(parts, s)
		}
		if page != "" {
			parts = append(parts, page)
		}
		if len(parts) == 0 {
			return "'" + shortTitle(r.Title) + "'"
		}
		return join(parts, " ")
	}
}

func (o *OSCOLA) FormatIbid(page string) string { return ibid(page) }

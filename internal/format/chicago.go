package format

import (
	"strings"

	"github.com/citeflow/citeflow/internal/citation"
)

// Chicago renders Chicago Manual of Style (17th ed.) notes-style
// citations, the default for history and the humanities.
type Chicago struct{}

func (c *Chicago) Name() string { return "chicago" }

func (c *Chicago) Format(r *citation.Record) string {
	switch r.Type {
	case citation.Book:
		return c.book(r)
	case citation.Legal:
		return c.legal(r)
	case citation.Interview:
		return c.interview(r)
	case citation.Newspaper:
		return c.newspaper(r)
	case citation.Government:
		return c.government(r)
	case citation.URL:
		return c.url(r)
	case citation.Journal, citation.Medical:
		return c.journal(r)
	default:
		if r.Title != "" {
			return c.journal(r)
		}
		return fallback(r)
	}
}

// authors renders "First Last and First Last", "First Last et al." for
// three or more.
func (c *Chicago) authors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return authors[0]
	case 2:
		return authors[0] + " and " + authors[1]
	default:
		return authors[0] + " et al."
	}
}

// journal: Author, "Title," Journal Vol, no. Issue (Year): Pages. DOI
func (c *Chicago) journal(r *citation.Record) string {
	var parts []string
	parts = append(parts, c.authors(r.Authors), quote(r.Title))

	journal := italic(r.Journal)
	if r.Volume != "" {
		journal += " " + r.Volume
	}
	if r.Issue != "" {
		journal += ", no. " + r.Issue
	}
	if y := yearOf(r); y != "" {
		journal += " (" + y + ")"
	}
	if r.Pages != "" {
		journal += ": " + r.Pages
	}
	parts = append(parts, journal)

	if r.DOI != "" {
		parts = append(parts, doiURL(r.DOI))
	} else if r.URL != "" {
		parts = append(parts, r.URL)
	}
	return joinComma(parts)
}

// book: Author, Title (Place: Publisher, Year).
func (c *Chicago) book(r *citation.Record) string {
	var parts []string
	parts = append(parts, c.authors(r.Authors), italic(r.Title))

	var pub string
	switch {
	case r.Place != "" && r.Publisher != "":
		pub = r.Place + ": " + r.Publisher
		if r.Year != "" {
			pub += ", " + r.Year
		}
	default:
		pub = join([]string{r.Place, r.Publisher, r.Year}, ", ")
	}
	if pub != "" {
		parts = append(parts, "("+pub+")")
	}
	return joinComma(parts)
}

// legal: Case Name, Citation (Court Year). UK neutral citations carry
// the year inside the citation itself.
func (c *Chicago) legal(r *citation.Record) string {
	if r.Jurisdiction == "UK" && r.Citation != "" {
		return italic(r.CaseName) + " " + r.Citation
	}

	var paren []string
	// The court is implied for cases reported in U.S. Reports.
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

// interview: Subject, interview by Interviewer, Location, Date.
func (c *Chicago) interview(r *citation.Record) string {
	by := "interview by author"
	if r.Interviewer != "" {
		by = "interview by " + r.Interviewer
	}
	return joinComma([]string{r.Interviewee, by, r.Location, r.Date})
}

// newspaper: Author, "Title," Newspaper, Date. URL
func (c *Chicago) newspaper(r *citation.Record) string {
	return joinComma([]string{
		c.authors(r.Authors), quote(r.Title), italic(r.Newspaper), r.Date, r.URL,
	})
}

// government: Agency, Title, Date. URL
func (c *Chicago) government(r *citation.Record) string {
	agency := r.Agency
	if agency == "" {
		agency = "U.S. Government"
	}
	return joinComma([]string{agency, italic(r.Title), r.Date, r.URL})
}

func (c *Chicago) url(r *citation.Record) string {
	var access string
	if r.AccessDate != "" {
		access = "accessed " + r.AccessDate
	}
	s := joinComma([]string{quote(r.Title), access, r.URL})
	if s == "" {
		return fallback(r)
	}
	return s
}

// FormatShort renders the Chicago short form: Author, Short Title, page.
func (c *Chicago) FormatShort(r *citation.Record, page string) string {
	switch r.Type {
	case citation.Legal:
		s := italic(shortCaseName(r.CaseName))
		if r.Citation != "" && page != "" {
			s += ", " + r.Citation + " at " + page
		}
		return terminate(s)
	case citation.Interview:
		return joinComma([]string{lastName(r.Interviewee), "interview"})
	case citation.Government:
		return joinComma([]string{agencyShort(r.Agency), italic(shortTitle(r.Title)), page})
	case citation.URL:
		return joinComma([]string{quote(shortTitle(r.Title))})
	case citation.Book:
		return joinComma([]string{authorsShort(r.Authors, 2), italic(shortTitle(r.Title)), page})
	default:
		return joinComma([]string{authorsShort(r.Authors, 2), quote(shortTitle(r.Title)), page})
	}
}

func (c *Chicago) FormatIbid(page string) string { return ibid(page) }

package format

import (
	"strings"

	"github.com/citeflow/citeflow/internal/citation"
)

// courtAbbrevs maps court names to Bluebook abbreviations, most
// specific first. Supreme Court cases reported in U.S. Reports take no
// court designation.
var courtAbbrevs = []struct{ name, abbrev string }{
	{"supreme court of the united states", ""},
	{"united states supreme court", ""},
	{"scotus", ""},
	{"supreme court of virginia", "Va."},
	{"supreme court of california", "Cal."},
	{"supreme court of new york", "N.Y."},
	{"supreme court of texas", "Tex."},
	{"supreme court", "S. Ct."},
	{"court of appeals", "Cir."},
	{"district court", "D."},
	{"bankruptcy court", "Bankr."},
}

// newspaperAbbrevs maps publication names to Bluebook abbreviations.
var newspaperAbbrevs = map[string]string{
	"The New York Times":      "N.Y. Times",
	"The Washington Post":     "Wash. Post",
	"The Wall Street Journal": "Wall St. J.",
	"Los Angeles Times":       "L.A. Times",
	"The Guardian":            "Guardian",
}

// Bluebook renders Bluebook (21st ed.) legal citations. Short forms use
// "supra" for secondary sources and "at" pinpoints for cases.
type Bluebook struct{}

func (b *Bluebook) Name() string { return "bluebook" }

func (b *Bluebook) Format(r *citation.Record) string {
	switch r.Type {
	case citation.Legal:
		return b.legal(r)
	case citation.Book:
		return b.book(r)
	case citation.Interview:
		return b.interview(r)
	case citation.Newspaper:
		return b.newspaper(r)
	case citation.Government:
		return b.government(r)
	case citation.URL:
		return b.url(r)
	case citation.Journal, citation.Medical:
		return b.journal(r)
	default:
		if r.CaseName != "" {
			return b.legal(r)
		}
		if r.Title != "" {
			return b.journal(r)
		}
		return fallback(r)
	}
}

// authors: full names, ampersand for two, "et al." past that.
func (b *Bluebook) authors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return authors[0]
	case 2:
		return authors[0] + " & " + authors[1]
	default:
		return authors[0] + " et al."
	}
}

// legal: Case Name, Volume Reporter Page (Court Year).
func (b *Bluebook) legal(r *citation.Record) string {
	var parts []string
	if r.CaseName != "" {
		parts = append(parts, italic(r.CaseName)+",")
	}
	if r.Citation != "" {
		parts = append(parts, r.Citation)
	}

	isSCOTUS := strings.Contains(r.Citation, "U.S.")
	var paren []string
	if r.Court != "" && !isSCOTUS {
		paren = append(paren, abbreviateCourt(r.Court))
	}
	if y := yearOf(r); y != "" {
		paren = append(paren, y)
	}
	if p := join(paren, " "); p != "" {
		parts = append(parts, "("+p+").")
	} else if len(parts) > 0 {
		parts[len(parts)-1] = terminate(parts[len(parts)-1])
	}
	return join(parts, " ")
}

// journal: Author, Title, Volume Journal FirstPage (Year).
func (b *Bluebook) journal(r *citation.Record) string {
	var parts []string
	if s := b.authors(r.Authors); s != "" {
		parts = append(parts, s+",")
	}
	if r.Title != "" {
		parts = append(parts, italic(r.Title)+",")
	}
	parts = append(parts, r.Volume, r.Journal)
	if r.Pages != "" {
		parts = append(parts, firstPage(r.Pages))
	}
	if y := yearOf(r); y != "" {
		parts = append(parts, "("+y+").")
	} else if len(parts) > 0 {
		parts[len(parts)-1] = terminate(parts[len(parts)-1])
	}
	return join(parts, " ")
}

// book: Author, Title (Edition ed. Year).
func (b *Bluebook) book(r *citation.Record) string {
	var parts []string
	if s := b.authors(r.Authors); s != "" {
		parts = append(parts, s+",")
	}
	parts = append(parts, italic(r.Title))

	var paren []string
	if r.Edition != "" {
		paren = append(paren, r.Edition+" ed.")
	}
	if r.Year != "" {
		paren = append(paren, r.Year)
	}
	if p := join(paren, " "); p != "" {
		parts = append(parts, "("+p+").")
	} else if len(parts) > 0 {
		parts[len(parts)-1] = terminate(parts[len(parts)-1])
	}
	return join(parts, " ")
}

// interview: Interview with Name (Location, Date).
func (b *Bluebook) interview(r *citation.Record) string {
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
		parts = append(parts, "("+p+").")
	} else {
		parts[len(parts)-1] = terminate(parts[len(parts)-1])
	}
	return join(parts, " ")
}

// newspaper: Author, Title, Newspaper, Date. URL.
func (b *Bluebook) newspaper(r *citation.Record) string {
	var parts []string
	if s := b.authors(r.Authors); s != "" {
		parts = append(parts, s+",")
	}
	if r.Title != "" {
		parts = append(parts, italic(r.Title)+",")
	}
	if r.Newspaper != "" {
		pub := r.Newspaper
		if abbrev, ok := newspaperAbbrevs[pub]; ok {
			pub = abbrev
		}
		parts = append(parts, pub+",")
	}
	if r.Date != "" {
		parts = append(parts, r.Date+".")
	} else if r.Year != "" {
		parts = append(parts, r.Year+".")
	}
	if r.URL != "" {
		parts = append(parts, r.URL+".")
	}
	return join(parts, " ")
}

// government: Title, Citation (Date). URL.
func (b *Bluebook) government(r *citation.Record) string {
	var parts []string
	if r.Title != "" {
		parts = append(parts, r.Title+",")
	}
	if r.DocumentNumber != "" {
		parts = append(parts, r.DocumentNumber)
	} else if r.Agency != "" {
		parts = append(parts, r.Agency)
	}
	if r.Date != "" {
		parts = append(parts, "("+r.Date+").")
	} else if r.Year != "" {
		parts = append(parts, "("+r.Year+").")
	} else if len(parts) > 0 {
		parts[len(parts)-1] = terminate(parts[len(parts)-1])
	}
	if r.URL != "" {
		parts = append(parts, r.URL+".")
	}
	return join(parts, " ")
}

// url: Author, Title, (Date), URL.
func (b *Bluebook) url(r *citation.Record) string {
	var parts []string
	if s := b.authors(r.Authors); s != "" {
		parts = append(parts, s+",")
	}
	if r.Title != "" {
		parts = append(parts, italic(r.Title)+",")
	}
	if r.Date != "" {
		parts = append(parts, "("+r.Date+"),")
	} else if r.Year != "" {
		parts = append(parts, "("+r.Year+"),")
	}
	if r.URL != "" {
		parts = append(parts, r.URL+".")
	}
	if len(parts) == 0 {
		return fallback(r)
	}
	return join(parts, " ")
}

// FormatShort renders Bluebook short forms: "Loving, 388 U.S. at 12"
// for cases, "Author, supra, at X" for secondary sources.
func (b *Bluebook) FormatShort(r *citation.Record, page string) string {
	switch r.Type {
	case citation.Legal:
		short := italic(shortCaseName(r.CaseName))
		if r.Citation == "" {
			return terminate(short)
		}
		if page != "" {
			return short + ", " + r.Citation + " at " + page + "."
		}
		return short + ", " + r.Citation + "."
	case citation.Interview:
		if r.Interviewee != "" {
			return lastName(r.Interviewee) + " Interview, supra."
		}
		return "Interview, supra."
	case citation.Government, citation.URL:
		var parts []string
		if t := shortTitle(r.Title); t != "" {
			parts = append(parts, t)
		}
		parts = append(parts, "supra")
		if page != "" {
			parts = append(parts, "at "+page)
		}
		return terminate(join(parts, ", "))
	default:
		var parts []string
		if s := authorsShort(r.Authors, 1); s != "" {
			parts = append(parts, s)
		}
		parts = append(parts, "supra")
		if page != "" {
			parts = append(parts, "at "+page)
		}
		return terminate(join(parts, ", "))
	}
}

func (b *Bluebook) FormatIbid(page string) string { return ibid(page) }

func abbreviateCourt(court string) string {
	lower := strings.ToLower(court)
	for _, e := range courtAbbrevs {
		if strings.Contains(lower, e.name) {
			return e.abbrev
		}
	}
	return court
}

package format

import "github.com/citeflow/citeflow/internal/citation"

// MLA renders MLA 9th Edition citations. MLA puts the year inside the
// container and uses bare page numbers in short forms.
type MLA struct{}

func (m *MLA) Name() string { return "mla" }

func (m *MLA) Format(r *citation.Record) string {
	switch r.Type {
	case citation.Book:
		return m.book(r)
	case citation.Legal:
		return m.legal(r)
	case citation.Interview:
		return m.interview(r)
	case citation.Newspaper:
		return m.newspaper(r)
	case citation.Government:
		return m.government(r)
	case citation.URL:
		return m.url(r)
	case citation.Journal, citation.Medical:
		return m.journal(r)
	default:
		if r.Title != "" {
			return m.journal(r)
		}
		return fallback(r)
	}
}

// authors: first author inverted, "and" for two, "et al." for three or
// more.
func (m *MLA) authors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return invertName(authors[0])
	case 2:
		return invertName(authors[0]) + ", and " + authors[1]
	default:
		return invertName(authors[0]) + ", et al."
	}
}

// journal: Last, First. "Title." Journal, vol. X, no. Y, Year, pp. X-Y. DOI.
func (m *MLA) journal(r *citation.Record) string {
	var parts []string
	if s := m.authors(r.Authors); s != "" {
		parts = append(parts, terminate(s))
	}
	if r.Title != "" {
		parts = append(parts, quote(r.Title+"."))
	}

	var container []string
	container = append(container, italic(r.Journal))
	if r.Volume != "" {
		container = append(container, "vol. "+r.Volume)
	}
	if r.Issue != "" {
		container = append(container, "no. "+r.Issue)
	}
	container = append(container, yearOf(r))
	if r.Pages != "" {
		container = append(container, "pp. "+r.Pages)
	}
	if s := join(container, ", "); s != "" {
		parts = append(parts, s+".")
	}

	if r.DOI != "" {
		parts = append(parts, doiURL(r.DOI)+".")
	} else if r.URL != "" {
		parts = append(parts, r.URL+".")
	}
	return join(parts, " ")
}

// book: Last, First. Title. Publisher, Year.
func (m *MLA) book(r *citation.Record) string {
	var parts []string
	if s := m.authors(r.Authors); s != "" {
		parts = append(parts, terminate(s))
	}
	if r.Title != "" {
		parts = append(parts, italic(r.Title)+".")
	}
	if s := join([]string{r.Publisher, r.Year}, ", "); s != "" {
		parts = append(parts, s+".")
	}
	return join(parts, " ")
}

// legal: Case Name. Citation, Year.
func (m *MLA) legal(r *citation.Record) string {
	var parts []string
	if r.CaseName != "" {
		parts = append(parts, italic(r.CaseName)+".")
	}
	if s := join([]string{r.Citation, yearOf(r)}, ", "); s != "" {
		parts = append(parts, s+".")
	}
	if len(parts) == 0 {
		return fallback(r)
	}
	return join(parts, " ")
}

// interview: Last, First. Interview. Date.
func (m *MLA) interview(r *citation.Record) string {
	var parts []string
	if r.Interviewee != "" {
		parts = append(parts, terminate(invertName(r.Interviewee)))
	}
	if r.Interviewer != "" {
		parts = append(parts, "Interview by "+r.Interviewer+".")
	} else {
		parts = append(parts, "Interview.")
	}
	if r.Date != "" {
		parts = append(parts, r.Date+".")
	}
	return join(parts, " ")
}

// newspaper: Last, First. "Title." Newspaper, Date, URL.
func (m *MLA) newspaper(r *citation.Record) string {
	var parts []string
	if s := m.authors(r.Authors); s != "" {
		parts = append(parts, terminate(s))
	}
	if r.Title != "" {
		parts = append(parts, quote(r.Title+"."))
	}
	var container []string
	container = append(container, italic(r.Newspaper), r.Date, r.URL)
	if s := join(container, ", "); s != "" {
		parts = append(parts, s+".")
	}
	return join(parts, " ")
}

// government: Agency. Title. Year, URL.
func (m *MLA) government(r *citation.Record) string {
	agency := r.Agency
	if agency == "" {
		agency = "United States Government"
	}
	var parts []string
	parts = append(parts, agency+".")
	if r.Title != "" {
		parts = append(parts, italic(r.Title)+".")
	}
	if s := join([]string{yearOf(r), r.URL}, ", "); s != "" {
		parts = append(parts, s+".")
	}
	return join(parts, " ")
}

// url: "Title." Site, URL. Accessed Date.
func (m *MLA) url(r *citation.Record) string {
	var parts []string
	if r.Title != "" {
		parts = append(parts, quote(r.Title+"."))
	}
	if r.URL != "" {
		parts = append(parts, r.URL+".")
	}
	if r.AccessDate != "" {
		parts = append(parts, "Accessed "+r.AccessDate+".")
	}
	if len(parts) == 0 {
		return fallback(r)
	}
	return join(parts, " ")
}

// FormatShort renders MLA's parenthetical short form: author surname(s)
// and a bare page number.
func (m *MLA) FormatShort(r *citation.Record, page string) string {
	switch r.Type {
	case citation.Legal:
		return terminate(join([]string{italic(shortCaseName(r.CaseName)), page}, " "))
	case citation.Interview:
		if r.Interviewee != "" {
			return lastName(r.Interviewee) + "."
		}
		return "Interview."
	case citation.Government:
		return terminate(join([]string{agencyShort(r.Agency), page}, " "))
	case citation.URL:
		if t := shortTitle(r.Title); t != "" {
			return quote(t + ".")
		}
		return fallback(r)
	default:
		return terminate(join([]string{authorsShort(r.Authors, 2), page}, " "))
	}
}

func (m *MLA) FormatIbid(page string) string { return ibid(page) }

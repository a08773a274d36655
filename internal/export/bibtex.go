// Package export renders resolved citation records as BibTeX entries.
package export

import (
	"fmt"
	"strings"

	"github.com/citeflow/citeflow/internal/citation"
)

// ToBibTeX converts a record to a BibTeX entry.
func ToBibTeX(rec citation.Record) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("@%s{%s,\n", entryType(rec), citeKey(rec)))

	if len(rec.Authors) > 0 {
		b.WriteString(fmt.Sprintf("  author = {%s},\n", formatAuthors(rec.Authors)))
	}
	if title := entryTitle(rec); title != "" {
		b.WriteString(fmt.Sprintf("  title = {%s},\n", escapeLatex(title)))
	}
	if rec.Journal != "" {
		b.WriteString(fmt.Sprintf("  journal = {%s},\n", escapeLatex(rec.Journal)))
	}
	if rec.Newspaper != "" {
		b.WriteString(fmt.Sprintf("  journal = {%s},\n", escapeLatex(rec.Newspaper)))
	}
	if rec.Volume != "" {
		b.WriteString(fmt.Sprintf("  volume = {%s},\n", rec.Volume))
	}
	if rec.Issue != "" {
		b.WriteString(fmt.Sprintf("  number = {%s},\n", rec.Issue))
	}
	if rec.Pages != "" {
		b.WriteString(fmt.Sprintf("  pages = {%s},\n", rec.Pages))
	}
	if rec.Publisher != "" {
		b.WriteString(fmt.Sprintf("  publisher = {%s},\n", escapeLatex(rec.Publisher)))
	}
	if rec.Place != "" {
		b.WriteString(fmt.Sprintf("  address = {%s},\n", escapeLatex(rec.Place)))
	}
	if rec.Agency != "" {
		b.WriteString(fmt.Sprintf("  institution = {%s},\n", escapeLatex(rec.Agency)))
	}
	if rec.DocumentNumber != "" {
		b.WriteString(fmt.Sprintf("  number = {%s},\n", escapeLatex(rec.DocumentNumber)))
	}
	if year := recordYear(rec); year != "" {
		b.WriteString(fmt.Sprintf("  year = {%s},\n", year))
	}
	if rec.DOI != "" {
		b.WriteString(fmt.Sprintf("  doi = {%s},\n", rec.DOI))
	}
	if rec.ISBN != "" {
		b.WriteString(fmt.Sprintf("  isbn = {%s},\n", rec.ISBN))
	}
	if rec.URL != "" {
		b.WriteString(fmt.Sprintf("  url = {%s},\n", rec.URL))
	}
	if rec.Type == citation.Legal && rec.Citation != "" {
		b.WriteString(fmt.Sprintf("  note = {%s},\n", escapeLatex(rec.Citation)))
	}

	b.WriteString("}\n")
	return b.String()
}

// ToBibTeXList converts multiple records to BibTeX, one entry per
// record, separated by blank lines.
func ToBibTeXList(recs []citation.Record) string {
	var entries []string
	for _, rec := range recs {
		entries = append(entries, ToBibTeX(rec))
	}
	return strings.Join(entries, "\n")
}

// entryType maps a source type to the closest BibTeX entry type.
func entryType(rec citation.Record) string {
	switch rec.Type {
	case citation.Journal, citation.Medical, citation.Newspaper:
		return "article"
	case citation.Book:
		return "book"
	case citation.Government:
		return "techreport"
	default:
		return "misc"
	}
}

// entryTitle picks the record field carrying the displayable title.
func entryTitle(rec citation.Record) string {
	switch {
	case rec.Title != "":
		return rec.Title
	case rec.CaseName != "":
		return rec.CaseName
	case rec.Interviewee != "":
		return rec.Interviewee + " interview"
	default:
		return ""
	}
}

// citeKey derives a stable BibTeX key: first author's last name plus
// year when available, otherwise a slug of the title or case name.
func citeKey(rec citation.Record) string {
	year := recordYear(rec)
	if author := rec.FirstAuthor(); author != "" {
		return slug(citation.LastName(author)) + year
	}
	if rec.CaseName != "" {
		name := rec.CaseName
		if i := strings.Index(strings.ToLower(name), " v"); i > 0 {
			name = name[:i]
		}
		return slug(name) + year
	}
	if rec.Title != "" {
		words := strings.Fields(rec.Title)
		if len(words) > 2 {
			words = words[:2]
		}
		return slug(strings.Join(words, "")) + year
	}
	return "citation" + year
}

func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "citation"
	}
	return b.String()
}

func recordYear(rec citation.Record) string {
	if rec.Year != "" {
		return rec.Year
	}
	// Pull a 4-digit year out of a full date like "May 7, 1918".
	fields := strings.Fields(rec.Date)
	for _, f := range fields {
		f = strings.Trim(f, ",.")
		if len(f) == 4 && isDigits(f) {
			return f
		}
	}
	return ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// formatAuthors formats authors in BibTeX style: "Last, First and Last, First"
func formatAuthors(authors []string) string {
	var formatted []string
	for _, a := range authors {
		last := citation.LastName(a)
		first := strings.TrimSpace(strings.TrimSuffix(a, last))
		if first != "" {
			formatted = append(formatted, fmt.Sprintf("%s, %s", last, first))
		} else {
			formatted = append(formatted, last)
		}
	}
	return strings.Join(formatted, " and ")
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}

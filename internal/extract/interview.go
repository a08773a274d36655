package extract

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/citeflow/citeflow/internal/citation"
	"github.com/citeflow/citeflow/internal/provider"
)

// Interview parses interview citations like
// "John Smith interview, May 7, 1918, Boston, MA" or
// "Kevin Smith interview with William Jones, 11/27/1981, Austin, TX".
type Interview struct{}

// NewInterview creates the interview extractor.
func NewInterview() *Interview { return &Interview{} }

func (e *Interview) Name() string { return "interview-extract" }

var (
	slashDate = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})\b`)
	wordDate  = regexp.MustCompile(`(?i)\b(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})`)
	yearAny   = regexp.MustCompile(`\d{4}`)

	interviewWith = regexp.MustCompile(`(?i)^([^,]+?)\s+interview\s+with\s+([^,]+)`)
	interviewBy   = regexp.MustCompile(`(?i)^([^,]+?)\s+interview(?:ed)?\s+by\s+([^,]+)`)
	interviewOnly = regexp.MustCompile(`(?i)^([^,]+?)\s+interview`)

	locPatterns = []*regexp.Regexp{
		regexp.MustCompile(`,\s*([A-Za-z][A-Za-z\s.]+),\s*([A-Z]{2})(\s*,|\s*$)`),
		regexp.MustCompile(`,\s*([A-Za-z][A-Za-z\s]+),\s*([A-Za-z]{2,})\s*(,|$)`),
		regexp.MustCompile(`([A-Z][a-z]+(\s+[A-Z][a-z]+)?),\s*([A-Z]{2})\b`),
	}
)

// Search extracts interview metadata from the query text.
func (e *Interview) Search(ctx context.Context, query string) (*citation.Record, error) {
	clean := strings.TrimSpace(query)
	rec := citation.Record{
		Type:           citation.Interview,
		OriginProvider: e.Name(),
		RawQuery:       query,
	}

	rawDate := extractDate(clean, &rec)

	// Names parse more reliably with the date removed.
	text := clean
	if rawDate != "" {
		text = strings.Replace(text, rawDate, "", 1)
	}

	switch {
	case interviewWith.MatchString(text):
		m := interviewWith.FindStringSubmatch(text)
		rec.Interviewer = titleCase(strings.TrimSpace(m[1]))
		rec.Interviewee = titleCase(strings.TrimSpace(m[2]))
	case interviewBy.MatchString(text):
		m := interviewBy.FindStringSubmatch(text)
		rec.Interviewee = titleCase(strings.TrimSpace(m[1]))
		rec.Interviewer = titleCase(strings.TrimSpace(m[2]))
	default:
		if m := interviewOnly.FindStringSubmatch(text); m != nil {
			rec.Interviewee = titleCase(strings.TrimSpace(m[1]))
		}
	}

	rec.Location = extractLocation(text)

	if !rec.Resolvable() {
		return nil, provider.ErrNotFound
	}
	return &rec, nil
}

// extractDate fills the record's Date and Year fields and returns the
// raw numeric date text (for removal before name parsing), if any.
func extractDate(text string, rec *citation.Record) string {
	raw := slashDate.FindString(text)
	if raw != "" {
		normalized := strings.ReplaceAll(raw, "-", "/")
		if t, err := time.Parse("1/2/2006", normalized); err == nil {
			rec.Date = t.Format("January 2, 2006")
		} else if t, err := time.Parse("1/2/06", normalized); err == nil {
			rec.Date = t.Format("January 2, 2006")
		} else {
			rec.Date = raw
		}
	} else if m := wordDate.FindStringSubmatch(text); m != nil {
		monthCased := strings.ToUpper(m[1][:1]) + strings.ToLower(m[1][1:])
		if t, err := time.Parse("Jan 2 2006", monthCased+" "+m[2]+" "+m[3]); err == nil {
			rec.Date = t.Format("January 2, 2006")
		} else {
			rec.Date = m[0]
		}
	}
	if rec.Date != "" {
		rec.Year = yearAny.FindString(rec.Date)
	}
	return raw
}

func extractLocation(text string) string {
	for i, re := range locPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		var city, state string
		if i == 2 {
			city, state = m[1], m[3]
		} else {
			city, state = m[1], m[2]
		}
		city = titleCase(strings.TrimSpace(city))
		state = strings.TrimSpace(state)
		if len(state) == 2 {
			state = strings.ToUpper(state)
		} else {
			state = titleCase(state)
		}
		return city + ", " + state
	}
	return ""
}

// Package classify assigns a source type to free-text citation input.
// This is the first, cheap layer of classification: fixed regex predicates
// evaluated in priority order. An optional AI layer can refine low
// confidence results downstream.
package classify

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/citeflow/citeflow/internal/citation"
	"github.com/citeflow/citeflow/internal/config"
	"github.com/citeflow/citeflow/internal/domains"
)

// Result is the outcome of classifying one input. It is produced once
// per input and not mutated afterwards.
type Result struct {
	Type       citation.SourceType `json:"type"`
	Confidence float64             `json:"confidence"`
	// Query is the input normalized for searching (e.g. reporter
	// numbers stripped from legal citations).
	Query string `json:"query"`
	// Hints carries optional extracted fragments (case parties, URL
	// host) for downstream providers.
	Hints map[string]string `json:"hints,omitempty"`
}

// Classifier runs the ordered predicate list. It is stateless apart from
// the injected confidence table, so a single value is safe for
// concurrent use.
type Classifier struct {
	conf config.Confidence
}

// New returns a Classifier using the given confidence table.
func New(conf config.Confidence) *Classifier {
	return &Classifier{conf: conf}
}

// Classify determines the source type of text. It is pure and total:
// the same input always yields the same result, and blank input yields
// Unknown with zero confidence rather than an error.
//
// Priority order, most specific first: Interview, Legal, Government,
// Newspaper, Medical, Journal, Book, URL, Unknown. The order encodes
// precedence for overlapping matches - a case citation hosted on a
// newspaper domain still classifies Legal.
func (c *Classifier) Classify(text string) Result {
	clean := strings.TrimSpace(text)
	if clean == "" {
		return Result{Type: citation.Unknown, Confidence: 0, Query: ""}
	}

	switch {
	case isInterview(clean):
		return Result{Type: citation.Interview, Confidence: c.conf.Interview, Query: clean}
	case isLegal(clean):
		r := Result{Type: citation.Legal, Confidence: c.conf.Legal, Query: cleanLegalQuery(clean)}
		if p, d, ok := SplitCaseParties(clean); ok {
			r.Hints = map[string]string{"plaintiff": p, "defendant": d}
		}
		return r
	case isGovernment(clean):
		return withHost(Result{Type: citation.Government, Confidence: c.conf.Government, Query: clean})
	case isNewspaper(clean):
		return withHost(Result{Type: citation.Newspaper, Confidence: c.conf.Newspaper, Query: clean})
	case isMedical(clean):
		return Result{Type: citation.Medical, Confidence: c.conf.Medical, Query: clean}
	case isJournal(clean):
		return Result{Type: citation.Journal, Confidence: c.conf.Journal, Query: clean}
	case isBook(clean):
		return Result{Type: citation.Book, Confidence: c.conf.Book, Query: clean}
	case IsURL(clean):
		return withHost(Result{Type: citation.URL, Confidence: c.conf.URL, Query: clean})
	default:
		return Result{Type: citation.Unknown, Confidence: 0, Query: clean}
	}
}

// IsURL reports whether text is a bare http(s) URL.
func IsURL(text string) bool {
	clean := strings.TrimSpace(text)
	return strings.HasPrefix(clean, "http://") || strings.HasPrefix(clean, "https://")
}

var (
	interviewNegative = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bhistory of interviews?\b`),
		regexp.MustCompile(`(?i)\binterview process\b`),
		regexp.MustCompile(`(?i)\binterview technique`),
		regexp.MustCompile(`(?i)\bjob interview\b`),
		regexp.MustCompile(`(?i)\binterview question`),
		regexp.MustCompile(`(?i)\binterview skill`),
		regexp.MustCompile(`(?i)\binterview method`),
		regexp.MustCompile(`(?i)\binterviews?\s+(in|about|on|of)\b`),
	}
	interviewStrong = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\boral history\b`),
		regexp.MustCompile(`(?i)\bpersonal communication\b`),
		regexp.MustCompile(`(?i)\bconversation with\b`),
		regexp.MustCompile(`(?i)\binterviewed?\s+by\b`),
		regexp.MustCompile(`(?i)\binterview\s+with\b`),
		regexp.MustCompile(`\binterview[,\s]+[A-Z]`), // "interview, Alexandria"
		regexp.MustCompile(`(?i)^[a-z\s.]+interview\b`),
	}
	interviewYear = regexp.MustCompile(`(?i)interview.*\d{4}`)
	interviewCity = regexp.MustCompile(`interview.*[A-Z][a-z]+,\s*[A-Z]{2}`)
)

// isInterview detects interview and oral-history citations. Negative
// patterns run first so prose that merely mentions interviews ("the
// interview process") never matches.
func isInterview(text string) bool {
	lower := strings.ToLower(text)
	if !strings.Contains(lower, "interview") &&
		!strings.Contains(lower, "oral history") &&
		!strings.Contains(lower, "personal communication") &&
		!strings.Contains(lower, "conversation with") {
		return false
	}
	for _, re := range interviewNegative {
		if re.MatchString(text) {
			return false
		}
	}
	for _, re := range interviewStrong {
		if re.MatchString(text) {
			return true
		}
	}
	// Weak signal: "interview" plus a nearby year or "City, ST".
	return interviewYear.MatchString(text) || interviewCity.MatchString(text)
}

var (
	neutralCitation = regexp.MustCompile(`\[\d{4}\]`)
	versusPattern   = regexp.MustCompile(`(?i)\s(v|vs|versus)\.?\s`)
	reporterPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d+\s+U\.S\.\s+\d+`),                     // 388 U.S. 1
		regexp.MustCompile(`\d+\s+[A-Z][a-z]*\.?\s*\d*[a-z]*\.?\s+\d+`), // 248 N.Y. 339, 17 Cal. 3d 425
		regexp.MustCompile(`\d+\s+F\.\d+[a-z]*\s+\d+`),               // 159 F.2d 169
		regexp.MustCompile(`\d+\s+F\.\s*Supp\.\s*\d*[a-z]*\s+\d+`),   // 400 F. Supp. 2d 707
		regexp.MustCompile(`\d+\s+[A-Z]\.\d+[a-z]*\s+\d+`),           // 355 A.2d 647
		regexp.MustCompile(`\d+\s+[A-Z][A-Za-z.]+\s+\d+`),            // volume Reporter page
	}
)

// isLegal detects case citations: party-versus-party names, US reporter
// citations, UK neutral citations, and case-law site URLs. Gazette
// citations ("88 FR 12345") are excluded up front so they fall through
// to the government detector despite fitting the generic reporter shape.
func isLegal(text string) bool {
	if fedRegister.MatchString(text) || fedRegLong.MatchString(text) {
		return false
	}
	if neutralCitation.MatchString(text) {
		return true
	}
	if IsURL(text) && domains.IsLegalDomain(text) {
		return true
	}
	if versusPattern.MatchString(text) {
		return true
	}
	for _, re := range reporterPatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// cleanLegalQuery strips reporter citation numbers so the remaining case
// name searches cleanly.
func cleanLegalQuery(text string) string {
	cleaned := text
	for _, re := range reporterPatterns {
		cleaned = re.ReplaceAllString(cleaned, "")
	}
	cleaned = strings.Trim(strings.TrimSpace(cleaned), " ,;")
	if cleaned == "" {
		return text
	}
	return cleaned
}

var partySplit = regexp.MustCompile(`(?i)^(.*?)\s+(?:v|vs|versus)\.?\s+(.*)$`)

// SplitCaseParties extracts plaintiff and defendant from an "A v. B"
// case name. Reporter numbers are stripped from the defendant side.
func SplitCaseParties(text string) (plaintiff, defendant string, ok bool) {
	m := partySplit.FindStringSubmatch(cleanLegalQuery(text))
	if m == nil {
		return "", "", false
	}
	plaintiff = strings.Trim(m[1], " ,")
	defendant = strings.Trim(m[2], " ,")
	if plaintiff == "" || defendant == "" {
		return "", "", false
	}
	return plaintiff, defendant, true
}

var (
	govDomain   = regexp.MustCompile(`\.gov(/|$)`)
	fedRegister = regexp.MustCompile(`(?i)\b\d+\s+FR\s+\d+\b`)
	fedRegLong  = regexp.MustCompile(`(?i)\b\d+\s+federal\s+register\s+\d+\b`)
)

func isGovernment(text string) bool {
	clean := strings.ToLower(strings.TrimRight(text, ".,;:)"))
	return govDomain.MatchString(clean) ||
		fedRegister.MatchString(clean) ||
		fedRegLong.MatchString(clean)
}

func isNewspaper(text string) bool {
	if !IsURL(text) {
		return false
	}
	u, err := url.Parse(strings.TrimSpace(text))
	if err != nil {
		return false
	}
	return domains.IsNewspaperDomain(u.Host)
}

var pmidPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)pmid:?\s*\d+`),
	regexp.MustCompile(`(?i)pubmed\s*id:?\s*\d+`),
	regexp.MustCompile(`(?i)pubmed:\s*\d+`),
}

// isMedical detects clinical citations: a PMID, one strong clinical
// phrase, or at least two general clinical terms.
func isMedical(text string) bool {
	lower := strings.ToLower(text)
	for _, re := range pmidPatterns {
		if re.MatchString(lower) {
			return true
		}
	}
	for _, phrase := range domains.StrongMedicalPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	count := 0
	for _, term := range domains.MedicalTerms {
		if strings.Contains(lower, term) {
			count++
			if count >= 2 {
				return true
			}
		}
	}
	return false
}

var (
	doiPattern    = regexp.MustCompile(`10\.\d{4,}/`)
	volumeIssue   = regexp.MustCompile(`\b\d+\s*\(\d+\)`)
	volumeMarker  = regexp.MustCompile(`(?i)\bvol\.?\s*\d+`)
	pageRangePP   = regexp.MustCompile(`(?i)\bpp\.?\s*\d+\s*[-–]\s*\d+`)
	pageRangeLong = regexp.MustCompile(`(?i)\bpages?\s*\d+\s*[-–]\s*\d+`)
)

func isJournal(text string) bool {
	lower := strings.ToLower(text)
	return doiPattern.MatchString(lower) ||
		volumeIssue.MatchString(lower) ||
		volumeMarker.MatchString(lower) ||
		pageRangePP.MatchString(lower) ||
		pageRangeLong.MatchString(lower)
}

var (
	isbnPattern    = regexp.MustCompile(`(?i)\b(?:97[89][-\s]?)?(\d[-\s]?){9}[\dX]\b`)
	editionOrdinal = regexp.MustCompile(`(?i)\b\d+(?:st|nd|rd|th)\s+(?:ed|edition)`)
	editionWord    = regexp.MustCompile(`(?i)\bedition\b`)
	bookWord       = regexp.MustCompile(`(?i)\bbook\b`)
)

func isBook(text string) bool {
	lower := strings.ToLower(text)
	if isbnPattern.MatchString(text) || strings.Contains(lower, "isbn") {
		return true
	}
	if editionOrdinal.MatchString(text) || editionWord.MatchString(text) {
		return true
	}
	for _, hint := range []string{"press", "publishers", "publishing", "books"} {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return bookWord.MatchString(text)
}

func withHost(r Result) Result {
	if u, err := url.Parse(r.Query); err == nil && u.Host != "" {
		r.Hints = map[string]string{"host": strings.TrimPrefix(strings.ToLower(u.Host), "www.")}
	}
	return r
}

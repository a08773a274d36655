// Package enhance rewrites messy note text into tighter search queries.
// It sits between classification and search: input that already looks
// like a citation passes through untouched, while informal fragments
// ("that book by Kuhn about paradigms") are reduced to author and title
// fragments. Output is only ever used as a search query.
package enhance

import (
	"regexp"
	"strings"

	"github.com/citeflow/citeflow/internal/citation"
)

// Structural markers: input carrying any of these is already a usable
// query and must not be rewritten.
var structural = []*regexp.Regexp{
	regexp.MustCompile(`10\.\d{4,}/`),                  // DOI
	regexp.MustCompile(`(?i)\bisbn\b`),                 // ISBN keyword
	regexp.MustCompile(`\b\d+\s*\(\d+\)`),              // volume(issue)
	regexp.MustCompile(`(?i)\bpp?\.?\s*\d+\s*[-–]\s*\d+`), // page range
	regexp.MustCompile(`(?i)^https?://`),               // URL
	regexp.MustCompile(`(?i)\s(v|vs|versus)\.?\s`),     // case name
	regexp.MustCompile(`(?i)\bpmid:?\s*\d+`),           // PubMed ID
}

// Informal phrasing that marks a note as a half-remembered reference
// rather than a citation.
var informal = []string{
	"that book", "that article", "that paper", "the one",
	"something about", "something by", "i think", "i remember",
	"can't remember", "cant remember", "not sure",
	"the book about", "the article about", "the paper about",
	"by someone",
}

// titleMarkers introduce a title fragment in informal notes.
var titleMarkers = []string{"called", "titled", "entitled", "about", "on"}

// stopWords are dropped in the fallback keyword filter.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "that": true, "this": true,
	"those": true, "these": true, "of": true, "in": true, "on": true,
	"at": true, "by": true, "for": true, "with": true, "about": true,
	"from": true, "to": true, "and": true, "or": true, "but": true,
	"is": true, "was": true, "are": true, "were": true, "be": true,
	"i": true, "it": true, "its": true, "one": true, "some": true,
	"something": true, "think": true, "remember": true, "book": true,
	"article": true, "paper": true, "called": true, "titled": true,
	"entitled": true, "wrote": true, "cant": true, "can't": true,
	"sure": true, "not": true, "maybe": true,
}

// Enhance returns a search query for text. Structured input passes
// through unchanged; messy notes are rewritten to
// "<author-fragment> <title-fragment>". Best effort: it never fails,
// and at worst returns the trimmed input.
func Enhance(text string, t citation.SourceType) string {
	clean := strings.TrimSpace(text)
	if clean == "" {
		return ""
	}
	// Structured citations and the types resolved by local extractors
	// search with their own text as-is.
	if t == citation.Interview || t == citation.URL || hasStructure(clean) {
		return clean
	}
	if !isMessy(clean) {
		return clean
	}
	return rewrite(clean)
}

// IsMessy reports whether the text reads like an informal note rather
// than a citation.
func IsMessy(text string) bool {
	clean := strings.TrimSpace(text)
	return clean != "" && !hasStructure(clean) && isMessy(clean)
}

func hasStructure(text string) bool {
	for _, re := range structural {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func isMessy(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range informal {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	// Short keyword fragments: few words, none of the shape of a
	// formal citation (no comma-separated fields, no year).
	words := strings.Fields(text)
	if len(words) <= 4 && !strings.Contains(text, ",") && !yearPattern.MatchString(text) {
		return true
	}
	return false
}

var yearPattern = regexp.MustCompile(`\b(1[5-9]\d{2}|20\d{2})\b`)

var authorLead = regexp.MustCompile(`^([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)\b`)
var byAuthor = regexp.MustCompile(`\bby\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)\b`)

func rewrite(text string) string {
	author := authorFragment(text)
	title := titleFragment(text)

	if title == "" {
		title = keywordFilter(text, author)
	}

	out := strings.TrimSpace(author + " " + title)
	if out == "" {
		return strings.TrimSpace(text)
	}
	return out
}

// authorFragment prefers an explicit "by Name" marker, falling back to
// a capitalized leading token.
func authorFragment(text string) string {
	if m := byAuthor.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := authorLead.FindStringSubmatch(text); m != nil {
		// Leading articles are not author names.
		if !stopWords[strings.ToLower(m[1])] {
			return m[1]
		}
	}
	return ""
}

// titleFragment returns the text after the last title marker, stripped
// of any trailing "by Author" clause.
func titleFragment(text string) string {
	lower := strings.ToLower(text)
	best := -1
	bestLen := 0
	for _, marker := range titleMarkers {
		idx := strings.LastIndex(lower, " "+marker+" ")
		if idx > best {
			best = idx
			bestLen = len(marker) + 2
		}
	}
	if best < 0 {
		return ""
	}
	frag := text[best+bestLen:]
	if m := byAuthor.FindStringIndex(frag); m != nil {
		frag = frag[:m[0]]
	}
	return strings.Trim(strings.TrimSpace(frag), `"'.,`)
}

// keywordFilter drops stop words, keeping content-bearing tokens in
// order.
func keywordFilter(text, exclude string) string {
	var kept []string
	excluded := make(map[string]bool)
	for _, w := range strings.Fields(exclude) {
		excluded[strings.ToLower(w)] = true
	}
	for _, w := range strings.Fields(text) {
		key := strings.ToLower(strings.Trim(w, `"'.,!?`))
		if key == "" || stopWords[key] || excluded[key] {
			continue
		}
		kept = append(kept, strings.Trim(w, `"'.,!?`))
	}
	return strings.Join(kept, " ")
}

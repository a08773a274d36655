// Package extract implements the local, no-network providers for source
// types whose metadata lives in the citation text itself: interviews,
// newspaper URLs, government documents, and generic URLs.
package extract

import (
	"regexp"
	"strings"
	"time"
)

// now is swapped in tests that assert on access dates.
var now = time.Now

func accessDate() string {
	return now().Format("January 2, 2006")
}

var slugExtension = regexp.MustCompile(`\.[a-z]{2,4}$`)

// acronymFixes repairs acronyms mangled by title-casing a URL slug.
var acronymFixes = map[string]string{
	"Fda": "FDA", "Nih": "NIH", "Cdc": "CDC",
	"Us": "US", "Uk": "UK", "Ai": "AI",
	"Ceo": "CEO", "Cfo": "CFO", "Cto": "CTO",
	"Nasa": "NASA", "Fbi": "FBI", "Cia": "CIA",
	"Nba": "NBA", "Nfl": "NFL", "Mlb": "MLB",
	"Covid": "COVID", "Dna": "DNA", "Rna": "RNA",
}

// slugTitle converts a URL slug into a readable title.
func slugTitle(slug string) string {
	slug = slugExtension.ReplaceAllString(slug, "")
	slug = strings.NewReplacer("-", " ", "_", " ").Replace(slug)
	title := titleCase(slug)
	words := strings.Fields(title)
	for i, w := range words {
		if fixed, ok := acronymFixes[w]; ok {
			words[i] = fixed
		}
	}
	return strings.Join(words, " ")
}

// titleCase capitalizes the first letter of each word.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// lastPathSegment returns the final segment of a URL path, "" for empty
// paths.
func lastPathSegment(path string) string {
	path = strings.Trim(path, "/")
	if path == "" {
		return ""
	}
	parts := strings.Split(path, "/")
	return parts[len(parts)-1]
}

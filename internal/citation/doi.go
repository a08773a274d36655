package citation

import (
	"regexp"
	"strings"
)

// Publisher URLs embed DOIs in a handful of shapes: doi.org resolver
// links, a /doi/ path segment (optionally behind full/, abs/, or pdf/),
// a doi= query parameter, and Nature's article-ID slugs which map
// 1:1 onto 10.1038 DOIs.
var (
	doiOrgPattern     = regexp.MustCompile(`doi\.org/(10\.\d{4,9}/[^\s&?#]+)`)
	doiPathPattern    = regexp.MustCompile(`/doi/(?:full/|abs/|pdf/)?(10\.\d{4,9}/[^\s&?#]+)`)
	doiParamPattern   = regexp.MustCompile(`[?&]doi=(10\.\d{4,9}/[^\s&?#]+)`)
	natureSlugPattern = regexp.MustCompile(`nature\.com/articles/(s\d+-\d+-\d+-\w+)`)
	bareDOIPattern    = regexp.MustCompile(`\b10\.\d{4,9}/[^\s<>"&?#]+`)
)

// ExtractDOI pulls a DOI out of free text: publisher and resolver URLs
// first, then a bare DOI anywhere in the text. Returns "" when the text
// carries none.
func ExtractDOI(text string) string {
	if text == "" {
		return ""
	}
	for _, p := range []*regexp.Regexp{doiOrgPattern, doiPathPattern, doiParamPattern} {
		if m := p.FindStringSubmatch(text); m != nil {
			return strings.TrimRight(m[1], ".,;:)")
		}
	}
	if m := natureSlugPattern.FindStringSubmatch(text); m != nil {
		return "10.1038/" + m[1]
	}
	if m := bareDOIPattern.FindString(text); m != "" {
		return strings.TrimRight(m, ".,;:)")
	}
	return ""
}

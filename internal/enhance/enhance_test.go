package enhance

import (
	"testing"

	"github.com/citeflow/citeflow/internal/citation"
)

func TestEnhancePassesStructuredInputThrough(t *testing.T) {
	tests := []struct {
		name string
		in   string
		typ  citation.SourceType
	}{
		{"doi", "10.1086/737056", citation.Journal},
		{"isbn", "ISBN 978-0-226-45808-3", citation.Book},
		{"volume issue", "Modern Philology 119(2)", citation.Journal},
		{"page range", "Semantics, pp. 45-67", citation.Journal},
		{"url", "https://example.com/article", citation.URL},
		{"case name", "Roe v. Wade", citation.Legal},
		{"pmid", "PMID: 31986264", citation.Medical},
		{"formal citation", "Kuhn, The Structure of Scientific Revolutions, 1962", citation.Book},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Enhance(tt.in, tt.typ); got != tt.in {
				t.Errorf("Enhance(%q) = %q, want unchanged", tt.in, got)
			}
		})
	}
}

func TestEnhanceRewritesMessyNotes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"by-author with about-title",
			"that book by Kuhn about paradigm shifts in science",
			"Kuhn paradigm shifts in science",
		},
		{
			"called marker",
			"the one called Thinking Fast and Slow by Kahneman",
			"Kahneman Thinking Fast and Slow",
		},
		{
			"leading author keyword fallback",
			"Putnam bowling alone",
			"Putnam bowling alone",
		},
		{
			"bare keywords",
			"quantum entanglement basics",
			"quantum entanglement basics",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Enhance(tt.in, citation.Unknown); got != tt.want {
				t.Errorf("Enhance(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEnhanceNeverEmptyForNonEmptyInput(t *testing.T) {
	inputs := []string{"the", "a an the of", "x"}
	for _, in := range inputs {
		if got := Enhance(in, citation.Unknown); got == "" {
			t.Errorf("Enhance(%q) returned empty query", in)
		}
	}
}

func TestEnhanceSkipsExtractorTypes(t *testing.T) {
	in := "short note"
	if got := Enhance(in, citation.Interview); got != in {
		t.Errorf("interview input should pass through, got %q", got)
	}
	if got := Enhance(in, citation.URL); got != in {
		t.Errorf("url input should pass through, got %q", got)
	}
}

func TestIsMessy(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"that book by Kuhn about paradigms and stuff here", true},
		{"quantum gravity", true},
		{"Kuhn, The Structure of Scientific Revolutions, 1962", false},
		{"10.1086/737056", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsMessy(tt.in); got != tt.want {
			t.Errorf("IsMessy(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

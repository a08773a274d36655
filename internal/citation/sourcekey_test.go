package citation

import "testing"

func TestKeyDOIWinsOverEverything(t *testing.T) {
	a := Record{Type: Journal, DOI: "10.1086/737056", Title: "One Title", Authors: []string{"A Author"}}
	b := Record{Type: Journal, DOI: "https://doi.org/10.1086/737056", Title: "Completely Different", URL: "https://example.com/x"}

	if !a.Key().Equal(b.Key()) {
		t.Errorf("records with equal DOIs should share a key: %q vs %q", a.Key(), b.Key())
	}
}

func TestKeyURLNormalization(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		same bool
	}{
		{"query string stripped", "https://www.nytimes.com/2024/07/21/story.html?ref=home", "https://nytimes.com/2024/07/21/story.html", true},
		{"trailing slash stripped", "https://example.com/page/", "https://example.com/page", true},
		{"scheme case insensitive", "HTTPS://Example.COM/page", "https://example.com/page", true},
		{"different paths differ", "https://example.com/a", "https://example.com/b", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ka := Record{Type: URL, URL: tt.a}.Key()
			kb := Record{Type: URL, URL: tt.b}.Key()
			if got := ka.Equal(kb); got != tt.same {
				t.Errorf("Equal(%q, %q) = %v, want %v", ka, kb, got, tt.same)
			}
		})
	}
}

func TestKeyPriorityOrder(t *testing.T) {
	r := Record{
		Type:     Legal,
		CaseName: "Roe v. Wade",
		Citation: "410 U.S. 113",
		Title:    "Roe v. Wade",
		Authors:  []string{"Harry Blackmun"},
	}
	if got := r.Key(); got != SourceKey("case:roe v wade|410 us 113") {
		t.Errorf("case name + citation should win over title+author, got %q", got)
	}

	r.Citation = ""
	if got := r.Key(); got != SourceKey("work:roe v wade|harry blackmun") {
		t.Errorf("title + first author should win over bare case name, got %q", got)
	}

	r.Authors = nil
	if got := r.Key(); got != SourceKey("case:roe v wade") {
		t.Errorf("bare case name should be the last resort, got %q", got)
	}
}

func TestKeyEmptyNeverMatches(t *testing.T) {
	a := Record{Type: Interview, Interviewee: "John Smith"}
	b := Record{Type: Interview, Interviewee: "John Smith"}

	if a.Key().Equal(b.Key()) {
		t.Error("records with no derivable key must never compare equal")
	}
	if !a.Key().IsZero() {
		t.Errorf("expected zero key, got %q", a.Key())
	}
}

func TestNormalizeDOI(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"10.1086/737056", "10.1086/737056"},
		{"https://doi.org/10.1086/737056", "10.1086/737056"},
		{"doi:10.1234/ABC.def", "10.1234/abc.def"},
		{"not a doi", ""},
		{"10.1086", ""}, // no suffix
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeDOI(tt.in); got != tt.want {
			t.Errorf("NormalizeDOI(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolvable(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want bool
	}{
		{"legal with case name", Record{Type: Legal, CaseName: "Roe v. Wade"}, true},
		{"legal without case name", Record{Type: Legal, Citation: "410 U.S. 113"}, false},
		{"interview with interviewee", Record{Type: Interview, Interviewee: "Ada Lovelace"}, true},
		{"interview with interviewer only", Record{Type: Interview, Interviewer: "Alan Turing"}, true},
		{"interview with neither", Record{Type: Interview, Title: "An interview"}, false},
		{"newspaper with url only", Record{Type: Newspaper, URL: "https://nytimes.com/a"}, true},
		{"journal with title", Record{Type: Journal, Title: "On Things"}, true},
		{"journal without title", Record{Type: Journal, DOI: "10.1/x"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.Resolvable(); got != tt.want {
				t.Errorf("Resolvable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDedupKey(t *testing.T) {
	long := Record{Title: "A Very Long Title That Goes On And On And On Past Fifty Characters Easily"}
	if got := long.DedupKey(); len(got) != 50 {
		t.Errorf("dedup key should truncate to 50 chars, got %d", len(got))
	}

	legal := Record{Type: Legal, CaseName: "Loving v. Virginia", Title: "ignored"}
	if got := legal.DedupKey(); got != "loving v. virginia" {
		t.Errorf("legal dedup key should use case name, got %q", got)
	}
}

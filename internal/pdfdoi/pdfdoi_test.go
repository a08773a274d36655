package pdfdoi

import "testing"

func TestFindDOI(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain", "DOI: 10.1038/171737a0", "10.1038/171737a0"},
		{"in sentence", "available at https://doi.org/10.1126/science.1236498.", "10.1126/science.1236498"},
		{"trailing punctuation", "see 10.1016/j.cell.2019.01.017;", "10.1016/j.cell.2019.01.017"},
		{"none", "no identifier in this text", ""},
		{"too short", "10.1/x", ""},
		{"missing suffix", "10.1038/", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindDOI(tt.text); got != tt.want {
				t.Errorf("FindDOI(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsHeaderLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Journal of Theoretical Biology", true},
		{"Volume 12, Issue 3", true},
		{"Copyright 2020 Elsevier", true},
		{"The Evolution of Cooperation in Structured Populations", false},
	}
	for _, tt := range tests {
		if got := isHeaderLine(tt.line); got != tt.want {
			t.Errorf("isHeaderLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

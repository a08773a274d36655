package main

import "testing"

func TestTruncateString(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"this is a longer string", 10, "this is..."},
	}
	for _, tt := range tests {
		if got := truncateString(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

func TestPlainText(t *testing.T) {
	got := plainText(`Thomas Kuhn, <i>The Structure of Scientific Revolutions</i>, (1962).`)
	want := "Thomas Kuhn, The Structure of Scientific Revolutions, (1962)."
	if got != want {
		t.Errorf("plainText = %q, want %q", got, want)
	}
}

func TestFormatAuthorsShort(t *testing.T) {
	authors := []string{"James Watson", "Francis Crick", "Rosalind Franklin", "Maurice Wilkins"}
	if got := formatAuthorsShort(authors, 3); got != "James Watson, Francis Crick, Rosalind Franklin, et al." {
		t.Errorf("formatAuthorsShort = %q", got)
	}
	if got := formatAuthorsShort(nil, 3); got != "" {
		t.Errorf("formatAuthorsShort(nil) = %q, want empty", got)
	}
}

package citation

import "testing"

func TestExtractDOI(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			"publisher doi path",
			"https://www.journals.uchicago.edu/doi/10.1086/737056",
			"10.1086/737056",
		},
		{
			"doi.org resolver link",
			"https://doi.org/10.1038/nature12373",
			"10.1038/nature12373",
		},
		{
			"doi path with full segment",
			"https://onlinelibrary.wiley.com/doi/full/10.1002/abc.123",
			"10.1002/abc.123",
		},
		{
			"doi query parameter",
			"https://example.com/article?doi=10.1016/j.cell.2019.01.017&ref=x",
			"10.1016/j.cell.2019.01.017",
		},
		{
			"nature article slug",
			"https://www.nature.com/articles/s41586-021-03819-2",
			"10.1038/s41586-021-03819-2",
		},
		{
			"bare doi in note text",
			"Kuhn paradigm shifts 10.7208/kuhn",
			"10.7208/kuhn",
		},
		{
			"bare doi with trailing punctuation",
			"see 10.1016/j.cell.2019.01.017;",
			"10.1016/j.cell.2019.01.017",
		},
		{"no doi", "no identifier in this text", ""},
		{"prefix too short", "10.1/x", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractDOI(tt.text); got != tt.want {
				t.Errorf("ExtractDOI(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

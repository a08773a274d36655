package format

import (
	"strings"
	"testing"

	"github.com/citeflow/citeflow/internal/citation"
)

func watsonCrick() *citation.Record {
	return &citation.Record{
		Type:    citation.Journal,
		Title:   "Molecular Structure of Nucleic Acids",
		Authors: []string{"James Watson", "Francis Crick"},
		Year:    "1953",
		Journal: "Nature",
		Volume:  "171",
		Pages:   "737-738",
		DOI:     "10.1038/171737a0",
	}
}

func kuhnBook() *citation.Record {
	return &citation.Record{
		Type:      citation.Book,
		Title:     "The Structure of Scientific Revolutions",
		Authors:   []string{"Thomas Kuhn"},
		Year:      "1962",
		Publisher: "University of Chicago Press",
		Place:     "Chicago",
	}
}

func brownCase() *citation.Record {
	return &citation.Record{
		Type:     citation.Legal,
		CaseName: "Brown v. Board of Education",
		Citation: "347 U.S. 483",
		Court:    "Supreme Court of the United States",
		Year:     "1954",
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()

	want := []string{"apa", "bluebook", "chicago", "mla", "oscola"}
	got := reg.Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if _, ok := reg.Get("Chicago"); !ok {
		t.Error("Get() is not case-insensitive")
	}
	if _, ok := reg.Get("turabian"); ok {
		t.Error("Get() returned an unregistered style")
	}
}

func TestChicagoJournal(t *testing.T) {
	got := (&Chicago{}).Format(watsonCrick())
	want := `James Watson and Francis Crick, "Molecular Structure of Nucleic Acids", <i>Nature</i> 171 (1953): 737-738, https://doi.org/10.1038/171737a0.`
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestChicagoBook(t *testing.T) {
	got := (&Chicago{}).Format(kuhnBook())
	want := `Thomas Kuhn, <i>The Structure of Scientific Revolutions</i>, (Chicago: University of Chicago Press, 1962).`
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestChicagoLegalOmitsCourtForSCOTUS(t *testing.T) {
	got := (&Chicago{}).Format(brownCase())
	want := `<i>Brown v. Board of Education</i>, 347 U.S. 483 (1954).`
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestChicagoInterview(t *testing.T) {
	rec := &citation.Record{
		Type:        citation.Interview,
		Interviewee: "John Smith",
		Location:    "Boston, MA",
		Date:        "May 7, 1918",
	}
	got := (&Chicago{}).Format(rec)
	want := "John Smith, interview by author, Boston, MA, May 7, 1918."
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestAPAJournal(t *testing.T) {
	got := (&APA{}).Format(watsonCrick())
	want := `Watson, J., & Crick, F. (1953). Molecular Structure of Nucleic Acids. <i>Nature</i>, <i>171</i>, 737-738. https://doi.org/10.1038/171737a0`
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestAPABook(t *testing.T) {
	got := (&APA{}).Format(kuhnBook())
	want := `Kuhn, T. (1962). <i>The Structure of Scientific Revolutions</i>. University of Chicago Press.`
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestAPAShortForm(t *testing.T) {
	got := (&APA{}).FormatShort(watsonCrick(), "737")
	want := "Watson and Crick (1953, p. 737)."
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestMLAJournal(t *testing.T) {
	got := (&MLA{}).Format(watsonCrick())
	want := `Watson, James, and Francis Crick. "Molecular Structure of Nucleic Acids." <i>Nature</i>, vol. 171, 1953, pp. 737-738. https://doi.org/10.1038/171737a0.`
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestMLAShortForm(t *testing.T) {
	got := (&MLA{}).FormatShort(watsonCrick(), "737")
	want := "Watson and Crick 737."
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestBluebookLegal(t *testing.T) {
	got := (&Bluebook{}).Format(brownCase())
	want := `<i>Brown v. Board of Education</i>, 347 U.S. 483 (1954).`
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestBluebookShortLegal(t *testing.T) {
	rec := &citation.Record{
		Type:     citation.Legal,
		CaseName: "Loving v. Virginia",
		Citation: "388 U.S. 1",
		Year:     "1967",
	}
	got := (&Bluebook{}).FormatShort(rec, "12")
	want := `<i>Loving</i>, 388 U.S. 1 at 12.`
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestBluebookShortSecondary(t *testing.T) {
	got := (&Bluebook{}).FormatShort(watsonCrick(), "755")
	want := "Watson et al., supra, at 755."
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestBluebookCourtAbbreviation(t *testing.T) {
	rec := &citation.Record{
		Type:     citation.Legal,
		CaseName: "Smith v. Jones",
		Citation: "500 F.2d 100",
		Court:    "Court of Appeals for the Fourth Circuit",
		Year:     "1974",
	}
	got := (&Bluebook{}).Format(rec)
	if !strings.Contains(got, "(Cir. 1974)") {
		t.Errorf("got %q, want abbreviated court in parenthetical", got)
	}
}

func TestOSCOLALegalNeutralCitation(t *testing.T) {
	rec := &citation.Record{
		Type:         citation.Legal,
		CaseName:     "Donoghue v. Stevenson",
		Citation:     "[1932] AC 562",
		Jurisdiction: "UK",
		Year:         "1932",
	}
	got := (&OSCOLA{}).Format(rec)
	want := `<i>Donoghue v Stevenson</i> [1932] AC 562`
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestOSCOLAJournal(t *testing.T) {
	rec := &citation.Record{
		Type:    citation.Journal,
		Title:   "Positivism and the Separation of Law and Morals",
		Authors: []string{"HLA Hart"},
		Year:    "1958",
		Volume:  "71",
		Journal: "Harv L Rev",
		Pages:   "593",
	}
	got := (&OSCOLA{}).Format(rec)
	want := "HLA Hart, 'Positivism and the Separation of Law and Morals' (1958) 71 Harv L Rev 593"
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestIbidUniformAcrossStyles(t *testing.T) {
	reg := NewRegistry()
	for _, name := range reg.Names() {
		f, _ := reg.Get(name)
		if got := f.FormatIbid(""); got != "ibid." {
			t.Errorf("%s: FormatIbid() = %q, want %q", name, got, "ibid.")
		}
		if got := f.FormatIbid("45"); got != "ibid., 45." {
			t.Errorf("%s: FormatIbid(45) = %q, want %q", name, got, "ibid., 45.")
		}
		if strings.Contains(f.FormatIbid("45"), "<i>") {
			t.Errorf("%s: ibid must never be italicized", name)
		}
	}
}

func TestFallbackOnEmptyRecord(t *testing.T) {
	rec := &citation.Record{Type: citation.Unknown, RawQuery: "some raw text"}
	for _, f := range []Formatter{&Chicago{}, &APA{}, &MLA{}, &Bluebook{}, &OSCOLA{}} {
		if got := f.Format(rec); got == "" {
			t.Errorf("%s: Format() returned empty string", f.Name())
		}
	}
}

func TestMedicalFormatsAsJournal(t *testing.T) {
	rec := watsonCrick()
	rec.Type = citation.Medical
	if got, want := (&Chicago{}).Format(rec), (&Chicago{}).Format(watsonCrick()); got != want {
		t.Errorf("medical rendering differs from journal:\n%q\n%q", got, want)
	}
}

func TestAuthorHelpers(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"invert", invertName("Hannah Arendt"), "Arendt, Hannah"},
		{"invert middle", invertName("Thomas S. Kuhn"), "Kuhn, Thomas S."},
		{"short one", authorsShort([]string{"Thomas Kuhn"}, 2), "Kuhn"},
		{"short two", authorsShort([]string{"James Watson", "Francis Crick"}, 2), "Watson and Crick"},
		{"short etal", authorsShort([]string{"A One", "B Two", "C Three"}, 2), "One et al."},
		{"case", shortCaseName("Roe v. Wade"), "Roe"},
		{"agency", agencyShort("National Institutes of Health"), "NIH"},
		{"agency short", agencyShort("Department of Energy"), "Department of Energy"},
		{"title", shortTitle("A Very Long Title About Many Things"), "A Very Long Title"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

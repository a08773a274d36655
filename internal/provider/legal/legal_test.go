package legal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/citeflow/citeflow/internal/citation"
	"github.com/citeflow/citeflow/internal/provider"
)

func TestLandmarkExactMatch(t *testing.T) {
	l := NewLandmark()
	rec, err := l.Search(context.Background(), "Roe v. Wade")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if rec.CaseName != "Roe v. Wade" || rec.Citation != "410 U.S. 113" || rec.Year != "1973" {
		t.Errorf("got %+v", rec)
	}
	if rec.Type != citation.Legal {
		t.Errorf("Type = %s, want legal", rec.Type)
	}
}

func TestLandmarkNormalization(t *testing.T) {
	l := NewLandmark()
	// "vs" and "versus" fold to "v"; punctuation is ignored.
	for _, q := range []string{"Roe vs. Wade", "roe versus wade", "ROE V WADE"} {
		rec, err := l.Search(context.Background(), q)
		if err != nil {
			t.Fatalf("Search(%q) error = %v", q, err)
		}
		if rec.CaseName != "Roe v. Wade" {
			t.Errorf("Search(%q) = %q", q, rec.CaseName)
		}
	}
}

func TestLandmarkAlias(t *testing.T) {
	l := NewLandmark()
	rec, err := l.Search(context.Background(), "the Dobbs decision")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if rec.CaseName != "Dobbs v. Jackson Women's Health Organization" {
		t.Errorf("alias lookup = %q", rec.CaseName)
	}
}

func TestLandmarkFuzzy(t *testing.T) {
	l := NewLandmark()
	rec, err := l.Search(context.Background(), "browm v board of education")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if rec.CaseName != "Brown v. Board of Education" {
		t.Errorf("fuzzy lookup = %q", rec.CaseName)
	}
}

func TestLandmarkMiss(t *testing.T) {
	l := NewLandmark()
	if _, err := l.Search(context.Background(), "completely unrelated querytext"); !provider.IsNotFound(err) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestUKCitations(t *testing.T) {
	u := NewUKCitations()

	rec, err := u.Search(context.Background(), "R (Miller) v The Prime Minister [2019] UKSC 41")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if rec.CaseName != "R (Miller) v The Prime Minister" {
		t.Errorf("CaseName = %q", rec.CaseName)
	}
	if rec.Citation != "[2019] UKSC 41" {
		t.Errorf("Citation = %q", rec.Citation)
	}
	if rec.Year != "2019" || rec.Court != "UKSC" || rec.Jurisdiction != "UK" {
		t.Errorf("got %+v", rec)
	}

	// Division suffix preserved.
	rec, err = u.Search(context.Background(), "[2022] EWHC 456 (QB)")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if rec.Citation != "[2022] EWHC 456 (QB)" {
		t.Errorf("Citation = %q", rec.Citation)
	}
	if rec.CaseName != "Unknown Case" {
		t.Errorf("CaseName = %q", rec.CaseName)
	}

	if _, err := u.Search(context.Background(), "Roe v Wade"); !provider.IsNotFound(err) {
		t.Errorf("expected not-found for non-UK input, got %v", err)
	}
}

func TestSearchAttempts(t *testing.T) {
	attempts := searchAttempts("Kitzmiller v. Dover Area School District")

	if len(attempts) != 4 {
		t.Fatalf("got %d attempts, want 4", len(attempts))
	}
	if attempts[0].q != `"Kitzmiller v. Dover Area School District"` {
		t.Errorf("phrase attempt = %q", attempts[0].q)
	}
	if attempts[1].q != "Kitzmiller Dover Area School District" {
		t.Errorf("keyword attempt = %q", attempts[1].q)
	}
	if attempts[2].q != "Kitzmiller~ Dover~ Area~ School~ District~" {
		t.Errorf("fuzzy attempt = %q", attempts[2].q)
	}
	if attempts[3].q != "Kitzmiller" || attempts[3].matchPlaintiff != "kitzmiller" {
		t.Errorf("plaintiff attempt = %+v", attempts[3])
	}
}

func TestSearchAttemptsGenericPlaintiffSkipped(t *testing.T) {
	attempts := searchAttempts("United v. Example")
	for _, a := range attempts {
		if a.name == "plaintiff" {
			t.Errorf("generic plaintiff should not get its own attempt: %+v", a)
		}
	}
}

func TestCourtListenerFallsThroughAttempts(t *testing.T) {
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		queries = append(queries, q)
		// Phrase attempt finds nothing; keyword attempt hits.
		if len(queries) == 1 {
			json.NewEncoder(w).Encode(map[string]any{"results": []any{}})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{{
				"caseName":     "Kitzmiller v. Dover Area School Dist.",
				"dateFiled":    "2005-12-20",
				"citation":     []string{"400 F. Supp. 2d 707"},
				"court":        "M.D. Pa.",
				"absolute_url": "/opinion/123/kitzmiller/",
			}},
		})
	}))
	defer srv.Close()

	cl := NewCourtListener(
		WithCourtListenerBaseURL(srv.URL),
		WithCourtListenerHTTPClient(provider.NewHTTPClient(provider.WithRateLimit(1000), provider.WithoutCache())),
	)
	rec, err := cl.Search(context.Background(), "Kitzmiller v. Dover")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(queries) != 2 {
		t.Errorf("expected 2 attempts, saw queries %q", queries)
	}
	if rec.CaseName != "Kitzmiller v. Dover Area School Dist." {
		t.Errorf("CaseName = %q", rec.CaseName)
	}
	if rec.Citation != "400 F. Supp. 2d 707" || rec.Year != "2005" {
		t.Errorf("got %+v", rec)
	}
	if rec.URL != "https://www.courtlistener.com/opinion/123/kitzmiller/" {
		t.Errorf("URL = %q", rec.URL)
	}
}

func TestCourtListenerErrorAdvancesAttempt(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{{"caseName": "Roe v. Wade", "citation": "410 U.S. 113"}},
		})
	}))
	defer srv.Close()

	cl := NewCourtListener(
		WithCourtListenerBaseURL(srv.URL),
		WithCourtListenerHTTPClient(provider.NewHTTPClient(provider.WithRateLimit(1000), provider.WithoutCache())),
	)
	rec, err := cl.Search(context.Background(), "Roe v. Wade")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if calls < 2 {
		t.Errorf("failed attempt should advance to the next, saw %d calls", calls)
	}
	if rec.CaseName != "Roe v. Wade" {
		t.Errorf("CaseName = %q", rec.CaseName)
	}
}

func TestCompositePrefersLocalSources(t *testing.T) {
	// No CourtListener configured: landmark and UK parsing still work.
	c := NewComposite(nil)

	rec, err := c.Search(context.Background(), "Miranda v. Arizona")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if rec.OriginProvider != "landmark" {
		t.Errorf("OriginProvider = %q, want landmark", rec.OriginProvider)
	}

	rec, err = c.Search(context.Background(), "Donoghue v Stevenson [1932] UKHL 100")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if rec.OriginProvider != "uk-citations" {
		t.Errorf("OriginProvider = %q, want uk-citations", rec.OriginProvider)
	}

	if _, err := c.Search(context.Background(), "some unremembered case v somebody"); !provider.IsNotFound(err) {
		t.Errorf("expected not-found without CourtListener, got %v", err)
	}
}

package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
		case "/article":
			w.Write([]byte(`<html><head><title>  How Compilers Work | Example Blog </title></head><body></body></html>`))
		case "/private/secret":
			w.Write([]byte(`<html><head><title>Secret</title></head></html>`))
		case "/untitled":
			w.Write([]byte(`<html><head></head><body>no title here</body></html>`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewTitler(WithHTTPClient(srv.Client()))

	title, err := f.Title(context.Background(), srv.URL+"/article")
	if err != nil {
		t.Fatalf("Title() error = %v", err)
	}
	if title != "How Compilers Work" {
		t.Errorf("Title() = %q, want site suffix stripped", title)
	}

	if _, err := f.Title(context.Background(), srv.URL+"/private/secret"); !errors.Is(err, ErrDisallowed) {
		t.Errorf("disallowed path: err = %v, want ErrDisallowed", err)
	}

	if _, err := f.Title(context.Background(), srv.URL+"/untitled"); !errors.Is(err, ErrNoTitle) {
		t.Errorf("untitled page: err = %v, want ErrNoTitle", err)
	}
}

func TestTitleNoRobots(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`<html><head><title>Open Page</title></head></html>`))
	}))
	defer srv.Close()

	f := NewTitler(WithHTTPClient(srv.Client()))
	title, err := f.Title(context.Background(), srv.URL+"/page")
	if err != nil {
		t.Fatalf("Title() error = %v", err)
	}
	if title != "Open Page" {
		t.Errorf("Title() = %q", title)
	}
}

func TestTitleRejectsBadScheme(t *testing.T) {
	f := NewTitler()
	if _, err := f.Title(context.Background(), "ftp://example.com/file"); err == nil {
		t.Error("expected error for non-http scheme")
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Plain Title", "Plain Title"},
		{"Story | The Times", "Story"},
		{"A — B", "A"},
		{"  spaced   out  ", "spaced out"},
	}
	for _, tt := range tests {
		if got := cleanTitle(tt.in); got != tt.want {
			t.Errorf("cleanTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

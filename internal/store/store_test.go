package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/citeflow/citeflow/internal/citation"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGetRoundTrip(t *testing.T) {
	s := openTest(t)

	rec := &citation.Record{
		Type:    citation.Journal,
		Title:   "A Paper",
		Authors: []string{"Ada Lovelace"},
		Year:    "1843",
		DOI:     "10.1000/test",
	}
	if err := s.Put("a paper by lovelace", citation.Journal, 0.85, rec); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	entry, err := s.Get("a paper by lovelace")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if entry.Type != citation.Journal || entry.Confidence != 0.85 {
		t.Errorf("entry = %+v", entry)
	}
	if entry.Record.Title != "A Paper" || entry.Record.DOI != "10.1000/test" {
		t.Errorf("record = %+v", entry.Record)
	}
}

func TestGetNormalizesQuery(t *testing.T) {
	s := openTest(t)
	rec := &citation.Record{Type: citation.Book, Title: "A Book"}
	if err := s.Put("The  Big Book", citation.Book, 0.8, rec); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	if _, err := s.Get("the big   book"); err != nil {
		t.Errorf("Get() with different casing/spacing: %v", err)
	}
}

func TestGetMissing(t *testing.T) {
	s := openTest(t)
	if _, err := s.Get("never stored"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() err = %v, want ErrNotFound", err)
	}
}

func TestPutReplaces(t *testing.T) {
	s := openTest(t)
	s.Put("q", citation.Journal, 0.5, &citation.Record{Type: citation.Journal, Title: "Old"})
	s.Put("q", citation.Journal, 0.9, &citation.Record{Type: citation.Journal, Title: "New"})

	entry, err := s.Get("q")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if entry.Record.Title != "New" || entry.Confidence != 0.9 {
		t.Errorf("entry = %+v, want replacement", entry)
	}

	if n, _ := s.Len(); n != 1 {
		t.Errorf("Len() = %d, want 1", n)
	}
}

func TestPurge(t *testing.T) {
	s := openTest(t)
	s.Put("recent", citation.Book, 0.8, &citation.Record{Type: citation.Book, Title: "Recent"})

	// Entries newer than the cutoff survive.
	removed, err := s.Purge(time.Hour)
	if err != nil {
		t.Fatalf("Purge() error = %v", err)
	}
	if removed != 0 {
		t.Errorf("Purge() removed %d fresh entries", removed)
	}

	// A negative age puts the cutoff in the future, purging everything.
	removed, err = s.Purge(-time.Hour)
	if err != nil {
		t.Fatalf("Purge() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("Purge() = %d, want 1", removed)
	}
	if _, err := s.Get("recent"); !errors.Is(err, ErrNotFound) {
		t.Errorf("entry survived purge: %v", err)
	}
}

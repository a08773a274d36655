// Package store persists resolved citations in a local SQLite database
// so repeated queries across runs skip the provider chain entirely.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/citeflow/citeflow/internal/citation"
)

// ErrNotFound is returned when no cached resolution exists for a query.
var ErrNotFound = errors.New("store: not found")

// Store wraps the SQLite resolution cache.
type Store struct {
	db *sql.DB
}

// Entry is one cached resolution.
type Entry struct {
	Query      string              `json:"query"`
	Type       citation.SourceType `json:"type"`
	Confidence float64             `json:"confidence"`
	Record     citation.Record     `json:"record"`
	ResolvedAt time.Time           `json:"resolved_at"`
}

// Open opens or creates the resolution cache at path. Use ":memory:"
// for an ephemeral cache.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS resolutions (
			query_key TEXT PRIMARY KEY,
			query TEXT NOT NULL,
			source_type TEXT NOT NULL,
			confidence REAL NOT NULL,
			record_json TEXT NOT NULL,
			resolved_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_resolutions_resolved_at
			ON resolutions(resolved_at);
	`
	_, err := db.Exec(schema)
	return err
}

// normalizeQuery canonicalizes a query for cache lookup: lowercased
// with whitespace collapsed.
func normalizeQuery(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

// Put stores a resolution, replacing any previous entry for the same
// normalized query.
func (s *Store) Put(query string, typ citation.SourceType, confidence float64, rec *citation.Record) error {
	recordJSON, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling record: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO resolutions (query_key, query, source_type, confidence, record_json, resolved_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(query_key) DO UPDATE SET
			query = excluded.query,
			source_type = excluded.source_type,
			confidence = excluded.confidence,
			record_json = excluded.record_json,
			resolved_at = excluded.resolved_at
	`, normalizeQuery(query), query, typ.String(), confidence, string(recordJSON), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("storing resolution: %w", err)
	}
	return nil
}

// Get returns the cached resolution for a query, or ErrNotFound. Get
// does not check entry age: callers that care about freshness must run
// Purge first (the CLI purges expired entries when it opens the cache).
// A long-lived process holding a Store open should re-Purge
// periodically or compare Entry.ResolvedAt against its own cutoff.
func (s *Store) Get(query string) (*Entry, error) {
	row := s.db.QueryRow(`
		SELECT query, source_type, confidence, record_json, resolved_at
		FROM resolutions WHERE query_key = ?
	`, normalizeQuery(query))

	var (
		entry      Entry
		typeName   string
		recordJSON string
		resolvedAt int64
	)
	err := row.Scan(&entry.Query, &typeName, &entry.Confidence, &recordJSON, &resolvedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading resolution: %w", err)
	}

	if err := json.Unmarshal([]byte(recordJSON), &entry.Record); err != nil {
		return nil, fmt.Errorf("unmarshaling record: %w", err)
	}
	entry.Type = citation.ParseSourceType(typeName)
	entry.ResolvedAt = time.Unix(resolvedAt, 0)
	return &entry, nil
}

// Purge deletes entries resolved before the cutoff and returns how many
// were removed.
func (s *Store) Purge(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan).Unix()
	res, err := s.db.Exec(`DELETE FROM resolutions WHERE resolved_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purging resolutions: %w", err)
	}
	return res.RowsAffected()
}

// Len returns the number of cached resolutions.
func (s *Store) Len() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM resolutions`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

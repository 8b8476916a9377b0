// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library keeps harvested Papers in a local SQLite database so
// repeated searches accumulate into one deduplicated collection.
package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/xplore/pkg/types"
)

const (
	dbFile            = "xplore.db"
	defaultMaxResults = 20
)

// Store manages the library database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
	now        func() time.Time
}

// NewStore opens or creates the library database at cfg.Dir/xplore.db
// and creates the schema if it does not exist.
func NewStore(cfg types.LibraryConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "library"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating library directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{
		db:         db,
		dir:        dir,
		maxResults: maxResults,
		now:        time.Now,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return filepath.Join(s.dir, dbFile)
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS papers (
			key TEXT PRIMARY KEY,
			title TEXT,
			publication_title TEXT,
			publication_year TEXT,
			doi TEXT,
			abstract TEXT,
			keywords TEXT,
			authors TEXT NOT NULL,
			source TEXT,
			added_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_year ON papers(publication_year)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_doi ON papers(doi)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// AddSummary holds counts from one Add call.
type AddSummary struct {
	Inserted int
	Updated  int
	Skipped  int
}

// Total returns the number of papers processed.
func (s AddSummary) Total() int {
	return s.Inserted + s.Updated + s.Skipped
}

// Key returns the deduplication key of p: its DOI, or its normalized
// title when the DOI is absent. Papers with neither have no key.
func Key(p types.Paper) (string, bool) {
	if p.DOI != nil {
		if doi := strings.ToLower(strings.TrimSpace(*p.DOI)); doi != "" {
			return "doi:" + doi, true
		}
	}
	if p.Title != nil {
		if title := normalizeTitle(*p.Title); title != "" {
			return "title:" + title, true
		}
	}
	return "", false
}

func normalizeTitle(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Add upserts papers in one transaction. source records where the papers
// came from (a query or file name). Papers without a DOI or title are
// skipped.
func (s *Store) Add(ctx context.Context, papers []types.Paper, source string) (AddSummary, error) {
	var summary AddSummary

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return summary, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO papers (key, title, publication_title, publication_year, doi,
			abstract, keywords, authors, source, added_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
			title=excluded.title, publication_title=excluded.publication_title,
			publication_year=excluded.publication_year, doi=excluded.doi,
			abstract=excluded.abstract, keywords=excluded.keywords,
			authors=excluded.authors, source=excluded.source,
			updated_at=excluded.updated_at`)
	if err != nil {
		return summary, fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	now := s.now().UTC().Format(time.RFC3339)
	for _, p := range papers {
		key, ok := Key(p)
		if !ok {
			summary.Skipped++
			continue
		}

		var exists int
		if err := tx.QueryRowContext(ctx,
			`SELECT count(*) FROM papers WHERE key = ?`, key,
		).Scan(&exists); err != nil {
			return AddSummary{}, fmt.Errorf("looking up %s: %w", key, err)
		}

		authorsJSON, err := json.Marshal(p.Normalized().Authors)
		if err != nil {
			return AddSummary{}, fmt.Errorf("encoding authors of %s: %w", key, err)
		}

		if _, err := stmt.ExecContext(ctx,
			key, nullable(p.Title), nullable(p.PublicationTitle), nullable(p.PublicationYear),
			nullable(p.DOI), nullable(p.Abstract), nullable(p.Keywords),
			string(authorsJSON), source, now, now,
		); err != nil {
			return AddSummary{}, fmt.Errorf("upserting %s: %w", key, err)
		}

		if exists > 0 {
			summary.Updated++
		} else {
			summary.Inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return AddSummary{}, fmt.Errorf("committing: %w", err)
	}
	return summary, nil
}

// Count returns the number of papers in the library.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM papers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting papers: %w", err)
	}
	return n, nil
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullable(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return types.String(ns.String)
}

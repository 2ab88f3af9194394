// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists extraction runs and their citations in SQLite and
// exports them as YAML or JSON.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mastaal/nllegalcit/pkg/types"
)

const (
	dbFile            = "citations.db"
	defaultMaxResults = 50
)

// Store manages the citation database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
	now        func() time.Time
}

// Open opens or creates the database at cfg.Dir/citations.db and creates
// the schema if it does not exist.
func Open(cfg types.StoreConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = ".nllegalcit"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, dbFile)+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, dir: dir, maxResults: maxResults, now: time.Now}
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

// Dir returns the directory holding the database and exports.
func (s *Store) Dir() string { return s.dir }

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			mode TEXT NOT NULL,
			created_at TEXT NOT NULL,
			citation_count INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_source ON runs(source)`,
		`CREATE TABLE IF NOT EXISTS citations (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			kind TEXT NOT NULL,
			matched_text TEXT NOT NULL,
			start_offset INTEGER NOT NULL,
			end_offset INTEGER NOT NULL,
			country TEXT,
			court TEXT,
			year INTEGER,
			casenumber TEXT,
			kamer TEXT,
			vergaderjaar TEXT,
			dossiernummer TEXT,
			ondernummer TEXT,
			paginaverwijzing TEXT,
			rijksdossiernummer TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_citations_run_id ON citations(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_citations_kind ON citations(kind)`,
		`CREATE INDEX IF NOT EXISTS idx_citations_dossiernummer ON citations(dossiernummer)`,
		`CREATE INDEX IF NOT EXISTS idx_citations_court ON citations(country, court)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Run describes one extraction over one source document.
type Run struct {
	ID        string               `json:"id" yaml:"id"`
	Source    string               `json:"source" yaml:"source"`
	Mode      types.ExtractionMode `json:"mode" yaml:"mode"`
	CreatedAt time.Time            `json:"created_at" yaml:"created_at"`
	Citations int                  `json:"citations" yaml:"citations"`
}

// SaveRun records the citations extracted from source. An earlier run over
// the same source is replaced, together with its citations; replaced
// reports whether that happened.
func (s *Store) SaveRun(ctx context.Context, source string, mode types.ExtractionMode, cits []types.Citation) (run Run, replaced bool, err error) {
	run = Run{
		ID:        uuid.NewString(),
		Source:    source,
		Mode:      mode,
		CreatedAt: s.now().UTC(),
		Citations: len(cits),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE source = ?`, source)
	if err != nil {
		return Run{}, false, fmt.Errorf("deleting old runs: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		replaced = true
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, source, mode, created_at, citation_count) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Source, string(run.Mode), run.CreatedAt.Format(time.RFC3339Nano), run.Citations,
	)
	if err != nil {
		return Run{}, false, fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO citations (run_id, position, kind, matched_text, start_offset, end_offset,
			country, court, year, casenumber,
			kamer, vergaderjaar, dossiernummer, ondernummer, paginaverwijzing, rijksdossiernummer)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return Run{}, false, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range cits {
		occ := c.Matched()
		args := []any{run.ID, i, string(c.Kind()), occ.MatchedText, occ.Start, occ.End}
		switch x := c.(type) {
		case types.EcliCitation:
			args = append(args, x.Country, x.Court, x.Year, x.Casenumber, nil, nil, nil, nil, nil, nil)
		case types.KamerstukCitation:
			args = append(args, nil, nil, nil, nil,
				string(x.Kamer), x.Vergaderjaar, x.Dossiernummer, x.Ondernummer,
				x.Paginaverwijzing, x.Rijksdossiernummer)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return Run{}, false, fmt.Errorf("inserting citation %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, false, fmt.Errorf("committing run: %w", err)
	}
	return run, replaced, nil
}

// Runs lists recorded runs, oldest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, mode, created_at, citation_count FROM runs ORDER BY created_at, source`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r       Run
			mode    string
			created string
		)
		if err := rows.Scan(&r.ID, &r.Source, &mode, &created, &r.Citations); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Mode = types.ExtractionMode(mode)
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			r.CreatedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

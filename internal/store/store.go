// Package store persists completed searches so past reports stay browsable.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

// Search is one persisted run: what was asked and the rendered report.
type Search struct {
	ID         int64     `json:"id"`
	Method     string    `json:"method"`
	Databases  []string  `json:"databases"`
	Options    []string  `json:"options,omitempty"`
	QueryText  string    `json:"query_text"`
	ReportHTML string    `json:"report_html"`
	CreatedUTC time.Time `json:"created_utc"`
}

// Summary is the listing view of a Search, without the heavy fields.
type Summary struct {
	ID         int64     `json:"id"`
	Method     string    `json:"method"`
	Databases  []string  `json:"databases"`
	CreatedUTC time.Time `json:"created_utc"`
}

// ErrNotFound is returned when no search has the requested id.
var ErrNotFound = errors.New("search not found")

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`PRAGMA journal_mode=WAL;`,
		`CREATE TABLE IF NOT EXISTS searches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			method TEXT NOT NULL,
			databases_json TEXT NOT NULL,
			options_json TEXT NOT NULL DEFAULT '[]',
			query_text TEXT NOT NULL,
			report_html TEXT NOT NULL,
			created_utc TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_searches_created ON searches(created_utc);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (s *Store) SaveSearch(search Search) (int64, error) {
	dbsJSON, err := json.Marshal(search.Databases)
	if err != nil {
		return 0, fmt.Errorf("marshal databases: %w", err)
	}
	optsJSON, err := json.Marshal(search.Options)
	if err != nil {
		return 0, fmt.Errorf("marshal options: %w", err)
	}
	created := search.CreatedUTC
	if created.IsZero() {
		created = time.Now().UTC()
	}

	res, err := s.db.Exec(
		`INSERT INTO searches (method, databases_json, options_json, query_text, report_html, created_utc)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		search.Method, string(dbsJSON), string(optsJSON), search.QueryText, search.ReportHTML,
		created.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("insert search: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted search id: %w", err)
	}
	return id, nil
}

func (s *Store) GetSearch(id int64) (Search, error) {
	row := s.db.QueryRow(
		`SELECT id, method, databases_json, options_json, query_text, report_html, created_utc
		 FROM searches WHERE id = ?`, id)

	var search Search
	var dbsJSON, optsJSON, created string
	err := row.Scan(&search.ID, &search.Method, &dbsJSON, &optsJSON, &search.QueryText, &search.ReportHTML, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Search{}, ErrNotFound
	}
	if err != nil {
		return Search{}, fmt.Errorf("read search %d: %w", id, err)
	}
	if err := json.Unmarshal([]byte(dbsJSON), &search.Databases); err != nil {
		return Search{}, fmt.Errorf("decode databases of search %d: %w", id, err)
	}
	if err := json.Unmarshal([]byte(optsJSON), &search.Options); err != nil {
		return Search{}, fmt.Errorf("decode options of search %d: %w", id, err)
	}
	search.CreatedUTC, err = time.Parse(time.RFC3339, created)
	if err != nil {
		return Search{}, fmt.Errorf("decode timestamp of search %d: %w", id, err)
	}
	return search, nil
}

func (s *Store) ListSearches(limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, method, databases_json, created_utc
		 FROM searches ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list searches: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		var dbsJSON, created string
		if err := rows.Scan(&sum.ID, &sum.Method, &dbsJSON, &created); err != nil {
			return nil, fmt.Errorf("scan search row: %w", err)
		}
		if err := json.Unmarshal([]byte(dbsJSON), &sum.Databases); err != nil {
			return nil, fmt.Errorf("decode databases of search %d: %w", sum.ID, err)
		}
		sum.CreatedUTC, err = time.Parse(time.RFC3339, created)
		if err != nil {
			return nil, fmt.Errorf("decode timestamp of search %d: %w", sum.ID, err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

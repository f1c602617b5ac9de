// Package storage keeps an ephemeral SQLite query cache of a repository.
//
// The paper files are the source of truth; the cache is rebuilt from them
// and can be deleted at any time.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matsen/papers/internal/paper"
	"github.com/matsen/papers/internal/reference"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// Hit is a paper found in the cache together with its number.
type Hit struct {
	Number int          `json:"number"`
	Paper  *paper.Paper `json:"paper"`
}

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS papers (
			citekey TEXT PRIMARY KEY,
			number INTEGER NOT NULL,
			doi TEXT,
			pub_year INTEGER,
			venue TEXT,
			tags_text TEXT,
			paper_json TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_papers_number ON papers(number);

		-- Full-text search virtual table (standalone, not external content)
		CREATE VIRTUAL TABLE IF NOT EXISTS papers_fts USING fts5(
			citekey,
			title,
			abstract,
			authors_text,
			tags_text,
			pub_year
		);
	`

	_, err := db.Exec(schema)
	return err
}

// Rebuild clears the cache and fills it with papers; papers[i] is number i.
func (d *DB) Rebuild(papers []*paper.Paper) (int, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM papers"); err != nil {
		return 0, fmt.Errorf("clearing papers table: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM papers_fts"); err != nil {
		return 0, fmt.Errorf("clearing papers_fts table: %w", err)
	}

	papersStmt, err := tx.Prepare(`
		INSERT INTO papers (citekey, number, doi, pub_year, venue, tags_text, paper_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing papers insert: %w", err)
	}
	defer papersStmt.Close()

	ftsStmt, err := tx.Prepare(`
		INSERT INTO papers_fts (citekey, title, abstract, authors_text, tags_text, pub_year)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	for i, p := range papers {
		data, err := json.Marshal(p)
		if err != nil {
			return 0, fmt.Errorf("encoding paper %s: %w", p.Citekey, err)
		}
		tags := strings.Join(p.Meta.Tags, " ")

		_, err = papersStmt.Exec(
			p.Citekey, i, nullableStringValue(p.Bib.DOI), p.Bib.Published.Year,
			nullableStringValue(p.Bib.Venue), tags, string(data),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting paper %s: %w", p.Citekey, err)
		}

		_, err = ftsStmt.Exec(
			p.Citekey, p.Bib.Title, p.Bib.Abstract,
			formatAuthorsText(p.Bib.Authors), tags, strconv.Itoa(p.Bib.Published.Year),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting fts for %s: %w", p.Citekey, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rebuild: %w", err)
	}
	return len(papers), nil
}

// formatAuthorsText creates a searchable text representation of authors.
func formatAuthorsText(authors []reference.Author) string {
	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = a.FullName()
	}
	return strings.Join(names, ", ")
}

// SearchFilters contains optional filters for Search.
type SearchFilters struct {
	Keyword  string   // General keyword search across all text fields
	Authors  []string // Author names (AND logic, prefix matching)
	Tags     []string // Tags the paper must carry (AND logic)
	YearFrom int      // Minimum publication year (0 = no minimum)
	YearTo   int      // Maximum publication year (0 = no maximum)
	Venue    string   // Filter by venue (SQL LIKE, case-insensitive)
}

// Search returns papers matching ALL specified criteria, in number order.
func (d *DB) Search(filters SearchFilters, limit int) ([]Hit, error) {
	var ftsTerms []string
	var args []interface{}

	if filters.Keyword != "" {
		ftsTerms = append(ftsTerms, prepareFTSQuery(filters.Keyword))
	}
	for _, author := range filters.Authors {
		if author != "" {
			ftsTerms = append(ftsTerms, "authors_text:"+prepareAuthorQuery(author))
		}
	}
	for _, tag := range filters.Tags {
		if tag != "" {
			ftsTerms = append(ftsTerms, "tags_text:"+prepareFTSQuery(tag))
		}
	}

	var query string
	if len(ftsTerms) > 0 {
		query = `SELECT number, paper_json FROM papers
			WHERE citekey IN (SELECT citekey FROM papers_fts WHERE papers_fts MATCH ?)`
		args = append(args, strings.Join(ftsTerms, " AND "))
	} else {
		query = `SELECT number, paper_json FROM papers WHERE 1=1`
	}

	if filters.YearFrom > 0 {
		query += " AND pub_year >= ?"
		args = append(args, filters.YearFrom)
	}
	if filters.YearTo > 0 {
		query += " AND pub_year <= ?"
		args = append(args, filters.YearTo)
	}
	if filters.Venue != "" {
		query += " AND venue LIKE ?"
		args = append(args, "%"+filters.Venue+"%")
	}

	query += " ORDER BY number"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		hit, err := scanHit(rows)
		if err != nil {
			return nil, err
		}
		hits = append(hits, *hit)
	}
	return hits, rows.Err()
}

// Count returns the total number of cached papers.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM papers").Scan(&count)
	return count, err
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanHit(s scanner) (*Hit, error) {
	var number int
	var data string
	if err := s.Scan(&number, &data); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	var p paper.Paper
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("decoding cached paper: %w", err)
	}
	return &Hit{Number: number, Paper: &p}, nil
}

// nullableStringValue converts a string to sql.NullString, treating empty as NULL.
func nullableStringValue(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// prepareFTSQuery escapes special characters for FTS5 queries.
func prepareFTSQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	// If query contains special chars, quote it
	if strings.ContainsAny(query, "\"*+-:(){}[]^~.") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}

	return query
}

// prepareAuthorQuery prepares an author name for FTS5 search with prefix matching,
// so "Tim" matches "Timothy".
func prepareAuthorQuery(author string) string {
	parts := strings.Fields(author)
	terms := make([]string, 0, len(parts))
	for _, part := range parts {
		escaped := strings.ReplaceAll(part, "\"", "\"\"")
		terms = append(terms, "\""+escaped+"\"*")
	}
	return "(" + strings.Join(terms, " OR ") + ")"
}

// Package sqlite implements the SQLite storage backend for playbook
// documents. It persists the same Document semantics as the JSON store in a
// single database file; each operation is one open-transact-close cycle.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/playbook/pkg/types"
)

// DocumentFileName is the playbook database file inside the data directory.
const DocumentFileName = "playbook.db"

// timeFormat is the timestamp encoding used in all columns.
const timeFormat = time.RFC3339Nano

// Store persists a playbook document in a SQLite database file.
// It implements types.Store.
type Store struct {
	path string
}

// New returns a Store for the database inside dataDir.
func New(dataDir string) *Store {
	return &Store{path: filepath.Join(dataDir, DocumentFileName)}
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the document from the database. A missing file returns an
// empty default document together with types.ErrNotFound. A file that
// cannot be queried returns types.ErrCorruptDocument.
func (s *Store) Load() (*types.Document, error) {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return types.NewDocument(), types.ErrNotFound
		}
		return nil, fmt.Errorf("stat %s: %w", s.path, err)
	}

	db, err := s.open()
	if err != nil {
		// The file exists but is not a usable database.
		return nil, fmt.Errorf("%w: %s: %v", types.ErrCorruptDocument, s.path, err)
	}
	defer db.Close()

	doc, err := loadDocument(db)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrCorruptDocument, s.path, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrCorruptDocument, s.path, err)
	}
	return doc, nil
}

// Save persists the document in a single transaction, refreshing UpdatedAt
// first. The transaction is the atomicity boundary; a crash mid-save leaves
// the previous committed state intact.
func (s *Store) Save(doc *types.Document) error {
	doc.UpdatedAt = time.Now().UTC()
	if doc.Patterns == nil {
		doc.Patterns = []types.Pattern{}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning save transaction: %w", err)
	}
	defer tx.Rollback()

	if err := saveDocument(tx, doc); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save: %w", err)
	}
	return nil
}

// Initialize creates a new document populated with the given seed patterns.
// Returns types.ErrAlreadyExists if the database exists and force is false.
func (s *Store) Initialize(seed []types.Pattern, force bool) (*types.Document, error) {
	if _, err := os.Stat(s.path); err == nil {
		if !force {
			return nil, fmt.Errorf("%w: %s (use force to overwrite)", types.ErrAlreadyExists, s.path)
		}
		if err := os.Remove(s.path); err != nil {
			return nil, fmt.Errorf("removing existing database: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("stat %s: %w", s.path, err)
	}

	doc := types.NewDocument()
	doc.Patterns = append(doc.Patterns, seed...)
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	if err := s.Save(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// open opens the database file and applies the schema DDL.
func (s *Store) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", s.path, err)
	}
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying schema: %w", err)
		}
	}
	return db, nil
}

// loadDocument reads the document row and all patterns in seq order.
func loadDocument(db *sql.DB) (*types.Document, error) {
	doc := types.NewDocument()

	var createdAt, updatedAt string
	var lastSuccess, lastFailure sql.NullString
	err := db.QueryRow(`SELECT version, created_at, updated_at, task_successes, task_failures, last_success, last_failure
        FROM document WHERE id = 1`).Scan(
		&doc.Version, &createdAt, &updatedAt,
		&doc.TaskSuccesses, &doc.TaskFailures, &lastSuccess, &lastFailure)
	if err == sql.ErrNoRows {
		// Schema exists but nothing was ever saved; treat as empty.
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying document: %w", err)
	}

	if doc.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if doc.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	if doc.LastSuccess, err = parseNullTime(lastSuccess); err != nil {
		return nil, err
	}
	if doc.LastFailure, err = parseNullTime(lastFailure); err != nil {
		return nil, err
	}

	rows, err := db.Query(`SELECT pattern_id, category, content, endpoint, created_at, uses, successes, failures, last_used
        FROM patterns ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("querying patterns: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p types.Pattern
		var endpoint, lastUsed sql.NullString
		var created string
		if err := rows.Scan(&p.ID, &p.Category, &p.Content, &endpoint, &created,
			&p.Uses, &p.Successes, &p.Failures, &lastUsed); err != nil {
			return nil, fmt.Errorf("scanning pattern: %w", err)
		}
		p.Endpoint = endpoint.String
		if p.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		if p.LastUsed, err = parseNullTime(lastUsed); err != nil {
			return nil, err
		}
		doc.Patterns = append(doc.Patterns, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading patterns: %w", err)
	}
	return doc, nil
}

// saveDocument replaces the document row and all patterns inside tx.
func saveDocument(tx *sql.Tx, doc *types.Document) error {
	_, err := tx.Exec(`INSERT INTO document (id, version, created_at, updated_at, task_successes, task_failures, last_success, last_failure)
        VALUES (1, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            version = excluded.version,
            updated_at = excluded.updated_at,
            task_successes = excluded.task_successes,
            task_failures = excluded.task_failures,
            last_success = excluded.last_success,
            last_failure = excluded.last_failure`,
		doc.Version,
		doc.CreatedAt.Format(timeFormat),
		doc.UpdatedAt.Format(timeFormat),
		doc.TaskSuccesses,
		doc.TaskFailures,
		formatNullTime(doc.LastSuccess),
		formatNullTime(doc.LastFailure))
	if err != nil {
		return fmt.Errorf("writing document row: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM patterns`); err != nil {
		return fmt.Errorf("clearing patterns: %w", err)
	}

	for i := range doc.Patterns {
		p := &doc.Patterns[i]
		_, err := tx.Exec(`INSERT INTO patterns (pattern_id, category, content, endpoint, created_at, uses, successes, failures, last_used)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Category, p.Content, nullableString(p.Endpoint),
			p.CreatedAt.Format(timeFormat),
			p.Uses, p.Successes, p.Failures,
			formatNullTime(p.LastUsed))
		if err != nil {
			return fmt.Errorf("writing pattern %s: %w", p.ID, err)
		}
	}
	return nil
}

// nullableString returns a sql.NullString; empty strings are stored as NULL.
func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// formatNullTime encodes an optional timestamp, NULL when nil.
func formatNullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(timeFormat), Valid: true}
}

// parseTime decodes a required timestamp column.
func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}

// parseNullTime decodes an optional timestamp column.
func parseNullTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid {
		return nil, nil
	}
	t, err := parseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

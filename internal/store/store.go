// Package store keeps a log of contact form submissions in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/soham247/stellar-portfolio/internal/contact"
	_ "modernc.org/sqlite"
)

const timeFormat = time.RFC3339Nano

const schema = `
CREATE TABLE IF NOT EXISTS submissions (
	id TEXT PRIMARY KEY,
	client TEXT NOT NULL,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	subject TEXT NOT NULL,
	message TEXT NOT NULL,
	outcome TEXT NOT NULL,
	relay_message TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS submissions_created_at ON submissions (created_at);
`

// Config holds the store settings. An empty path disables the store.
type Config struct {
	Path string `mapstructure:"path"`
}

// Store is a SQLite-backed contact.Recorder.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}

	// A single connection serialises writers and keeps :memory: databases
	// from being reopened empty by the pool.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%w: %s: %v", ErrOpen, pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record implements contact.Recorder.
func (s *Store) Record(ctx context.Context, sub contact.Submission) error {
	if sub.ID == "" {
		return ErrMissingID
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO submissions (id, client, name, email, subject, message, outcome, relay_message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID,
		sub.Client,
		sub.Form.Name,
		sub.Form.Email,
		sub.Form.Subject,
		sub.Form.Message,
		string(sub.Outcome),
		sub.RelayMessage,
		sub.CreatedAt.UTC().Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInsert, err)
	}
	return nil
}

// Recent returns up to limit submissions, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]contact.Submission, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, client, name, email, subject, message, outcome, relay_message, created_at
		 FROM submissions ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	defer rows.Close() //nolint:errcheck

	var subs []contact.Submission
	for rows.Next() {
		var (
			sub       contact.Submission
			outcome   string
			createdAt string
		)
		if err := rows.Scan(&sub.ID, &sub.Client, &sub.Form.Name, &sub.Form.Email,
			&sub.Form.Subject, &sub.Form.Message, &outcome, &sub.RelayMessage, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrQuery, err)
		}
		sub.Outcome = contact.Outcome(outcome)
		if sub.CreatedAt, err = time.Parse(timeFormat, createdAt); err != nil {
			return nil, fmt.Errorf("%w: bad timestamp %q: %v", ErrQuery, createdAt, err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	return subs, nil
}

// Count returns the number of submissions with the given outcome, or of all
// submissions when outcome is empty.
func (s *Store) Count(ctx context.Context, outcome contact.Outcome) (int, error) {
	var (
		n   int
		err error
	)
	if outcome == "" {
		err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM submissions`).Scan(&n)
	} else {
		err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM submissions WHERE outcome = ?`, string(outcome)).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	return n, nil
}

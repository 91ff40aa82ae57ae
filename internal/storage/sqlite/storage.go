// Package sqlite provides a SQLite-backed liked-submission store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cristianoliveira/form-intray/internal/submission"
	_ "modernc.org/sqlite"
)

// SQLiteStorage stores liked submissions in a single SQLite table.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens (and creates if needed) the database at dbPath.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("sqlite storage: %w", ErrEmptyPath)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite storage: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: open db: %w", err)
	}
	db.SetMaxOpenConns(1)

	storage := &SQLiteStorage{db: db}
	if err := storage.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return storage, nil
}

// Close closes the underlying SQLite connection.
func (s *SQLiteStorage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStorage) init() error {
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("sqlite storage: set busy timeout: %w", err)
	}
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("sqlite storage: create schema: %w", err)
	}
	return nil
}

// FetchAll returns every liked submission in insertion order.
func (s *SQLiteStorage) FetchAll(ctx context.Context) ([]submission.Submission, error) {
	rows, err := s.db.QueryContext(ctx, selectAllSQL)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: list submissions: %w", err)
	}
	defer rows.Close()

	items := []submission.Submission{}
	for rows.Next() {
		var (
			id    string
			raw   string
			liked bool
		)
		if err := rows.Scan(&id, &raw, &liked); err != nil {
			return nil, fmt.Errorf("sqlite storage: scan submission: %w", err)
		}
		data, err := decodeData(raw)
		if err != nil {
			return nil, fmt.Errorf("sqlite storage: decode submission %s: %w", id, err)
		}
		items = append(items, submission.Submission{ID: id, Data: data, Liked: liked})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite storage: list submissions: %w", err)
	}
	return items, nil
}

// Save upserts one submission. A new ID is appended after existing rows.
func (s *SQLiteStorage) Save(ctx context.Context, sub submission.Submission) error {
	if sub.ID == "" {
		return fmt.Errorf("sqlite storage: %w", ErrInvalidSubmissionID)
	}
	raw, err := encodeData(sub.Data)
	if err != nil {
		return fmt.Errorf("sqlite storage: encode submission %s: %w", sub.ID, err)
	}
	if _, err := s.db.ExecContext(ctx, upsertSQL, sub.ID, raw, sub.Liked, utcNow()); err != nil {
		return fmt.Errorf("sqlite storage: save submission: %w", err)
	}
	return nil
}

// ReplaceAll rewrites the table inside one transaction.
func (s *SQLiteStorage) ReplaceAll(ctx context.Context, items []submission.Submission) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite storage: begin replace: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, deleteAllSQL); err != nil {
		return fmt.Errorf("sqlite storage: clear submissions: %w", err)
	}
	now := utcNow()
	for i, sub := range items {
		if sub.ID == "" {
			err = fmt.Errorf("sqlite storage: %w", ErrInvalidSubmissionID)
			return err
		}
		raw, encErr := encodeData(sub.Data)
		if encErr != nil {
			err = fmt.Errorf("sqlite storage: encode submission %s: %w", sub.ID, encErr)
			return err
		}
		if _, err = tx.ExecContext(ctx, insertAtSQL, sub.ID, raw, sub.Liked, i+1, now); err != nil {
			return fmt.Errorf("sqlite storage: insert submission: %w", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("sqlite storage: commit replace: %w", err)
	}
	return nil
}

// Count returns the number of stored submissions.
func (s *SQLiteStorage) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, countSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite storage: count submissions: %w", err)
	}
	return n, nil
}

func encodeData(data submission.Data) (string, error) {
	if data == nil {
		data = submission.Data{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decodeData(raw string) (submission.Data, error) {
	var data submission.Data
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, err
	}
	return data, nil
}

func utcNow() string {
	return time.Now().UTC().Format(time.RFC3339)
}

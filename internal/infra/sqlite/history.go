package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"voice-to-docs/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id         TEXT PRIMARY KEY,
	mode       TEXT NOT NULL,
	transcript TEXT NOT NULL,
	document   TEXT NOT NULL,
	issue_url  TEXT NOT NULL DEFAULT '',
	created_at REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents(created_at);
`

// HistoryStore keeps every processed document in a local SQLite file.
type HistoryStore struct {
	db *sql.DB
}

func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".voice-to-docs", "history.sqlite")
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

func Open(path string) (*HistoryStore, error) {
	if path != ":memory:" {
		var err error
		if path, err = expandHome(path); err != nil {
			return nil, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &HistoryStore{db: db}, nil
}

func (s *HistoryStore) Close() error {
	return s.db.Close()
}

func (s *HistoryStore) Save(ctx context.Context, e domain.HistoryEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, mode, transcript, document, issue_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.ID, string(e.Mode), e.Transcript, e.Document, e.IssueURL, unixFromTime(e.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *HistoryStore) Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, mode, transcript, document, issue_url, created_at
		FROM documents
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var e domain.HistoryEntry
		var mode string
		var createdAt float64
		if err := rows.Scan(&e.ID, &mode, &e.Transcript, &e.Document, &e.IssueURL, &createdAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		e.Mode = domain.Mode(mode)
		e.CreatedAt = timeFromUnix(createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func unixFromTime(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

func timeFromUnix(ts float64) time.Time {
	sec := int64(ts)
	nsec := int64((ts - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}

// Package store persists devotional progress, journal entries, and
// bookmarks in a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"devotional-api/internal/model"
)

// ErrNotFound is returned when a lookup or delete matches no row.
var ErrNotFound = errors.New("not found")

// Store is the persistence contract handlers depend on. Snapshot reads
// (ProgressForUser, EntriesForUser) return copies; callers own the
// returned slices.
type Store interface {
	CompleteDay(ctx context.Context, userID, planID string, day int, completedAt time.Time) error
	ProgressForUser(ctx context.Context, userID string) ([]model.DevotionalProgress, error)

	CreateJournalEntry(ctx context.Context, userID string, entry model.JournalEntry) error
	EntriesForUser(ctx context.Context, userID string) ([]model.JournalEntry, error)

	AddBookmark(ctx context.Context, userID string, bm model.Bookmark) error
	BookmarksForUser(ctx context.Context, userID string) ([]model.Bookmark, error)
	RemoveBookmark(ctx context.Context, userID, id string) error

	SetDisplayName(ctx context.Context, userID, name string) error

	Close() error
}

type sqliteStore struct {
	conn *sql.DB
	log  *zap.Logger
}

// Open opens or creates the database at path and bootstraps the schema.
func Open(path string, log *zap.Logger) (Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	s := &sqliteStore{conn: conn, log: log}
	if err := s.initSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	log.Info("store opened", zap.String("path", path))
	return s, nil
}

func (s *sqliteStore) initSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS day_completions (
			user_id      TEXT NOT NULL,
			plan_id      TEXT NOT NULL,
			day          INTEGER NOT NULL,
			completed_at TIMESTAMP NOT NULL,
			PRIMARY KEY (user_id, plan_id, day)
		);
		CREATE TABLE IF NOT EXISTS journal_entries (
			id            TEXT PRIMARY KEY,
			user_id       TEXT NOT NULL,
			devotional_id TEXT NOT NULL,
			day           INTEGER NOT NULL,
			subject       TEXT NOT NULL,
			content       TEXT NOT NULL,
			created_at    TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_journal_user ON journal_entries(user_id, created_at);
		CREATE TABLE IF NOT EXISTS bookmarks (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL,
			passage    TEXT NOT NULL,
			note       TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_bookmarks_user ON bookmarks(user_id, created_at);
		CREATE TABLE IF NOT EXISTS profiles (
			user_id      TEXT PRIMARY KEY,
			display_name TEXT NOT NULL,
			updated_at   TIMESTAMP NOT NULL
		);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// CompleteDay records a completed devotional day. Completing the same
// day twice refreshes the timestamp rather than erroring.
func (s *sqliteStore) CompleteDay(ctx context.Context, userID, planID string, day int, completedAt time.Time) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO day_completions (user_id, plan_id, day, completed_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, plan_id, day) DO UPDATE SET completed_at = excluded.completed_at`,
		userID, planID, day, completedAt)
	if err != nil {
		return fmt.Errorf("record completion: %w", err)
	}
	return nil
}

// ProgressForUser returns the user's completions grouped by plan.
func (s *sqliteStore) ProgressForUser(ctx context.Context, userID string) ([]model.DevotionalProgress, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT plan_id, day, completed_at
		FROM day_completions
		WHERE user_id = ?
		ORDER BY plan_id, day`, userID)
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	var out []model.DevotionalProgress
	for rows.Next() {
		var planID string
		var c model.DayCompletion
		if err := rows.Scan(&planID, &c.Day, &c.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		if len(out) == 0 || out[len(out)-1].PlanID != planID {
			out = append(out, model.DevotionalProgress{PlanID: planID})
		}
		last := &out[len(out)-1]
		last.Completions = append(last.Completions, c)
	}
	return out, rows.Err()
}

// CreateJournalEntry persists a new journal entry.
func (s *sqliteStore) CreateJournalEntry(ctx context.Context, userID string, entry model.JournalEntry) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO journal_entries (id, user_id, devotional_id, day, subject, content, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, userID, entry.DevotionalID, entry.Day, entry.Subject, entry.Content, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert journal entry: %w", err)
	}
	return nil
}

// EntriesForUser returns the user's journal entries, newest first.
func (s *sqliteStore) EntriesForUser(ctx context.Context, userID string) ([]model.JournalEntry, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, devotional_id, day, subject, content, created_at
		FROM journal_entries
		WHERE user_id = ?
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query journal entries: %w", err)
	}
	defer rows.Close()

	var out []model.JournalEntry
	for rows.Next() {
		var e model.JournalEntry
		if err := rows.Scan(&e.ID, &e.DevotionalID, &e.Day, &e.Subject, &e.Content, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// AddBookmark saves a passage bookmark.
func (s *sqliteStore) AddBookmark(ctx context.Context, userID string, bm model.Bookmark) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO bookmarks (id, user_id, passage, note, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		bm.ID, userID, bm.Passage, bm.Note, bm.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert bookmark: %w", err)
	}
	return nil
}

// BookmarksForUser returns the user's bookmarks, newest first.
func (s *sqliteStore) BookmarksForUser(ctx context.Context, userID string) ([]model.Bookmark, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, passage, note, created_at
		FROM bookmarks
		WHERE user_id = ?
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query bookmarks: %w", err)
	}
	defer rows.Close()

	var out []model.Bookmark
	for rows.Next() {
		var bm model.Bookmark
		if err := rows.Scan(&bm.ID, &bm.Passage, &bm.Note, &bm.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		out = append(out, bm)
	}
	return out, rows.Err()
}

// RemoveBookmark deletes a bookmark owned by the user. ErrNotFound when
// no such bookmark exists.
func (s *sqliteStore) RemoveBookmark(ctx context.Context, userID, id string) error {
	res, err := s.conn.ExecContext(ctx,
		`DELETE FROM bookmarks WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetDisplayName upserts the profile display name.
func (s *sqliteStore) SetDisplayName(ctx context.Context, userID, name string) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO profiles (user_id, display_name, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET display_name = excluded.display_name, updated_at = excluded.updated_at`,
		userID, name, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set display name: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *sqliteStore) Close() error {
	return s.conn.Close()
}

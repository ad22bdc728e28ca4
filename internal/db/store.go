// Package db provides the SQLite-backed session store so login state
// survives process restarts.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ajramos/invitemate/internal/auth"
	_ "modernc.org/sqlite"
)

// Store wraps a SQLite database used for local session storage
type Store struct {
	db *sql.DB
}

// Open opens (and creates/migrates) the database at the given path
func Open(ctx context.Context, dbPath string) (*Store, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("empty database path")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}
	// Ensure file exists with strict perms
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		f, err := os.OpenFile(dbPath, os.O_CREATE|os.O_RDWR, 0o600)
		if err != nil {
			return nil, fmt.Errorf("create database file: %w", err)
		}
		f.Close()
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Pragmas
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL: %w", err)
	}
	_, _ = db.ExecContext(ctx, "PRAGMA busy_timeout=5000;")
	_, _ = db.ExecContext(ctx, "PRAGMA synchronous=NORMAL;")

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	// user_version based migrations
	var ver int
	_ = s.db.QueryRowContext(ctx, "PRAGMA user_version;").Scan(&ver)

	// v1: sessions table
	if ver == 0 {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS sessions (
  id         TEXT PRIMARY KEY,
  step       TEXT NOT NULL,
  email      TEXT NOT NULL DEFAULT '',
  code       TEXT NOT NULL DEFAULT '',
  created_at INTEGER NOT NULL
);
`)
		if err == nil {
			_, err = tx.ExecContext(ctx, "PRAGMA user_version=1;")
		}
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migrate v1: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}

	return nil
}

// Close closes the database
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get loads a session by ID; ok is false when no such session exists.
func (s *Store) Get(ctx context.Context, id string) (*auth.Session, bool, error) {
	if s == nil || s.db == nil {
		return nil, false, fmt.Errorf("store not initialized")
	}

	var (
		sess auth.Session
		step string
		ts   int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, step, email, code, created_at FROM sessions WHERE id = ?`, id).
		Scan(&sess.ID, &step, &sess.Email, &sess.Code, &ts)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load session: %w", err)
	}
	sess.Step = auth.Step(step)
	sess.CreatedAt = time.Unix(ts, 0)
	return &sess, true, nil
}

// Save inserts or replaces a session row.
func (s *Store) Save(ctx context.Context, sess *auth.Session) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("store not initialized")
	}
	if sess == nil || sess.ID == "" {
		return fmt.Errorf("session ID cannot be empty")
	}

	_, err := s.db.ExecContext(ctx, `
INSERT INTO sessions (id, step, email, code, created_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET step=excluded.step, email=excluded.email, code=excluded.code
`, sess.ID, string(sess.Step), sess.Email, sess.Code, sess.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Delete removes a session row (logout teardown). Deleting a missing session
// is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("store not initialized")
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteOlderThan removes sessions created before the cutoff and returns the
// number of rows removed. Used as startup housekeeping.
func (s *Store) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if s == nil || s.db == nil {
		return 0, fmt.Errorf("store not initialized")
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE created_at < ?`, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("delete old sessions: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

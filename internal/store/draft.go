// Package store keeps the editor's local state: the user config file and a
// sqlite-backed draft of the navigation tree. The draft is written after
// every mutation so a failed upstream save (or a crash) never loses edits;
// a successful save clears it.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"navedit-cli/internal/model"

	_ "modernc.org/sqlite"
)

type Store struct {
	Dir string
}

// DefaultDir returns the per-user state directory.
func DefaultDir() (string, error) {
	return ConfigDir()
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) draftPath() string {
	return filepath.Join(filepath.Clean(s.Dir), "draft.sqlite")
}

func (s Store) openDraftDB() (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", s.draftPath())
	if err != nil {
		return nil, err
	}
	const schema = `
CREATE TABLE IF NOT EXISTS draft (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	payload TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init draft db: %w", err)
	}
	return db, nil
}

// SaveDraft persists the whole tree locally. The previous draft, if any, is
// replaced; drafts are whole-tree snapshots, never diffs.
func (s Store) SaveDraft(ctx context.Context, tree []model.NavigationItem) error {
	if tree == nil {
		tree = []model.NavigationItem{}
	}
	payload, err := json.Marshal(tree)
	if err != nil {
		return err
	}
	db, err := s.openDraftDB()
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `
INSERT INTO draft (id, payload, updated_at) VALUES (1, ?, ?)
ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		string(payload), time.Now().UTC().Format(time.RFC3339))
	return err
}

// LoadDraft returns the saved draft tree and whether one exists.
func (s Store) LoadDraft(ctx context.Context) ([]model.NavigationItem, bool, error) {
	if _, err := os.Stat(s.draftPath()); errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	db, err := s.openDraftDB()
	if err != nil {
		return nil, false, err
	}
	defer db.Close()

	var payload string
	err = db.QueryRowContext(ctx, `SELECT payload FROM draft WHERE id = 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var tree []model.NavigationItem
	if err := json.Unmarshal([]byte(payload), &tree); err != nil {
		return nil, false, fmt.Errorf("corrupt draft: %w", err)
	}
	return tree, true, nil
}

// ClearDraft drops the local draft (called after a successful upstream save).
func (s Store) ClearDraft(ctx context.Context) error {
	if _, err := os.Stat(s.draftPath()); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	db, err := s.openDraftDB()
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = db.ExecContext(ctx, `DELETE FROM draft WHERE id = 1`)
	return err
}

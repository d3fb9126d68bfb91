// Package history is a sqlite journal of saves, one row per successful save.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"go.hasen.dev/saplings"
)

// Journal implements saplings.Journal on a sqlite database.
type Journal struct {
	db *sql.DB
}

var _ saplings.Journal = (*Journal)(nil)

func Open(path string) (*Journal, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Journal{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS saves (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			saved_at TEXT NOT NULL,
			path TEXT NOT NULL,
			version INTEGER NOT NULL,
			bytes INTEGER NOT NULL,
			curves INTEGER NOT NULL,
			stems INTEGER NOT NULL,
			powerups INTEGER NOT NULL,
			collectables INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_saves_path ON saves(path, id);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

// Record appends one save to the journal.
func (j *Journal) Record(ctx context.Context, info saplings.SaveInfo) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO saves (saved_at, path, version, bytes, curves, stems, powerups, collectables)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		info.SavedAt.UTC().Format(time.RFC3339Nano), info.Path, int(info.Version), info.Bytes,
		info.Curves, info.Stems, info.Powerups, info.Collectables,
	)
	if err != nil {
		return fmt.Errorf("record save: %w", err)
	}
	return nil
}

// Recent returns up to limit saves, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]saplings.SaveInfo, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT saved_at, path, version, bytes, curves, stems, powerups, collectables
		 FROM saves ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []saplings.SaveInfo
	for rows.Next() {
		var (
			info    saplings.SaveInfo
			savedAt string
			version int
		)
		if err := rows.Scan(&savedAt, &info.Path, &version, &info.Bytes,
			&info.Curves, &info.Stems, &info.Powerups, &info.Collectables); err != nil {
			return nil, err
		}
		info.SavedAt, err = time.Parse(time.RFC3339Nano, savedAt)
		if err != nil {
			return nil, fmt.Errorf("bad saved_at %q: %w", savedAt, err)
		}
		info.Version = uint16(version)
		out = append(out, info)
	}
	return out, rows.Err()
}

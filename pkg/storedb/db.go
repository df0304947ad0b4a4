// Package storedb opens the application's sqlite databases and applies
// per-module versioned migrations.
package storedb

import (
	"database/sql"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "modernc.org/sqlite"

	"github.com/regscope/regscope/internal/errx"
)

type Migration struct {
	Version int
	Name    string
	SQL     string
}

type OpenOptions struct {
	Path       string
	Module     string
	Migrations []Migration
}

// Open opens (creating if needed) the database at opts.Path and brings the
// named module's schema up to date. The returned handle is limited to a
// single connection; the stores built on this package are not written to
// concurrently.
func Open(opts OpenOptions) (*sql.DB, error) {
	if opts.Path == "" {
		return nil, ErrDBPathRequired
	}
	if opts.Module == "" {
		return nil, ErrModuleRequired
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0700); err != nil {
		return nil, errx.Wrap(ErrOpenDB, err)
	}

	db, err := sql.Open("sqlite", opts.Path)
	if err != nil {
		return nil, errx.Wrap(ErrOpenDB, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := configure(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := migrate(db, opts.Module, opts.Migrations); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func configure(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return errx.With(ErrConfigureDB, ": %s: %w", pragma, err)
		}
	}
	return nil
}

func migrate(db *sql.DB, module string, migrations []Migration) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  module TEXT NOT NULL,
  version INTEGER NOT NULL,
  name TEXT NOT NULL,
  applied_at TEXT NOT NULL,
  PRIMARY KEY (module, version)
)`); err != nil {
		return errx.Wrap(ErrCreateMigrationTbl, err)
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	applied := make(map[int]bool, len(migrations))
	rows, err := db.Query(`SELECT version FROM schema_migrations WHERE module = ?`, module)
	if err != nil {
		return errx.Wrap(ErrReadMigrations, err)
	}
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			rows.Close()
			return errx.Wrap(ErrReadMigrations, err)
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return errx.Wrap(ErrReadMigrations, err)
	}
	rows.Close()

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		tx, err := db.Begin()
		if err != nil {
			return errx.With(ErrApplyMigration, ": begin %s/%d %s: %w", module, m.Version, m.Name, err)
		}
		if _, err := tx.Exec(m.SQL); err != nil {
			_ = tx.Rollback()
			return errx.With(ErrApplyMigration, ": %s/%d %s: %w", module, m.Version, m.Name, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO schema_migrations(module, version, name, applied_at) VALUES (?, ?, ?, ?)`,
			module, m.Version, m.Name, time.Now().UTC().Format(time.RFC3339Nano),
		); err != nil {
			_ = tx.Rollback()
			return errx.With(ErrRecordMigration, ": %s/%d %s: %w", module, m.Version, m.Name, err)
		}
		if err := tx.Commit(); err != nil {
			return errx.With(ErrCommitMigration, ": %s/%d %s: %w", module, m.Version, m.Name, err)
		}
	}
	return nil
}

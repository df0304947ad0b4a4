// Package history keeps an audit log of registry edits made through the
// tool: value writes, value deletions and key creations.
package history

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/regscope/regscope/internal/errx"
)

// Operation identifies the kind of edit recorded.
type Operation string

const (
	OpSetValue    Operation = "set-value"
	OpDeleteValue Operation = "delete-value"
	OpCreateKey   Operation = "create-key"
)

// Entry is one recorded edit.
type Entry struct {
	ID        string
	Op        Operation
	KeyPath   string
	ValueName string
	ValueType string
	Data      string
	CreatedAt time.Time
}

// Recorder persists entries to the edit-history database.
type Recorder struct {
	db *sql.DB
}

// Open opens the history database at path.
func Open(path string) (*Recorder, error) {
	db, err := openHistoryDB(path)
	if err != nil {
		return nil, err
	}
	return &Recorder{db: db}, nil
}

func (r *Recorder) Close() error { return r.db.Close() }

// Record stores one edit. ID and CreatedAt are assigned here.
func (r *Recorder) Record(e Entry) error {
	e.ID = uuid.NewString()
	e.CreatedAt = time.Now().UTC()
	if _, err := r.db.Exec(
		`INSERT INTO edits(id, op, key_path, value_name, value_type, data, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, string(e.Op), e.KeyPath, e.ValueName, e.ValueType, e.Data,
		e.CreatedAt.Format(time.RFC3339Nano),
	); err != nil {
		return errx.Wrap(ErrRecordEdit, err)
	}
	return nil
}

// List returns the most recent entries, newest first, up to limit
// (all entries when limit <= 0).
func (r *Recorder) List(limit int) ([]Entry, error) {
	query := `SELECT id, op, key_path, value_name, value_type, data, created_at
	          FROM edits ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, errx.Wrap(ErrListEdits, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var op, createdAt string
		if err := rows.Scan(&e.ID, &op, &e.KeyPath, &e.ValueName, &e.ValueType, &e.Data, &createdAt); err != nil {
			return nil, errx.Wrap(ErrListEdits, err)
		}
		e.Op = Operation(op)
		if e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, errx.Wrap(ErrListEdits, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errx.Wrap(ErrListEdits, err)
	}
	return entries, nil
}

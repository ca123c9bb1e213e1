// Package store provides SQLite-backed persistence for serialized
// circuits, so a diagnosis session can checkpoint a gate tree and restore
// it later independent of the original construction path.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/fyerfyer/logicdiag/pkg/record"
)

//go:embed schema.sql
var schemaSQL string

// ErrNotFound reports a lookup for a circuit that was never saved.
var ErrNotFound = errors.New("circuit not found")

// Store persists serialized circuits in a SQLite database.
type Store struct {
	db *sql.DB
}

// CircuitInfo describes one saved circuit.
type CircuitInfo struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path and applies
// pragmas and the schema. Safe to call on an existing database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// SQLite allows one writer at a time; a single connection avoids
	// SQLITE_BUSY under concurrent saves.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save persists a serialized circuit under the given name and returns the
// generated checkpoint id.
func (s *Store) Save(ctx context.Context, name string, records []record.Record) (string, error) {
	if len(records) == 0 {
		return "", fmt.Errorf("save %q: no records", name)
	}

	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("marshal records: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO circuits (id, name, records, created_at) VALUES (?, ?, ?, ?)`,
		id, name, string(data), time.Now().Unix())
	if err != nil {
		return "", fmt.Errorf("insert circuit %q: %w", name, err)
	}
	return id, nil
}

// Load restores the record list saved under the given checkpoint id.
func (s *Store) Load(ctx context.Context, id string) ([]record.Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT records FROM circuits WHERE id = ?`, id)
	return scanRecords(row, id)
}

// LoadByName restores the most recently saved record list with the given
// name.
func (s *Store) LoadByName(ctx context.Context, name string) ([]record.Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT records FROM circuits WHERE name = ? ORDER BY created_at DESC, rowid DESC LIMIT 1`, name)
	return scanRecords(row, name)
}

// List returns the saved circuits, newest first.
func (s *Store) List(ctx context.Context) ([]CircuitInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM circuits ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("list circuits: %w", err)
	}
	defer rows.Close()

	infos := make([]CircuitInfo, 0)
	for rows.Next() {
		var info CircuitInfo
		var created int64
		if err := rows.Scan(&info.ID, &info.Name, &created); err != nil {
			return nil, fmt.Errorf("scan circuit row: %w", err)
		}
		info.CreatedAt = time.Unix(created, 0)
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list circuits: %w", err)
	}
	return infos, nil
}

func scanRecords(row *sql.Row, key string) ([]record.Record, error) {
	var data string
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
		}
		return nil, fmt.Errorf("load circuit %q: %w", key, err)
	}

	var records []record.Record
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, fmt.Errorf("unmarshal circuit %q: %w", key, err)
	}
	return records, nil
}

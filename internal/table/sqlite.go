package table

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/starford/arbor/internal/models"
	"github.com/starford/arbor/internal/tree"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS records (
	name      TEXT PRIMARY KEY,
	position  INTEGER NOT NULL DEFAULT 0,
	file_path TEXT NOT NULL DEFAULT '',
	parent    TEXT NOT NULL DEFAULT '',
	status    TEXT NOT NULL DEFAULT '',
	category  TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS record_fields (
	name  TEXT NOT NULL REFERENCES records(name) ON DELETE CASCADE,
	key   TEXT NOT NULL,
	value TEXT NOT NULL DEFAULT '',
	UNIQUE(name, key)
);

CREATE INDEX IF NOT EXISTS idx_records_parent ON records(parent);
CREATE INDEX IF NOT EXISTS idx_record_fields_name ON record_fields(name);
`

// SQLite mirrors a record collection into a SQLite database: one row per
// record plus one row per extra field.
type SQLite struct {
	path string
}

// NewSQLite creates a SQLite store for path. The database is opened per
// operation.
func NewSQLite(path string) *SQLite {
	return &SQLite{path: path}
}

// Path returns the database file path.
func (s *SQLite) Path() string {
	return s.path
}

// open opens (or creates) the database and applies the schema.
func (s *SQLite) open() (*sql.DB, error) {
	conn, err := sql.Open("sqlite3", s.path+"?_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("table: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("table: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("table: apply schema: %w", err)
	}
	return conn, nil
}

// Save replaces every stored record within one transaction.
func (s *SQLite) Save(ctx context.Context, records []models.Record) error {
	conn, err := s.open()
	if err != nil {
		return err
	}
	defer conn.Close()

	sorted := make([]models.Record, len(records))
	copy(sorted, records)
	tree.SortRecords(sorted)

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("table: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if _, err := tx.ExecContext(ctx, `DELETE FROM record_fields`); err != nil {
		return fmt.Errorf("table: clear fields: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("table: clear records: %w", err)
	}

	recStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (name, position, file_path, parent, status, category)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("table: prepare record insert: %w", err)
	}
	defer recStmt.Close()

	fieldStmt, err := tx.PrepareContext(ctx, `INSERT INTO record_fields (name, key, value) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("table: prepare field insert: %w", err)
	}
	defer fieldStmt.Close()

	for i, r := range sorted {
		if _, err := recStmt.ExecContext(ctx, r.Name, i, r.FilePath, r.Parent, r.Status, r.Category); err != nil {
			return fmt.Errorf("table: insert record %q: %w", r.Name, err)
		}
		for k, v := range r.Extra {
			if _, err := fieldStmt.ExecContext(ctx, r.Name, k, v); err != nil {
				return fmt.Errorf("table: insert field %q of %q: %w", k, r.Name, err)
			}
		}
	}

	return tx.Commit()
}

// Load returns every stored record in saved order.
func (s *SQLite) Load(ctx context.Context) ([]models.Record, error) {
	if _, err := os.Stat(s.path); err != nil {
		return nil, notFound(s.path, err)
	}
	conn, err := s.open()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, `
		SELECT name, file_path, parent, status, category
		FROM records
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("table: query records: %w", err)
	}
	defer rows.Close()

	records := []models.Record{}
	index := make(map[string]int)
	for rows.Next() {
		var r models.Record
		if err := rows.Scan(&r.Name, &r.FilePath, &r.Parent, &r.Status, &r.Category); err != nil {
			return nil, err
		}
		index[r.Name] = len(records)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	fields, err := conn.QueryContext(ctx, `SELECT name, key, value FROM record_fields`)
	if err != nil {
		return nil, fmt.Errorf("table: query fields: %w", err)
	}
	defer fields.Close()
	for fields.Next() {
		var name, key, value string
		if err := fields.Scan(&name, &key, &value); err != nil {
			return nil, err
		}
		if i, ok := index[name]; ok {
			records[i].Set(key, value)
		}
	}
	return records, fields.Err()
}

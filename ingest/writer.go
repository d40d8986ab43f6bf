package ingest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownWriteMode is returned by ParseWriteMode for anything but replace or append.
var ErrUnknownWriteMode = errors.New("unknown write mode")

// WriteMode determines how rows are written to a table.
type WriteMode string

const (
	WriteModeReplace WriteMode = "replace" // delete all existing rows, insert fresh
	WriteModeAppend  WriteMode = "append"  // add rows without deleting existing
)

// ParseWriteMode validates a write mode string. Empty means replace.
func ParseWriteMode(s string) (WriteMode, error) {
	switch m := WriteMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return WriteModeReplace, nil
	case WriteModeReplace, WriteModeAppend:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q (want replace or append)", ErrUnknownWriteMode, s)
	}
}

// TableWriter persists transformed rows into a table.
type TableWriter interface {
	Write(ctx context.Context, t Table, rows []Row, mode WriteMode) (int, error)
}

// SQLWriter writes rows through database/sql. Placeholders use the $N form,
// which both lib/pq and modernc.org/sqlite accept.
type SQLWriter struct {
	db *sql.DB
}

// NewSQLWriter returns a writer over db.
func NewSQLWriter(db *sql.DB) *SQLWriter {
	return &SQLWriter{db: db}
}

// Write inserts rows in a single transaction. In replace mode the table is
// emptied first within the same transaction.
func (w *SQLWriter) Write(ctx context.Context, t Table, rows []Row, mode WriteMode) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if mode == WriteModeReplace {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+t.Name); err != nil {
			return 0, fmt.Errorf("clear %s: %w", t.Name, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, insertStatement(t))
	if err != nil {
		return 0, fmt.Errorf("prepare insert into %s: %w", t.Name, err)
	}
	defer stmt.Close()

	for i, row := range rows {
		if _, err := stmt.ExecContext(ctx, t.values(row)...); err != nil {
			return 0, fmt.Errorf("insert row %d into %s: %w", i, t.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit %s: %w", t.Name, err)
	}
	return len(rows), nil
}

func insertStatement(t Table) string {
	placeholders := make([]string, len(t.Columns))
	for i := range t.Columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		t.Name, strings.Join(t.Columns, ", "), strings.Join(placeholders, ", "))
}

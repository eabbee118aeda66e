// Package export writes the displayed rows to files: a CSV flat file or a
// single-table SQLite database.
package export

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/baaaaaaaka/jsonview/internal/dataset"
)

// TableName is the table the SQLite export creates.
const TableName = "json_data"

// Format names an export sink.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatSQLite Format = "sqlite"
)

// ParseFormat accepts the names used on the command line.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "sqlite", "sqlite3":
		return FormatSQLite, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// IOError is returned for any failure writing an export file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("export %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

var errNoColumns = errors.New("no columns to export")

// Write exports rows to path in the given format.
func Write(format Format, path string, columns []string, rows []dataset.Row) error {
	switch format {
	case FormatCSV:
		return CSV(path, columns, rows)
	case FormatSQLite:
		return SQLite(path, columns, rows)
	}
	return &IOError{Op: "write", Path: path, Err: fmt.Errorf("unknown format %q", format)}
}

// CSV writes a header line of column names and one line per row. Missing
// fields are written as empty strings. An existing file is truncated.
func CSV(path string, columns []string, rows []dataset.Row) error {
	if len(columns) == 0 {
		return &IOError{Op: "csv", Path: path, Err: errNoColumns}
	}
	f, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		f.Close()
		return &IOError{Op: "write", Path: path, Err: err}
	}
	record := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			record[i] = row.Value(col)
		}
		if err := w.Write(record); err != nil {
			f.Close()
			return &IOError{Op: "write", Path: path, Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &IOError{Op: "close", Path: path, Err: err}
	}
	return nil
}

// SQLite replaces path with a database holding one TEXT column per column
// and one record per row, inserted in a single transaction.
func SQLite(path string, columns []string, rows []dataset.Row) error {
	if len(columns) == 0 {
		return &IOError{Op: "sqlite", Path: path, Err: errNoColumns}
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return &IOError{Op: "remove", Path: path, Err: err}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &IOError{Op: "open", Path: path, Err: err}
	}
	defer db.Close()

	if err := insertRows(db, columns, rows); err != nil {
		return &IOError{Op: "insert", Path: path, Err: err}
	}
	if err := db.Close(); err != nil {
		return &IOError{Op: "close", Path: path, Err: err}
	}
	return nil
}

func insertRows(db *sql.DB, columns []string, rows []dataset.Row) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	defs := make([]string, len(columns))
	marks := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = quoteIdent(col) + " TEXT"
		marks[i] = "?"
	}
	create := fmt.Sprintf("CREATE TABLE %s (%s)", TableName, strings.Join(defs, ", "))
	if _, err := tx.Exec(create); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s VALUES (%s)", TableName, strings.Join(marks, ", ")))
	if err != nil {
		return err
	}
	defer stmt.Close()

	args := make([]any, len(columns))
	for n, row := range rows {
		for i, col := range columns {
			args[i] = row.Value(col)
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("insert row %d: %w", n+1, err)
		}
	}
	return tx.Commit()
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

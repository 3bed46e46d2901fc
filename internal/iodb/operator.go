// Package iodb implements database operations on SQLite files using
// database/sql. This is an impure I/O package that implements
// contracts defined in pkg/.
package iodb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pwcdb/pwcdb/pkg/db"
	_ "modernc.org/sqlite"
)

// sqliteOperator implements db.Operator on a single SQLite file.
// The connection pool is capped at one writer: SQLite serializes
// writes anyway, and a single connection keeps transactions ordered.
type sqliteOperator struct {
	db   *sql.DB
	path string
}

// NewSQLiteOperator creates a new database operator (without
// connecting).
func NewSQLiteOperator() db.Operator {
	return &sqliteOperator{}
}

// Connect opens the SQLite file, creating it if absent, and applies
// the session pragmas.
func (s *sqliteOperator) Connect(ctx context.Context, path string) error {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return ConnectionError(path, err)
	}

	sqlDB.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := sqlDB.ExecContext(ctx, p); err != nil {
			sqlDB.Close()
			return ConnectionError(path, err)
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return ConnectionError(path, err)
	}

	s.db = sqlDB
	s.path = path
	return nil
}

// Close releases the database handle.
func (s *sqliteOperator) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DB returns the underlying sql.DB for direct queries.
func (s *sqliteOperator) DB() *sql.DB {
	return s.db
}

// Path returns the location of the connected file.
func (s *sqliteOperator) Path() string {
	return s.path
}

// TableExists checks if a table exists in the connected file.
func (s *sqliteOperator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if s.db == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT EXISTS (
			SELECT 1 FROM sqlite_master
			WHERE type = 'table' AND name = ?
		)
	`

	var exists bool
	err := s.db.QueryRowContext(ctx, query, tableName).Scan(&exists)
	if err != nil {
		return false, TableExistsCheckError(tableName, err)
	}

	return exists, nil
}

// HasTables checks if the file holds any user tables.
func (s *sqliteOperator) HasTables(ctx context.Context) (bool, error) {
	if s.db == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT EXISTS (
			SELECT 1 FROM sqlite_master
			WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		)
	`

	var hasTables bool
	err := s.db.QueryRowContext(ctx, query).Scan(&hasTables)
	if err != nil {
		return false, TableCheckError(err)
	}

	return hasTables, nil
}

// DropAllTables drops every user table in the connected file.
func (s *sqliteOperator) DropAllTables(ctx context.Context) error {
	if s.db == nil {
		return NotConnectedError()
	}

	query := `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return QueryTablesError(err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return ScanTableError(err)
		}
		tables = append(tables, tableName)
	}
	if err := rows.Err(); err != nil {
		return ScanTableError(err)
	}

	// Foreign keys are disabled for the drop so table order does not
	// matter.
	if _, err := s.db.ExecContext(ctx,
		"PRAGMA foreign_keys = OFF"); err != nil {
		return DropTableError("", err)
	}
	for _, table := range tables {
		dropSQL := fmt.Sprintf(`DROP TABLE IF EXISTS "%s"`, table)
		if _, err := s.db.ExecContext(ctx, dropSQL); err != nil {
			return DropTableError(table, err)
		}
	}
	if _, err := s.db.ExecContext(ctx,
		"PRAGMA foreign_keys = ON"); err != nil {
		return DropTableError("", err)
	}

	return nil
}

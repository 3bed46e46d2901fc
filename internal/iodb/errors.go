package iodb

import (
	"fmt"

	"github.com/pwcdb/pwcdb/pkg/errcode"
)

// ConnectionError is returned when the SQLite file cannot be opened.
func ConnectionError(path string, err error) error {
	return errcode.New(errcode.DBConnectionError,
		fmt.Errorf("failed to open database %s: %w", path, err))
}

// NotConnectedError is returned when an operation runs before Connect.
func NotConnectedError() error {
	return errcode.New(errcode.DBNotConnectedError,
		fmt.Errorf("database is not connected"))
}

// TableCheckError is returned when the table existence probe fails.
func TableCheckError(err error) error {
	return errcode.New(errcode.DBTableCheckError,
		fmt.Errorf("failed to check database tables: %w", err))
}

// TableExistsCheckError is returned when a single table lookup fails.
func TableExistsCheckError(table string, err error) error {
	return errcode.New(errcode.DBTableExistsCheckError,
		fmt.Errorf("failed to check table %s: %w", table, err))
}

// QueryTablesError is returned when listing tables fails.
func QueryTablesError(err error) error {
	return errcode.New(errcode.DBQueryTablesError,
		fmt.Errorf("failed to list tables: %w", err))
}

// ScanTableError is returned when scanning a table name fails.
func ScanTableError(err error) error {
	return errcode.New(errcode.DBScanTableError,
		fmt.Errorf("failed to scan table name: %w", err))
}

// DropTableError is returned when dropping a table fails.
func DropTableError(table string, err error) error {
	return errcode.New(errcode.DBDropTableError,
		fmt.Errorf("failed to drop table %s: %w", table, err))
}

package ioindex

import (
	"fmt"

	"github.com/pwcdb/pwcdb/pkg/errcode"
)

// NotConnectedError is returned when the operator has no connection.
func NotConnectedError() error {
	return errcode.New(errcode.DBNotConnectedError,
		fmt.Errorf("database is not connected"))
}

// CreateIndexError is returned when an index statement fails.
func CreateIndexError(stmt string, err error) error {
	return errcode.New(errcode.IndexCreateError,
		fmt.Errorf("failed to create index %q: %w", stmt, err))
}

// VacuumError is returned when post-index maintenance fails.
func VacuumError(op string, err error) error {
	return errcode.New(errcode.IndexVacuumError,
		fmt.Errorf("failed to run %s: %w", op, err))
}

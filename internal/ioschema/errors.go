package ioschema

import (
	"fmt"

	"github.com/pwcdb/pwcdb/pkg/errcode"
)

// NotConnectedError is returned when the operator has no connection.
func NotConnectedError() error {
	return errcode.New(errcode.DBNotConnectedError,
		fmt.Errorf("database is not connected"))
}

// GORMConnectionError is returned when GORM cannot wrap the existing
// connection.
func GORMConnectionError(err error) error {
	return errcode.New(errcode.SchemaGORMConnectionError,
		fmt.Errorf("failed to open GORM session: %w", err))
}

// CreateSchemaError is returned when AutoMigrate fails.
func CreateSchemaError(target string, err error) error {
	return errcode.New(errcode.SchemaCreateError,
		fmt.Errorf("failed to create schema for target %s: %w",
			target, err))
}

// DropSchemaError is returned when dropping the schema fails.
func DropSchemaError(target string, err error) error {
	return errcode.New(errcode.SchemaDropError,
		fmt.Errorf("failed to drop schema for target %s: %w",
			target, err))
}

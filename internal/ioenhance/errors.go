package ioenhance

import (
	"fmt"

	"github.com/pwcdb/pwcdb/pkg/errcode"
)

// NotConnectedError is returned when enhance runs before Connect.
func NotConnectedError() error {
	return errcode.New(errcode.DBNotConnectedError,
		fmt.Errorf("database is not connected"))
}

// SchemaError is returned when the taxonomy tables cannot be created.
func SchemaError(err error) error {
	return errcode.New(errcode.EnhanceSchemaError,
		fmt.Errorf("cannot extend schema for enhancement: %w", err))
}

// OpenFileError is returned when the methods snapshot cannot be read.
func OpenFileError(path string, err error) error {
	return errcode.New(errcode.IngestOpenFileError,
		fmt.Errorf("cannot open snapshot %s: %w", path, err))
}

// DecodeError is returned when JSON decoding fails.
func DecodeError(path string, err error) error {
	return errcode.New(errcode.IngestDecodeError,
		fmt.Errorf("cannot decode snapshot %s: %w", path, err))
}

// UpdateError is returned when an enrichment write fails.
func UpdateError(err error) error {
	return errcode.New(errcode.EnhanceUpdateError,
		fmt.Errorf("enhancement update failed: %w", err))
}

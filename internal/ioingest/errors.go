package ioingest

import (
	"fmt"

	"github.com/pwcdb/pwcdb/pkg/errcode"
	"github.com/pwcdb/pwcdb/pkg/sources"
)

// NotConnectedError is returned when ingest runs before Connect.
func NotConnectedError() error {
	return errcode.New(errcode.DBNotConnectedError,
		fmt.Errorf("database is not connected"))
}

// UnknownKindError is returned for a source kind without an ingestor.
func UnknownKindError(kind sources.Kind) error {
	return errcode.New(errcode.IngestDecodeError,
		fmt.Errorf("no ingestor for source kind %q", kind))
}

// OpenFileError is returned when a snapshot file cannot be opened.
func OpenFileError(path string, err error) error {
	return errcode.New(errcode.IngestOpenFileError,
		fmt.Errorf("cannot open snapshot %s: %w", path, err))
}

// DecodeError is returned when JSON decoding fails.
func DecodeError(path string, err error) error {
	return errcode.New(errcode.IngestDecodeError,
		fmt.Errorf("cannot decode snapshot %s: %w", path, err))
}

// UpsertError is returned when an entity write fails.
func UpsertError(scope string, err error) error {
	return errcode.New(errcode.IngestUpsertError,
		fmt.Errorf("upsert failed in %s: %w", scope, err))
}

// LinkError is returned when a junction write fails.
func LinkError(table string, err error) error {
	return errcode.New(errcode.IngestLinkError,
		fmt.Errorf("cannot link rows in %s: %w", table, err))
}

// CancelledError is returned when ingest stops at a batch boundary
// because the context ended.
func CancelledError(file string, err error) error {
	return errcode.New(errcode.IngestCancelledError,
		fmt.Errorf("ingest of %s cancelled: %w", file, err))
}

package iorelink

import (
	"fmt"

	"github.com/pwcdb/pwcdb/pkg/errcode"
)

// NotConnectedError is returned when relink runs before Connect.
func NotConnectedError() error {
	return errcode.New(errcode.DBNotConnectedError,
		fmt.Errorf("database is not connected"))
}

// CatalogError is returned when the resolution indexes cannot be
// built from the database.
func CatalogError(err error) error {
	return errcode.New(errcode.RelinkCatalogError,
		fmt.Errorf("cannot build resolution index: %w", err))
}

// ScanError is returned when the papers snapshot cannot be streamed.
func ScanError(path string, err error) error {
	return errcode.New(errcode.RelinkScanError,
		fmt.Errorf("cannot scan papers snapshot %s: %w", path, err))
}

// RebuildError is returned when replacing paper_methods fails.
func RebuildError(err error) error {
	return errcode.New(errcode.RelinkRebuildError,
		fmt.Errorf("cannot rebuild paper_methods: %w", err))
}

// RecountError is returned when the num_papers recompute fails.
func RecountError(err error) error {
	return errcode.New(errcode.RelinkRecountError,
		fmt.Errorf("cannot recount method papers: %w", err))
}

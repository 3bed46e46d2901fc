package ioclean

import (
	"fmt"

	"github.com/pwcdb/pwcdb/pkg/errcode"
)

// NotConnectedError is returned when clean runs before Connect.
func NotConnectedError() error {
	return errcode.New(errcode.DBNotConnectedError,
		fmt.Errorf("database is not connected"))
}

// ScanError is returned when reading candidate rows fails.
func ScanError(table string, err error) error {
	return errcode.New(errcode.CleanScanError,
		fmt.Errorf("cannot scan %s for spam: %w", table, err))
}

// DeleteError is returned when removing flagged rows fails.
func DeleteError(table string, err error) error {
	return errcode.New(errcode.CleanDeleteError,
		fmt.Errorf("cannot delete spam rows from %s: %w", table, err))
}

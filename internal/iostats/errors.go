package iostats

import (
	"fmt"

	"github.com/pwcdb/pwcdb/pkg/errcode"
)

// NotConnectedError is returned when the operator has no connection.
func NotConnectedError() error {
	return errcode.New(errcode.DBNotConnectedError,
		fmt.Errorf("database is not connected"))
}

// QueryError is returned when a statistics query fails.
func QueryError(table string, err error) error {
	return errcode.New(errcode.StatsQueryError,
		fmt.Errorf("failed to collect stats for %s: %w", table, err))
}

package cmd

import (
	"context"

	"github.com/pwcdb/pwcdb/internal/iodb"
	"github.com/pwcdb/pwcdb/pkg/db"
)

// connectTarget opens the operator for one target's database file.
// Callers own the connection and must Close it.
func connectTarget(ctx context.Context, target string) (db.Operator, error) {
	path, err := dbPath(target)
	if err != nil {
		return nil, err
	}
	op := iodb.NewSQLiteOperator()
	if err := op.Connect(ctx, path); err != nil {
		return nil, err
	}
	return op, nil
}

// Package ioindex creates the secondary indexes for a build target and
// compacts the database file. It runs as the last write stage of a
// build; every statement it issues is idempotent.
package ioindex

import (
	"context"
	"log/slog"
	"time"

	"github.com/pwcdb/pwcdb/pkg/db"
	"github.com/pwcdb/pwcdb/pkg/pwcdb"
	"github.com/pwcdb/pwcdb/pkg/schema"
)

type indexer struct {
	operator db.Operator
	target   string
}

// New creates an Indexer for one build target.
func New(op db.Operator, target string) pwcdb.Indexer {
	return &indexer{operator: op, target: target}
}

// Index creates the target's secondary indexes, refreshes planner
// statistics and compacts the file. VACUUM cannot run inside a
// transaction, so the statements execute one by one.
func (x *indexer) Index(ctx context.Context) error {
	sqlDB := x.operator.DB()
	if sqlDB == nil {
		return NotConnectedError()
	}
	start := time.Now()

	ddl := schema.IndexDDL(x.target)
	for _, stmt := range ddl {
		if _, err := sqlDB.ExecContext(ctx, stmt); err != nil {
			return CreateIndexError(stmt, err)
		}
	}
	slog.Info("Created indexes", "target", x.target, "count", len(ddl))

	if _, err := sqlDB.ExecContext(ctx, "ANALYZE"); err != nil {
		return VacuumError("ANALYZE", err)
	}
	if _, err := sqlDB.ExecContext(ctx, "VACUUM"); err != nil {
		return VacuumError("VACUUM", err)
	}

	slog.Info("Optimized database", "target", x.target,
		"file", x.operator.Path(),
		"duration", time.Since(start).String())
	return nil
}

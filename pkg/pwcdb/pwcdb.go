// Package pwcdb defines the lifecycle contracts for building the
// Papers-with-Code catalog databases. Implementations live in
// internal/io* packages; everything here is free of I/O.
package pwcdb

import (
	"context"

	"github.com/pwcdb/pwcdb/pkg/sources"
)

// SchemaManager defines the interface for database schema management.
// It uses GORM AutoMigrate to handle both initial schema creation and
// later additions. Schema management is idempotent - safe to run
// multiple times.
type SchemaManager interface {
	// Create creates the database schema for the connected target.
	Create(ctx context.Context) error

	// Drop removes all tables, used with the --drop flag to rebuild a
	// target from scratch.
	Drop(ctx context.Context) error
}

// Ingestor imports one snapshot file into the connected target.
// Re-ingesting the same file is a no-op for entities already present:
// every entity table carries a natural-key uniqueness constraint and
// inserts use INSERT OR IGNORE semantics.
type Ingestor interface {
	// Ingest loads the given snapshot file. Records missing their
	// natural key are skipped and counted, not fatal.
	Ingest(ctx context.Context, file sources.SourceFile) (*IngestReport, error)
}

// Relinker rebuilds paper-method relationships from the papers
// snapshot against the method catalog already in the store. The
// result is a pure function of (catalog, mentions): mentions are
// matched by normalized name or full name, unmatched mentions are
// dropped, the junction table is cleared and rewritten in one
// transaction, and num_papers is recomputed from the junction table.
type Relinker interface {
	Relink(ctx context.Context, papersPath string) (*RelinkReport, error)
}

// Cleaner classifies datasets and methods with the spam rule table
// and removes matches. Removal cascades to junction rows before the
// entity row is deleted. Dry-run mode classifies and counts without
// mutating storage.
type Cleaner interface {
	Clean(ctx context.Context) (*CleanReport, error)
}

// Enhancer adds the method taxonomy tables to an existing store and
// runs the authorized method enrichment pass (year, source links,
// category membership), updating methods by their canonical URL.
type Enhancer interface {
	Enhance(ctx context.Context, methodsPath string) (*EnhanceReport, error)
}

// Indexer creates query indexes and compacts the store. Runs last;
// always safe to re-run.
type Indexer interface {
	Index(ctx context.Context) error
}

// Reporter produces per-table row counts and top-N leaderboards for
// operator visibility. Output is derived, never persisted.
type Reporter interface {
	Stats(ctx context.Context, topN int) (*StatsReport, error)
}

// Builder orchestrates a full run: schema, ingestion per source file,
// relationship rebuild, classification, index creation and stats,
// with per-stage accounting. A failed stage marks its target Failed
// but does not stop independent targets.
type Builder interface {
	Build(ctx context.Context) (*BuildReport, error)
}

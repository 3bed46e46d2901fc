// Package db defines the store-handle contract for pwcdb.
package db

import (
	"context"
	"database/sql"
)

// Operator defines the interface for basic database management
// operations against one SQLite target. It provides connection
// lifecycle management and exposes the *sql.DB for lifecycle
// components (SchemaManager, Ingestor, Relinker, Cleaner, Indexer) to
// execute their specialized SQL internally.
//
// The handle is owned exclusively by whoever constructed the
// operator. SQLite serializes writers, so all bulk work runs as a
// single writer committing in batches.
type Operator interface {
	// Connect opens (creating if necessary) the SQLite file at path.
	Connect(ctx context.Context, path string) error

	// Close closes the database handle.
	Close() error

	// DB returns the underlying handle for components to run
	// transactions, batched inserts and custom queries.
	DB() *sql.DB

	// Path returns the connected file path, empty if not connected.
	Path() string

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the database has any tables. Used to decide
	// whether ingestion can proceed or schema creation is needed
	// first.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops every table. Used when recreating a target
	// from scratch.
	DropAllTables(ctx context.Context) error
}

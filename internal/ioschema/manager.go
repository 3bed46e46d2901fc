// Package ioschema implements the SchemaManager interface for
// database schema management. This is an impure I/O package that
// wraps GORM AutoMigrate functionality.
package ioschema

import (
	"context"
	"log/slog"

	"github.com/pwcdb/pwcdb/pkg/db"
	"github.com/pwcdb/pwcdb/pkg/pwcdb"
	"github.com/pwcdb/pwcdb/pkg/schema"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// manager implements pwcdb.SchemaManager using GORM AutoMigrate over
// the operator's existing connection.
type manager struct {
	operator db.Operator
	target   string
}

// NewManager creates a SchemaManager for one build target.
func NewManager(op db.Operator, target string) pwcdb.SchemaManager {
	return &manager{operator: op, target: target}
}

// Create builds the tables for the target using GORM AutoMigrate.
// Existing tables are extended, never dropped.
func (m *manager) Create(ctx context.Context) error {
	sqlDB := m.operator.DB()
	if sqlDB == nil {
		return NotConnectedError()
	}

	// Reuse the operator's connection so the pragmas set at Connect
	// stay in force. DriverName points GORM at the pure Go driver.
	gormDB, err := gorm.Open(
		sqlite.New(sqlite.Config{
			DriverName: "sqlite",
			Conn:       sqlDB,
		}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return GORMConnectionError(err)
	}

	if err := schema.Migrate(gormDB.WithContext(ctx), m.target); err != nil {
		return CreateSchemaError(m.target, err)
	}

	slog.Info("Created schema", "target", m.target,
		"file", m.operator.Path())
	return nil
}

// Drop removes every table of the target's database file.
func (m *manager) Drop(ctx context.Context) error {
	if m.operator.DB() == nil {
		return NotConnectedError()
	}
	if err := m.operator.DropAllTables(ctx); err != nil {
		return DropSchemaError(m.target, err)
	}
	slog.Info("Dropped all tables", "target", m.target,
		"file", m.operator.Path())
	return nil
}

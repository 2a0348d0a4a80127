// Package ioschema creates warehouse tables. PostgreSQL tables are
// created with GORM AutoMigrate, SQLite tables with plain DDL.
package ioschema

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/faersetl/faersetl/pkg/config"
	"github.com/faersetl/faersetl/pkg/db"
	"github.com/faersetl/faersetl/pkg/faers"
	"github.com/faersetl/faersetl/pkg/schema"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// manager creates PostgreSQL tables through GORM.
type manager struct {
	operator db.Operator
	cfg      config.WarehouseConfig
}

// NewManager creates a SchemaManager for the PostgreSQL warehouse.
func NewManager(op db.Operator, cfg config.WarehouseConfig) db.SchemaManager {
	return &manager{operator: op, cfg: cfg}
}

// Create implements db.SchemaManager.
func (m *manager) Create(ctx context.Context) error {
	pool := m.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return GORMConnectionError(err)
	}

	if err = schema.Migrate(gormDB.WithContext(ctx), m.cfg); err != nil {
		return CreateSchemaError(m.cfg.Database, err)
	}
	slog.Info("Warehouse schema is ready",
		"driver", "postgres",
		"database", m.cfg.Database,
	)
	return nil
}

// sqliteManager creates SQLite tables.
type sqliteManager struct {
	db  *sql.DB
	cfg config.WarehouseConfig
}

// NewSQLiteManager creates a SchemaManager for the SQLite warehouse.
func NewSQLiteManager(sqlDB *sql.DB, cfg config.WarehouseConfig) db.SchemaManager {
	return &sqliteManager{db: sqlDB, cfg: cfg}
}

// Create implements db.SchemaManager.
func (m *sqliteManager) Create(ctx context.Context) error {
	for _, t := range faers.Tables() {
		name := m.cfg.TableName(t.ID)
		if _, err := m.db.ExecContext(ctx, schema.SQLiteDDL(name, t)); err != nil {
			return CreateSchemaError(name, err)
		}
	}
	slog.Info("Warehouse schema is ready", "driver", "sqlite")
	return nil
}

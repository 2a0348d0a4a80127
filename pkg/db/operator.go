// Package db defines the contract of the PostgreSQL warehouse
// connection.
package db

import (
	"context"

	"github.com/faersetl/faersetl/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Operator manages the connection pool of the PostgreSQL warehouse.
// Schema and load components run their SQL through Pool().
type Operator interface {
	// Connect establishes a connection pool to the warehouse.
	Connect(context.Context, config.WarehouseConfig) error

	// Close closes the connection pool.
	Close() error

	// Pool returns the underlying pool, used for transactions and
	// CopyFrom bulk loads.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the public schema.
	TableExists(ctx context.Context, tableName string) (bool, error)
}

// SchemaManager creates the four warehouse tables if they are missing.
// Existing tables and their data are left untouched.
type SchemaManager interface {
	Create(ctx context.Context) error
}

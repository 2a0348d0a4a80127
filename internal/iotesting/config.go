// Package iotesting provides shared utilities for integration tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/faersetl/faersetl/internal/iodb"
	"github.com/faersetl/faersetl/pkg/config"
	"github.com/faersetl/faersetl/pkg/db"
)

// TestDatabaseName is the database used by all integration tests, so
// they never touch a production warehouse.
const TestDatabaseName = "fda_test"

// WarehouseConfig returns warehouse settings for integration tests.
// Defaults are overridden by FAERSETL_WAREHOUSE_HOST, _PORT, _USER and
// _PASSWORD environment variables. The database name is always
// TestDatabaseName.
func WarehouseConfig() config.WarehouseConfig {
	var opts []config.Option
	if v := os.Getenv("FAERSETL_WAREHOUSE_HOST"); v != "" {
		opts = append(opts, config.OptWarehouseHost(v))
	}
	if v, err := strconv.Atoi(os.Getenv("FAERSETL_WAREHOUSE_PORT")); err == nil {
		opts = append(opts, config.OptWarehousePort(v))
	}
	if v := os.Getenv("FAERSETL_WAREHOUSE_USER"); v != "" {
		opts = append(opts, config.OptWarehouseUser(v))
	}
	if v := os.Getenv("FAERSETL_WAREHOUSE_PASSWORD"); v != "" {
		opts = append(opts, config.OptWarehousePassword(v))
	}
	opts = append(opts, config.OptWarehouseDatabase(TestDatabaseName))

	cfg := config.New()
	cfg.Update(opts)
	return cfg.Warehouse
}

// Postgres connects to the test database. The test is skipped in short
// mode or when PostgreSQL is not reachable.
func Postgres(t *testing.T) db.Operator {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping PostgreSQL integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, WarehouseConfig()); err != nil {
		t.Skipf("PostgreSQL is not available: %v", err)
	}
	t.Cleanup(func() { op.Close() })
	return op
}

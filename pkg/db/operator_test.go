package db_test

import (
	"testing"

	"github.com/faersetl/faersetl/internal/iodb"
	"github.com/faersetl/faersetl/internal/ioschema"
	"github.com/faersetl/faersetl/pkg/config"
	"github.com/faersetl/faersetl/pkg/db"
)

func TestImplementations(t *testing.T) {
	op := iodb.NewPgxOperator()
	var _ db.Operator = op
	var _ db.SchemaManager = ioschema.NewManager(op, config.New().Warehouse)
	var _ db.SchemaManager = ioschema.NewSQLiteManager(nil, config.New().Warehouse)
}

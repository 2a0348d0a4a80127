package ioschema

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/faersetl/faersetl/pkg/errcode"
	"github.com/gnames/gn"
)

// NotConnectedError is returned when schema creation is attempted
// without a database connection.
func NotConnectedError() error {
	msg := "Schema operation attempted without database connection"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: %w", fn.Name(), errors.New("no connection pool")),
	}
}

func GORMConnectionError(err error) error {
	msg := `Cannot connect to database with GORM

<em>How to fix:</em>
  1. Ensure the warehouse is reachable
  2. Check the warehouse section of the config file`
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: gorm open: %w", fn.Name(), err),
	}
}

// CreateSchemaError is returned when tables cannot be created. The
// target is a table or a database name.
func CreateSchemaError(target string, err error) error {
	msg := `Cannot create warehouse tables in <em>%s</em>

<em>How to fix:</em>
  1. Check that the database user has CREATE permissions
  2. Check that table names in the config are valid`
	vars := []any{target}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: schema of %s: %w", fn.Name(), target, err),
	}
}

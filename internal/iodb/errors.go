package iodb

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/faersetl/faersetl/pkg/config"
	"github.com/faersetl/faersetl/pkg/errcode"
	"github.com/gnames/gn"
)

func ConnectionError(cfg config.WarehouseConfig, err error) error {
	msg := `Cannot connect to PostgreSQL at <em>%s:%d/%s</em> as <em>%s</em>.
Check that the server runs (<em>pg_isready -h %s -p %d</em>)
and review the <em>warehouse</em> section of the config file`
	vars := []any{
		cfg.Host, cfg.Port, cfg.Database, cfg.User,
		cfg.Host, cfg.Port,
	}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot connect to %s:%d/%s: %w",
			fn.Name(), cfg.Host, cfg.Port, cfg.Database, err),
	}
}

func NotConnectedError() error {
	msg := "Database is not connected"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: %w", fn.Name(), errors.New("no connection pool")),
	}
}

func TableExistsCheckError(table string, err error) error {
	msg := "Cannot check if table <em>%s</em> exists"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBTableExistsCheckError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: table %s: %w", fn.Name(), table, err),
	}
}

func UnsupportedDriverError(driver string) error {
	msg := "Unsupported warehouse driver <em>%s</em>"
	vars := []any{driver}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBUnsupportedDriverError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: driver %q", fn.Name(), driver),
	}
}

package ioload

import (
	"fmt"
	"runtime"

	"github.com/faersetl/faersetl/pkg/errcode"
	"github.com/gnames/gn"
)

// RowError describes a staged row the warehouse cannot accept. Such
// rows are skipped and counted, the error is only logged.
type RowError struct {
	Table string
	Line  int
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("table %s, line %d: %v", e.Table, e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

func BeginError(err error) error {
	msg := "Cannot start a warehouse transaction"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LoadBeginError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: begin: %w", fn.Name(), err),
	}
}

func TruncateError(table string, err error) error {
	msg := "Cannot remove previous rows of <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LoadTruncateError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: truncate %s: %w", fn.Name(), table, err),
	}
}

func CopyError(table string, err error) error {
	msg := `Cannot load rows into <em>%s</em>, previous data is kept`
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LoadCopyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: copy into %s: %w", fn.Name(), table, err),
	}
}

func CommitError(err error) error {
	msg := "Cannot commit the warehouse load, previous data is kept"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LoadCommitError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: commit: %w", fn.Name(), err),
	}
}

func ReadStageError(table string, err error) error {
	msg := `Cannot read staged rows of <em>%s</em>

Run <em>faersetl transform</em> to stage the tables again`
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LoadReadStageError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: staged %s: %w", fn.Name(), table, err),
	}
}

func SQLiteOpenError(path string, err error) error {
	msg := "Cannot open SQLite warehouse <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: open %s: %w", fn.Name(), path, err),
	}
}

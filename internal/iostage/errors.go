package iostage

import (
	"fmt"
	"runtime"

	"github.com/faersetl/faersetl/pkg/errcode"
	"github.com/gnames/gn"
)

func BackendError(backend string, err error) error {
	msg := "Cannot initialize <em>%s</em> stage backend"
	vars := []any{backend}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StageBackendError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: backend %s: %w", fn.Name(), backend, err),
	}
}

func PutError(uri string, err error) error {
	msg := "Cannot write <em>%s</em>"
	vars := []any{uri}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StagePutError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: put %s: %w", fn.Name(), uri, err),
	}
}

func GetError(uri string, err error) error {
	msg := "Cannot read <em>%s</em>"
	vars := []any{uri}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StageGetError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: get %s: %w", fn.Name(), uri, err),
	}
}

func EncodeError(uri string, err error) error {
	msg := "Cannot encode CSV for <em>%s</em>"
	vars := []any{uri}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StageEncodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: encode %s: %w", fn.Name(), uri, err),
	}
}

func DecodeError(uri string, err error) error {
	msg := "Cannot decode CSV from <em>%s</em>"
	vars := []any{uri}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StageDecodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: decode %s: %w", fn.Name(), uri, err),
	}
}

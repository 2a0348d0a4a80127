package iopipeline

import (
	"fmt"
	"runtime"

	"github.com/faersetl/faersetl/pkg/errcode"
	"github.com/gnames/gn"
)

func CancelledError(phase string, err error) error {
	msg := "Pipeline was cancelled before <em>%s</em>"
	vars := []any{phase}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PipelineCancelledError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cancelled before %s: %w", fn.Name(), phase, err),
	}
}

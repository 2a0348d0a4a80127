package normalize

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/faersetl/faersetl/pkg/errcode"
	"github.com/gnames/gn"
)

// MalformedRecordError describes a raw report that cannot be
// normalized. A malformed record aborts normalization of the batch.
type MalformedRecordError struct {
	// ReportID is the raw `safetyreportid`, possibly empty.
	ReportID string
	// Field is the dotted path of the offending source field.
	Field string
	Err   error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("report %q: field %s: %v", e.ReportID, e.Field, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

type fieldError struct {
	field string
	err   error
}

func (e *fieldError) Error() string {
	return e.field + ": " + e.err.Error()
}

func (e *fieldError) Unwrap() error {
	return e.err
}

// MalformedError wraps a failure to normalize report reportID into
// a user-facing error. The *MalformedRecordError is kept in Err.
func MalformedError(reportID string, err error) error {
	mre := &MalformedRecordError{ReportID: reportID, Err: err}
	var fe *fieldError
	if errors.As(err, &fe) {
		mre.Field = fe.field
		mre.Err = fe.err
	}
	msg := "Malformed report <em>%s</em>, field <em>%s</em>"
	vars := []any{reportID, mre.Field}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.NormalizeMalformedRecordError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %w", fn.Name(), mre),
	}
}

package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Config errors
	ConfigInvalidError

	// Extract errors
	ExtractRequestError
	ExtractHTTPStatusError
	ExtractDecodeError
	ExtractRateLimitError

	// Normalize errors
	NormalizeMalformedRecordError

	// Stage errors
	StageBackendError
	StagePutError
	StageGetError
	StageEncodeError
	StageDecodeError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableExistsCheckError
	DBUnsupportedDriverError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError

	// Load errors
	LoadBeginError
	LoadTruncateError
	LoadCopyError
	LoadCommitError
	LoadReadStageError

	// Pipeline errors
	PipelineCancelledError
)

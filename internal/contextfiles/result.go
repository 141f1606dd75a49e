// Package contextfiles resolves file and directory inputs into prompt context.
// It applies gitignore-style filtering during traversal, skips binary and
// oversized content, and reports every per-path failure as data without
// aborting the batch.
package contextfiles

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
)

// ErrorCode identifies the class of a per-path failure.
type ErrorCode string

const (
	// CodeNotFound indicates the path does not exist.
	CodeNotFound ErrorCode = "ENOENT"
	// CodePermissionDenied indicates access to the path was denied.
	CodePermissionDenied ErrorCode = "EACCES"
	// CodeNotFile indicates the path exists but is not a regular file.
	CodeNotFile ErrorCode = "NOT_FILE"
	// CodeInvalidPathType indicates the path is neither a regular file nor a directory.
	CodeInvalidPathType ErrorCode = "INVALID_PATH_TYPE"
	// CodeFileTooLarge indicates the file exceeds the configured size limit.
	CodeFileTooLarge ErrorCode = "FILE_TOO_LARGE"
	// CodeBinaryFile indicates the file content sampled as binary.
	CodeBinaryFile ErrorCode = "BINARY_FILE"
	// CodeReadError indicates any other I/O failure during probing or reading.
	CodeReadError ErrorCode = "READ_ERROR"
	// CodeUnknown indicates a recovered panic that did not carry an error value.
	CodeUnknown ErrorCode = "UNKNOWN"
)

// ErrorInfo describes a single per-path failure.
type ErrorInfo struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// ContextFileResult is the terminal outcome for one file path. Exactly one of
// Content and Error is non-nil. Path echoes the caller-supplied string for
// directly requested files; entries discovered during directory traversal
// carry their absolute path.
type ContextFileResult struct {
	Path    string     `json:"path"`
	Content *string    `json:"content"`
	Error   *ErrorInfo `json:"error"`
}

// successResult wraps file content in a ContextFileResult.
func successResult(path string, content string) ContextFileResult {
	return ContextFileResult{Path: path, Content: &content}
}

// failureResult wraps an error class and message in a ContextFileResult.
func failureResult(path string, code ErrorCode, message string) ContextFileResult {
	return ContextFileResult{Path: path, Error: &ErrorInfo{Code: code, Message: message}}
}

const (
	messageNotFoundFormat         = "file not found: %s"
	messagePermissionDeniedFormat = "permission denied: %s"
	messageNotFileFormat          = "not a regular file: %s"
	messageInvalidPathTypeFormat  = "not a file or directory: %s"
	messageFileTooLargeFormat     = "file too large: %s is %dMB, limit is %dMB"
	messageBinaryFileFormat       = "binary file skipped: %s"
	messageReadErrorFormat        = "failed to read %s: %v"
	messageListErrorFormat        = "failed to list directory %s: %v"
	messageUnknownFormat          = "unexpected failure reading %s: %v"
)

// bytesPerMegabyte is the divisor used when reporting sizes in whole megabytes.
const bytesPerMegabyte = 1024 * 1024

// wholeMegabytes rounds a byte count to the nearest whole megabyte.
func wholeMegabytes(byteCount int64) int64 {
	return int64(math.Round(float64(byteCount) / float64(bytesPerMegabyte)))
}

// classifyAccessError converts a filesystem probe failure into a failure
// result using the canonical taxonomy. The same classification applies at
// every call site that probes a path.
func classifyAccessError(path string, accessError error) ContextFileResult {
	switch {
	case errors.Is(accessError, fs.ErrNotExist):
		return failureResult(path, CodeNotFound, fmt.Sprintf(messageNotFoundFormat, path))
	case errors.Is(accessError, fs.ErrPermission):
		return failureResult(path, CodePermissionDenied, fmt.Sprintf(messagePermissionDeniedFormat, path))
	default:
		return failureResult(path, CodeReadError, fmt.Sprintf(messageReadErrorFormat, path, accessError))
	}
}

// classifyRecovered converts a recovered panic value into a failure result.
// Panic values that are not errors map to CodeUnknown.
func classifyRecovered(path string, recovered any) ContextFileResult {
	if recoveredError, isError := recovered.(error); isError {
		return failureResult(path, CodeReadError, fmt.Sprintf(messageReadErrorFormat, path, recoveredError))
	}
	return failureResult(path, CodeUnknown, fmt.Sprintf(messageUnknownFormat, path, recovered))
}

package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrPermission   ErrorCode = "PERMISSION"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Materializer precondition errors
	ErrSourceMissing ErrorCode = "SOURCE_MISSING"
	ErrTargetMissing ErrorCode = "TARGET_HOME_MISSING"
	ErrUserUnknown   ErrorCode = "USER_UNKNOWN"

	// FileSystem errors
	ErrFileCopy      ErrorCode = "FILE_COPY"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
	ErrSyncFailed    ErrorCode = "SYNC_FAILED"
	ErrChownFailed   ErrorCode = "CHOWN_FAILED"

	// Operation execution errors
	ErrOpInvalid ErrorCode = "OPERATION_INVALID"
	ErrOpExecute ErrorCode = "OPERATION_EXECUTE"

	// Provisioning step errors
	ErrStepFailed  ErrorCode = "STEP_FAILED"
	ErrStepCommand ErrorCode = "STEP_COMMAND"
)

// HomesetError represents a structured error with code and details
type HomesetError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *HomesetError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *HomesetError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *HomesetError) Is(target error) bool {
	var targetErr *HomesetError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new HomesetError with the given code and message
func New(code ErrorCode, message string) *HomesetError {
	return &HomesetError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new HomesetError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *HomesetError {
	return &HomesetError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a HomesetError
func Wrap(err error, code ErrorCode, message string) *HomesetError {
	if err == nil {
		return nil
	}
	return &HomesetError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *HomesetError {
	if err == nil {
		return nil
	}
	return &HomesetError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *HomesetError) WithDetail(key string, value interface{}) *HomesetError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var hsErr *HomesetError
	if errors.As(err, &hsErr) {
		return hsErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a HomesetError
func GetErrorCode(err error) ErrorCode {
	var hsErr *HomesetError
	if errors.As(err, &hsErr) {
		return hsErr.Code
	}
	return ErrUnknown
}

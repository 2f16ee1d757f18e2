package errors

import "fmt"

// ErrorCode represents a worksheet error code.
type ErrorCode string

const (
	ErrInvalidRequest   ErrorCode = "INVALID_REQUEST"    // 400
	ErrInvalidConfig    ErrorCode = "INVALID_CONFIG"     // 400
	ErrInvalidPageRange ErrorCode = "INVALID_PAGE_RANGE" // 400
	ErrNotFound         ErrorCode = "NOT_FOUND"          // 404
	ErrNoPages          ErrorCode = "NO_PAGES"           // 422
	ErrInternal         ErrorCode = "INTERNAL"           // 500
)

// WorksheetError represents a structured error with code, status, and details.
type WorksheetError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *WorksheetError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *WorksheetError {
	return &WorksheetError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewInvalidConfig creates a 400 error for a worksheet configuration that fails validation.
func NewInvalidConfig(field, msg string) *WorksheetError {
	return &WorksheetError{
		Code:    ErrInvalidConfig,
		Status:  400,
		Message: fmt.Sprintf("invalid %s: %s", field, msg),
		Details: map[string]any{"field": field},
	}
}

// NewInvalidPageRange creates a 400 error for an export page selection outside 1..total.
func NewInvalidPageRange(from, to, total int) *WorksheetError {
	return &WorksheetError{
		Code:    ErrInvalidPageRange,
		Status:  400,
		Message: fmt.Sprintf("page range %d-%d is outside 1-%d", from, to, total),
		Details: map[string]any{"from": from, "to": to, "total": total},
	}
}

// NewNotFound creates a 404 error for a missing surah or export record.
func NewNotFound(kind, identifier string) *WorksheetError {
	return &WorksheetError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("%s not found: %s", kind, identifier),
		Details: map[string]any{"kind": kind, "identifier": identifier},
	}
}

// NewNoPages creates a 422 error raised by the export pipeline when pagination produced nothing.
func NewNoPages() *WorksheetError {
	return &WorksheetError{
		Code:    ErrNoPages,
		Status:  422,
		Message: "no pages to export",
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *WorksheetError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &WorksheetError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a WorksheetError with the given code.
// Wrapped errors are unwrapped.
func Is(err error, code ErrorCode) bool {
	for err != nil {
		if wErr, ok := err.(*WorksheetError); ok {
			return wErr.Code == code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

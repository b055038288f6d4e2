// internal/common/errors/classify.go
package errors

import (
	stderrors "errors"
	"strings"
	"time"
)

// Normalize ensures any error is a *StandardError. Unknown errors become
// non-retryable INTERNAL_ERROR values so callers never see a bare error.
func Normalize(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// CodeOf extracts the taxonomy code from an error, ErrCodeInternal when
// the error carries none.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ErrCodeInternal
}

// IsCode reports whether err carries the given taxonomy code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// IsRetryable reports whether a user-initiated re-invocation of the same
// operation may succeed.
func IsRetryable(err error) bool {
	return Normalize(err).Retryable
}

// GetErrorCategory returns the broad category of the error code, used for
// logging and metric labels.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "NOT_FOUND"):
		return "LOOKUP"
	case strings.Contains(codeStr, "UNREACHABLE"):
		return "TRANSPORT"
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "PRECONDITION"):
		return "INPUT"
	case strings.Contains(codeStr, "SCORE"):
		return "SCORING"
	case strings.Contains(codeStr, "REJECTED"):
		return "BUSINESS_RULE"
	case strings.Contains(codeStr, "IN_FLIGHT"):
		return "CONCURRENCY"
	case strings.Contains(codeStr, "AUTHENTICATION"):
		return "AUTH"
	default:
		return "OTHER"
	}
}

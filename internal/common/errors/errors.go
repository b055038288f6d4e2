// Package errors provides the standardized failure taxonomy for the
// lending workflow. Every remote-facing operation reports its outcome as
// either a success value or a *StandardError carrying one of these codes.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// ErrCodeNotFound: the beneficiary id is unknown to the lending
	// service. Terminal for the session.
	ErrCodeNotFound ErrorCode = "BENEFICIARY_NOT_FOUND"

	// ErrCodeUnreachable: transport failure, timeout or cancellation
	// talking to the lending service. Transient.
	ErrCodeUnreachable ErrorCode = "SERVICE_UNREACHABLE"

	// ErrCodeValidation: the input was rejected, either by the client-side
	// schema check or by the service. The user must correct it.
	ErrCodeValidation ErrorCode = "VALIDATION_FAILED"

	// ErrCodeRemoteComputation: the scoring service failed to produce a
	// result. Retryable by re-invoking the operation.
	ErrCodeRemoteComputation ErrorCode = "SCORE_COMPUTATION_FAILED"

	// ErrCodePrecondition: a client-side guard failed, e.g. submitting a
	// loan application without a computed score. Never reaches the network.
	ErrCodePrecondition ErrorCode = "PRECONDITION_FAILED"

	// ErrCodeRejected: a business-rule decision from the lending service,
	// e.g. insufficient score. Terminal for that submission attempt.
	ErrCodeRejected ErrorCode = "APPLICATION_REJECTED"

	// ErrCodeInFlight: a duplicate request while the same operation is
	// already pending for this session.
	ErrCodeInFlight ErrorCode = "OPERATION_IN_FLIGHT"

	// ErrCodeAuthentication: the bearer credential was missing, expired or
	// refused.
	ErrCodeAuthentication ErrorCode = "AUTHENTICATION_ERROR"

	// ErrCodeInternal: anything that escaped classification.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewNotFoundError creates a non-retryable unknown-beneficiary error.
func NewNotFoundError(beneficiaryID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotFound,
		Message:   "Beneficiary not found",
		Details:   fmt.Sprintf("beneficiaryId: %s", beneficiaryID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnreachableError creates a retryable transport error.
func NewUnreachableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnreachable,
		Message:   "Lending service unreachable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationError creates a non-retryable input validation error.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidation,
		Message:   "Input validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRemoteComputationError creates a retryable scoring-service error.
func NewRemoteComputationError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRemoteComputation,
		Message:   "Score computation failed on the lending service",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewPreconditionError creates a non-retryable client-side guard error.
func NewPreconditionError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodePrecondition,
		Message:   "Operation precondition not met",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRejectedError creates a non-retryable business-rule rejection.
func NewRejectedError(reason string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRejected,
		Message:   "Loan application rejected by the lending service",
		Details:   reason,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInFlightError creates a non-retryable duplicate-request error.
func NewInFlightError(operation string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInFlight,
		Message:   fmt.Sprintf("Operation '%s' is already in flight for this session", operation),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAuthenticationError creates a non-retryable credential error.
func NewAuthenticationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAuthentication,
		Message:   "Authentication failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

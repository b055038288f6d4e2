// internal/common/errors/errors_test.go
package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors_CodeAndRetryability(t *testing.T) {
	tests := []struct {
		name      string
		err       *StandardError
		wantCode  ErrorCode
		retryable bool
	}{
		{name: "not found", err: NewNotFoundError("ben-1"), wantCode: ErrCodeNotFound, retryable: false},
		{name: "unreachable", err: NewUnreachableError(stderrors.New("dial tcp: refused")), wantCode: ErrCodeUnreachable, retryable: true},
		{name: "validation", err: NewValidationError("loan_amount must be positive"), wantCode: ErrCodeValidation, retryable: false},
		{name: "remote computation", err: NewRemoteComputationError(stderrors.New("500")), wantCode: ErrCodeRemoteComputation, retryable: true},
		{name: "precondition", err: NewPreconditionError("no credit score"), wantCode: ErrCodePrecondition, retryable: false},
		{name: "rejected", err: NewRejectedError("score below threshold"), wantCode: ErrCodeRejected, retryable: false},
		{name: "in flight", err: NewInFlightError("compute-score"), wantCode: ErrCodeInFlight, retryable: false},
		{name: "authentication", err: NewAuthenticationError("token expired"), wantCode: ErrCodeAuthentication, retryable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.retryable, tt.err.Retryable)
			assert.False(t, tt.err.Timestamp.IsZero())
			assert.Contains(t, tt.err.Error(), string(tt.wantCode))
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, Normalize(nil))
	})

	t.Run("standard error passes through", func(t *testing.T) {
		orig := NewNotFoundError("ben-1")
		assert.Same(t, orig, Normalize(orig))
	})

	t.Run("wrapped standard error is unwrapped", func(t *testing.T) {
		orig := NewUnreachableError(stderrors.New("timeout"))
		wrapped := fmt.Errorf("loading beneficiary: %w", orig)
		assert.Same(t, orig, Normalize(wrapped))
	})

	t.Run("foreign error becomes internal", func(t *testing.T) {
		got := Normalize(stderrors.New("boom"))
		require.NotNil(t, got)
		assert.Equal(t, ErrCodeInternal, got.Code)
		assert.Equal(t, "boom", got.Details)
		assert.False(t, got.Retryable)
	})
}

func TestCodeOfAndIsCode(t *testing.T) {
	assert.Equal(t, ErrorCode(""), CodeOf(nil))
	assert.Equal(t, ErrCodeInternal, CodeOf(stderrors.New("boom")))

	wrapped := fmt.Errorf("submit: %w", NewRejectedError("low score"))
	assert.Equal(t, ErrCodeRejected, CodeOf(wrapped))
	assert.True(t, IsCode(wrapped, ErrCodeRejected))
	assert.False(t, IsCode(wrapped, ErrCodeValidation))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(NewUnreachableError(stderrors.New("refused"))))
	assert.True(t, IsRetryable(fmt.Errorf("scoring: %w", NewRemoteComputationError(stderrors.New("500")))))
	assert.False(t, IsRetryable(NewValidationError("bad input")))
	assert.False(t, IsRetryable(stderrors.New("boom")))
}

func TestGetErrorCategory(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{ErrCodeNotFound, "LOOKUP"},
		{ErrCodeUnreachable, "TRANSPORT"},
		{ErrCodeValidation, "INPUT"},
		{ErrCodePrecondition, "INPUT"},
		{ErrCodeRemoteComputation, "SCORING"},
		{ErrCodeRejected, "BUSINESS_RULE"},
		{ErrCodeInFlight, "CONCURRENCY"},
		{ErrCodeAuthentication, "AUTH"},
		{ErrCodeInternal, "OTHER"},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, GetErrorCategory(tt.code))
		})
	}
}

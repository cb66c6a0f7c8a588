package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies every failure the console surfaces. Provider and
// contract errors are normalized into this taxonomy at the boundary;
// nothing downstream inspects raw provider error shapes.
type ErrorCode string

const (
	ErrProviderMissing  ErrorCode = "PROVIDER_MISSING"
	ErrUserRejected     ErrorCode = "USER_REJECTED"
	ErrSwitchRejected   ErrorCode = "SWITCH_REJECTED"
	ErrUnsupportedChain ErrorCode = "UNSUPPORTED_CHAIN"
	ErrWrongNetwork     ErrorCode = "WRONG_NETWORK"
	ErrNotConnected     ErrorCode = "NOT_CONNECTED"
	ErrAttemptInFlight  ErrorCode = "ATTEMPT_IN_FLIGHT"
	ErrPriceUnavailable ErrorCode = "PRICE_UNAVAILABLE"
	ErrCallReverted     ErrorCode = "CALL_REVERTED"
	ErrUnknown          ErrorCode = "UNKNOWN"
)

// ReasonUserRejected is the exact message shown when a signature prompt
// is declined (provider code 4001).
const ReasonUserRejected = "User rejected the transaction."

// FlowError is a classified, human-readable console failure.
type FlowError struct {
	Code   ErrorCode
	Reason string
}

func (e *FlowError) Error() string {
	if e.Reason == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Reason)
}

// NewFlowError builds a classified error.
func NewFlowError(code ErrorCode, reason string) *FlowError {
	return &FlowError{Code: code, Reason: reason}
}

// CodeOf extracts the ErrorCode from err, or ErrUnknown.
func CodeOf(err error) ErrorCode {
	var fe *FlowError
	if errors.As(err, &fe) {
		return fe.Code
	}
	return ErrUnknown
}

// ReasonOf extracts the human-readable reason, falling back to Error().
func ReasonOf(err error) string {
	var fe *FlowError
	if errors.As(err, &fe) && fe.Reason != "" {
		return fe.Reason
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

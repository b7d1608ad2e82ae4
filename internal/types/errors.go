package types

import (
	"errors"
	"fmt"
)

// RequestError is a failure reported by the broker API, carrying the
// gRPC-style status code the gateway returns.
type RequestError struct {
	Code    string
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("broker request failed: %s: %s", e.Code, e.Message)
}

// Status codes the core cares about. Everything else is treated as
// transient and retried on the next cycle.
const (
	CodeInvalidArgument   = "INVALID_ARGUMENT"
	CodeNotFound          = "NOT_FOUND"
	CodeResourceExhausted = "RESOURCE_EXHAUSTED"
	CodeFailedPrecond     = "FAILED_PRECONDITION"
	CodeInternal          = "INTERNAL"
	CodeUnavailable       = "UNAVAILABLE"
	CodeUnauthenticated   = "UNAUTHENTICATED"
)

// IsRequestError reports whether err is a broker API failure of any class.
// Errors that are not request errors are treated as programming defects and
// propagate out of the control loop.
func IsRequestError(err error) bool {
	var re *RequestError
	return errors.As(err, &re)
}

// IsNotFound reports an authoritative "no such order" failure.
func IsNotFound(err error) bool {
	var re *RequestError
	return errors.As(err, &re) && re.Code == CodeNotFound
}

// IsUnauthenticated reports an authoritative credential failure.
func IsUnauthenticated(err error) bool {
	var re *RequestError
	return errors.As(err, &re) && re.Code == CodeUnauthenticated
}

package tinkoff

import (
	"net/http"

	"github.com/go-resty/resty/v2"

	"range-trading-bot/internal/types"
)

// apiError is the gateway's JSON error body. The code is the gRPC status
// code of the underlying service.
type apiError struct {
	Code        int    `json:"code"`
	Message     string `json:"message"`
	Description string `json:"description"`
}

// grpcCodeNames maps gRPC status code numbers to their canonical names.
var grpcCodeNames = map[int]string{
	1:  "CANCELLED",
	2:  "UNKNOWN",
	3:  types.CodeInvalidArgument,
	4:  "DEADLINE_EXCEEDED",
	5:  types.CodeNotFound,
	7:  "PERMISSION_DENIED",
	8:  types.CodeResourceExhausted,
	9:  types.CodeFailedPrecond,
	10: "ABORTED",
	13: types.CodeInternal,
	14: types.CodeUnavailable,
	16: types.CodeUnauthenticated,
}

func classifyResponse(resp *resty.Response) error {
	if apiErr, ok := resp.Error().(*apiError); ok && apiErr.Message != "" {
		code, known := grpcCodeNames[apiErr.Code]
		if !known {
			code = codeFromHTTPStatus(resp.StatusCode())
		}
		msg := apiErr.Message
		if apiErr.Description != "" {
			msg += ": " + apiErr.Description
		}
		return &types.RequestError{Code: code, Message: msg}
	}
	return &types.RequestError{
		Code:    codeFromHTTPStatus(resp.StatusCode()),
		Message: resp.Status(),
	}
}

func codeFromHTTPStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return types.CodeInvalidArgument
	case http.StatusUnauthorized, http.StatusForbidden:
		return types.CodeUnauthenticated
	case http.StatusNotFound:
		return types.CodeNotFound
	case http.StatusTooManyRequests:
		return types.CodeResourceExhausted
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return types.CodeUnavailable
	default:
		return types.CodeInternal
	}
}

// wrapTransportError turns a network-level failure into a transient
// RequestError so the control loop retries it on the next cycle.
func wrapTransportError(err error) error {
	return &types.RequestError{Code: types.CodeUnavailable, Message: err.Error()}
}

package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)

	// UpstreamStatus is the tenant's HTTP status for HTTP_ errors.
	UpstreamStatus int `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// Codes checked by the predicates below.
const (
	CodeNetwork            = "NET_001"
	CodeContextInvalidated = "NET_002"
	CodeUpstreamHTTP       = "HTTP_001"
	CodeNotFound           = "CPI_001"
	CodeParse              = "CPI_002"
	CodeNoPayloads         = "CPI_003"
	CodeMissingAPIURL      = "CFG_001"
	CodeMissingCredentials = "CFG_002"
	CodeNotConfigured      = "CFG_003"
)

// ---- Transport (NET / HTTP) ----

// ErrNetwork reports that the tenant (or relay target) could not be reached.
func ErrNetwork(method, url string, err error) *AppError {
	return Wrap(CodeNetwork, fmt.Sprintf("%s %s failed: network error", method, url), http.StatusBadGateway, err)
}

// ErrContextInvalidated reports that the cross-origin relay is gone. The
// caller has to re-establish the relay; retrying is pointless.
func ErrContextInvalidated(err error) *AppError {
	return Wrap(CodeContextInvalidated, "Cross-origin relay is unavailable, reload the session", http.StatusServiceUnavailable, err)
}

// ErrUpstreamHTTP reports a non-2xx answer from the tenant.
func ErrUpstreamHTTP(method, url string, status int, statusText string) *AppError {
	msg := fmt.Sprintf("%s %s failed with status %d %s", method, url, status, statusText)
	switch status {
	case http.StatusNotFound:
		msg += " (check that the URL is correct)"
	case http.StatusUnauthorized, http.StatusForbidden:
		msg += " (check username and password)"
	}
	return &AppError{
		Code:           CodeUpstreamHTTP,
		Message:        msg,
		HTTPStatus:     http.StatusBadGateway,
		UpstreamStatus: status,
	}
}

// ---- Tenant semantics (CPI) ----

func ErrNotFound(what string) *AppError {
	return New(CodeNotFound, what, http.StatusNotFound)
}

func ErrParse(what string, err error) *AppError {
	return Wrap(CodeParse, fmt.Sprintf("could not parse %s", what), http.StatusBadGateway, err)
}

func ErrNoPayloads(flow string) *AppError {
	return New(CodeNoPayloads, fmt.Sprintf("no saved payloads found for %s, fetch payloads first", flow), http.StatusConflict)
}

// ---- Configuration (CFG) ----

func ErrMissingAPIURL() *AppError {
	return New(CodeMissingAPIURL, "API URL is required for Cloud Foundry tenants", http.StatusPreconditionFailed)
}

func ErrMissingCredentials(which string) *AppError {
	return New(CodeMissingCredentials, fmt.Sprintf("%s are required", which), http.StatusPreconditionFailed)
}

// ErrNotConfigured reports a setting an operation needs but that is unset.
func ErrNotConfigured(setting string) *AppError {
	return New(CodeNotConfigured, fmt.Sprintf("%s is not configured", setting), http.StatusPreconditionFailed)
}

// ---- Authentication (AUTH) ----

func ErrInvalidToken() *AppError {
	return New("AUTH_001", "Invalid or expired token", http.StatusUnauthorized)
}

// ErrRelayTargetDenied rejects a relay request for a host outside the tenant.
func ErrRelayTargetDenied(host string) *AppError {
	return New("AUTH_002", fmt.Sprintf("relay target host %q is not allowed", host), http.StatusForbidden)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrStorage(err error) *AppError {
	return Wrap("SYS_002", "Local store failure", http.StatusInternalServerError, err)
}

func ErrLockTimeout(err error) *AppError {
	return Wrap("SYS_003", "Flow is locked by another operation", http.StatusConflict, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a VAL_001 validation error.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

// ---- Predicates ----

func hasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

func IsNetwork(err error) bool { return hasCode(err, CodeNetwork) }

func IsContextInvalidated(err error) bool { return hasCode(err, CodeContextInvalidated) }

func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// IsConfig reports the CFG_ family: setup errors no retry or fallback fixes.
func IsConfig(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && strings.HasPrefix(appErr.Code, "CFG_")
}

// UpstreamStatus returns the tenant status carried by an HTTP_ error.
func UpstreamStatus(err error) (int, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code == CodeUpstreamHTTP {
		return appErr.UpstreamStatus, true
	}
	return 0, false
}

// Package apierror defines the error taxonomy and the response envelopes of
// the API. All errors returned to clients go through this package so that
// internal details (stack traces, driver errors) never leak, and so every
// endpoint shares one envelope shape.
package apierror

import (
	"fmt"
	"net/http"
)

// Machine-readable error codes.
const (
	CodeValidation   = "validation_failed"
	CodeNotFound     = "not_found"
	CodeForbidden    = "forbidden"
	CodeBusinessRule = "business_rule_violation"
	CodeUpstream     = "upstream_failure"
	CodeUnexpected   = "unexpected"
)

// Restriccion describes one violated deletion rule. All violated rules are
// reported together, not just the first one found.
type Restriccion struct {
	Type      string `json:"type"` // sales_exist | status_sold | reserved_with_recent_activity
	Message   string `json:"message"`
	Count     int    `json:"count,omitempty"`
	TotalSold int    `json:"total_sold,omitempty"`
	Status    string `json:"status,omitempty"`
}

// Error is the typed error services return to handlers.
type Error struct {
	Code          string
	Status        int
	Message       string
	Fields        map[string]string // per-field messages, validation only
	Restricciones []Restriccion     // deletion restrictions, business-rule only
	cause         error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// NotFound builds a 404 for an absent batch/sale/resource.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Status: http.StatusNotFound, Message: msg}
}

// Forbidden builds a 403 for an actor mutating a resource it does not own.
func Forbidden(msg string) *Error {
	return &Error{Code: CodeForbidden, Status: http.StatusForbidden, Message: msg}
}

// BusinessRule builds a 422 for a violated business invariant (stock exceeded,
// batch already sold, ...).
func BusinessRule(msg string) *Error {
	return &Error{Code: CodeBusinessRule, Status: http.StatusUnprocessableEntity, Message: msg}
}

// DeletionRestricted builds a 422 carrying every violated deletion rule.
func DeletionRestricted(msg string, restricciones []Restriccion) *Error {
	return &Error{
		Code:          CodeBusinessRule,
		Status:        http.StatusUnprocessableEntity,
		Message:       msg,
		Restricciones: restricciones,
	}
}

// Validation builds a 422 with per-field messages.
func Validation(fields map[string]string) *Error {
	return &Error{
		Code:    CodeValidation,
		Status:  http.StatusUnprocessableEntity,
		Message: "Error de validación",
		Fields:  fields,
	}
}

// Upstream builds a 500 for a failed external collaborator call.
func Upstream(msg string, cause error) *Error {
	return &Error{Code: CodeUpstream, Status: http.StatusInternalServerError, Message: msg, cause: cause}
}

// Unexpected wraps anything else as a 500; detail is only exposed in debug mode.
func Unexpected(msg string, cause error) *Error {
	return &Error{Code: CodeUnexpected, Status: http.StatusInternalServerError, Message: msg, cause: cause}
}

// Cause returns the wrapped internal error, if any.
func (e *Error) Cause() error { return e.cause }

// ── Envelopes ─────────────────────────────────────────────────────────────────

// Respuesta is the success envelope shared by every endpoint.
type Respuesta struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// APIError is the failure envelope. Success is always false.
type APIError struct {
	Success       bool              `json:"success"`
	Message       string            `json:"message"`
	Code          string            `json:"code,omitempty"`
	Errors        map[string]string `json:"errors,omitempty"`
	Restricciones []Restriccion     `json:"restrictions,omitempty"`
}

// New builds a bare failure envelope for middleware-level rejections.
func New(msg string) APIError {
	return APIError{Message: msg}
}

// Envelope converts a typed Error into its wire form.
func (e *Error) Envelope() APIError {
	return APIError{
		Message:       e.Message,
		Code:          e.Code,
		Errors:        e.Fields,
		Restricciones: e.Restricciones,
	}
}

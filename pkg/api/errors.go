package api

import (
	"errors"
	"fmt"
)

// Backend error codes with dedicated user-facing text. Anything else falls
// through to the backend's own message or a status-derived default.
const (
	CodeValidationFailed  = "VALIDATION_FAILED"
	CodeDuplicateSKU      = "DUPLICATE_SKU"
	CodeBomRequired       = "BOM_REQUIRED"
	CodeResourceNotFound  = "RESOURCE_NOT_FOUND"
	CodeResourceConflict  = "RESOURCE_CONFLICT"
	CodeAuthUnauthorized  = "AUTH_UNAUTHORIZED"
	CodeAuthForbidden     = "AUTH_FORBIDDEN"
	CodeInternal          = "SYSTEM_INTERNAL_ERROR"
	CodeUnavailable       = "SYSTEM_SERVICE_UNAVAILABLE"
)

var codeMessages = map[string]string{
	CodeValidationFailed: "Validation failed. Check the highlighted fields.",
	CodeDuplicateSKU:     "An item with this SKU already exists.",
	CodeBomRequired:      "This item type requires a bill of materials.",
	CodeResourceNotFound: "The requested record no longer exists.",
	CodeResourceConflict: "The record changed underneath you. Reload and retry.",
	CodeAuthUnauthorized: "Your session has expired. Sign in again.",
	CodeAuthForbidden:    "You do not have permission for this action.",
	CodeInternal:         "The server hit an internal error.",
	CodeUnavailable:      "The service is temporarily unavailable.",
}

// Error is a failed API call: either a transport failure (Status 0) or a
// non-2xx response, possibly carrying a structured backend error body.
type Error struct {
	Status  int    // HTTP status, 0 for transport failures
	Code    string // backend error code, may be empty
	Message string // backend-provided message
	TraceID string // backend trace id for support, may be empty

	// DependentsCount is set on 409 delete conflicts: the number of child
	// components that a forced delete would orphan.
	DependentsCount int

	cause error
}

// Error renders the most specific message available.
func (e *Error) Error() string {
	if msg, ok := codeMessages[e.Code]; ok {
		return msg
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Status == 0 {
		if e.cause != nil {
			return fmt.Sprintf("network error: %v", e.cause)
		}
		return "network error"
	}
	switch {
	case e.Status == 404:
		return codeMessages[CodeResourceNotFound]
	case e.Status == 409:
		return codeMessages[CodeResourceConflict]
	case e.Status == 401:
		return codeMessages[CodeAuthUnauthorized]
	case e.Status == 403:
		return codeMessages[CodeAuthForbidden]
	case e.Status >= 500:
		return codeMessages[CodeInternal]
	default:
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
}

// Unwrap exposes the transport-level cause, when any.
func (e *Error) Unwrap() error { return e.cause }

// IsConflict reports whether err is a 409 conflict requiring explicit user
// confirmation (e.g. delete with dependents).
func IsConflict(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Status == 409 {
		return apiErr, true
	}
	return nil, false
}

// IsUnauthorized reports whether err is a 401, meaning the session is gone
// and the UI should drop back to the login view.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == 401
}

// errorBody is the backend's structured error envelope.
type errorBody struct {
	Error struct {
		Code       string `json:"code"`
		Message    string `json:"message"`
		TraceID    string `json:"traceId"`
		Dependents int    `json:"dependents_count"`
	} `json:"error"`
}

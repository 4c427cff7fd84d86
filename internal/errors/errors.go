package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("resource conflict")
	ErrBadRequest     = errors.New("bad request")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInternalServer = errors.New("internal server error")

	// Business errors
	ErrUnauthenticated   = errors.New("not signed in")
	ErrSelfRequest       = errors.New("cannot request own ride")
	ErrRideFull          = errors.New("ride has no remaining seats")
	ErrDuplicateRequest  = errors.New("outstanding request already exists for this ride")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrNoRoute           = errors.New("no route between the given points")
)

// APIError represents a structured API error
type APIError struct {
	Code       string `json:"error"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
}

func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new API error
func NewAPIError(code, message string, statusCode int) *APIError {
	return &APIError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Common API errors
func NotFound(resource string) *APIError {
	return NewAPIError("not_found", fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

func BadRequest(message string) *APIError {
	return NewAPIError("bad_request", message, http.StatusBadRequest)
}

func Conflict(message string) *APIError {
	return NewAPIError("conflict", message, http.StatusConflict)
}

func InternalError(message string) *APIError {
	return NewAPIError("internal_error", message, http.StatusInternalServerError)
}

func Unauthenticated() *APIError {
	return NewAPIError("unauthenticated", "sign in to perform this action", http.StatusUnauthorized)
}

func Forbidden(message string) *APIError {
	return NewAPIError("forbidden", message, http.StatusForbidden)
}

func SelfRequestNotAllowed() *APIError {
	return NewAPIError("self_request_not_allowed", "you cannot request a ride from yourself", http.StatusBadRequest)
}

func RideFull() *APIError {
	return NewAPIError("ride_full", "this ride is already full", http.StatusConflict)
}

func DuplicateRequest() *APIError {
	return NewAPIError("duplicate_request", "you already have an outstanding request for this ride", http.StatusConflict)
}

func RequestNotFound() *APIError {
	return NewAPIError("request_not_found", "ride request not found", http.StatusNotFound)
}

func RideNotFound() *APIError {
	return NewAPIError("ride_not_found", "ride not found", http.StatusNotFound)
}

func InvalidTransition(from, to string) *APIError {
	return NewAPIError("invalid_transition", fmt.Sprintf("cannot transition from %s to %s", from, to), http.StatusBadRequest)
}

func GatewayUnavailable(gateway string) *APIError {
	return NewAPIError("gateway_unavailable", fmt.Sprintf("%s is unavailable, try again", gateway), http.StatusBadGateway)
}

func StoreUnavailable() *APIError {
	return NewAPIError("store_unavailable", "datastore is unavailable, try again", http.StatusServiceUnavailable)
}

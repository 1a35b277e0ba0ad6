package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION_ERROR"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_ERROR"
	CodeInvalidInput = "INVALID_INPUT"
	CodeTimeout      = "TIMEOUT"
	CodeUnavailable  = "SERVICE_UNAVAILABLE"

	// Booking rejection reasons. These literals are part of the API
	// contract and must stay stable for clients.
	CodeMissingField      = "MISSING_FIELD"
	CodeInvalidRange      = "INVALID_RANGE"
	CodePastOrTodayStart  = "PAST_OR_TODAY_START"
	CodeUnitUnavailable   = "UNIT_UNAVAILABLE"
	CodeCapacityExceeded  = "CAPACITY_EXCEEDED"
	CodeDateConflict      = "DATE_CONFLICT"
	CodeInvalidTransition = "INVALID_TRANSITION"
)

type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	return e.HTTPStatus
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *AppError) ToJSON() []byte {
	data, _ := json.Marshal(ErrorResponse{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
	return data
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

func Wrap(err error, code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

func NotFoundWithID(resource, id string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}

func Validation(message string, details map[string]any) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    details,
	}
}

func InvalidInput(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func Timeout(message string) *AppError {
	return &AppError{
		Code:       CodeTimeout,
		Message:    message,
		HTTPStatus: http.StatusGatewayTimeout,
	}
}

func Unavailable(service string) *AppError {
	return &AppError{
		Code:       CodeUnavailable,
		Message:    fmt.Sprintf("%s is temporarily unavailable", service),
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// Booking rejection constructors. Each maps a validator rule from the
// reservation flow to its stable reason code.

func MissingField(field string) *AppError {
	return &AppError{
		Code:       CodeMissingField,
		Message:    fmt.Sprintf("%s is required", field),
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"field": field},
	}
}

func InvalidRange(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidRange,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

func PastOrTodayStart() *AppError {
	return &AppError{
		Code:       CodePastOrTodayStart,
		Message:    "reservations must start no earlier than tomorrow",
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

func UnitUnavailable(cabinID string) *AppError {
	return &AppError{
		Code:       CodeUnitUnavailable,
		Message:    "cabin does not exist or is not active",
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"cabin_id": cabinID},
	}
}

func CapacityExceeded(guests, capacity int) *AppError {
	return &AppError{
		Code:       CodeCapacityExceeded,
		Message:    fmt.Sprintf("party size %d exceeds cabin capacity %d", guests, capacity),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details: map[string]any{
			"number_of_guests": guests,
			"capacity":         capacity,
		},
	}
}

func DateConflict(message string) *AppError {
	return &AppError{
		Code:       CodeDateConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

func InvalidTransition(from, to string) *AppError {
	return &AppError{
		Code:       CodeInvalidTransition,
		Message:    fmt.Sprintf("cannot transition reservation from %s to %s", from, to),
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"from": from,
			"to":   to,
		},
	}
}

func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

func AsAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}

// IsCode reports whether err is an AppError carrying the given code.
func IsCode(err error, code string) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == code
}

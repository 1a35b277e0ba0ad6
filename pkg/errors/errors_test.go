package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeValidation, "validation failed", http.StatusUnprocessableEntity)

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if err.Message != "validation failed" {
		t.Errorf("expected message 'validation failed', got %s", err.Message)
	}
	if err.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, err.HTTPStatus)
	}
}

func TestWrap(t *testing.T) {
	originalErr := errors.New("database connection failed")
	wrapped := Wrap(originalErr, CodeInternal, "internal error", http.StatusInternalServerError)

	if wrapped.Err != originalErr {
		t.Errorf("expected wrapped error to contain original error")
	}
	if wrapped.Code != CodeInternal {
		t.Errorf("expected code %s, got %s", CodeInternal, wrapped.Code)
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "without underlying error",
			appErr: &AppError{
				Code:    CodeNotFound,
				Message: "resource not found",
			},
			expected: "NOT_FOUND: resource not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeInternal,
				Message: "internal error",
				Err:     errors.New("database connection failed"),
			},
			expected: "INTERNAL_ERROR: internal error (caused by: database connection failed)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appErr.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	appErr := Wrap(originalErr, CodeInternal, "wrapped", http.StatusInternalServerError)

	unwrapped := errors.Unwrap(appErr)
	if unwrapped != originalErr {
		t.Errorf("Unwrap() should return original error")
	}
}

func TestBookingRejectionConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"missing field", MissingField("guest_name"), CodeMissingField, http.StatusBadRequest},
		{"invalid range", InvalidRange("end before start"), CodeInvalidRange, http.StatusUnprocessableEntity},
		{"past or today start", PastOrTodayStart(), CodePastOrTodayStart, http.StatusUnprocessableEntity},
		{"unit unavailable", UnitUnavailable("64b7a1f0e4b0c83d2f9a1b2c"), CodeUnitUnavailable, http.StatusNotFound},
		{"capacity exceeded", CapacityExceeded(6, 4), CodeCapacityExceeded, http.StatusUnprocessableEntity},
		{"date conflict", DateConflict("overlap"), CodeDateConflict, http.StatusConflict},
		{"invalid transition", InvalidTransition("CONFIRMED", "CANCELLED"), CodeInvalidTransition, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, tt.err.Code)
			}
			if tt.err.StatusCode() != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, tt.err.StatusCode())
			}
		})
	}
}

func TestMissingField_CarriesFieldDetail(t *testing.T) {
	err := MissingField("guest_email")

	if err.Details["field"] != "guest_email" {
		t.Errorf("expected field detail 'guest_email', got %v", err.Details["field"])
	}
}

func TestIsCode(t *testing.T) {
	err := DateConflict("overlap")

	if !IsCode(err, CodeDateConflict) {
		t.Error("expected IsCode to match DATE_CONFLICT")
	}
	if IsCode(err, CodeCapacityExceeded) {
		t.Error("IsCode matched the wrong code")
	}
	if IsCode(errors.New("plain"), CodeDateConflict) {
		t.Error("IsCode matched a non-AppError")
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFound("Reservation")
	if AsAppError(appErr) != appErr {
		t.Error("expected AsAppError to return the same AppError")
	}

	wrapped := AsAppError(errors.New("boom"))
	if wrapped.Code != CodeInternal {
		t.Errorf("expected plain error to become %s, got %s", CodeInternal, wrapped.Code)
	}
}

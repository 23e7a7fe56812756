package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"not found", NotFound("Booking"), CodeNotFound, http.StatusNotFound},
		{"not found with id", NotFoundWithID("Booking", "abc"), CodeNotFound, http.StatusNotFound},
		{"validation", Validation("bad payload", nil), CodeValidation, http.StatusBadRequest},
		{"invalid input", InvalidInput("bad id"), CodeInvalidInput, http.StatusBadRequest},
		{"conflict", Conflict("already confirmed"), CodeConflict, http.StatusConflict},
		{"internal", Internal("boom", errors.New("cause")), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, tt.err.Code)
			}
			if tt.err.HTTPStatus != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, tt.err.HTTPStatus)
			}
		})
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
			if got := tt.appErr.Error(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("database connection failed")
	appErr := Internal("internal error", cause)

	if !errors.Is(appErr, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}

func TestAsAppError(t *testing.T) {
	appErr := Conflict("already confirmed")
	if got := AsAppError(appErr); got != appErr {
		t.Error("expected the same AppError back")
	}

	plain := errors.New("something broke")
	got := AsAppError(plain)
	if got.Code != CodeInternal {
		t.Errorf("expected code %s, got %s", CodeInternal, got.Code)
	}
	if got.HTTPStatus != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, got.HTTPStatus)
	}
}

func TestIsAppError(t *testing.T) {
	if !IsAppError(NotFound("Coupon")) {
		t.Error("expected true for AppError")
	}
	if IsAppError(errors.New("plain")) {
		t.Error("expected false for plain error")
	}
}

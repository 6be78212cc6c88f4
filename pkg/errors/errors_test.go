package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructorsMapToStatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{name: "not found", err: NotFound("Reservation"), wantCode: CodeNotFound, wantStatus: http.StatusNotFound},
		{name: "validation", err: Validation("bad input", nil), wantCode: CodeValidation, wantStatus: http.StatusUnprocessableEntity},
		{name: "invalid input", err: InvalidInput("bad id"), wantCode: CodeInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "conflict", err: Conflict("duplicate name"), wantCode: CodeConflict, wantStatus: http.StatusConflict},
		{name: "internal", err: Internal("boom", errors.New("cause")), wantCode: CodeInternal, wantStatus: http.StatusInternalServerError},
		{name: "timeout", err: Timeout("too slow"), wantCode: CodeTimeout, wantStatus: http.StatusGatewayTimeout},
		{name: "unavailable", err: Unavailable("MongoDB"), wantCode: CodeUnavailable, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", tt.err.Code, tt.wantCode)
			}
			if tt.err.StatusCode() != tt.wantStatus {
				t.Errorf("StatusCode() = %d, want %d", tt.err.StatusCode(), tt.wantStatus)
			}
		})
	}
}

func TestNotFoundWithIDCarriesDetails(t *testing.T) {
	err := NotFoundWithID("Pack", "665f1c2a9b3e4d5a6f7b8c9d")

	if err.Details["resource"] != "Pack" {
		t.Errorf("resource detail = %v", err.Details["resource"])
	}
	if err.Details["id"] != "665f1c2a9b3e4d5a6f7b8c9d" {
		t.Errorf("id detail = %v", err.Details["id"])
	}
}

func TestUnwrapPreservesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal("Failed to create reservation", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the wrapped cause")
	}

	wrapped := fmt.Errorf("outer: %w", err)
	var appErr *AppError
	if !errors.As(wrapped, &appErr) {
		t.Error("errors.As should find the AppError")
	}
}

func TestAsAppErrorFallsBackToInternal(t *testing.T) {
	plain := errors.New("some repo failure")
	appErr := AsAppError(plain)

	if appErr.Code != CodeInternal {
		t.Errorf("Code = %q, want %q", appErr.Code, CodeInternal)
	}
	if !errors.Is(appErr, plain) {
		t.Error("original error should be wrapped")
	}
}

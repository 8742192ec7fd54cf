package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/k8automation/marketing-api/internal/core/domain"
)

func execErrorHandler(t *testing.T, err error, development bool) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop(), development)(err, c)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec, body
}

func TestErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		err     error
		code    int
		message string
	}{
		{domain.ErrMissingFields, http.StatusBadRequest, "Please provide all required fields."},
		{domain.ErrEmailTaken, http.StatusBadRequest, "Email already registered."},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials."},
		{domain.ErrNoToken, http.StatusUnauthorized, "Access denied. No token provided."},
		{domain.ErrInvalidToken, http.StatusUnauthorized, "Invalid token."},
		{domain.ErrStaleToken, http.StatusUnauthorized, "Token is invalid or expired."},
		{domain.ErrUserNotFound, http.StatusUnauthorized, "User not found."},
		{domain.ErrForbidden, http.StatusForbidden, "Access forbidden."},
		{domain.ErrLeadNotFound, http.StatusNotFound, "Contact inquiry not found."},
		{domain.ErrInvalidLeadStatus, http.StatusBadRequest, "Invalid inquiry status."},
	}

	for _, tc := range cases {
		rec, body := execErrorHandler(t, tc.err, false)
		if rec.Code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
		if body["success"] != false {
			t.Fatalf("%v: expected success=false", tc.err)
		}
		if body["message"] != tc.message {
			t.Fatalf("%v: expected message %q, got %q", tc.err, tc.message, body["message"])
		}
	}
}

func TestErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := errors.Join(errors.New("update lead status"), domain.ErrLeadNotFound)
	rec, _ := execErrorHandler(t, wrapped, false)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for wrapped ErrLeadNotFound, got %d", rec.Code)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	rec, body := execErrorHandler(t, echo.NewHTTPError(http.StatusBadRequest, "name is required"), false)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body["message"] != "name is required" {
		t.Fatalf("unexpected message: %q", body["message"])
	}
}

func TestErrorHandler_UnexpectedError(t *testing.T) {
	rec, body := execErrorHandler(t, errors.New("mongo: connection reset"), false)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body["message"] != "Internal Server Error." {
		t.Fatalf("internal detail must not leak, got %q", body["message"])
	}
	if _, ok := body["detail"]; ok {
		t.Fatalf("detail must be omitted outside development")
	}
}

func TestErrorHandler_DevelopmentDetail(t *testing.T) {
	rec, body := execErrorHandler(t, errors.New("mongo: connection reset"), true)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body["detail"] != "mongo: connection reset" {
		t.Fatalf("expected detail in development mode, got %q", body["detail"])
	}
}

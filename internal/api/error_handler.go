package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/k8automation/marketing-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"success":false,"message":"…"}.
//
// When development is true, the underlying error text is attached to 500
// responses as "detail".
func NewHTTPErrorHandler(log zerolog.Logger, development bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)

		resp := errorResponse{Success: false, Message: msg}
		if development && code == http.StatusInternalServerError {
			resp.Detail = err.Error()
		}
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return http.StatusBadRequest, "Please provide all required fields."
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusBadRequest, "Email already registered."
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials."
	case errors.Is(err, domain.ErrNoToken):
		return http.StatusUnauthorized, "Access denied. No token provided."
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "Invalid token."
	case errors.Is(err, domain.ErrStaleToken):
		return http.StatusUnauthorized, "Token is invalid or expired."
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusUnauthorized, "User not found."
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Access forbidden."
	case errors.Is(err, domain.ErrLeadNotFound):
		return http.StatusNotFound, "Contact inquiry not found."
	case errors.Is(err, domain.ErrInvalidLeadStatus):
		return http.StatusBadRequest, "Invalid inquiry status."
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Internal Server Error."
}

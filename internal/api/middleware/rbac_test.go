package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/k8automation/marketing-api/internal/core/domain"
)

func newRBACContext(e *echo.Echo, role string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set(UserContextKey, &domain.User{ID: "user_1", Role: role})
	}
	return c, rec
}

func TestRBAC_Allows(t *testing.T) {
	e := echo.New()
	c, rec := newRBACContext(e, domain.RoleAdmin)

	called := false
	handler := RBAC(domain.RoleAdmin, domain.RoleFullAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_DeniesStandardRole(t *testing.T) {
	e := echo.New()
	c, _ := newRBACContext(e, domain.RoleStandard)

	handler := RBAC(domain.RoleAdmin, domain.RoleFullAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := handler(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403 HTTPError, got %v", err)
	}
}

func TestRBAC_NoInferredHierarchy(t *testing.T) {
	e := echo.New()
	// admin is not implicitly promoted onto full-admin-only routes.
	c, _ := newRBACContext(e, domain.RoleAdmin)

	handler := RBAC(domain.RoleFullAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := handler(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403 HTTPError, got %v", err)
	}
}

func TestRBAC_MissingUser(t *testing.T) {
	e := echo.New()
	c, _ := newRBACContext(e, "")

	handler := RBAC(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := handler(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// RBAC restricts a route to the listed roles. Pure set membership: no role
// implies another, so routes open to both admin tiers must list both.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if _, ok := allowed[user.Role]; !ok {
				msg := fmt.Sprintf("Access denied. Required role: %s.", strings.Join(allowedRoles, " or "))
				return echo.NewHTTPError(http.StatusForbidden, msg)
			}
			return next(c)
		}
	}
}

package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/k8automation/marketing-api/internal/core/domain"
	"github.com/k8automation/marketing-api/internal/core/ports"
)

// UserContextKey is the echo context key the authenticated user is stored
// under.
const UserContextKey = "current_user"

// Auth authenticates the bearer token on each request through the session
// authenticator and injects the resolved user into context. Besides
// signature and expiry, this checks the presented token against the single
// token stored on the user record, so logged-out and superseded tokens are
// rejected even though they are cryptographically valid.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			presented := bearerToken(c)

			user, err := auth.Authenticate(c.Request().Context(), presented)
			if err != nil {
				return err
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user injected by Auth, or nil when the middleware
// did not run.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(UserContextKey).(*domain.User)
	return user
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

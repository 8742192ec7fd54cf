package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/k8automation/marketing-api/internal/api/middleware"
	"github.com/k8automation/marketing-api/internal/core/domain"
	"github.com/k8automation/marketing-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// sessionData is the public view of a user plus their fresh session token.
type sessionData struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

type sessionResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    sessionData `json:"data"`
}

type userResponse struct {
	Success bool         `json:"success"`
	Data    *domain.User `json:"data"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Register creates a new account with the standard role and opens a session.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  map[string]interface{}
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, sessionResponse{
		Success: true,
		Message: "Account created successfully.",
		Data:    newSessionData(result),
	})
}

// Login authenticates credentials and issues a new session token,
// superseding any previously issued one.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]interface{}
// @Failure      401   {object}  map[string]interface{}
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sessionResponse{
		Success: true,
		Message: "Login successful.",
		Data:    newSessionData(result),
	})
}

// Logout invalidates the caller's session. Idempotent from the client's
// perspective: once the token is cleared, a repeat call fails upstream
// authentication instead.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]interface{}
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return domain.ErrNoToken
	}

	if err := h.authService.Logout(c.Request().Context(), user); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{
		Success: true,
		Message: "Logged out successfully.",
	})
}

// Me returns the public view of the authenticated account.
//
// @Summary      Current account
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]interface{}
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return domain.ErrNoToken
	}
	return c.JSON(http.StatusOK, userResponse{Success: true, Data: user})
}

func newSessionData(result *ports.AuthResult) sessionData {
	return sessionData{
		ID:        result.User.ID,
		Name:      result.User.Name,
		Email:     result.User.Email,
		Role:      result.User.Role,
		Token:     result.Token,
		CreatedAt: result.User.CreatedAt,
	}
}

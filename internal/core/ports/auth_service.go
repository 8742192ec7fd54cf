package ports

import (
	"context"

	"github.com/k8automation/marketing-api/internal/core/domain"
)

// AuthResult pairs a user with the session token issued for them.
type AuthResult struct {
	User  *domain.User
	Token string
}

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Logout(ctx context.Context, user *domain.User) error
	// Authenticate resolves a presented bearer token to the user it belongs
	// to, honouring only the most recently issued token per user.
	Authenticate(ctx context.Context, presented string) (*domain.User, error)
}

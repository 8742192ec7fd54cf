package ports

import (
	"context"

	"github.com/k8automation/marketing-api/internal/core/domain"
)

// UserRepository defines the interface for account persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// UpdateToken stores token as the user's only valid session token.
	// An empty token invalidates the session entirely.
	UpdateToken(ctx context.Context, id, token string) error
}

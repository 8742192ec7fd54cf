package ports

import (
	"context"

	"github.com/k8automation/marketing-api/internal/core/domain"
)

// LeadRepository defines the interface for inquiry persistence.
type LeadRepository interface {
	Insert(ctx context.Context, lead *domain.Lead) (*domain.Lead, error)
	// Find returns leads newest-first. An empty status returns all leads.
	Find(ctx context.Context, status domain.LeadStatus) ([]domain.Lead, error)
	FindByID(ctx context.Context, id string) (*domain.Lead, error)
	// FindLatestByEmail returns the most recent lead submitted with email,
	// used to replay suppressed duplicate submissions.
	FindLatestByEmail(ctx context.Context, email string) (*domain.Lead, error)
	UpdateStatus(ctx context.Context, id string, status domain.LeadStatus) (*domain.Lead, error)
	Delete(ctx context.Context, id string) error
}

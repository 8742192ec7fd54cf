package ports

import (
	"context"

	"github.com/k8automation/marketing-api/internal/core/domain"
)

// SubmitLeadInput carries a public contact-form submission.
type SubmitLeadInput struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Service string
	Budget  string
	Message string
}

type LeadService interface {
	Submit(ctx context.Context, input SubmitLeadInput) (*domain.Lead, error)
	List(ctx context.Context, status string) ([]domain.Lead, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Lead, error)
	Delete(ctx context.Context, id string) error
}

package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/k8automation/marketing-api/internal/api/metrics"
	"github.com/k8automation/marketing-api/internal/core/domain"
	"github.com/k8automation/marketing-api/internal/core/ports"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// DedupChecker abstracts the double-submission store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, email, message string) (bool, error)
	Mark(ctx context.Context, email, message string) error
}

// LeadNotifier forwards accepted leads to the automation webhook.
type LeadNotifier interface {
	NotifyNewLead(ctx context.Context, lead *domain.Lead) error
}

type leadService struct {
	repo     ports.LeadRepository
	dedup    DedupChecker
	notifier LeadNotifier
	log      zerolog.Logger
}

// NewLeadService returns a LeadService implementation. dedup and notifier
// may be nil, disabling duplicate suppression and webhook forwarding.
func NewLeadService(repo ports.LeadRepository, dedup DedupChecker, notifier LeadNotifier, log zerolog.Logger) ports.LeadService {
	return &leadService{repo: repo, dedup: dedup, notifier: notifier, log: log}
}

// Submit validates and persists a contact-form submission. A resubmission of
// the same email+message within the dedup window replays the stored lead
// without a second insert.
func (s *leadService) Submit(ctx context.Context, in ports.SubmitLeadInput) (*domain.Lead, error) {
	if in.Name == "" || in.Email == "" || in.Service == "" || in.Message == "" {
		return nil, domain.ErrMissingFields
	}
	if !emailPattern.MatchString(in.Email) {
		return nil, domain.ErrMissingFields
	}
	if len(strings.TrimSpace(in.Message)) < 10 {
		return nil, domain.ErrMissingFields
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	if s.dedup != nil {
		isDup, err := s.dedup.IsDuplicate(ctx, email, in.Message)
		if err != nil {
			s.log.Warn().Err(err).Str("email", email).Msg("dedup check failed, processing anyway")
		} else if isDup {
			if existing, err := s.repo.FindLatestByEmail(ctx, email); err == nil {
				s.log.Info().Str("email", email).Msg("duplicate submission replayed")
				return existing, nil
			}
		}
	}

	now := time.Now().UTC()
	lead := &domain.Lead{
		Name:      strings.TrimSpace(in.Name),
		Email:     email,
		Phone:     strings.TrimSpace(in.Phone),
		Company:   strings.TrimSpace(in.Company),
		Service:   in.Service,
		Budget:    in.Budget,
		Message:   in.Message,
		Status:    domain.LeadStatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Insert(ctx, lead)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to insert lead")
		return nil, err
	}

	if s.dedup != nil {
		if err := s.dedup.Mark(ctx, email, in.Message); err != nil {
			s.log.Warn().Err(err).Str("email", email).Msg("failed to set dedup key")
		}
	}

	s.notify(ctx, created)

	metrics.LeadsSubmittedTotal.WithLabelValues(created.Service).Inc()
	s.log.Info().Str("lead_id", created.ID).Str("service", created.Service).Msg("lead submitted")
	return created, nil
}

// List returns leads newest-first, optionally filtered by status.
func (s *leadService) List(ctx context.Context, status string) ([]domain.Lead, error) {
	filter := domain.LeadStatus(status)
	if status != "" && !filter.IsValid() {
		return nil, domain.ErrInvalidLeadStatus
	}
	return s.repo.Find(ctx, filter)
}

func (s *leadService) UpdateStatus(ctx context.Context, id, status string) (*domain.Lead, error) {
	next := domain.LeadStatus(status)
	if !next.IsValid() {
		return nil, domain.ErrInvalidLeadStatus
	}

	updated, err := s.repo.UpdateStatus(ctx, id, next)
	if err != nil {
		return nil, err
	}

	metrics.LeadStatusUpdatesTotal.WithLabelValues(status).Inc()
	s.log.Info().Str("lead_id", id).Str("status", status).Msg("lead status updated")
	return updated, nil
}

func (s *leadService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("lead_id", id).Msg("lead deleted")
	return nil
}

// notify forwards the lead to the automation webhook. Delivery failure never
// fails the submission.
func (s *leadService) notify(ctx context.Context, lead *domain.Lead) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyNewLead(ctx, lead); err != nil {
		metrics.WebhookDeliveriesTotal.WithLabelValues("failure").Inc()
		s.log.Warn().Err(err).Str("lead_id", lead.ID).Msg("webhook delivery failed")
		return
	}
	metrics.WebhookDeliveriesTotal.WithLabelValues("success").Inc()
}

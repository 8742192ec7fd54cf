package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/k8automation/marketing-api/internal/core/domain"
	"github.com/k8automation/marketing-api/internal/core/ports"
)

type stubLeadRepo struct {
	leads []domain.Lead
	seq   int
}

func (r *stubLeadRepo) Insert(_ context.Context, lead *domain.Lead) (*domain.Lead, error) {
	r.seq++
	created := *lead
	created.ID = fmt.Sprintf("lead_%d", r.seq)
	r.leads = append(r.leads, created)
	return &created, nil
}

func (r *stubLeadRepo) Find(_ context.Context, status domain.LeadStatus) ([]domain.Lead, error) {
	out := make([]domain.Lead, 0)
	for i := len(r.leads) - 1; i >= 0; i-- {
		if status == "" || r.leads[i].Status == status {
			out = append(out, r.leads[i])
		}
	}
	return out, nil
}

func (r *stubLeadRepo) FindByID(_ context.Context, id string) (*domain.Lead, error) {
	for _, l := range r.leads {
		if l.ID == id {
			lead := l
			return &lead, nil
		}
	}
	return nil, domain.ErrLeadNotFound
}

func (r *stubLeadRepo) FindLatestByEmail(_ context.Context, email string) (*domain.Lead, error) {
	for i := len(r.leads) - 1; i >= 0; i-- {
		if r.leads[i].Email == email {
			lead := r.leads[i]
			return &lead, nil
		}
	}
	return nil, domain.ErrLeadNotFound
}

func (r *stubLeadRepo) UpdateStatus(_ context.Context, id string, status domain.LeadStatus) (*domain.Lead, error) {
	for i := range r.leads {
		if r.leads[i].ID == id {
			r.leads[i].Status = status
			r.leads[i].UpdatedAt = time.Now().UTC()
			lead := r.leads[i]
			return &lead, nil
		}
	}
	return nil, domain.ErrLeadNotFound
}

func (r *stubLeadRepo) Delete(_ context.Context, id string) error {
	for i := range r.leads {
		if r.leads[i].ID == id {
			r.leads = append(r.leads[:i], r.leads[i+1:]...)
			return nil
		}
	}
	return domain.ErrLeadNotFound
}

type stubDedup struct {
	seen   map[string]bool
	marked int
}

func newStubDedup() *stubDedup { return &stubDedup{seen: make(map[string]bool)} }

func (d *stubDedup) IsDuplicate(_ context.Context, email, message string) (bool, error) {
	return d.seen[email+"|"+message], nil
}

func (d *stubDedup) Mark(_ context.Context, email, message string) error {
	d.seen[email+"|"+message] = true
	d.marked++
	return nil
}

type stubNotifier struct {
	notified []string
	err      error
}

func (n *stubNotifier) NotifyNewLead(_ context.Context, lead *domain.Lead) error {
	if n.err != nil {
		return n.err
	}
	n.notified = append(n.notified, lead.ID)
	return nil
}

func validInput() ports.SubmitLeadInput {
	return ports.SubmitLeadInput{
		Name:    "Ann",
		Email:   "Ann@Example.com",
		Service: "automation",
		Message: "We need help automating our CRM workflows.",
	}
}

func TestLeadService_Submit_Success(t *testing.T) {
	repo := &stubLeadRepo{}
	dedup := newStubDedup()
	notif := &stubNotifier{}
	svc := NewLeadService(repo, dedup, notif, zerolog.Nop())

	lead, err := svc.Submit(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if lead.Status != domain.LeadStatusNew {
		t.Fatalf("expected status new, got %s", lead.Status)
	}
	if lead.Email != "ann@example.com" {
		t.Fatalf("expected lowercased email, got %s", lead.Email)
	}
	if len(notif.notified) != 1 || notif.notified[0] != lead.ID {
		t.Fatalf("expected webhook notification for %s, got %v", lead.ID, notif.notified)
	}
	if dedup.marked != 1 {
		t.Fatalf("expected submission to be marked in dedup store")
	}
}

func TestLeadService_Submit_Validation(t *testing.T) {
	svc := NewLeadService(&stubLeadRepo{}, nil, nil, zerolog.Nop())

	cases := map[string]ports.SubmitLeadInput{
		"missing name":    {Email: "a@x.com", Service: "automation", Message: "long enough message"},
		"missing email":   {Name: "Ann", Service: "automation", Message: "long enough message"},
		"missing service": {Name: "Ann", Email: "a@x.com", Message: "long enough message"},
		"missing message": {Name: "Ann", Email: "a@x.com", Service: "automation"},
		"bad email":       {Name: "Ann", Email: "not-an-email", Service: "automation", Message: "long enough message"},
		"short message":   {Name: "Ann", Email: "a@x.com", Service: "automation", Message: "too short"},
	}
	for name, input := range cases {
		if _, err := svc.Submit(context.Background(), input); err != domain.ErrMissingFields {
			t.Fatalf("%s: expected ErrMissingFields, got %v", name, err)
		}
	}
}

func TestLeadService_Submit_DuplicateReplayed(t *testing.T) {
	repo := &stubLeadRepo{}
	dedup := newStubDedup()
	svc := NewLeadService(repo, dedup, nil, zerolog.Nop())

	first, err := svc.Submit(context.Background(), validInput())
	if err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	second, err := svc.Submit(context.Background(), validInput())
	if err != nil {
		t.Fatalf("second submit failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected duplicate to replay lead %s, got %s", first.ID, second.ID)
	}
	if len(repo.leads) != 1 {
		t.Fatalf("duplicate submission must not insert, have %d leads", len(repo.leads))
	}
}

func TestLeadService_Submit_WebhookFailureNonFatal(t *testing.T) {
	repo := &stubLeadRepo{}
	notif := &stubNotifier{err: errors.New("webhook down")}
	svc := NewLeadService(repo, nil, notif, zerolog.Nop())

	if _, err := svc.Submit(context.Background(), validInput()); err != nil {
		t.Fatalf("webhook failure must not fail the submission: %v", err)
	}
	if len(repo.leads) != 1 {
		t.Fatalf("lead should be persisted despite webhook failure")
	}
}

func TestLeadService_List_FiltersByStatus(t *testing.T) {
	repo := &stubLeadRepo{}
	svc := NewLeadService(repo, nil, nil, zerolog.Nop())

	first, _ := svc.Submit(context.Background(), validInput())
	other := validInput()
	other.Email = "bob@example.com"
	if _, err := svc.Submit(context.Background(), other); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), first.ID, "contacted"); err != nil {
		t.Fatalf("update status failed: %v", err)
	}

	all, err := svc.List(context.Background(), "")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 leads, got %d", len(all))
	}

	contacted, err := svc.List(context.Background(), "contacted")
	if err != nil {
		t.Fatalf("filtered list failed: %v", err)
	}
	if len(contacted) != 1 || contacted[0].ID != first.ID {
		t.Fatalf("unexpected filtered result: %+v", contacted)
	}

	if _, err := svc.List(context.Background(), "bogus"); err != domain.ErrInvalidLeadStatus {
		t.Fatalf("expected ErrInvalidLeadStatus, got %v", err)
	}
}

func TestLeadService_UpdateStatus(t *testing.T) {
	repo := &stubLeadRepo{}
	svc := NewLeadService(repo, nil, nil, zerolog.Nop())

	lead, _ := svc.Submit(context.Background(), validInput())

	updated, err := svc.UpdateStatus(context.Background(), lead.ID, "qualified")
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if updated.Status != domain.LeadStatusQualified {
		t.Fatalf("expected qualified, got %s", updated.Status)
	}

	if _, err := svc.UpdateStatus(context.Background(), lead.ID, "archived"); err != domain.ErrInvalidLeadStatus {
		t.Fatalf("expected ErrInvalidLeadStatus, got %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), "missing", "closed"); err != domain.ErrLeadNotFound {
		t.Fatalf("expected ErrLeadNotFound, got %v", err)
	}
}

func TestLeadService_Delete(t *testing.T) {
	repo := &stubLeadRepo{}
	svc := NewLeadService(repo, nil, nil, zerolog.Nop())

	lead, _ := svc.Submit(context.Background(), validInput())

	if err := svc.Delete(context.Background(), lead.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), lead.ID); err != domain.ErrLeadNotFound {
		t.Fatalf("expected ErrLeadNotFound, got %v", err)
	}
}

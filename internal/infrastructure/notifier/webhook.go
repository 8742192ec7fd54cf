// Package notifier forwards accepted leads to the marketing automation
// webhook (an n8n workflow in production).
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/k8automation/marketing-api/internal/core/domain"
)

const defaultRequestTimeout = 5 * time.Second

// WebhookNotifier POSTs each new lead as JSON to a configured URL.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

// NewWebhookNotifier builds a notifier for url. A non-positive timeout falls
// back to five seconds.
func NewWebhookNotifier(url string, timeout time.Duration) *WebhookNotifier {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type leadPayload struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Company     string `json:"company,omitempty"`
	Service     string `json:"service"`
	Budget      string `json:"budget,omitempty"`
	Message     string `json:"message"`
	SubmittedAt string `json:"submitted_at"`
}

// NotifyNewLead delivers the lead to the webhook. Any non-2xx response is an
// error; the caller decides whether delivery failure is fatal.
func (n *WebhookNotifier) NotifyNewLead(ctx context.Context, lead *domain.Lead) error {
	body, err := json.Marshal(leadPayload{
		ID:          lead.ID,
		Name:        lead.Name,
		Email:       lead.Email,
		Phone:       lead.Phone,
		Company:     lead.Company,
		Service:     lead.Service,
		Budget:      lead.Budget,
		Message:     lead.Message,
		SubmittedAt: lead.CreatedAt.Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("encode lead payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver lead webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("lead webhook returned status %d", resp.StatusCode)
	}
	return nil
}

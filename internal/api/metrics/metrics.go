// Package metrics defines and registers all custom Prometheus metrics for
// the marketing-site API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register themselves with the default
// registry at init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketing"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts successfully created accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// AuthRejectionsTotal counts requests rejected by session authentication.
// Label:
//   - reason: "no_token", "invalid_token", "unknown_user", or "stale_token"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected during session authentication.",
	},
	[]string{"reason"},
)

// ── Lead metrics ──────────────────────────────────────────────────────────────

// LeadsSubmittedTotal counts accepted contact-form submissions.
// Label:
//   - service: the service the prospect asked about
var LeadsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leads_submitted_total",
		Help:      "Total number of contact inquiries accepted, by requested service.",
	},
	[]string{"service"},
)

// LeadStatusUpdatesTotal counts administrative status changes on leads.
// Label:
//   - status: the status applied ("new", "contacted", "qualified", "closed")
var LeadStatusUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lead_status_updates_total",
		Help:      "Total number of lead status updates, by resulting status.",
	},
	[]string{"status"},
)

// WebhookDeliveriesTotal counts forwarding attempts to the automation webhook.
// Label:
//   - result: "success" or "failure"
var WebhookDeliveriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhook_deliveries_total",
		Help:      "Total number of lead webhook deliveries, labelled by result.",
	},
	[]string{"result"},
)

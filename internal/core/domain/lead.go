package domain

import (
	"errors"
	"time"
)

// LeadStatus represents the follow-up state of a contact inquiry.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusClosed    LeadStatus = "closed"
)

var leadStatuses = map[LeadStatus]struct{}{
	LeadStatusNew:       {},
	LeadStatusContacted: {},
	LeadStatusQualified: {},
	LeadStatusClosed:    {},
}

var ErrLeadNotFound = errors.New("contact inquiry not found")
var ErrInvalidLeadStatus = errors.New("invalid inquiry status")

// IsValid reports whether s is a member of the closed status set.
func (s LeadStatus) IsValid() bool {
	_, ok := leadStatuses[s]
	return ok
}

// Lead is a contact-form inquiry captured from the public site.
type Lead struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Company   string     `json:"company,omitempty"`
	Service   string     `json:"service"`
	Budget    string     `json:"budget,omitempty"`
	Message   string     `json:"message"`
	Status    LeadStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

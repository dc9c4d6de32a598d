// Package request defines the rental request domain model and its
// status state machine.
package request

import (
	"fmt"
	"time"

	"github.com/rentora/rentora/internal/domain"
	"github.com/rentora/rentora/internal/domain/property"
	"github.com/rentora/rentora/internal/domain/user"
)

// Status is the lifecycle state of a rental request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransitionTo reports whether the pending → approved/rejected rule
// permits moving from s to next.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusPending && next.Terminal()
}

// ValidTransitionTarget reports whether next is a status a landlord may
// set on a request. Only the terminal states are assignable.
func ValidTransitionTarget(next Status) bool {
	return next.Terminal()
}

// Request is a tenant's inquiry about a property.
type Request struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id"`
	TenantID   string    `json:"tenant_id"`
	Status     Status    `json:"status"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`

	// Tenant and Property are attached by the workflow when returning
	// entities; Property carries its landlord profile. Never persisted.
	Tenant   *user.Profile      `json:"tenant,omitempty"`
	Property *property.Property `json:"property,omitempty"`
}

// CreateRequest is the input for opening a rental request.
type CreateRequest struct {
	PropertyID string `json:"property_id"`
	Message    string `json:"message"`
}

// Validate checks that the CreateRequest has all required fields.
func (r *CreateRequest) Validate() error {
	if r.PropertyID == "" {
		return fmt.Errorf("property_id is required: %w", domain.ErrValidation)
	}
	if r.Message == "" {
		return fmt.Errorf("message is required: %w", domain.ErrValidation)
	}
	return nil
}

// UpdateStatusRequest is the input for a landlord's approve/reject decision.
type UpdateStatusRequest struct {
	Status Status `json:"status"`
}

// Validate checks that the target status is assignable.
func (r *UpdateStatusRequest) Validate() error {
	if !ValidTransitionTarget(r.Status) {
		return fmt.Errorf("status must be approved or rejected: %w", domain.ErrValidation)
	}
	return nil
}

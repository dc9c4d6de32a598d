package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rentora/rentora/internal/domain"
	"github.com/rentora/rentora/internal/domain/authz"
	"github.com/rentora/rentora/internal/domain/request"
	"github.com/rentora/rentora/internal/port/database"
	"github.com/rentora/rentora/internal/port/messagequeue"
)

// Event subjects for the request lifecycle.
const (
	SubjectRequestCreated  = "requests.created"
	SubjectRequestApproved = "requests.approved"
	SubjectRequestRejected = "requests.rejected"
)

// RequestService is the rental request workflow. Permission to mutate a
// request derives transitively from the property it references.
type RequestService struct {
	store      database.Store
	properties *PropertyService
	queue      messagequeue.Publisher
}

// NewRequestService creates a new request workflow service.
func NewRequestService(store database.Store, properties *PropertyService, queue messagequeue.Publisher) *RequestService {
	return &RequestService{store: store, properties: properties, queue: queue}
}

// Create opens a pending request from a tenant on a property. The
// property must exist; duplicate requests from the same tenant on the
// same property are permitted.
func (s *RequestService) Create(ctx context.Context, tenantID string, req *request.CreateRequest) (*request.Request, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.store.GetProperty(ctx, req.PropertyID); err != nil {
		return nil, fmt.Errorf("resolve property: %w", err)
	}

	r := &request.Request{
		ID:         uuid.NewString(),
		PropertyID: req.PropertyID,
		TenantID:   tenantID,
		Status:     request.StatusPending,
		Message:    req.Message,
	}

	if err := s.store.CreateRequest(ctx, r); err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	s.publish(ctx, SubjectRequestCreated, r)

	return s.populate(ctx, r)
}

// GetByID returns a request with its tenant, property and landlord
// fully attached.
func (s *RequestService) GetByID(ctx context.Context, requestID string) (*request.Request, error) {
	r, err := s.store.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, r)
}

// ListForTenant returns all requests created by the tenant, newest first.
func (s *RequestService) ListForTenant(ctx context.Context, tenantID string) ([]request.Request, error) {
	reqs, err := s.store.ListRequestsByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list tenant requests: %w", err)
	}
	return s.populateAll(ctx, reqs)
}

// ListForLandlord returns all requests targeting the landlord's
// properties, newest first. The landlord's property-id set is resolved
// first, then requests are filtered by membership in that set.
func (s *RequestService) ListForLandlord(ctx context.Context, landlordID string) ([]request.Request, error) {
	props, err := s.store.ListPropertiesByLandlord(ctx, landlordID)
	if err != nil {
		return nil, fmt.Errorf("list landlord properties: %w", err)
	}

	ids := make([]string, len(props))
	for i := range props {
		ids[i] = props[i].ID
	}
	if len(ids) == 0 {
		return []request.Request{}, nil
	}

	reqs, err := s.store.ListRequestsByProperties(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list landlord requests: %w", err)
	}
	return s.populateAll(ctx, reqs)
}

// TransitionStatus applies a landlord's approve/reject decision. Only
// the landlord owning the referenced property may transition. A request
// already in a terminal state is overwritten last-writer-wins; the
// store's per-row atomicity is the only guard.
func (s *RequestService) TransitionStatus(ctx context.Context, requestID, callerID string, newStatus request.Status) (*request.Request, error) {
	upd := request.UpdateStatusRequest{Status: newStatus}
	if err := upd.Validate(); err != nil {
		return nil, err
	}

	r, err := s.store.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	p, err := s.store.GetProperty(ctx, r.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("resolve property: %w", err)
	}
	if !authz.IsOwnerOfRequestProperty(p, callerID) {
		return nil, fmt.Errorf("request %s targets a property not owned by caller: %w", requestID, domain.ErrForbidden)
	}

	if err := s.store.UpdateRequestStatus(ctx, requestID, newStatus); err != nil {
		return nil, fmt.Errorf("update request status: %w", err)
	}
	r.Status = newStatus

	subject := SubjectRequestApproved
	if newStatus == request.StatusRejected {
		subject = SubjectRequestRejected
	}
	s.publish(ctx, subject, r)

	return s.populate(ctx, r)
}

// populate attaches the tenant profile and the property with its
// landlord profile, credential fields stripped.
func (s *RequestService) populate(ctx context.Context, r *request.Request) (*request.Request, error) {
	tenant, err := s.store.GetUser(ctx, r.TenantID)
	if err != nil {
		return nil, fmt.Errorf("resolve tenant %s: %w", r.TenantID, err)
	}
	r.Tenant = profileOf(tenant)

	p, err := s.store.GetProperty(ctx, r.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("resolve property %s: %w", r.PropertyID, err)
	}
	if p, err = s.properties.attachLandlord(ctx, p); err != nil {
		return nil, err
	}
	r.Property = p

	return r, nil
}

func (s *RequestService) populateAll(ctx context.Context, reqs []request.Request) ([]request.Request, error) {
	for i := range reqs {
		if _, err := s.populate(ctx, &reqs[i]); err != nil {
			return nil, err
		}
	}
	if reqs == nil {
		reqs = []request.Request{}
	}
	return reqs, nil
}

func (s *RequestService) publish(ctx context.Context, subject string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Warn("event marshal failed", "subject", subject, "error", err)
		return
	}
	if err := s.queue.Publish(ctx, subject, data); err != nil {
		slog.Warn("event publish failed", "subject", subject, "error", err)
	}
}

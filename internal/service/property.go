package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rentora/rentora/internal/domain"
	"github.com/rentora/rentora/internal/domain/authz"
	"github.com/rentora/rentora/internal/domain/property"
	"github.com/rentora/rentora/internal/domain/user"
	"github.com/rentora/rentora/internal/port/cache"
	"github.com/rentora/rentora/internal/port/database"
	"github.com/rentora/rentora/internal/port/messagequeue"
)

// SubjectPropertyCreated is the event subject emitted on listing creation.
const SubjectPropertyCreated = "properties.created"

// PropertyService is the property directory: listings, search and
// shortlist membership.
type PropertyService struct {
	store    database.Store
	cache    cache.Cache
	queue    messagequeue.Publisher
	cacheTTL time.Duration
}

// NewPropertyService creates a new property directory service. cacheTTL
// bounds how long property-by-id reads may be served from the L1 cache.
func NewPropertyService(store database.Store, c cache.Cache, queue messagequeue.Publisher, cacheTTL time.Duration) *PropertyService {
	return &PropertyService{store: store, cache: c, queue: queue, cacheTTL: cacheTTL}
}

// Create lists a new property owned by landlordID. The listing starts
// available with an empty shortlist.
func (s *PropertyService) Create(ctx context.Context, landlordID string, req *property.CreateRequest) (*property.Property, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	landlord, err := s.store.GetUser(ctx, landlordID)
	if err != nil {
		return nil, fmt.Errorf("get landlord: %w", err)
	}
	if landlord.Role != user.RoleLandlord {
		return nil, fmt.Errorf("only landlords can list properties: %w", domain.ErrValidation)
	}

	p := &property.Property{
		ID:          uuid.NewString(),
		LandlordID:  landlordID,
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		Price:       req.Price,
		Bedrooms:    *req.Bedrooms,
		Bathrooms:   *req.Bathrooms,
		Location:    *req.Location,
		Images:      req.Images,
		Available:   true,
	}

	if err := s.store.CreateProperty(ctx, p); err != nil {
		return nil, fmt.Errorf("create property: %w", err)
	}

	s.publish(ctx, SubjectPropertyCreated, p)

	p.Landlord = profileOf(landlord)
	p.ShortlistedBy = []string{}
	return p, nil
}

// Update applies a partial patch. Only the owning landlord may update.
func (s *PropertyService) Update(ctx context.Context, propertyID, callerID string, patch *property.UpdateRequest) (*property.Property, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	p, err := s.store.GetProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if !authz.IsPropertyOwner(p, callerID) {
		return nil, fmt.Errorf("property %s is not owned by caller: %w", propertyID, domain.ErrForbidden)
	}

	patch.Apply(p)

	if err := s.store.UpdateProperty(ctx, p); err != nil {
		return nil, fmt.Errorf("update property: %w", err)
	}
	s.invalidate(ctx, propertyID)

	return s.attachLandlord(ctx, p)
}

// Delete removes a listing. Only the owning landlord may delete; a
// repeated delete of the same id fails with not-found.
func (s *PropertyService) Delete(ctx context.Context, propertyID, callerID string) error {
	p, err := s.store.GetProperty(ctx, propertyID)
	if err != nil {
		return err
	}
	if !authz.IsPropertyOwner(p, callerID) {
		return fmt.Errorf("property %s is not owned by caller: %w", propertyID, domain.ErrForbidden)
	}

	if err := s.store.DeleteProperty(ctx, propertyID); err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	s.invalidate(ctx, propertyID)
	return nil
}

// GetByID returns a property with its landlord profile attached. Reads
// go through the L1 cache; the store stays authoritative.
func (s *PropertyService) GetByID(ctx context.Context, propertyID string) (*property.Property, error) {
	if data, ok, _ := s.cache.Get(ctx, propertyCacheKey(propertyID)); ok {
		var p property.Property
		if err := json.Unmarshal(data, &p); err == nil {
			return &p, nil
		}
	}

	p, err := s.store.GetProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	resolved, err := s.attachLandlord(ctx, p)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(resolved); err == nil {
		_ = s.cache.Set(ctx, propertyCacheKey(propertyID), data, s.cacheTTL)
	}
	return resolved, nil
}

// ListByLandlord returns all properties owned by landlordID.
func (s *PropertyService) ListByLandlord(ctx context.Context, landlordID string) ([]property.Property, error) {
	props, err := s.store.ListPropertiesByLandlord(ctx, landlordID)
	if err != nil {
		return nil, fmt.Errorf("list landlord properties: %w", err)
	}
	return s.attachLandlords(ctx, props)
}

// ListShortlisted returns all properties the tenant has shortlisted.
func (s *PropertyService) ListShortlisted(ctx context.Context, tenantID string) ([]property.Property, error) {
	props, err := s.store.ListShortlistedProperties(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list shortlisted properties: %w", err)
	}
	return s.attachLandlords(ctx, props)
}

// Search returns properties matching all present filters. When a geo
// center is set, results come back nearest-first.
func (s *PropertyService) Search(ctx context.Context, f property.SearchFilters) ([]property.Property, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	props, err := s.store.SearchProperties(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("search properties: %w", err)
	}
	return s.attachLandlords(ctx, props)
}

// AddToShortlist records tenant interest in a property. Idempotent.
func (s *PropertyService) AddToShortlist(ctx context.Context, propertyID, tenantID string) error {
	if _, err := s.store.GetProperty(ctx, propertyID); err != nil {
		return err
	}
	if err := s.store.AddShortlist(ctx, propertyID, tenantID); err != nil {
		return fmt.Errorf("add shortlist: %w", err)
	}
	s.invalidate(ctx, propertyID)
	return nil
}

// RemoveFromShortlist removes tenant interest. Idempotent; removing a
// non-member is a no-op.
func (s *PropertyService) RemoveFromShortlist(ctx context.Context, propertyID, tenantID string) error {
	if _, err := s.store.GetProperty(ctx, propertyID); err != nil {
		return err
	}
	if err := s.store.RemoveShortlist(ctx, propertyID, tenantID); err != nil {
		return fmt.Errorf("remove shortlist: %w", err)
	}
	s.invalidate(ctx, propertyID)
	return nil
}

// IsShortlisted reports shortlist membership.
func (s *PropertyService) IsShortlisted(ctx context.Context, propertyID, tenantID string) (bool, error) {
	if _, err := s.store.GetProperty(ctx, propertyID); err != nil {
		return false, err
	}
	return s.store.IsShortlisted(ctx, propertyID, tenantID)
}

// attachLandlord resolves and attaches the owning landlord's profile
// and the shortlist membership projection.
func (s *PropertyService) attachLandlord(ctx context.Context, p *property.Property) (*property.Property, error) {
	landlord, err := s.store.GetUser(ctx, p.LandlordID)
	if err != nil {
		return nil, fmt.Errorf("resolve landlord %s: %w", p.LandlordID, err)
	}
	p.Landlord = profileOf(landlord)

	shortlisters, err := s.store.ListShortlisters(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("resolve shortlist %s: %w", p.ID, err)
	}
	p.ShortlistedBy = shortlisters
	return p, nil
}

// attachLandlords resolves landlord profiles for a result set, looking
// each landlord up once.
func (s *PropertyService) attachLandlords(ctx context.Context, props []property.Property) ([]property.Property, error) {
	profiles := make(map[string]*user.Profile)
	for i := range props {
		id := props[i].LandlordID
		prof, ok := profiles[id]
		if !ok {
			landlord, err := s.store.GetUser(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("resolve landlord %s: %w", id, err)
			}
			prof = profileOf(landlord)
			profiles[id] = prof
		}
		props[i].Landlord = prof

		shortlisters, err := s.store.ListShortlisters(ctx, props[i].ID)
		if err != nil {
			return nil, fmt.Errorf("resolve shortlist %s: %w", props[i].ID, err)
		}
		props[i].ShortlistedBy = shortlisters
	}
	return props, nil
}

func (s *PropertyService) invalidate(ctx context.Context, propertyID string) {
	_ = s.cache.Delete(ctx, propertyCacheKey(propertyID))
}

func (s *PropertyService) publish(ctx context.Context, subject string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Warn("event marshal failed", "subject", subject, "error", err)
		return
	}
	if err := s.queue.Publish(ctx, subject, data); err != nil {
		slog.Warn("event publish failed", "subject", subject, "error", err)
	}
}

func propertyCacheKey(id string) string {
	return "property:" + id
}

func profileOf(u *user.User) *user.Profile {
	p := u.Profile()
	return &p
}

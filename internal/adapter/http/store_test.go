package http

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rentora/rentora/internal/domain"
	"github.com/rentora/rentora/internal/domain/property"
	"github.com/rentora/rentora/internal/domain/request"
	"github.com/rentora/rentora/internal/domain/user"
)

// mockStore is an in-memory Store used to drive the full router in
// handler tests.
type mockStore struct {
	mu sync.Mutex

	users      map[string]*user.User
	properties map[string]*property.Property
	requests   map[string]*request.Request
	shortlists map[string]map[string]bool

	propertyOrder []string
	requestOrder  []string
}

func newMockStore() *mockStore {
	return &mockStore{
		users:      make(map[string]*user.User),
		properties: make(map[string]*property.Property),
		requests:   make(map[string]*request.Request),
		shortlists: make(map[string]map[string]bool),
	}
}

func (m *mockStore) CreateUser(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return fmt.Errorf("email taken: %w", domain.ErrConflict)
		}
	}
	cp := *u
	cp.CreatedAt = time.Now()
	m.users[u.ID] = &cp
	return nil
}

func (m *mockStore) GetUser(_ context.Context, id string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (m *mockStore) GetUserByEmail(_ context.Context, email string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
}

func (m *mockStore) CreateProperty(_ context.Context, p *property.Property) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	cp.Landlord = nil
	cp.ShortlistedBy = nil
	cp.CreatedAt = time.Now()
	m.properties[p.ID] = &cp
	m.propertyOrder = append(m.propertyOrder, p.ID)
	return nil
}

func (m *mockStore) GetProperty(_ context.Context, id string) (*property.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.properties[id]
	if !ok {
		return nil, fmt.Errorf("property %s: %w", id, domain.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (m *mockStore) UpdateProperty(_ context.Context, p *property.Property) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.properties[p.ID]; !ok {
		return fmt.Errorf("property %s: %w", p.ID, domain.ErrNotFound)
	}
	cp := *p
	cp.Landlord = nil
	cp.ShortlistedBy = nil
	m.properties[p.ID] = &cp
	return nil
}

func (m *mockStore) DeleteProperty(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.properties[id]; !ok {
		return fmt.Errorf("property %s: %w", id, domain.ErrNotFound)
	}
	delete(m.properties, id)
	delete(m.shortlists, id)
	return nil
}

func (m *mockStore) ListPropertiesByLandlord(_ context.Context, landlordID string) ([]property.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []property.Property
	for i := len(m.propertyOrder) - 1; i >= 0; i-- {
		if p, ok := m.properties[m.propertyOrder[i]]; ok && p.LandlordID == landlordID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockStore) ListShortlistedProperties(_ context.Context, tenantID string) ([]property.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []property.Property
	for i := len(m.propertyOrder) - 1; i >= 0; i-- {
		pid := m.propertyOrder[i]
		if !m.shortlists[pid][tenantID] {
			continue
		}
		if p, ok := m.properties[pid]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockStore) SearchProperties(_ context.Context, f property.SearchFilters) ([]property.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []property.Property
	for i := len(m.propertyOrder) - 1; i >= 0; i-- {
		p, ok := m.properties[m.propertyOrder[i]]
		if !ok {
			continue
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		if f.Bedrooms != nil && p.Bedrooms != *f.Bedrooms {
			continue
		}
		if f.Bathrooms != nil && p.Bathrooms != *f.Bathrooms {
			continue
		}
		if f.Available != nil && p.Available != *f.Available {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockStore) AddShortlist(_ context.Context, propertyID, tenantID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.shortlists[propertyID]
	if !ok {
		set = make(map[string]bool)
		m.shortlists[propertyID] = set
	}
	set[tenantID] = true
	return nil
}

func (m *mockStore) RemoveShortlist(_ context.Context, propertyID, tenantID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if set, ok := m.shortlists[propertyID]; ok {
		delete(set, tenantID)
	}
	return nil
}

func (m *mockStore) IsShortlisted(_ context.Context, propertyID, tenantID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shortlists[propertyID][tenantID], nil
}

func (m *mockStore) ListShortlisters(_ context.Context, propertyID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.shortlists[propertyID]))
	for tenantID := range m.shortlists[propertyID] {
		ids = append(ids, tenantID)
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *mockStore) CreateRequest(_ context.Context, r *request.Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	cp.Tenant = nil
	cp.Property = nil
	cp.CreatedAt = time.Now()
	m.requests[r.ID] = &cp
	m.requestOrder = append(m.requestOrder, r.ID)
	return nil
}

func (m *mockStore) GetRequest(_ context.Context, id string) (*request.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[id]
	if !ok {
		return nil, fmt.Errorf("request %s: %w", id, domain.ErrNotFound)
	}
	cp := *r
	return &cp, nil
}

func (m *mockStore) ListRequestsByTenant(_ context.Context, tenantID string) ([]request.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []request.Request
	for i := len(m.requestOrder) - 1; i >= 0; i-- {
		if r, ok := m.requests[m.requestOrder[i]]; ok && r.TenantID == tenantID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockStore) ListRequestsByProperties(_ context.Context, propertyIDs []string) ([]request.Request, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	members := make(map[string]bool, len(propertyIDs))
	for _, id := range propertyIDs {
		members[id] = true
	}
	var out []request.Request
	for i := len(m.requestOrder) - 1; i >= 0; i-- {
		if r, ok := m.requests[m.requestOrder[i]]; ok && members[r.PropertyID] {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockStore) UpdateRequestStatus(_ context.Context, id string, status request.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[id]
	if !ok {
		return fmt.Errorf("request %s: %w", id, domain.ErrNotFound)
	}
	r.Status = status
	return nil
}

// mockCache is a pass-through cache; handler tests exercise the store path.
type mockCache struct{}

func (mockCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (mockCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (mockCache) Delete(context.Context, string) error { return nil }

type mockQueue struct{}

func (mockQueue) Publish(context.Context, string, []byte) error { return nil }
func (mockQueue) Close() error                                  { return nil }

package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/rentora/rentora/internal/domain"
	"github.com/rentora/rentora/internal/domain/property"
	"github.com/rentora/rentora/internal/domain/request"
	"github.com/rentora/rentora/internal/domain/user"
)

// mockStore is an in-memory Store implementation for tests. Listings
// come back newest first, matching the SQL adapter's ordering.
type mockStore struct {
	mu sync.Mutex

	users      map[string]*user.User
	properties map[string]*property.Property
	requests   map[string]*request.Request
	shortlists map[string]map[string]bool // propertyID -> tenantID set

	propertyOrder  []string
	requestOrder   []string
	shortlistOrder map[string][]string // tenantID -> propertyIDs in add order
}

func newMockStore() *mockStore {
	return &mockStore{
		users:          make(map[string]*user.User),
		properties:     make(map[string]*property.Property),
		requests:       make(map[string]*request.Request),
		shortlists:     make(map[string]map[string]bool),
		shortlistOrder: make(map[string][]string),
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

// GetUserByEmail matches exactly, like the SQL adapter's equality
// predicate; callers are responsible for normalizing case.
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
	order := m.shortlistOrder[tenantID]
	var out []property.Property
	for i := len(order) - 1; i >= 0; i-- {
		pid := order[i]
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
		if !ok || !matchFilters(p, f) {
			continue
		}
		out = append(out, *p)
	}
	// Geo searches come back nearest first, like the SQL adapter.
	if f.Center != nil {
		sort.SliceStable(out, func(i, j int) bool {
			return haversineMeters(*f.Center, out[i].Location) < haversineMeters(*f.Center, out[j].Location)
		})
	}
	return out, nil
}

func matchFilters(p *property.Property, f property.SearchFilters) bool {
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.Bedrooms != nil && p.Bedrooms != *f.Bedrooms {
		return false
	}
	if f.Bathrooms != nil && p.Bathrooms != *f.Bathrooms {
		return false
	}
	if f.Available != nil && p.Available != *f.Available {
		return false
	}
	if f.Center != nil && haversineMeters(*f.Center, p.Location) > f.Radius() {
		return false
	}
	return true
}

func haversineMeters(a, b property.Point) float64 {
	const earthRadius = 6371000.0
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := rad(b.Latitude - a.Latitude)
	dLng := rad(b.Longitude - a.Longitude)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(a.Latitude))*math.Cos(rad(b.Latitude))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadius * math.Asin(math.Sqrt(h))
}

func (m *mockStore) AddShortlist(_ context.Context, propertyID, tenantID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.shortlists[propertyID]
	if !ok {
		set = make(map[string]bool)
		m.shortlists[propertyID] = set
	}
	if !set[tenantID] {
		set[tenantID] = true
		m.shortlistOrder[tenantID] = append(m.shortlistOrder[tenantID], propertyID)
	}
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

// mockCache records cache traffic.
type mockCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	sets    int
	deletes int
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (c *mockCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *mockCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.sets++
	return nil
}

func (c *mockCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	c.deletes++
	return nil
}

// mockQueue records published events.
type mockQueue struct {
	mu       sync.Mutex
	subjects []string
	err      error
}

func (q *mockQueue) Publish(_ context.Context, subject string, _ []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.subjects = append(q.subjects, subject)
	return nil
}

func (q *mockQueue) Close() error { return nil }

func (q *mockQueue) published() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]string(nil), q.subjects...)
}

// --- fixtures ---

func seedUser(m *mockStore, id string, role user.Role) *user.User {
	u := &user.User{
		ID:           id,
		Email:        id + "@example.com",
		Name:         "User " + id,
		PasswordHash: "$2a$10$unused",
		Role:         role,
	}
	m.users[id] = u
	return u
}

func seedProperty(m *mockStore, id, landlordID string) *property.Property {
	p := &property.Property{
		ID:          id,
		LandlordID:  landlordID,
		Title:       "Listing " + id,
		Description: "desc",
		Address:     "addr",
		Price:       1000,
		Bedrooms:    2,
		Bathrooms:   1,
		Location:    property.Point{Longitude: 18.0686, Latitude: 59.3293},
		Images:      []string{"a.jpg"},
		Available:   true,
	}
	m.properties[id] = p
	m.propertyOrder = append(m.propertyOrder, id)
	return p
}

func intPtr(n int) *int { return &n }
func floatPtr(f float64) *float64 { return &f }

// Package database defines the database store port (interface).
package database

import (
	"context"

	"github.com/rentora/rentora/internal/domain/property"
	"github.com/rentora/rentora/internal/domain/request"
	"github.com/rentora/rentora/internal/domain/user"
)

// Store is the port interface for database operations. Implementations
// must guarantee per-row write atomicity; there are no multi-row
// transactions behind this interface.
type Store interface {
	// Users
	CreateUser(ctx context.Context, u *user.User) error
	GetUser(ctx context.Context, id string) (*user.User, error)
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)

	// Properties
	CreateProperty(ctx context.Context, p *property.Property) error
	GetProperty(ctx context.Context, id string) (*property.Property, error)
	UpdateProperty(ctx context.Context, p *property.Property) error
	DeleteProperty(ctx context.Context, id string) error
	ListPropertiesByLandlord(ctx context.Context, landlordID string) ([]property.Property, error)
	ListShortlistedProperties(ctx context.Context, tenantID string) ([]property.Property, error)
	SearchProperties(ctx context.Context, f property.SearchFilters) ([]property.Property, error)

	// Shortlist membership
	AddShortlist(ctx context.Context, propertyID, tenantID string) error
	RemoveShortlist(ctx context.Context, propertyID, tenantID string) error
	IsShortlisted(ctx context.Context, propertyID, tenantID string) (bool, error)
	ListShortlisters(ctx context.Context, propertyID string) ([]string, error)

	// Requests
	CreateRequest(ctx context.Context, r *request.Request) error
	GetRequest(ctx context.Context, id string) (*request.Request, error)
	ListRequestsByTenant(ctx context.Context, tenantID string) ([]request.Request, error)
	ListRequestsByProperties(ctx context.Context, propertyIDs []string) ([]request.Request, error)
	UpdateRequestStatus(ctx context.Context, id string, status request.Status) error
}

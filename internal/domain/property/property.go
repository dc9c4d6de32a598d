// Package property defines the rental listing domain model.
package property

import (
	"fmt"
	"time"

	"github.com/rentora/rentora/internal/domain"
	"github.com/rentora/rentora/internal/domain/user"
)

// DefaultSearchRadiusMeters is used when a geo search gives a center
// without an explicit radius.
const DefaultSearchRadiusMeters = 5000

// Point is a WGS84 coordinate pair.
type Point struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// Valid reports whether the point is a plausible (lon, lat) pair.
func (p Point) Valid() bool {
	return p.Longitude >= -180 && p.Longitude <= 180 &&
		p.Latitude >= -90 && p.Latitude <= 90
}

// Property is a rental listing owned by a landlord. LandlordID is
// immutable after creation.
type Property struct {
	ID          string    `json:"id"`
	LandlordID  string    `json:"landlord_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	Price       float64   `json:"price"`
	Bedrooms    int       `json:"bedrooms"`
	Bathrooms   int       `json:"bathrooms"`
	Location    Point     `json:"location"`
	Images      []string  `json:"images"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`

	// Landlord is the owning landlord's profile, attached by the
	// directory when returning entities. Never persisted.
	Landlord *user.Profile `json:"landlord,omitempty"`

	// ShortlistedBy lists the ids of tenants who shortlisted the
	// property, attached alongside Landlord. Derived from the
	// shortlist membership rows, never persisted on the listing.
	ShortlistedBy []string `json:"shortlisted_by"`
}

// CreateRequest is the input for listing a new property.
type CreateRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	Price       float64  `json:"price"`
	Bedrooms    *int     `json:"bedrooms"`
	Bathrooms   *int     `json:"bathrooms"`
	Location    *Point   `json:"location"`
	Images      []string `json:"images"`
}

// Validate checks that the CreateRequest has all required fields.
func (r *CreateRequest) Validate() error {
	if r.Title == "" {
		return fmt.Errorf("title is required: %w", domain.ErrValidation)
	}
	if r.Description == "" {
		return fmt.Errorf("description is required: %w", domain.ErrValidation)
	}
	if r.Address == "" {
		return fmt.Errorf("address is required: %w", domain.ErrValidation)
	}
	if r.Price <= 0 {
		return fmt.Errorf("price must be positive: %w", domain.ErrValidation)
	}
	if r.Bedrooms == nil || *r.Bedrooms < 0 {
		return fmt.Errorf("bedrooms must be a non-negative integer: %w", domain.ErrValidation)
	}
	if r.Bathrooms == nil || *r.Bathrooms < 0 {
		return fmt.Errorf("bathrooms must be a non-negative integer: %w", domain.ErrValidation)
	}
	if r.Location == nil || !r.Location.Valid() {
		return fmt.Errorf("location must be a valid (longitude, latitude) pair: %w", domain.ErrValidation)
	}
	if len(r.Images) == 0 {
		return fmt.Errorf("at least one image is required: %w", domain.ErrValidation)
	}
	return nil
}

// UpdateRequest is a partial patch for an existing property. Nil fields
// are left unchanged.
type UpdateRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Address     *string  `json:"address,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Bedrooms    *int     `json:"bedrooms,omitempty"`
	Bathrooms   *int     `json:"bathrooms,omitempty"`
	Location    *Point   `json:"location,omitempty"`
	Images      []string `json:"images,omitempty"`
	Available   *bool    `json:"available,omitempty"`
}

// Validate checks the fields that are present in the patch.
func (r *UpdateRequest) Validate() error {
	if r.Title != nil && *r.Title == "" {
		return fmt.Errorf("title cannot be empty: %w", domain.ErrValidation)
	}
	if r.Price != nil && *r.Price <= 0 {
		return fmt.Errorf("price must be positive: %w", domain.ErrValidation)
	}
	if r.Bedrooms != nil && *r.Bedrooms < 0 {
		return fmt.Errorf("bedrooms must be a non-negative integer: %w", domain.ErrValidation)
	}
	if r.Bathrooms != nil && *r.Bathrooms < 0 {
		return fmt.Errorf("bathrooms must be a non-negative integer: %w", domain.ErrValidation)
	}
	if r.Location != nil && !r.Location.Valid() {
		return fmt.Errorf("location must be a valid (longitude, latitude) pair: %w", domain.ErrValidation)
	}
	return nil
}

// Apply overlays the patch onto p.
func (r *UpdateRequest) Apply(p *Property) {
	if r.Title != nil {
		p.Title = *r.Title
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Address != nil {
		p.Address = *r.Address
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.Bedrooms != nil {
		p.Bedrooms = *r.Bedrooms
	}
	if r.Bathrooms != nil {
		p.Bathrooms = *r.Bathrooms
	}
	if r.Location != nil {
		p.Location = *r.Location
	}
	if r.Images != nil {
		p.Images = r.Images
	}
	if r.Available != nil {
		p.Available = *r.Available
	}
}

// SearchFilters are optional, independently composable search criteria.
// All present filters are conjunctive.
type SearchFilters struct {
	MinPrice  *float64
	MaxPrice  *float64
	Bedrooms  *int
	Bathrooms *int
	Available *bool

	// Center enables geo-radius filtering; results are ordered
	// nearest-first when set. RadiusMeters falls back to
	// DefaultSearchRadiusMeters when zero.
	Center       *Point
	RadiusMeters float64
}

// Validate checks the filters that are present.
func (f *SearchFilters) Validate() error {
	if f.MinPrice != nil && *f.MinPrice < 0 {
		return fmt.Errorf("minPrice must be non-negative: %w", domain.ErrValidation)
	}
	if f.MaxPrice != nil && *f.MaxPrice < 0 {
		return fmt.Errorf("maxPrice must be non-negative: %w", domain.ErrValidation)
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return fmt.Errorf("minPrice cannot exceed maxPrice: %w", domain.ErrValidation)
	}
	if f.Bedrooms != nil && *f.Bedrooms < 0 {
		return fmt.Errorf("bedrooms must be non-negative: %w", domain.ErrValidation)
	}
	if f.Bathrooms != nil && *f.Bathrooms < 0 {
		return fmt.Errorf("bathrooms must be non-negative: %w", domain.ErrValidation)
	}
	if f.Center != nil && !f.Center.Valid() {
		return fmt.Errorf("search center must be a valid (longitude, latitude) pair: %w", domain.ErrValidation)
	}
	if f.RadiusMeters < 0 {
		return fmt.Errorf("radius must be non-negative: %w", domain.ErrValidation)
	}
	return nil
}

// Radius returns the effective geo radius in meters.
func (f *SearchFilters) Radius() float64 {
	if f.RadiusMeters > 0 {
		return f.RadiusMeters
	}
	return DefaultSearchRadiusMeters
}

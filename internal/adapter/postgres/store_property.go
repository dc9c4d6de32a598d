package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rentora/rentora/internal/domain/property"
)

const propertyColumns = `id, landlord_id, title, description, address, price, bedrooms, bathrooms, longitude, latitude, images, available, created_at`

func scanProperty(row scannable) (property.Property, error) {
	var p property.Property
	err := row.Scan(&p.ID, &p.LandlordID, &p.Title, &p.Description, &p.Address, &p.Price,
		&p.Bedrooms, &p.Bathrooms, &p.Location.Longitude, &p.Location.Latitude,
		&p.Images, &p.Available, &p.CreatedAt)
	if err != nil {
		return property.Property{}, err
	}
	p.Images = orEmpty(p.Images)
	return p, nil
}

func (s *Store) CreateProperty(ctx context.Context, p *property.Property) error {
	p.CreatedAt = time.Now().UTC()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO properties (id, landlord_id, title, description, address, price, bedrooms, bathrooms, longitude, latitude, images, available, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		p.ID, p.LandlordID, p.Title, p.Description, p.Address, p.Price, p.Bedrooms, p.Bathrooms,
		p.Location.Longitude, p.Location.Latitude, orEmpty(p.Images), p.Available, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create property: %w", err)
	}
	return nil
}

func (s *Store) GetProperty(ctx context.Context, id string) (*property.Property, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE id = $1`, id)

	p, err := scanProperty(row)
	if err != nil {
		return nil, notFoundWrap(err, "get property %s", id)
	}
	return &p, nil
}

func (s *Store) UpdateProperty(ctx context.Context, p *property.Property) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE properties
		SET title = $2, description = $3, address = $4, price = $5, bedrooms = $6, bathrooms = $7,
		    longitude = $8, latitude = $9, images = $10, available = $11
		WHERE id = $1`,
		p.ID, p.Title, p.Description, p.Address, p.Price, p.Bedrooms, p.Bathrooms,
		p.Location.Longitude, p.Location.Latitude, orEmpty(p.Images), p.Available,
	)
	return execExpectOne(tag, err, "update property %s", p.ID)
}

func (s *Store) DeleteProperty(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)
	return execExpectOne(tag, err, "delete property %s", id)
}

func (s *Store) ListPropertiesByLandlord(ctx context.Context, landlordID string) ([]property.Property, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE landlord_id = $1 ORDER BY created_at DESC, id`, landlordID)
	if err != nil {
		return nil, fmt.Errorf("list properties by landlord: %w", err)
	}
	defer rows.Close()

	return collectProperties(rows)
}

func (s *Store) ListShortlistedProperties(ctx context.Context, tenantID string) ([]property.Property, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+qualified(propertyColumns, "p")+`
		FROM properties p
		JOIN property_shortlists sl ON sl.property_id = p.id
		WHERE sl.tenant_id = $1
		ORDER BY sl.created_at DESC, p.id`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list shortlisted properties: %w", err)
	}
	defer rows.Close()

	return collectProperties(rows)
}

// SearchProperties applies the conjunctive filter set. The geo filter
// delegates nearest-within-radius to the earthdistance extension; its
// GiST index keeps the box pre-filter cheap, and results come back
// ordered by ascending distance. Without a geo center the order is
// created_at DESC, id — stable for identical inputs.
func (s *Store) SearchProperties(ctx context.Context, f property.SearchFilters) ([]property.Property, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.MinPrice != nil {
		where = append(where, "price >= "+arg(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		where = append(where, "price <= "+arg(*f.MaxPrice))
	}
	if f.Bedrooms != nil {
		where = append(where, "bedrooms = "+arg(*f.Bedrooms))
	}
	if f.Bathrooms != nil {
		where = append(where, "bathrooms = "+arg(*f.Bathrooms))
	}
	if f.Available != nil {
		where = append(where, "available = "+arg(*f.Available))
	}

	orderBy := "created_at DESC, id"
	if f.Center != nil {
		lat := arg(f.Center.Latitude)
		lng := arg(f.Center.Longitude)
		radius := arg(f.Radius())
		center := fmt.Sprintf("ll_to_earth(%s, %s)", lat, lng)
		where = append(where,
			fmt.Sprintf("earth_box(%s, %s) @> ll_to_earth(latitude, longitude)", center, radius),
			fmt.Sprintf("earth_distance(%s, ll_to_earth(latitude, longitude)) <= %s", center, radius),
		)
		orderBy = fmt.Sprintf("earth_distance(%s, ll_to_earth(latitude, longitude)) ASC", center)
	}

	query := `SELECT ` + propertyColumns + ` FROM properties`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY " + orderBy

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search properties: %w", err)
	}
	defer rows.Close()

	return collectProperties(rows)
}

func (s *Store) AddShortlist(ctx context.Context, propertyID, tenantID string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO property_shortlists (property_id, tenant_id)
		VALUES ($1, $2)
		ON CONFLICT (property_id, tenant_id) DO NOTHING`,
		propertyID, tenantID)
	if err != nil {
		return fmt.Errorf("add shortlist: %w", err)
	}
	return nil
}

func (s *Store) RemoveShortlist(ctx context.Context, propertyID, tenantID string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM property_shortlists WHERE property_id = $1 AND tenant_id = $2`,
		propertyID, tenantID)
	if err != nil {
		return fmt.Errorf("remove shortlist: %w", err)
	}
	return nil
}

func (s *Store) ListShortlisters(ctx context.Context, propertyID string) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT tenant_id FROM property_shortlists WHERE property_id = $1 ORDER BY created_at, tenant_id`,
		propertyID)
	if err != nil {
		return nil, fmt.Errorf("list shortlisters: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan shortlister: %w", err)
		}
		ids = append(ids, id)
	}
	return orEmpty(ids), rows.Err()
}

func (s *Store) IsShortlisted(ctx context.Context, propertyID, tenantID string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM property_shortlists WHERE property_id = $1 AND tenant_id = $2)`,
		propertyID, tenantID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check shortlist: %w", err)
	}
	return exists, nil
}

func collectProperties(rows interface {
	Next() bool
	Err() error
	Scan(dest ...any) error
}) ([]property.Property, error) {
	var props []property.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		props = append(props, p)
	}
	return orEmpty(props), rows.Err()
}

// qualified prefixes each column in a comma-separated list with an alias.
func qualified(columns, alias string) string {
	parts := strings.Split(columns, ", ")
	for i, c := range parts {
		parts[i] = alias + "." + c
	}
	return strings.Join(parts, ", ")
}

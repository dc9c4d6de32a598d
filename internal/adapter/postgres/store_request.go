package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/rentora/rentora/internal/domain/request"
)

const requestColumns = `id, property_id, tenant_id, status, message, created_at`

func scanRequest(row scannable) (request.Request, error) {
	var r request.Request
	err := row.Scan(&r.ID, &r.PropertyID, &r.TenantID, &r.Status, &r.Message, &r.CreatedAt)
	return r, err
}

func (s *Store) CreateRequest(ctx context.Context, r *request.Request) error {
	r.CreatedAt = time.Now().UTC()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO requests (id, property_id, tenant_id, status, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		r.ID, r.PropertyID, r.TenantID, r.Status, r.Message, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return nil
}

func (s *Store) GetRequest(ctx context.Context, id string) (*request.Request, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+requestColumns+` FROM requests WHERE id = $1`, id)

	r, err := scanRequest(row)
	if err != nil {
		return nil, notFoundWrap(err, "get request %s", id)
	}
	return &r, nil
}

func (s *Store) ListRequestsByTenant(ctx context.Context, tenantID string) ([]request.Request, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+requestColumns+` FROM requests WHERE tenant_id = $1 ORDER BY created_at DESC, id`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list requests by tenant: %w", err)
	}
	defer rows.Close()

	return collectRequests(rows)
}

func (s *Store) ListRequestsByProperties(ctx context.Context, propertyIDs []string) ([]request.Request, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+requestColumns+` FROM requests WHERE property_id = ANY($1) ORDER BY created_at DESC, id`, propertyIDs)
	if err != nil {
		return nil, fmt.Errorf("list requests by properties: %w", err)
	}
	defer rows.Close()

	return collectRequests(rows)
}

// UpdateRequestStatus sets the status of a single request. The single-row
// UPDATE is the atomicity boundary; concurrent transitions are
// last-writer-wins.
func (s *Store) UpdateRequestStatus(ctx context.Context, id string, status request.Status) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE requests SET status = $2 WHERE id = $1`, id, status)
	return execExpectOne(tag, err, "update request %s status", id)
}

func collectRequests(rows interface {
	Next() bool
	Err() error
	Scan(dest ...any) error
}) ([]request.Request, error) {
	var reqs []request.Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		reqs = append(reqs, r)
	}
	return orEmpty(reqs), rows.Err()
}

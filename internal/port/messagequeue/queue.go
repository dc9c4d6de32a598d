// Package messagequeue defines the port interface for publishing
// domain events.
package messagequeue

import "context"

// Publisher is the port interface for emitting domain events. Publishing
// is best-effort; callers must not fail an operation on publish errors.
type Publisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
	Close() error
}

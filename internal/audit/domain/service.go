package domain

import "context"

// Recorder appends audit rows. Failures are logged and swallowed so an
// audit outage never fails the business operation.
type Recorder interface {
	Record(ctx context.Context, action, targetType, targetID string, metadata map[string]any)
	List(ctx context.Context, limit int) ([]AuditLog, error)
}

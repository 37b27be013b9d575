package usecase

import "context"

// Grant reasons recorded with buffered XP increments.
const (
	GrantReasonTaskCreate   = "task_create"
	GrantReasonTaskComplete = "task_complete"
	GrantReasonFocusSession = "focus_session"
)

// GrantBuffer abstracts the pending-grant processor so use cases can hand off
// XP increments that failed after the primary record was persisted.
type GrantBuffer interface {
	BufferGrant(ctx context.Context, userID string, amount int64, reason string) error
}

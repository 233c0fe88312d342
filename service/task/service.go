package task

import (
	"context"

	"github.com/nofa/openclaw/service/messaging"
)

// Service is the task store contract. Every operation is atomic with respect
// to concurrent callers, returns deep-copied snapshots and reports replayed
// submissions through the duplicate flag rather than an error.
type Service interface {
	// CreateTask registers a suggestion. A suggestion_id seen before yields
	// the existing task unchanged with duplicate=true; otherwise a new task
	// in pending_approval with its two creation audit events.
	CreateTask(ctx context.Context, suggestion *Suggestion) (*Task, bool, error)

	// GetTask returns a snapshot or workflow.ErrNotFound.
	GetTask(ctx context.Context, taskID string) (*Task, error)

	// ApplyApproval applies a human decision to a pending task: at most one
	// approval ever takes effect, identical replays are absorbed with
	// duplicate=true, and a yes decision executes synchronously before the
	// call returns.
	ApplyApproval(ctx context.Context, approval *Approval) (*Task, bool, error)

	// Events exposes the queue the store publishes audit notifications to.
	Events() messaging.Queue[Notification]
}

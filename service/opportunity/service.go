package opportunity

import (
	"context"

	"github.com/nofa/openclaw/service/messaging"
)

// Service is the opportunity store contract. Operations are atomic with
// respect to concurrent callers and always return deep copies.
type Service interface {
	// Create registers an opportunity: assigns an id, applies defaults, sets
	// pending_human and places it at the front of the most-recent-first list.
	Create(ctx context.Context, item *Opportunity) (*Opportunity, error)

	// List returns all opportunities, most recent first.
	List(ctx context.Context) ([]*Opportunity, error)

	// NextPending returns the first still-pending item of the
	// most-recent-first list – that is, the NEWEST pending opportunity, not
	// the oldest. The LIFO order is inherited behaviour the chat consumer
	// relies on; see the decision record in DESIGN.md before changing it.
	// (nil, nil) when nothing is pending.
	NextPending(ctx context.Context) (*Opportunity, error)

	// ApplyDecision applies a human verdict at most once; an identical
	// resubmission by the same user is absorbed with duplicate=true.
	ApplyDecision(ctx context.Context, id string, incoming *Decision) (*Opportunity, bool, error)

	// Decisions returns the global decision log, most recent first.
	Decisions(ctx context.Context) ([]*Decision, error)

	// Events exposes the queue recorded decisions are published to.
	Events() messaging.Queue[Decision]
}

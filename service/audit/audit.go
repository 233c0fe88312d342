package audit

import "time"

// Standard event types, in lifecycle order.
const (
	TypeSuggestionGenerated = "suggestion.generated"
	TypeSuggestionDelivered = "suggestion.delivered"
	TypeApprovalAccepted    = "approval.accepted"
	TypeApprovalRejected    = "approval.rejected"
	TypeExecutionStarted    = "execution.started"
	TypeExecutionCompleted  = "execution.completed"

	// TypeDecisionRecorded documents a human verdict on an opportunity.
	TypeDecisionRecorded = "decision.recorded"
)

// Well-known actors for events not attributable to a human.
const (
	ActorCopilot   = "nofa-copilot"
	ActorAdapter   = "adapter"
	ActorSimulator = "execution-simulator"
)

// Event is one immutable, timestamped record of a state-affecting action.
// External consumers (the admin console, the copilot) render these fields
// directly, so their names are part of the wire contract.
type Event struct {
	Time    time.Time `json:"time"`
	Type    string    `json:"type"`
	Actor   string    `json:"actor"`
	Summary string    `json:"summary"`
}

// Trail is an append-only, creation-ordered sequence of events.
type Trail []Event

// Append returns the trail with the events added. The receiver is never
// shared with callers after a snapshot, so value semantics are safe.
func (t Trail) Append(events ...Event) Trail {
	return append(t, events...)
}

// Clone returns an independent copy so that snapshots handed to callers
// cannot alias store-internal state.
func (t Trail) Clone() Trail {
	if t == nil {
		return nil
	}
	out := make(Trail, len(t))
	copy(out, t)
	return out
}

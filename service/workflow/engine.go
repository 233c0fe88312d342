package workflow

import (
	"github.com/nofa/openclaw/service/decision"
)

// Transition describes how a decision of type D lands on an entity of type
// T. The selectors keep the protocol generic: the task store plugs in its
// approval handling, the opportunity store its human decision handling, and
// both inherit identical idempotency and conflict semantics.
type Transition[T any, D any] struct {
	// Existing returns the decision already recorded on the entity, or nil
	// when the entity is still undecided.
	Existing func(*T) *D

	// Pending reports whether the entity is in a state that accepts a
	// decision.
	Pending func(*T) bool

	// Equal reports whether the incoming decision is a field-for-field
	// identical resubmission of the stored one.
	Equal func(existing, incoming *D) bool

	// Commit records the decision and advances the entity to its terminal
	// state. It runs at most once per entity and must not block – it executes
	// inside the owning store's critical section.
	Commit func(*T, *D, decision.Verdict)

	// Conflict builds the error surfaced when a resubmission differs from
	// the stored decision. Left nil, a plain ErrConflict is returned.
	Conflict func(existing, incoming *D) error
}

// Apply runs the shared decision protocol against the entity:
//
//  1. an ambiguous verdict fails with ErrNeedsConfirmation;
//  2. an identical resubmission of the stored decision is absorbed and
//     reported as duplicate, with no mutation;
//  3. a differing resubmission fails with the transition's conflict error;
//  4. an entity outside its pending state fails with ErrInvalidState;
//  5. otherwise the decision is committed exactly once.
//
// The caller must hold whatever lock guards the entity for the full call.
func (t Transition[T, D]) Apply(entity *T, incoming *D, verdict decision.Verdict) (duplicate bool, err error) {
	if !verdict.Terminal() {
		return false, ErrNeedsConfirmation
	}
	if existing := t.Existing(entity); existing != nil {
		if t.Equal(existing, incoming) {
			return true, nil
		}
		if t.Conflict != nil {
			return false, t.Conflict(existing, incoming)
		}
		return false, ErrConflict
	}
	if !t.Pending(entity) {
		return false, ErrInvalidState
	}
	t.Commit(entity, incoming, verdict)
	return false, nil
}

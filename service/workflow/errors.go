package workflow

import (
	"errors"
	"fmt"
)

// Closed set of outcome kinds every store operation can fail with. Using
// sentinel variables lets callers detect conditions via errors.Is/As instead
// of brittle string comparisons.

var (
	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("workflow: not found")

	// ErrMismatch indicates a cross-reference identity check failed, e.g. an
	// approval naming a suggestion the task was never created from. It
	// signals a caller bug or a forged callback, never a retryable fault.
	ErrMismatch = errors.New("workflow: reference mismatch")

	// ErrNeedsConfirmation means the decision text was not recognised. It is
	// a request for clarification rather than a domain failure – the caller
	// should re-prompt the human and resend.
	ErrNeedsConfirmation = errors.New("workflow: decision needs confirmation")

	// ErrConflict is returned when a resubmission targets an already decided
	// entity with different content. Silently merging would hide upstream
	// double-processing, so the conflict is always surfaced.
	ErrConflict = errors.New("workflow: conflicting resubmission")

	// ErrInvalidState is returned when a decision arrives while the entity
	// is not in a state that accepts one.
	ErrInvalidState = errors.New("workflow: state does not accept decision")

	// ErrInvalidRequest indicates a nil payload or an empty identifier;
	// callers validate before the store, so hitting this is a caller bug.
	ErrInvalidRequest = errors.New("workflow: invalid request")
)

// ConflictError enriches ErrConflict with a unified diff of the stored vs
// incoming payload so operators can see exactly which fields disagreed.
// errors.Is(err, ErrConflict) holds for every ConflictError.
type ConflictError struct {
	Diff string
}

func (e *ConflictError) Error() string {
	if e.Diff == "" {
		return ErrConflict.Error()
	}
	return fmt.Sprintf("%v\n%s", ErrConflict, e.Diff)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

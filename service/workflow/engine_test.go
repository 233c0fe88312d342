package workflow_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nofa/openclaw/service/decision"
	"github.com/nofa/openclaw/service/workflow"
)

type review struct {
	pending  bool
	verdict  *note
	resolved string
}

type note struct {
	User string
	Text string
}

func transitionFor() workflow.Transition[review, note] {
	return workflow.Transition[review, note]{
		Existing: func(r *review) *note { return r.verdict },
		Pending:  func(r *review) bool { return r.pending },
		Equal:    func(a, b *note) bool { return *a == *b },
		Commit: func(r *review, n *note, v decision.Verdict) {
			r.verdict = n
			r.pending = false
			r.resolved = string(v)
		},
	}
}

func TestTransitionApply(t *testing.T) {
	t.Run("ambiguous verdict", func(t *testing.T) {
		entity := &review{pending: true}
		duplicate, err := transitionFor().Apply(entity, &note{User: "alice"}, decision.NeedsConfirmation)
		assert.False(t, duplicate)
		assert.ErrorIs(t, err, workflow.ErrNeedsConfirmation)
		assert.True(t, entity.pending, "entity must stay untouched")
	})

	t.Run("commit once", func(t *testing.T) {
		entity := &review{pending: true}
		incoming := &note{User: "alice", Text: "yes"}
		duplicate, err := transitionFor().Apply(entity, incoming, decision.Yes)
		assert.NoError(t, err)
		assert.False(t, duplicate)
		assert.Equal(t, "yes", entity.resolved)
		assert.False(t, entity.pending)
	})

	t.Run("identical replay absorbed", func(t *testing.T) {
		entity := &review{pending: true}
		incoming := &note{User: "alice", Text: "yes"}
		_, err := transitionFor().Apply(entity, incoming, decision.Yes)
		assert.NoError(t, err)

		replay := *incoming
		duplicate, err := transitionFor().Apply(entity, &replay, decision.Yes)
		assert.NoError(t, err)
		assert.True(t, duplicate)
	})

	t.Run("differing replay conflicts", func(t *testing.T) {
		entity := &review{pending: true}
		_, err := transitionFor().Apply(entity, &note{User: "alice", Text: "yes"}, decision.Yes)
		assert.NoError(t, err)

		duplicate, err := transitionFor().Apply(entity, &note{User: "bob", Text: "yes"}, decision.Yes)
		assert.False(t, duplicate)
		assert.ErrorIs(t, err, workflow.ErrConflict)
	})

	t.Run("custom conflict error", func(t *testing.T) {
		tr := transitionFor()
		tr.Conflict = func(existing, incoming *note) error {
			return &workflow.ConflictError{Diff: workflow.PayloadDiff(existing, incoming)}
		}
		entity := &review{pending: true}
		_, err := tr.Apply(entity, &note{User: "alice", Text: "yes"}, decision.Yes)
		assert.NoError(t, err)

		_, err = tr.Apply(entity, &note{User: "bob", Text: "yes"}, decision.Yes)
		assert.ErrorIs(t, err, workflow.ErrConflict)
		var conflict *workflow.ConflictError
		assert.True(t, errors.As(err, &conflict))
		assert.Contains(t, conflict.Diff, "alice")
		assert.Contains(t, conflict.Diff, "bob")
	})

	t.Run("not pending", func(t *testing.T) {
		entity := &review{pending: false}
		duplicate, err := transitionFor().Apply(entity, &note{User: "alice"}, decision.No)
		assert.False(t, duplicate)
		assert.ErrorIs(t, err, workflow.ErrInvalidState)
	})
}

func TestPayloadDiff(t *testing.T) {
	a := &note{User: "alice", Text: "yes"}
	b := &note{User: "alice", Text: "yes"}
	assert.Empty(t, workflow.PayloadDiff(a, b))

	b.Text = "no"
	diff := workflow.PayloadDiff(a, b)
	assert.Contains(t, diff, "-")
	assert.Contains(t, diff, "+")
	assert.Contains(t, diff, "stored")
	assert.Contains(t, diff, "incoming")
}

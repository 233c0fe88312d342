package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	qmem "github.com/nofa/openclaw/service/messaging/memory"
	"github.com/nofa/openclaw/service/opportunity"
	"github.com/nofa/openclaw/service/opportunity/memory"
	"github.com/nofa/openclaw/service/workflow"
)

func newOpportunity(pair string) *opportunity.Opportunity {
	return &opportunity.Opportunity{
		Pair:      pair,
		Action:    "buy",
		Quantity:  0.5,
		Leverage:  "3x",
		Rationale: "funding rate flip",
	}
}

func newDecision(user, verdict string) *opportunity.Decision {
	return &opportunity.Decision{
		UserID:   user,
		Decision: verdict,
		RawText:  verdict,
	}
}

func TestCreate(t *testing.T) {
	svc := memory.New()
	ctx := context.Background()

	created, err := svc.Create(ctx, newOpportunity("BTC/USDT"))
	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.EqualValues(t, opportunity.StatusPendingHuman, created.Status)
	assert.Equal(t, "BUY", created.Action, "action is upper-cased")
	assert.Equal(t, opportunity.DefaultTitle, created.Title)
	assert.Equal(t, opportunity.DefaultRequestedBy, created.RequestedBy)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Nil(t, created.Decision)

	_, err = svc.Create(ctx, &opportunity.Opportunity{})
	assert.ErrorIs(t, err, workflow.ErrInvalidRequest)
}

func TestListMostRecentFirst(t *testing.T) {
	svc := memory.New()
	ctx := context.Background()

	first, err := svc.Create(ctx, newOpportunity("BTC/USDT"))
	assert.NoError(t, err)
	second, err := svc.Create(ctx, newOpportunity("ETH/USDT"))
	assert.NoError(t, err)

	items, err := svc.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)
}

func TestNextPendingServesNewest(t *testing.T) {
	svc := memory.New()
	ctx := context.Background()

	next, err := svc.NextPending(ctx)
	assert.NoError(t, err)
	assert.Nil(t, next, "empty store has nothing pending")

	older, err := svc.Create(ctx, newOpportunity("BTC/USDT"))
	assert.NoError(t, err)
	newer, err := svc.Create(ctx, newOpportunity("ETH/USDT"))
	assert.NoError(t, err)

	next, err = svc.NextPending(ctx)
	assert.NoError(t, err)
	assert.Equal(t, newer.ID, next.ID, "newest pending item is served first")

	_, _, err = svc.ApplyDecision(ctx, newer.ID, newDecision("alice", "yes"))
	assert.NoError(t, err)

	next, err = svc.NextPending(ctx)
	assert.NoError(t, err)
	assert.Equal(t, older.ID, next.ID)

	_, _, err = svc.ApplyDecision(ctx, older.ID, newDecision("alice", "no"))
	assert.NoError(t, err)

	next, err = svc.NextPending(ctx)
	assert.NoError(t, err)
	assert.Nil(t, next)
}

func TestApplyDecision(t *testing.T) {
	svc := memory.New()
	ctx := context.Background()

	created, err := svc.Create(ctx, newOpportunity("BTC/USDT"))
	assert.NoError(t, err)

	decided, duplicate, err := svc.ApplyDecision(ctx, created.ID, newDecision("alice", "YES"))
	assert.NoError(t, err)
	assert.False(t, duplicate)
	assert.EqualValues(t, opportunity.StatusApproved, decided.Status)
	assert.NotNil(t, decided.Decision)
	assert.Equal(t, "yes", decided.Decision.Decision, "recorded verdict is normalized")
	assert.Equal(t, "YES", decided.Decision.RawText, "raw text survives verbatim")
	assert.Equal(t, created.ID, decided.Decision.OpportunityID)
	assert.Equal(t, opportunity.DefaultChannel, decided.Decision.Channel)
	assert.False(t, decided.Decision.DecidedAt.IsZero())
}

func TestApplyDecisionRejected(t *testing.T) {
	svc := memory.New()
	ctx := context.Background()

	created, err := svc.Create(ctx, newOpportunity("BTC/USDT"))
	assert.NoError(t, err)

	decided, _, err := svc.ApplyDecision(ctx, created.ID, newDecision("alice", "cancel"))
	assert.NoError(t, err)
	assert.EqualValues(t, opportunity.StatusRejected, decided.Status)
	assert.Equal(t, "no", decided.Decision.Decision)
}

func TestApplyDecisionAmbiguous(t *testing.T) {
	svc := memory.New()
	ctx := context.Background()

	created, err := svc.Create(ctx, newOpportunity("BTC/USDT"))
	assert.NoError(t, err)

	_, _, err = svc.ApplyDecision(ctx, created.ID, newDecision("alice", "perhaps"))
	assert.ErrorIs(t, err, workflow.ErrNeedsConfirmation)

	next, err := svc.NextPending(ctx)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, next.ID, "item stays pending")
}

func TestApplyDecisionIdempotentReplay(t *testing.T) {
	svc := memory.New()
	ctx := context.Background()

	created, err := svc.Create(ctx, newOpportunity("BTC/USDT"))
	assert.NoError(t, err)

	_, duplicate, err := svc.ApplyDecision(ctx, created.ID, newDecision("alice", "yes"))
	assert.NoError(t, err)
	assert.False(t, duplicate)

	replay, duplicate, err := svc.ApplyDecision(ctx, created.ID, newDecision("alice", "yes"))
	assert.NoError(t, err)
	assert.True(t, duplicate)
	assert.EqualValues(t, opportunity.StatusApproved, replay.Status)

	log, err := svc.Decisions(ctx)
	assert.NoError(t, err)
	assert.Len(t, log, 1, "replay records nothing")
}

func TestApplyDecisionAlreadyDecided(t *testing.T) {
	svc := memory.New()
	ctx := context.Background()

	created, err := svc.Create(ctx, newOpportunity("BTC/USDT"))
	assert.NoError(t, err)

	_, _, err = svc.ApplyDecision(ctx, created.ID, newDecision("alice", "yes"))
	assert.NoError(t, err)

	// different user
	_, _, err = svc.ApplyDecision(ctx, created.ID, newDecision("bob", "yes"))
	assert.ErrorIs(t, err, workflow.ErrInvalidState)

	// same user, opposite verdict
	_, _, err = svc.ApplyDecision(ctx, created.ID, newDecision("alice", "no"))
	assert.ErrorIs(t, err, workflow.ErrInvalidState)

	items, err := svc.List(ctx)
	assert.NoError(t, err)
	assert.EqualValues(t, opportunity.StatusApproved, items[0].Status)
	assert.Equal(t, "alice", items[0].Decision.UserID)
}

func TestApplyDecisionUnknownID(t *testing.T) {
	svc := memory.New()
	_, _, err := svc.ApplyDecision(context.Background(), "opp_missing", newDecision("alice", "yes"))
	assert.ErrorIs(t, err, workflow.ErrNotFound)
}

func TestDecisionsMostRecentFirst(t *testing.T) {
	svc := memory.New()
	ctx := context.Background()

	first, err := svc.Create(ctx, newOpportunity("BTC/USDT"))
	assert.NoError(t, err)
	second, err := svc.Create(ctx, newOpportunity("ETH/USDT"))
	assert.NoError(t, err)

	_, _, err = svc.ApplyDecision(ctx, first.ID, newDecision("alice", "yes"))
	assert.NoError(t, err)
	_, _, err = svc.ApplyDecision(ctx, second.ID, newDecision("bob", "no"))
	assert.NoError(t, err)

	log, err := svc.Decisions(ctx)
	assert.NoError(t, err)
	assert.Len(t, log, 2)
	assert.Equal(t, second.ID, log[0].OpportunityID)
	assert.Equal(t, first.ID, log[1].OpportunityID)
}

func TestApplyDecisionNeverBlocksWithoutConsumer(t *testing.T) {
	svc := memory.New(memory.WithEvents(qmem.NewQueue[opportunity.Decision](qmem.Config{QueueBuffer: 1})))
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			created, err := svc.Create(ctx, newOpportunity("BTC/USDT"))
			assert.NoError(t, err)
			_, _, err = svc.ApplyDecision(ctx, created.ID, newDecision("alice", "yes"))
			assert.NoError(t, err)
		}
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("decision publishing blocked on the full queue")
	}
}

func TestEventsPublished(t *testing.T) {
	svc := memory.New()
	ctx := context.Background()

	created, err := svc.Create(ctx, newOpportunity("BTC/USDT"))
	assert.NoError(t, err)
	_, _, err = svc.ApplyDecision(ctx, created.ID, newDecision("alice", "yes"))
	assert.NoError(t, err)

	message, err := svc.Events().Consume(ctx)
	assert.NoError(t, err)
	record := message.T()
	assert.Equal(t, created.ID, record.OpportunityID)
	assert.Equal(t, "yes", record.Decision)
	assert.NoError(t, message.Ack())
}

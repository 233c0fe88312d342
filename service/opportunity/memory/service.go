package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/nofa/openclaw/internal/clock"
	"github.com/nofa/openclaw/internal/idgen"
	"github.com/nofa/openclaw/service/decision"
	"github.com/nofa/openclaw/service/messaging"
	qmem "github.com/nofa/openclaw/service/messaging/memory"
	"github.com/nofa/openclaw/service/opportunity"
	"github.com/nofa/openclaw/service/workflow"
)

// Service is the in-memory opportunity store. One mutex guards the item map,
// the ordered id list and the decision log for the full duration of every
// operation.
type Service struct {
	mu        sync.Mutex
	items     map[string]*opportunity.Opportunity
	order     []string // most recent first
	decisions []*opportunity.Decision

	events messaging.Queue[opportunity.Decision]
}

var _ opportunity.Service = (*Service)(nil)

// New creates an opportunity store with an in-memory decision queue.
func New(options ...Option) *Service {
	ret := &Service{
		items:  make(map[string]*opportunity.Opportunity),
		events: qmem.NewQueue[opportunity.Decision](qmem.DefaultConfig()),
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Create registers the opportunity and pushes it to the front of the list.
func (s *Service) Create(_ context.Context, item *opportunity.Opportunity) (*opportunity.Opportunity, error) {
	if item == nil || item.Pair == "" {
		return nil, workflow.ErrInvalidRequest
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created := item.Clone()
	created.ID = idgen.Prefixed("opp", 8)
	created.Action = strings.ToUpper(created.Action)
	created.Status = opportunity.StatusPendingHuman
	created.CreatedAt = clock.NowUTC()
	created.Decision = nil
	if created.Title == "" {
		created.Title = opportunity.DefaultTitle
	}
	if created.RequestedBy == "" {
		created.RequestedBy = opportunity.DefaultRequestedBy
	}

	s.items[created.ID] = created
	s.order = append([]string{created.ID}, s.order...)
	return created.Clone(), nil
}

// List returns snapshots, most recent first.
func (s *Service) List(_ context.Context) ([]*opportunity.Opportunity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*opportunity.Opportunity, 0, len(s.order))
	for _, id := range s.order {
		if item, ok := s.items[id]; ok {
			out = append(out, item.Clone())
		}
	}
	return out, nil
}

// NextPending scans the most-recent-first list front to back, serving the
// newest pending item (LIFO).
func (s *Service) NextPending(_ context.Context) (*opportunity.Opportunity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.order {
		if item, ok := s.items[id]; ok && item.Status == opportunity.StatusPendingHuman {
			return item.Clone(), nil
		}
	}
	return nil, nil
}

// ApplyDecision records a verdict at most once. A resubmission identical in
// user and normalized decision is an idempotent duplicate; anything else on
// a decided item is an invalid-state conflict.
func (s *Service) ApplyDecision(ctx context.Context, id string, incoming *opportunity.Decision) (*opportunity.Opportunity, bool, error) {
	if incoming == nil || incoming.UserID == "" {
		return nil, false, workflow.ErrInvalidRequest
	}

	snapshot, duplicate, recorded, err := s.applyDecision(id, incoming)
	if err != nil {
		return nil, false, err
	}
	// best-effort: a full queue drops the record rather than blocking
	if recorded != nil {
		_ = s.events.Publish(ctx, recorded)
	}
	return snapshot, duplicate, nil
}

func (s *Service) applyDecision(id string, incoming *opportunity.Decision) (*opportunity.Opportunity, bool, *opportunity.Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil, false, nil, workflow.ErrNotFound
	}

	verdict := decision.Normalize(incoming.Decision)
	record := *incoming
	record.OpportunityID = id
	record.Decision = string(verdict)
	if record.Channel == "" {
		record.Channel = opportunity.DefaultChannel
	}
	record.DecidedAt = clock.NowUTC()

	var recorded *opportunity.Decision
	duplicate, err := s.transition(&recorded).Apply(item, &record, verdict)
	if err != nil {
		return nil, false, nil, err
	}
	return item.Clone(), duplicate, recorded, nil
}

// transition wires the generic decision protocol to opportunity semantics.
// A differing resubmission surfaces ErrInvalidState rather than ErrConflict:
// the chat channel replays whole conversations, so a mismatched retry is
// indistinguishable from a decision sent to an already-resolved item.
func (s *Service) transition(recorded **opportunity.Decision) workflow.Transition[opportunity.Opportunity, opportunity.Decision] {
	return workflow.Transition[opportunity.Opportunity, opportunity.Decision]{
		Existing: func(o *opportunity.Opportunity) *opportunity.Decision { return o.Decision },
		Pending: func(o *opportunity.Opportunity) bool {
			return o.Status == opportunity.StatusPendingHuman
		},
		Equal: func(existing, incoming *opportunity.Decision) bool {
			return existing.UserID == incoming.UserID && existing.Decision == incoming.Decision
		},
		Conflict: func(existing, incoming *opportunity.Decision) error {
			return workflow.ErrInvalidState
		},
		Commit: func(o *opportunity.Opportunity, d *opportunity.Decision, verdict decision.Verdict) {
			o.Decision = d
			if verdict == decision.Yes {
				o.Status = opportunity.StatusApproved
			} else {
				o.Status = opportunity.StatusRejected
			}
			s.decisions = append([]*opportunity.Decision{d}, s.decisions...)
			*recorded = d
		},
	}
}

// Decisions returns the global decision log, most recent first.
func (s *Service) Decisions(_ context.Context) ([]*opportunity.Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*opportunity.Decision, 0, len(s.decisions))
	for _, d := range s.decisions {
		record := *d
		out = append(out, &record)
	}
	return out, nil
}

// Events exposes the decision queue.
func (s *Service) Events() messaging.Queue[opportunity.Decision] { return s.events }

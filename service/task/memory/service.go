package memory

import (
	"context"
	"sync"

	"github.com/nofa/openclaw/internal/clock"
	"github.com/nofa/openclaw/internal/idgen"
	"github.com/nofa/openclaw/service/audit"
	"github.com/nofa/openclaw/service/decision"
	"github.com/nofa/openclaw/service/executor"
	"github.com/nofa/openclaw/service/messaging"
	qmem "github.com/nofa/openclaw/service/messaging/memory"
	"github.com/nofa/openclaw/service/task"
	"github.com/nofa/openclaw/service/workflow"
)

// Service is the in-memory task store. One mutex guards the task map and the
// suggestion index for the full duration of every operation, so each
// operation is atomic with respect to other callers and no in-progress
// transition is ever partially visible. All returned tasks are deep copies.
type Service struct {
	mu              sync.Mutex
	tasks           map[string]*task.Task
	suggestionIndex map[string]string

	executor executor.Service
	events   messaging.Queue[task.Notification]
}

// Compile-time check that Service implements the store contract.
var _ task.Service = (*Service)(nil)

// New creates a task store. Without options it uses the execution simulator
// and an in-memory notification queue.
func New(options ...Option) *Service {
	ret := &Service{
		tasks:           make(map[string]*task.Task),
		suggestionIndex: make(map[string]string),
		executor:        executor.NewSimulator(),
		events:          qmem.NewQueue[task.Notification](qmem.DefaultConfig()),
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// CreateTask registers a suggestion, idempotently keyed by suggestion_id.
// Exactly one of two concurrent creations with the same key wins; the other
// observes the duplicate without appending audit events.
func (s *Service) CreateTask(ctx context.Context, suggestion *task.Suggestion) (*task.Task, bool, error) {
	if suggestion == nil || suggestion.SuggestionID == "" {
		return nil, false, workflow.ErrInvalidRequest
	}

	snapshot, duplicate, appended := s.createTask(suggestion)
	s.notify(ctx, snapshot.TaskID, appended)
	return snapshot, duplicate, nil
}

func (s *Service) createTask(suggestion *task.Suggestion) (*task.Task, bool, audit.Trail) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if taskID, ok := s.suggestionIndex[suggestion.SuggestionID]; ok {
		if existing, ok := s.tasks[taskID]; ok {
			return existing.Clone(), true, nil
		}
	}

	now := clock.NowUTC()
	created := &task.Task{
		TaskID:     idgen.Prefixed("task", 8),
		State:      task.StatePendingApproval,
		Suggestion: *suggestion.Clone(),
		AuditEvents: audit.Trail{
			{Time: now, Type: audit.TypeSuggestionGenerated, Actor: audit.ActorCopilot,
				Summary: "NOFA Copilot generated a trade suggestion."},
			{Time: now, Type: audit.TypeSuggestionDelivered, Actor: audit.ActorAdapter,
				Summary: "Suggestion delivered to OpenClaw approval channel (mock)."},
		},
	}
	s.tasks[created.TaskID] = created
	s.suggestionIndex[suggestion.SuggestionID] = created.TaskID
	return created.Clone(), false, created.AuditEvents.Clone()
}

// GetTask returns a snapshot or workflow.ErrNotFound.
func (s *Service) GetTask(_ context.Context, taskID string) (*task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[taskID]
	if !ok {
		return nil, workflow.ErrNotFound
	}
	return t.Clone(), nil
}

// ApplyApproval runs the decision protocol from the workflow package on the
// addressed task. The executor runs inside the critical section; that is
// acceptable only because the simulator is synchronous and non-blocking.
func (s *Service) ApplyApproval(ctx context.Context, incoming *task.Approval) (*task.Task, bool, error) {
	if incoming == nil || incoming.TaskID == "" {
		return nil, false, workflow.ErrInvalidRequest
	}

	snapshot, duplicate, appended, err := s.applyApproval(ctx, incoming)
	if err != nil {
		return nil, false, err
	}
	s.notify(ctx, snapshot.TaskID, appended)
	return snapshot, duplicate, nil
}

func (s *Service) applyApproval(ctx context.Context, incoming *task.Approval) (*task.Task, bool, audit.Trail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[incoming.TaskID]
	if !ok {
		return nil, false, nil, workflow.ErrNotFound
	}
	if incoming.SuggestionID != t.Suggestion.SuggestionID {
		return nil, false, nil, workflow.ErrMismatch
	}

	verdict := decision.Normalize(incoming.Decision)
	normalized := *incoming
	normalized.Decision = string(verdict)

	before := len(t.AuditEvents)
	duplicate, err := s.transition(ctx).Apply(t, &normalized, verdict)
	if err != nil {
		return nil, false, nil, err
	}
	return t.Clone(), duplicate, t.AuditEvents[before:].Clone(), nil
}

// transition wires the generic decision protocol to task semantics. The
// context is captured so Commit can hand it to the executor.
func (s *Service) transition(ctx context.Context) workflow.Transition[task.Task, task.Approval] {
	return workflow.Transition[task.Task, task.Approval]{
		Existing: func(t *task.Task) *task.Approval { return t.Approval },
		Pending:  func(t *task.Task) bool { return t.State == task.StatePendingApproval },
		Equal: func(existing, incoming *task.Approval) bool {
			return *existing == *incoming
		},
		Conflict: func(existing, incoming *task.Approval) error {
			return &workflow.ConflictError{Diff: workflow.PayloadDiff(existing, incoming)}
		},
		Commit: func(t *task.Task, approval *task.Approval, verdict decision.Verdict) {
			t.Approval = approval
			if verdict == decision.Yes {
				s.execute(ctx, t, approval)
				return
			}
			t.State = task.StateRejected
			t.ExecutionResult = &task.ExecutionResult{
				Status:  task.ExecutionCanceled,
				Message: "Execution canceled by human rejection.",
			}
			t.AuditEvents = t.AuditEvents.Append(audit.Event{
				Time: clock.NowUTC(), Type: audit.TypeApprovalRejected,
				Actor: approval.ApprovedBy, Summary: "Human approval received: no.",
			})
		},
	}
}

// execute advances pending_approval -> approved -> executed within the same
// transition, so approved is never observable at rest.
func (s *Service) execute(ctx context.Context, t *task.Task, approval *task.Approval) {
	t.State = task.StateApproved
	t.AuditEvents = t.AuditEvents.Append(
		audit.Event{
			Time: clock.NowUTC(), Type: audit.TypeApprovalAccepted,
			Actor: approval.ApprovedBy, Summary: "Human approval received: yes.",
		},
		audit.Event{
			Time: clock.NowUTC(), Type: audit.TypeExecutionStarted,
			Actor: audit.ActorSimulator, Summary: "Mock execution started.",
		},
	)
	t.ExecutionResult = s.executor.Execute(ctx, t)
	t.State = task.StateExecuted
	t.AuditEvents = t.AuditEvents.Append(audit.Event{
		Time: clock.NowUTC(), Type: audit.TypeExecutionCompleted,
		Actor: audit.ActorSimulator, Summary: "Mock execution completed.",
	})
}

// Events exposes the notification queue.
func (s *Service) Events() messaging.Queue[task.Notification] { return s.events }

// notify publishes appended events outside the critical section. Delivery is
// best-effort: a full queue drops the notification rather than blocking, and
// the outcome never affects the store operation.
func (s *Service) notify(ctx context.Context, taskID string, events audit.Trail) {
	for _, event := range events {
		_ = s.events.Publish(ctx, &task.Notification{TaskID: taskID, Event: event})
	}
}

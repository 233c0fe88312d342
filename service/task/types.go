package task

import (
	"github.com/nofa/openclaw/service/audit"
)

// State of a task. Transitions are monotonic along
// pending_approval -> {approved -> executed | rejected}.
type State string

const (
	// StatePendingApproval means the suggestion awaits a human decision.
	StatePendingApproval State = "pending_approval"

	// StateApproved is a transient waypoint: a yes decision advances the task
	// to executed within the same store operation, so approved is never
	// observable at rest.
	StateApproved State = "approved"

	// StateExecuted is terminal: the simulator ran after a yes decision.
	StateExecuted State = "executed"

	// StateRejected is terminal: the human answered no.
	StateRejected State = "rejected"
)

// Risk carries the copilot's own assessment of the suggestion. Opaque to the
// workflow, rendered by consumers.
type Risk struct {
	Confidence float64 `json:"confidence"`
	RiskLevel  string  `json:"risk_level"`
}

// Suggestion is the immutable payload captured at task creation. SuggestionID
// is the caller-supplied idempotent creation key; everything else is data the
// workflow never interprets (ExpiresAt included – expiry is not enforced).
type Suggestion struct {
	SuggestionID string   `json:"suggestion_id"`
	UserID       string   `json:"user_id"`
	AccountID    string   `json:"account_id"`
	Mode         string   `json:"mode"`
	Exchange     string   `json:"exchange"`
	Symbol       string   `json:"symbol"`
	Action       string   `json:"action"`
	Side         string   `json:"side"`
	Quantity     float64  `json:"quantity"`
	Leverage     *float64 `json:"leverage,omitempty"`
	TP           *float64 `json:"tp,omitempty"`
	SL           *float64 `json:"sl,omitempty"`
	Rationale    string   `json:"rationale"`
	ExpiresAt    string   `json:"expires_at"`
	Risk         *Risk    `json:"risk,omitempty"`
}

// Clone returns an independent deep copy.
func (s *Suggestion) Clone() *Suggestion {
	if s == nil {
		return nil
	}
	out := *s
	out.Leverage = cloneFloat(s.Leverage)
	out.TP = cloneFloat(s.TP)
	out.SL = cloneFloat(s.SL)
	if s.Risk != nil {
		risk := *s.Risk
		out.Risk = &risk
	}
	return &out
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

// Approval is the human decision callback for a task. Decision carries the
// raw free text on the way in and the normalized yes/no once recorded.
// DecidedAt is the caller's timestamp and is kept verbatim so that an
// identical resubmission stays byte-identical.
type Approval struct {
	TaskID          string `json:"task_id"`
	SuggestionID    string `json:"suggestion_id"`
	Decision        string `json:"decision"`
	ApprovedBy      string `json:"approved_by"`
	Channel         string `json:"channel"`
	DecidedAt       string `json:"decided_at"`
	MessageID       string `json:"message_id,omitempty"`
	RawResponseText string `json:"raw_response_text,omitempty"`
}

// Execution result statuses.
const (
	ExecutionSuccess  = "success"
	ExecutionCanceled = "canceled"
)

// ExecutionResult describes the outcome recorded on a terminal task.
type ExecutionResult struct {
	Status      string `json:"status"`
	ReferenceID string `json:"reference_id,omitempty"`
	Message     string `json:"message"`
}

// Task is the tracking record for one suggestion's lifecycle.
type Task struct {
	TaskID          string           `json:"task_id"`
	State           State            `json:"state"`
	Suggestion      Suggestion       `json:"suggestion"`
	Approval        *Approval        `json:"approval"`
	ExecutionResult *ExecutionResult `json:"execution_result"`
	AuditEvents     audit.Trail      `json:"audit_events"`
}

// Clone returns a deep copy so callers can never mutate store-internal state.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	out := *t
	out.Suggestion = *t.Suggestion.Clone()
	if t.Approval != nil {
		approval := *t.Approval
		out.Approval = &approval
	}
	if t.ExecutionResult != nil {
		result := *t.ExecutionResult
		out.ExecutionResult = &result
	}
	out.AuditEvents = t.AuditEvents.Clone()
	return &out
}

// Notification pairs an appended audit event with its task so queue
// consumers do not need to re-read the store.
type Notification struct {
	TaskID string      `json:"task_id"`
	Event  audit.Event `json:"event"`
}

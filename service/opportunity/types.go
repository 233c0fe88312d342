package opportunity

import "time"

// Status of an opportunity.
type Status string

const (
	StatusPendingHuman Status = "pending_human"
	StatusApproved     Status = "approved"
	StatusRejected     Status = "rejected"
)

// Defaults applied at creation when the caller leaves the fields empty.
const (
	DefaultTitle       = "NOFA Trading Opportunity"
	DefaultRequestedBy = "nofa-admin"
	DefaultChannel     = "openclaw_chat"
)

// Opportunity is one candidate decision item. The descriptive fields are
// immutable after creation; only Status and Decision ever change, and both
// change exactly once.
type Opportunity struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Pair        string    `json:"pair"`
	Action      string    `json:"action"`
	Quantity    float64   `json:"qty"`
	Leverage    string    `json:"lev"`
	Rationale   string    `json:"rationale,omitempty"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	RequestedBy string    `json:"requested_by"`
	Decision    *Decision `json:"decision"`
}

// Clone returns an independent deep copy.
func (o *Opportunity) Clone() *Opportunity {
	if o == nil {
		return nil
	}
	out := *o
	if o.Decision != nil {
		d := *o.Decision
		out.Decision = &d
	}
	return &out
}

// Decision is the immutable record of one human verdict. Decision holds the
// raw free text on the way in and the normalized yes/no once recorded;
// DecidedAt is assigned by the store.
type Decision struct {
	OpportunityID string    `json:"opportunity_id"`
	UserID        string    `json:"user_id"`
	Decision      string    `json:"decision"`
	Channel       string    `json:"channel"`
	RawText       string    `json:"raw_text,omitempty"`
	DecidedAt     time.Time `json:"decided_at"`
}

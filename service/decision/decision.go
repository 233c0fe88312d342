package decision

import "strings"

// Verdict is the canonical classification of a human decision text.
type Verdict string

const (
	// Yes approves the pending action.
	Yes Verdict = "yes"

	// No rejects the pending action.
	No Verdict = "no"

	// NeedsConfirmation means the text did not match the known vocabulary;
	// the caller should re-prompt the human and resend. It is a request for
	// clarification, not a domain error.
	NeedsConfirmation Verdict = "needs_confirmation"
)

// Terminal reports whether the verdict resolves the pending action.
func (v Verdict) Terminal() bool { return v == Yes || v == No }

var (
	yesSet = map[string]bool{"yes": true, "y": true, "approve": true, "approved": true}
	noSet  = map[string]bool{"no": true, "n": true, "cancel": true, "reject": true}
)

// Normalize maps a raw decision string to a Verdict. Matching is
// case-insensitive and whitespace-trimmed, but otherwise exact – partial or
// fuzzy matches deliberately yield NeedsConfirmation so that an ambiguous
// reply never triggers an execution.
func Normalize(raw string) Verdict {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case yesSet[value]:
		return Yes
	case noSet[value]:
		return No
	}
	return NeedsConfirmation
}

package decision_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nofa/openclaw/service/decision"
)

func TestNormalize(t *testing.T) {
	type testCase struct {
		name     string
		input    string
		expected decision.Verdict
	}

	tests := []testCase{
		{name: "plain yes", input: "yes", expected: decision.Yes},
		{name: "upper yes", input: "YES", expected: decision.Yes},
		{name: "padded yes", input: "  y\t", expected: decision.Yes},
		{name: "approve", input: "Approve", expected: decision.Yes},
		{name: "approved", input: "approved", expected: decision.Yes},
		{name: "plain no", input: "no", expected: decision.No},
		{name: "upper n", input: " N ", expected: decision.No},
		{name: "cancel", input: "CANCEL", expected: decision.No},
		{name: "reject", input: "reject", expected: decision.No},
		{name: "empty", input: "", expected: decision.NeedsConfirmation},
		{name: "whitespace only", input: "   ", expected: decision.NeedsConfirmation},
		{name: "maybe", input: "maybe", expected: decision.NeedsConfirmation},
		{name: "embedded yes", input: "yes please", expected: decision.NeedsConfirmation},
		{name: "partial approval", input: "approv", expected: decision.NeedsConfirmation},
		{name: "emoji", input: "👍", expected: decision.NeedsConfirmation},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.EqualValues(t, tc.expected, decision.Normalize(tc.input))
		})
	}
}

func TestVerdictTerminal(t *testing.T) {
	assert.True(t, decision.Yes.Terminal())
	assert.True(t, decision.No.Terminal())
	assert.False(t, decision.NeedsConfirmation.Terminal())
}

package workflow

import (
	"encoding/json"

	"github.com/pmezard/go-difflib/difflib"
)

// PayloadDiff renders a GNU unified diff between the JSON representations of
// a stored and an incoming decision payload. It is attached to conflict
// errors so the disagreeing fields are visible without replaying traffic.
// Identical payloads yield an empty string.
func PayloadDiff[D any](stored, incoming *D) string {
	a, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return ""
	}
	b, err := json.MarshalIndent(incoming, "", "  ")
	if err != nil {
		return ""
	}
	if string(a) == string(b) {
		return ""
	}
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(a) + "\n"),
		B:        difflib.SplitLines(string(b) + "\n"),
		FromFile: "stored",
		ToFile:   "incoming",
		Context:  3,
	}
	patch, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return ""
	}
	return patch
}

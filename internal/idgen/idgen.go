package idgen

import (
	"strings"

	"github.com/google/uuid"
)

// New returns a new globally unique identifier as string. It is implemented
// as a thin wrapper so tests can stub it.

var NewFunc = func() string { return uuid.New().String() }

func New() string { return NewFunc() }

// Prefixed returns "<prefix>_<n hex chars>" built from a fresh identifier,
// e.g. Prefixed("task", 8) -> "task_1f3a9c2e".
func Prefixed(prefix string, n int) string {
	hex := strings.ReplaceAll(New(), "-", "")
	if n <= 0 || n > len(hex) {
		n = len(hex)
	}
	return prefix + "_" + hex[:n]
}

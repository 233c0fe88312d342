// Package executor defines the execution seam invoked when a task is
// approved. The simulator stub stands in for a real order-execution backend;
// substituting one is out of scope here, but note a real backend must do its
// I/O outside the task store's critical section and bring its own
// idempotency protocol.
package executor

import (
	"context"

	"github.com/nofa/openclaw/internal/idgen"
	"github.com/nofa/openclaw/service/task"
)

// Service executes an approved task and reports the outcome. Implementations
// used inside the task store must be synchronous and non-blocking.
type Service interface {
	Execute(ctx context.Context, t *task.Task) *task.ExecutionResult
}

// Simulator is the deterministic stub: always succeeds, never sends a live
// order, assigns a generated reference id.
type Simulator struct{}

// NewSimulator returns the stub executor.
func NewSimulator() *Simulator { return &Simulator{} }

// Execute produces the fixed success outcome.
func (s *Simulator) Execute(_ context.Context, _ *task.Task) *task.ExecutionResult {
	return &task.ExecutionResult{
		Status:      task.ExecutionSuccess,
		ReferenceID: idgen.Prefixed("order_demo", 6),
		Message:     "Mock execution completed. No live order was sent.",
	}
}

var _ Service = (*Simulator)(nil)

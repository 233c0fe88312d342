package memory

import (
	"github.com/nofa/openclaw/service/executor"
	"github.com/nofa/openclaw/service/messaging"
	"github.com/nofa/openclaw/service/task"
)

type Option func(*Service)

// WithExecutor substitutes the execution backend invoked on approved tasks.
// The store calls it while holding its lock, so the implementation must be
// synchronous and non-blocking; anything that performs I/O belongs outside
// the store.
func WithExecutor(svc executor.Service) Option {
	return func(s *Service) { s.executor = svc }
}

// WithEvents attaches the queue audit notifications are published to.
func WithEvents(q messaging.Queue[task.Notification]) Option {
	return func(s *Service) { s.events = q }
}

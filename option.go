package openclaw

import (
	"github.com/rs/zerolog"

	"github.com/nofa/openclaw/service/audit/journal"
	"github.com/nofa/openclaw/service/executor"
	"github.com/nofa/openclaw/service/opportunity"
	"github.com/nofa/openclaw/service/task"
)

type Option func(*Service)

// WithConfig sets the service configuration.
func WithConfig(config *Config) Option {
	return func(s *Service) { s.config = config }
}

// WithLogger sets the structured logger shared by the gateway and the
// journal consumer.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithExecutor substitutes the execution backend handed to the task store.
func WithExecutor(svc executor.Service) Option {
	return func(s *Service) { s.executor = svc }
}

// WithTaskService substitutes the task store implementation.
func WithTaskService(svc task.Service) Option {
	return func(s *Service) { s.tasks = svc }
}

// WithOpportunityService substitutes the opportunity store implementation.
func WithOpportunityService(svc opportunity.Service) Option {
	return func(s *Service) { s.opportunities = svc }
}

// WithJournal attaches an audit journal; overrides the one built from
// Config.Journal.
func WithJournal(svc *journal.Service) Option {
	return func(s *Service) { s.journal = svc }
}

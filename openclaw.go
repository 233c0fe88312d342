package openclaw

import (
	"context"
	"net/http"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/viant/afs"

	"github.com/nofa/openclaw/gateway"
	"github.com/nofa/openclaw/service/audit"
	"github.com/nofa/openclaw/service/audit/journal"
	"github.com/nofa/openclaw/service/executor"
	"github.com/nofa/openclaw/service/opportunity"
	omemory "github.com/nofa/openclaw/service/opportunity/memory"
	"github.com/nofa/openclaw/service/task"
	tmemory "github.com/nofa/openclaw/service/task/memory"
)

// Service is the façade wiring the stores, the executor, the optional audit
// journal and the HTTP gateway.
type Service struct {
	config        *Config
	logger        zerolog.Logger
	executor      executor.Service
	tasks         task.Service
	opportunities opportunity.Service
	journal       *journal.Service
	gateway       *gateway.Service

	stopOnce sync.Once
	stop     context.CancelFunc
}

// New creates the service. Without options every collaborator falls back to
// its in-memory default.
func New(options ...Option) (*Service, error) {
	ret := &Service{
		logger: zerolog.New(os.Stderr).With().Timestamp().Logger(),
	}
	for _, option := range options {
		option(ret)
	}
	if ret.config == nil {
		ret.config = DefaultConfig()
	}
	if err := ret.config.Validate(); err != nil {
		return nil, err
	}
	if ret.executor == nil {
		ret.executor = executor.NewSimulator()
	}
	if ret.tasks == nil {
		ret.tasks = tmemory.New(tmemory.WithExecutor(ret.executor))
	}
	if ret.opportunities == nil {
		ret.opportunities = omemory.New()
	}
	if ret.journal == nil && ret.config.Journal.BasePath != "" {
		svc, err := journal.New(afs.New(), ret.config.Journal.BasePath)
		if err != nil {
			return nil, err
		}
		ret.journal = svc
	}
	ret.gateway = gateway.New(ret.tasks, ret.opportunities, ret.logger)
	return ret, nil
}

// Handler returns the HTTP handler serving all endpoints.
func (s *Service) Handler() http.Handler { return s.gateway.Router() }

// Tasks exposes the task store.
func (s *Service) Tasks() task.Service { return s.tasks }

// Opportunities exposes the opportunity store.
func (s *Service) Opportunities() opportunity.Service { return s.opportunities }

// Start launches the journal consumers when a journal is configured. It is a
// no-op otherwise.
func (s *Service) Start(ctx context.Context) {
	if s.journal == nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	s.stop = cancel
	go s.consumeNotifications(ctx)
	go s.consumeDecisions(ctx)
}

// Shutdown stops the journal consumer.
func (s *Service) Shutdown() {
	s.stopOnce.Do(func() {
		if s.stop != nil {
			s.stop()
		}
	})
}

// consumeNotifications drains the task store's notification queue into the
// journal until the context is cancelled.
func (s *Service) consumeNotifications(ctx context.Context) {
	for {
		message, err := s.tasks.Events().Consume(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.logger.Warn().Err(err).Msg("notification consume failed")
			continue
		}
		notification := message.T()
		if err := s.journal.Record(ctx, notification.TaskID, notification.Event); err != nil {
			s.logger.Warn().Err(err).Str("task_id", notification.TaskID).Msg("journal write failed")
			_ = message.Nack(err)
			continue
		}
		_ = message.Ack()
	}
}

// consumeDecisions drains the opportunity store's decision queue, journaling
// each verdict under its opportunity id.
func (s *Service) consumeDecisions(ctx context.Context) {
	for {
		message, err := s.opportunities.Events().Consume(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.logger.Warn().Err(err).Msg("decision consume failed")
			continue
		}
		record := message.T()
		event := audit.Event{
			Time:    record.DecidedAt,
			Type:    audit.TypeDecisionRecorded,
			Actor:   record.UserID,
			Summary: "Human decision received: " + record.Decision + ".",
		}
		if err := s.journal.Record(ctx, record.OpportunityID, event); err != nil {
			s.logger.Warn().Err(err).Str("opportunity_id", record.OpportunityID).Msg("journal write failed")
			_ = message.Nack(err)
			continue
		}
		_ = message.Ack()
	}
}

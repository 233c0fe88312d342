package memory

import (
	"github.com/nofa/openclaw/service/messaging"
	"github.com/nofa/openclaw/service/opportunity"
)

type Option func(*Service)

// WithEvents attaches the queue recorded decisions are published to.
func WithEvents(q messaging.Queue[opportunity.Decision]) Option {
	return func(s *Service) { s.events = q }
}

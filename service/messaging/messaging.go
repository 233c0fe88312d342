package messaging

import (
	"context"
	"errors"
)

// ErrFull is returned by Publish when the queue cannot accept the message
// without blocking. Publishers treating delivery as best-effort may ignore
// it; the message is accounted for by the implementation.
var ErrFull = errors.New("messaging: queue full")

// Queue is an abstract publish/consume channel used to fan out store
// notifications (audit events, decision records) to in-process consumers.
type Queue[T any] interface {
	// Publish adds a new message with payload to the queue. Implementations
	// must not block for unbounded time; a queue that cannot accept the
	// message returns ErrFull instead.
	Publish(ctx context.Context, t *T) error

	// Consume retrieves a single message from the queue
	Consume(ctx context.Context) (Message[T], error)
}

// Message represents a message retrieved from a queue
type Message[T any] interface {
	// T returns the payload of this message
	T() *T

	// Ack acknowledges successful processing of this message
	Ack() error

	// Nack indicates failure in processing this message
	Nack(err error) error
}

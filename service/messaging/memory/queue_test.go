package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nofa/openclaw/service/messaging"
)

type notePayload struct {
	ID      string
	Summary string
}

func TestQueuePublishConsume(t *testing.T) {
	config := DefaultConfig()
	config.RetryDelay = 10 * time.Millisecond
	queue := NewQueue[notePayload](config)

	ctx := context.Background()
	payload := notePayload{ID: "n1", Summary: "suggestion delivered"}

	err := queue.Publish(ctx, &payload)
	assert.NoError(t, err)
	assert.Equal(t, 1, queue.Size())

	message, err := queue.Consume(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, message)
	assert.Equal(t, 0, queue.Size())
	assert.Equal(t, payload, *message.T())

	assert.NoError(t, message.Ack())
	assert.Error(t, message.Ack(), "double ack must fail")
}

func TestQueueNackRetries(t *testing.T) {
	config := DefaultConfig()
	config.MaxRetries = 1
	config.RetryDelay = 5 * time.Millisecond
	queue := NewQueue[notePayload](config)

	ctx := context.Background()
	err := queue.Publish(ctx, &notePayload{ID: "r1"})
	assert.NoError(t, err)

	message, err := queue.Consume(ctx)
	assert.NoError(t, err)
	assert.NoError(t, message.Nack(nil))

	// retried copy must arrive
	cctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	message, err = queue.Consume(cctx)
	assert.NoError(t, err)
	assert.NotNil(t, message)

	// second failure exceeds MaxRetries and lands in the DLQ
	assert.NoError(t, message.Nack(nil))
	assert.Eventually(t, func() bool { return queue.DLQSize() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, queue.Size())
}

func TestQueuePublishFullBufferDrops(t *testing.T) {
	queue := NewQueue[notePayload](Config{QueueBuffer: 2})
	ctx := context.Background()

	assert.NoError(t, queue.Publish(ctx, &notePayload{ID: "1"}))
	assert.NoError(t, queue.Publish(ctx, &notePayload{ID: "2"}))

	// publishing into a full buffer must return immediately, not block
	done := make(chan error, 1)
	go func() { done <- queue.Publish(ctx, &notePayload{ID: "3"}) }()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, messaging.ErrFull)
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full buffer")
	}
	assert.Equal(t, 2, queue.Size())
	assert.Equal(t, 1, queue.Dropped())

	// draining frees the slot for new messages
	message, err := queue.Consume(ctx)
	assert.NoError(t, err)
	assert.NoError(t, message.Ack())
	assert.NoError(t, queue.Publish(ctx, &notePayload{ID: "4"}))
}

func TestQueueContextCancellation(t *testing.T) {
	queue := NewQueue[notePayload](DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := queue.Publish(ctx, &notePayload{ID: "c1"})
	assert.Error(t, err)

	ctxTimeout, cancelTimeout := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancelTimeout()
	_, err = queue.Consume(ctxTimeout)
	assert.Error(t, err)

	// queue stays usable afterwards
	background := context.Background()
	assert.NoError(t, queue.Publish(background, &notePayload{ID: "c2"}))
	message, err := queue.Consume(background)
	assert.NoError(t, err)
	assert.NotNil(t, message)
}

func TestQueueConcurrentProducers(t *testing.T) {
	queue := NewQueue[notePayload](Config{QueueBuffer: 256})
	ctx := context.Background()

	const producers, perProducer = 8, 16
	var wg sync.WaitGroup
	wg.Add(producers)
	for i := 0; i < producers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				assert.NoError(t, queue.Publish(ctx, &notePayload{ID: "p"}))
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, producers*perProducer, queue.Size())
}

// file: internal/events/events_test.go
package events

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestBus(t *testing.T) EventBus {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	bus := NewEventBus(&EventBusConfig{
		BufferSize:     16,
		WorkerCount:    2,
		HandlerTimeout: time.Second,
	}, logger)
	require.NoError(t, bus.Start(context.Background()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = bus.Stop(ctx)
	})
	return bus
}

func TestPublishDeliversToSubscriber(t *testing.T) {
	bus := newTestBus(t)

	var received atomic.Int64
	handler := NewEventHandlerFunc("test_handler", func(ctx context.Context, event Event) error {
		received.Add(1)
		return nil
	})
	require.NoError(t, bus.Subscribe(TypeBookingCreated, handler))

	spotID := int64(1)
	event := NewBookingCreatedEvent(10, 1, &spotID, time.Now(), 4)
	require.NoError(t, bus.Publish(context.Background(), event))

	assert.Equal(t, int64(1), received.Load())
}

func TestPublishAsyncDeliversEventually(t *testing.T) {
	bus := newTestBus(t)

	var received atomic.Int64
	handler := NewEventHandlerFunc("async_handler", func(ctx context.Context, event Event) error {
		received.Add(1)
		return nil
	})
	require.NoError(t, bus.Subscribe(TypeReviewSubmitted, handler))

	require.NoError(t, bus.PublishAsync(context.Background(), NewReviewSubmittedEvent(5, 1, "Uhuru Gardens")))

	assert.Eventually(t, func() bool {
		return received.Load() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestSubscribePatternMatchesPrefix(t *testing.T) {
	bus := newTestBus(t)

	var received atomic.Int64
	handler := NewEventHandlerFunc("pattern_handler", func(ctx context.Context, event Event) error {
		received.Add(1)
		return nil
	})
	require.NoError(t, bus.SubscribePattern("badge.*", handler))

	require.NoError(t, bus.Publish(context.Background(), NewBadgeEarnedEvent(1, 1, "First Timer", "🧺", 1)))
	require.NoError(t, bus.Publish(context.Background(), NewBookingCreatedEvent(10, 1, nil, time.Now(), 4)))

	assert.Equal(t, int64(1), received.Load(), "pattern must only match badge events")
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := newTestBus(t)

	var received atomic.Int64
	handler := NewEventHandlerFunc("removable_handler", func(ctx context.Context, event Event) error {
		received.Add(1)
		return nil
	})
	require.NoError(t, bus.Subscribe(TypeBadgeEarned, handler))
	require.NoError(t, bus.Unsubscribe(TypeBadgeEarned, handler))

	require.NoError(t, bus.Publish(context.Background(), NewBadgeEarnedEvent(1, 1, "First Timer", "🧺", 1)))
	assert.Equal(t, int64(0), received.Load())
}

func TestStatsCountPublishedEvents(t *testing.T) {
	bus := newTestBus(t)

	require.NoError(t, bus.Publish(context.Background(), NewUserRegisteredEvent(1, "amani", "amani@example.com")))
	require.NoError(t, bus.Publish(context.Background(), NewUserLoggedInEvent(1, "127.0.0.1", "test-agent")))

	stats := bus.Stats()
	assert.Equal(t, int64(2), stats.EventsPublished)
}

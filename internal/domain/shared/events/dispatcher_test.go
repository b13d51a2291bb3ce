package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetflow/assetflow/internal/shared/logger"
)

type testEvent struct {
	BaseEvent
}

func newTestEvent(eventType string) testEvent {
	return testEvent{BaseEvent: NewBaseEvent(eventType, "7", time.Now().UTC())}
}

func TestInMemoryEventDispatcher_DeliversToSubscribers(t *testing.T) {
	d := NewInMemoryEventDispatcher(10, logger.NewNopLogger())

	var mu sync.Mutex
	var got []string
	record := func(_ context.Context, e DomainEvent) error {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, e.GetEventType())
		return nil
	}

	require.NoError(t, d.Subscribe("allocation.created", NewSimpleEventHandler("allocation.created", record)))
	require.NoError(t, d.Start())

	require.NoError(t, d.PublishAll([]DomainEvent{
		newTestEvent("allocation.created"),
		newTestEvent("unrelated"),
	}))
	require.NoError(t, d.Stop())

	assert.Equal(t, []string{"allocation.created"}, got)
}

func TestInMemoryEventDispatcher_SwallowsHandlerFailures(t *testing.T) {
	d := NewInMemoryEventDispatcher(10, logger.NewNopLogger())

	var mu sync.Mutex
	calls := 0
	count := func(context.Context, DomainEvent) error {
		mu.Lock()
		calls++
		mu.Unlock()
		return nil
	}

	require.NoError(t, d.Subscribe("review.submitted", NewSimpleEventHandler("review.submitted",
		func(context.Context, DomainEvent) error { return errors.New("smtp down") })))
	require.NoError(t, d.Subscribe("review.submitted", NewSimpleEventHandler("review.submitted",
		func(context.Context, DomainEvent) error { panic("boom") })))
	require.NoError(t, d.Subscribe("review.submitted", NewSimpleEventHandler("review.submitted", count)))
	require.NoError(t, d.Start())

	require.NoError(t, d.Publish(newTestEvent("review.submitted")))
	require.NoError(t, d.Stop())

	assert.Equal(t, 1, calls)
}

func TestInMemoryEventDispatcher_PublishWhenStopped(t *testing.T) {
	d := NewInMemoryEventDispatcher(1, logger.NewNopLogger())

	assert.Error(t, d.Publish(newTestEvent("x")))
	assert.Error(t, d.Stop())
	assert.Error(t, d.Subscribe("", NewSimpleEventHandler("", nil)))
}

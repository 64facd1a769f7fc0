package infrastructure

import (
	"context"
	"errors"
	"testing"

	"streambot/domain/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_PublishRunsHandlersInOrder(t *testing.T) {
	bus := NewEventBus()

	var calls []string
	require.NoError(t, bus.Subscribe(events.EventTypeDuelStarted, func(ctx context.Context, e events.Event) error {
		calls = append(calls, "first")
		return errors.New("boom")
	}))
	require.NoError(t, bus.Subscribe(events.EventTypeDuelStarted, func(ctx context.Context, e events.Event) error {
		calls = append(calls, "second:"+e.(events.DuelStartedEvent).DuelID)
		return nil
	}))
	require.NoError(t, bus.Subscribe(events.EventTypeDuelExpired, func(ctx context.Context, e events.Event) error {
		calls = append(calls, "expired")
		return nil
	}))

	assert.NoError(t, bus.Publish(events.DuelStartedEvent{DuelID: "1_1"}))
	assert.Equal(t, []string{"first", "second:1_1"}, calls)
	assert.Equal(t, 2, bus.HandlerCount(events.EventTypeDuelStarted))
	assert.Equal(t, 0, bus.HandlerCount(events.EventTypePointsChanged))
}

func TestEventBus_RejectsNilHandler(t *testing.T) {
	assert.Error(t, NewEventBus().Subscribe(events.EventTypeDuelStarted, nil))
}

func TestEventSubjectMapper(t *testing.T) {
	mapper := NewEventSubjectMapper()

	subject := mapper.MapEventToSubject(events.DuelResolvedEvent{})
	assert.Equal(t, "streambot.duel.resolved", subject)
	assert.Equal(t, events.EventTypeDuelResolved, mapper.MapSubjectToEventType(subject))

	subjects := mapper.GetAllSubjects()
	assert.Len(t, subjects, len(events.AllEventTypes))
	assert.Contains(t, subjects, "streambot.points.changed")
}

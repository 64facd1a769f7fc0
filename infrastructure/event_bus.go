package infrastructure

import (
	"context"
	"fmt"
	"sync"

	"streambot/domain/events"
	"streambot/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// EventBus dispatches events to in-process handlers. Handlers run
// synchronously on the publishing goroutine in registration order.
type EventBus struct {
	mu       sync.RWMutex
	handlers map[events.EventType][]interfaces.EventHandler
}

// NewEventBus creates an empty event bus
func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[events.EventType][]interfaces.EventHandler),
	}
}

// Subscribe registers a handler for an event type
func (b *EventBus) Subscribe(eventType events.EventType, handler interfaces.EventHandler) error {
	if handler == nil {
		return fmt.Errorf("nil handler for event type %s", eventType)
	}

	b.mu.Lock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
	count := len(b.handlers[eventType])
	b.mu.Unlock()

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": count,
	}).Debug("Registered event handler")
	return nil
}

// Publish runs every handler registered for the event's type. A failing
// handler is logged and does not stop the others.
func (b *EventBus) Publish(event events.Event) error {
	b.mu.RLock()
	handlers := append([]interfaces.EventHandler(nil), b.handlers[event.Type()]...)
	b.mu.RUnlock()

	ctx := context.Background()
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			log.WithFields(log.Fields{
				"eventType": event.Type(),
				"error":     err,
			}).Error("Event handler failed")
		}
	}
	return nil
}

// HandlerCount returns how many handlers are registered for an event type
func (b *EventBus) HandlerCount(eventType events.EventType) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}

package application

import (
	"fmt"

	"streambot/domain/events"
	"streambot/domain/interfaces"
)

// RegisterApplicationSubscriptions wires the battle log and metrics handlers
// to the domain events they consume
func RegisterApplicationSubscriptions(
	subscriber interfaces.EventSubscriber,
	battleLog *BattleLogHandler,
	metrics *DuelMetricsHandler,
) error {
	subscriptions := []struct {
		eventType events.EventType
		handler   interfaces.EventHandler
	}{
		{events.EventTypeDuelResolved, battleLog.HandleDuelResolved},
		{events.EventTypeDuelStarted, metrics.HandleDuelStarted},
		{events.EventTypeDuelResolved, metrics.HandleDuelResolved},
		{events.EventTypeDuelExpired, metrics.HandleDuelExpired},
	}

	for _, s := range subscriptions {
		if err := subscriber.Subscribe(s.eventType, s.handler); err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", s.eventType, err)
		}
	}
	return nil
}

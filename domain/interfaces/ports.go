package interfaces

import (
	"context"
	"time"

	"streambot/domain/entities"
	"streambot/domain/events"
)

// DuelPresenter renders duel transitions on Discord
type DuelPresenter interface {
	// PostOpenChallenge posts the public challenge with an accept button
	PostOpenChallenge(ctx context.Context, duel *entities.Duel) (*entities.PostRef, error)

	// DisablePost swaps the accept button for a disabled one
	DisablePost(ctx context.Context, duel *entities.Duel) error

	// EditPostExpired replaces the public post with an expired notice
	EditPostExpired(ctx context.Context, duel *entities.Duel, reason entities.ExpiryReason, after time.Duration) error

	// DeletePost removes the public post
	DeletePost(ctx context.Context, ref entities.PostRef) error

	// PostResult announces the outcome of a resolved duel
	PostResult(ctx context.Context, resolution *entities.DuelResolution) error
}

// Timer is a pending scheduled callback
type Timer interface {
	// Stop cancels the callback, returning false if it already ran or was stopped
	Stop() bool
}

// Scheduler runs callbacks after a delay
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
	Now() time.Time
}

// EventPublisher publishes domain events
type EventPublisher interface {
	Publish(event events.Event) error
}

// EventHandler handles a single published event
type EventHandler func(ctx context.Context, event events.Event) error

// EventSubscriber registers handlers for domain events
type EventSubscriber interface {
	Subscribe(eventType events.EventType, handler EventHandler) error
}

// BattleReporter delivers finished duels to the visualizer
type BattleReporter interface {
	ReportBattle(ctx context.Context, report *entities.BattleReport) error
}

// ModeProvider tells whether the visualizer API is reachable
type ModeProvider interface {
	Mode() entities.ConnectionMode
}

package events

import "streambot/domain/entities"

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeDuelStarted   EventType = "duel.started"
	EventTypeDuelPosted    EventType = "duel.posted"
	EventTypeDuelAccepted  EventType = "duel.accepted"
	EventTypeDuelResolved  EventType = "duel.resolved"
	EventTypeDuelExpired   EventType = "duel.expired"
	EventTypePointsChanged EventType = "points.changed"
)

// AllEventTypes lists every event type the bot publishes
var AllEventTypes = []EventType{
	EventTypeDuelStarted,
	EventTypeDuelPosted,
	EventTypeDuelAccepted,
	EventTypeDuelResolved,
	EventTypeDuelExpired,
	EventTypePointsChanged,
}

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// DuelStartedEvent is published when a challenger opens the configuration view
type DuelStartedEvent struct {
	DuelID       string `json:"duel_id"`
	ChallengerID string `json:"challenger_id"`
	Linked       bool   `json:"linked"`
}

func (e DuelStartedEvent) Type() EventType {
	return EventTypeDuelStarted
}

// DuelPostedEvent is published when a challenge becomes public
type DuelPostedEvent struct {
	DuelID       string `json:"duel_id"`
	ChallengerID string `json:"challenger_id"`
	Wager        int64  `json:"wager"`
	ChannelID    string `json:"channel_id"`
	MessageID    string `json:"message_id"`
}

func (e DuelPostedEvent) Type() EventType {
	return EventTypeDuelPosted
}

// DuelAcceptedEvent is published when an opponent takes the challenge
type DuelAcceptedEvent struct {
	DuelID       string `json:"duel_id"`
	ChallengerID string `json:"challenger_id"`
	OpponentID   string `json:"opponent_id"`
	Wager        int64  `json:"wager"`
}

func (e DuelAcceptedEvent) Type() EventType {
	return EventTypeDuelAccepted
}

// DuelResolvedEvent is published once per finished duel, after points moved
type DuelResolvedEvent struct {
	Resolution entities.DuelResolution `json:"resolution"`
}

func (e DuelResolvedEvent) Type() EventType {
	return EventTypeDuelResolved
}

// DuelExpiredEvent is published when a timeout tears a duel down
type DuelExpiredEvent struct {
	DuelID       string                `json:"duel_id"`
	State        entities.DuelState    `json:"state"`
	Reason       entities.ExpiryReason `json:"reason"`
	ChallengerID string                `json:"challenger_id"`
	OpponentID   string                `json:"opponent_id,omitempty"`
}

func (e DuelExpiredEvent) Type() EventType {
	return EventTypeDuelExpired
}

// PointsChangedEvent records a balance write
type PointsChangedEvent struct {
	DiscordID  string               `json:"discord_id"`
	Store      entities.PointsStore `json:"store"`
	OldBalance int64                `json:"old_balance"`
	NewBalance int64                `json:"new_balance"`
	Reason     string               `json:"reason"`
}

func (e PointsChangedEvent) Type() EventType {
	return EventTypePointsChanged
}

// Delta returns the signed balance change
func (e PointsChangedEvent) Delta() int64 {
	return e.NewBalance - e.OldBalance
}

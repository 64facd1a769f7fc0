package interfaces

import (
	"context"

	"streambot/domain/entities"
)

// PointsLedger routes balances between chat profiles and local records.
// Reads never fail; missing or unreadable data reads as 0.
type PointsLedger interface {
	// IsLinked reports whether the identity has a linked chat account
	IsLinked(ctx context.Context, discordID string) bool

	// GetAccount returns the balance together with the store it was read from
	GetAccount(ctx context.Context, discordID string) *entities.PointsAccount

	// GetBalance returns the current balance
	GetBalance(ctx context.Context, discordID string) int64

	// HasAtLeast reports whether the balance covers amount
	HasAtLeast(ctx context.Context, discordID string, amount int64) bool

	// SetBalance clamps amount to zero and writes it to the store GetBalance reads from
	SetBalance(ctx context.Context, discordID string, amount int64, reason string) (int64, error)

	// Transfer moves min(amount, loser balance) from loser to winner
	Transfer(ctx context.Context, winnerID, loserID string, amount int64) (*entities.TransferResult, error)
}

// DuelManager owns every rock-paper-scissors duel and its timers
type DuelManager interface {
	// StartDuel opens a duel in configuring state for the challenger
	StartDuel(ctx context.Context, challengerID, displayName, originChannelID string) (*entities.Duel, error)

	// SetChallengerWeapon records the challenger's weapon while configuring
	SetChallengerWeapon(ctx context.Context, duelID, callerID string, weapon entities.Weapon) error

	// SetWager records the stake while configuring
	SetWager(ctx context.Context, duelID, callerID string, amount int64) error

	// Confirm publishes the challenge and starts the acceptance timeout
	Confirm(ctx context.Context, duelID, callerID string) (*entities.Duel, error)

	// Accept binds the caller as opponent and starts the weapon timeout
	Accept(ctx context.Context, duelID, callerID, displayName string) (*entities.Duel, error)

	// ChooseOpponentWeapon resolves the duel and settles the wager
	ChooseOpponentWeapon(ctx context.Context, duelID, callerID string, weapon entities.Weapon) (*entities.DuelResolution, error)

	// GetDuel returns a snapshot of an active duel
	GetDuel(duelID string) (*entities.Duel, error)

	// ActiveDuelFor returns the duel indexed under discordID, nil when none
	ActiveDuelFor(discordID string) *entities.Duel

	// ActiveDuels returns snapshots of every active duel
	ActiveDuels() []*entities.Duel

	// WagerTiers returns the allowed stakes
	WagerTiers() entities.WagerTiers

	// Shutdown cancels every pending timer and drops all duels
	Shutdown()
}

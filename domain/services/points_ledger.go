package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"streambot/domain/entities"
	"streambot/domain/events"
	"streambot/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// pointsLedger implements the PointsLedger interface
type pointsLedger struct {
	links          interfaces.AccountLinkRepository
	profiles       interfaces.ProfilePointsRepository
	local          interfaces.LocalPointsRepository
	eventPublisher interfaces.EventPublisher

	// mu serializes every balance mutation so read-modify-write cycles
	// touching the same identity never interleave
	mu sync.Mutex
}

// NewPointsLedger creates a new points ledger
func NewPointsLedger(
	links interfaces.AccountLinkRepository,
	profiles interfaces.ProfilePointsRepository,
	local interfaces.LocalPointsRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.PointsLedger {
	return &pointsLedger{
		links:          links,
		profiles:       profiles,
		local:          local,
		eventPublisher: eventPublisher,
	}
}

// IsLinked reports whether the identity has a linked chat account
func (l *pointsLedger) IsLinked(ctx context.Context, discordID string) bool {
	return l.chatUsername(ctx, discordID) != ""
}

// GetAccount returns the balance together with the store it was read from
func (l *pointsLedger) GetAccount(ctx context.Context, discordID string) *entities.PointsAccount {
	return l.resolve(ctx, discordID)
}

// GetBalance returns the current balance
func (l *pointsLedger) GetBalance(ctx context.Context, discordID string) int64 {
	return l.resolve(ctx, discordID).Balance
}

// HasAtLeast reports whether the balance covers amount
func (l *pointsLedger) HasAtLeast(ctx context.Context, discordID string, amount int64) bool {
	return l.GetBalance(ctx, discordID) >= amount
}

// SetBalance clamps amount and writes it to the store the balance is read from
func (l *pointsLedger) SetBalance(ctx context.Context, discordID string, amount int64, reason string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	account := l.resolve(ctx, discordID)
	return l.write(ctx, account, amount, reason)
}

// Transfer moves min(amount, loser balance) from loser to winner
func (l *pointsLedger) Transfer(ctx context.Context, winnerID, loserID string, amount int64) (*entities.TransferResult, error) {
	if amount < 0 {
		return nil, fmt.Errorf("transfer amount must not be negative: %d", amount)
	}
	if winnerID == loserID {
		return nil, fmt.Errorf("cannot transfer points from %s to itself", winnerID)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	loser := l.resolve(ctx, loserID)
	winner := l.resolve(ctx, winnerID)

	transferred := min(amount, loser.Balance)
	result := &entities.TransferResult{
		Requested:     amount,
		Transferred:   transferred,
		WinnerBalance: winner.Balance,
		LoserBalance:  loser.Balance,
	}
	if transferred == 0 {
		return result, nil
	}

	newWinner, err := l.write(ctx, winner, winner.Balance+transferred, "ssp_win")
	if err != nil {
		return nil, fmt.Errorf("failed to credit winner: %w", err)
	}
	result.WinnerBalance = newWinner

	newLoser, err := l.write(ctx, loser, loser.Balance-transferred, "ssp_loss")
	if err != nil {
		// The winner is already credited; report the partial transfer
		log.WithFields(log.Fields{
			"winnerID":    winnerID,
			"loserID":     loserID,
			"transferred": transferred,
			"error":       err,
		}).Error("Failed to debit loser after crediting winner")
		return result, fmt.Errorf("failed to debit loser: %w", err)
	}
	result.LoserBalance = newLoser

	log.WithFields(log.Fields{
		"winnerID":    winnerID,
		"loserID":     loserID,
		"requested":   amount,
		"transferred": transferred,
	}).Info("Transferred duel points")

	return result, nil
}

// resolve finds the store an identity's balance lives in. A linked identity
// with an existing profile uses the profile; everything else is local.
func (l *pointsLedger) resolve(ctx context.Context, discordID string) *entities.PointsAccount {
	account := &entities.PointsAccount{
		DiscordID:    discordID,
		ChatUsername: l.chatUsername(ctx, discordID),
		Store:        entities.PointsStoreLocal,
	}

	if account.IsLinked() {
		points, found, err := l.profiles.GetPoints(ctx, account.ChatUsername)
		if err != nil {
			log.WithFields(log.Fields{
				"discordID":    discordID,
				"chatUsername": account.ChatUsername,
				"error":        err,
			}).Warn("Failed to read profile points, falling back to local balance")
		} else if found {
			account.Store = entities.PointsStoreProfile
			account.Balance = entities.ClampPoints(points)
			return account
		}
	}

	points, err := l.local.GetPoints(ctx, discordID)
	if err != nil {
		log.WithFields(log.Fields{
			"discordID": discordID,
			"error":     err,
		}).Warn("Failed to read local points, treating balance as 0")
		return account
	}
	account.Balance = entities.ClampPoints(points)
	return account
}

// write stores amount in the account's store. Callers hold l.mu.
func (l *pointsLedger) write(ctx context.Context, account *entities.PointsAccount, amount int64, reason string) (int64, error) {
	newBalance := entities.ClampPoints(amount)
	store := account.Store

	if store == entities.PointsStoreProfile {
		found, err := l.profiles.SetPoints(ctx, account.ChatUsername, newBalance)
		if err != nil {
			return 0, fmt.Errorf("failed to write profile points for %s: %w", account.ChatUsername, err)
		}
		if !found {
			// Profile disappeared between read and write
			store = entities.PointsStoreLocal
		}
	}

	if store == entities.PointsStoreLocal {
		if err := l.local.SetPoints(ctx, account.DiscordID, newBalance); err != nil {
			return 0, fmt.Errorf("failed to write local points for %s: %w", account.DiscordID, err)
		}
	}

	log.WithFields(log.Fields{
		"discordID":  account.DiscordID,
		"store":      store,
		"oldBalance": account.Balance,
		"newBalance": newBalance,
		"reason":     reason,
	}).Debug("Balance updated")

	l.publish(events.PointsChangedEvent{
		DiscordID:  account.DiscordID,
		Store:      store,
		OldBalance: account.Balance,
		NewBalance: newBalance,
		Reason:     reason,
	})

	return newBalance, nil
}

func (l *pointsLedger) chatUsername(ctx context.Context, discordID string) string {
	username, err := l.links.GetChatUsername(ctx, discordID)
	if err != nil {
		log.WithFields(log.Fields{
			"discordID": discordID,
			"error":     err,
		}).Warn("Failed to read account link, treating identity as unlinked")
		return ""
	}
	return strings.TrimSpace(username)
}

func (l *pointsLedger) publish(event events.Event) {
	if l.eventPublisher == nil {
		return
	}
	if err := l.eventPublisher.Publish(event); err != nil {
		log.WithFields(log.Fields{
			"eventType": event.Type(),
			"error":     err,
		}).Error("Failed to publish ledger event")
	}
}

package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"streambot/domain/entities"
	"streambot/domain/events"
	"streambot/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// DuelSettings holds the timeouts and stakes of rock-paper-scissors duels
type DuelSettings struct {
	ConfigureTimeout time.Duration
	AcceptTimeout    time.Duration
	WeaponTimeout    time.Duration
	Tiers            entities.WagerTiers
}

// DefaultDuelSettings returns the stock timeouts and wager tiers
func DefaultDuelSettings() DuelSettings {
	return DuelSettings{
		ConfigureTimeout: 10 * time.Minute,
		AcceptTimeout:    time.Hour,
		WeaponTimeout:    5 * time.Minute,
		Tiers:            entities.DefaultWagerTiers,
	}
}

// duelManager implements the DuelManager interface.
// State is checked and flipped under mu; presenter, ledger writes and
// event publishing happen after the flip with mu released.
type duelManager struct {
	ledger         interfaces.PointsLedger
	presenter      interfaces.DuelPresenter
	scheduler      interfaces.Scheduler
	eventPublisher interfaces.EventPublisher
	settings       DuelSettings

	mu        sync.Mutex
	registry  *duelRegistry
	sequence  uint64
	lastToken uint64
}

// NewDuelManager creates a new duel manager
func NewDuelManager(
	ledger interfaces.PointsLedger,
	presenter interfaces.DuelPresenter,
	scheduler interfaces.Scheduler,
	eventPublisher interfaces.EventPublisher,
	settings DuelSettings,
) interfaces.DuelManager {
	return &duelManager{
		ledger:         ledger,
		presenter:      presenter,
		scheduler:      scheduler,
		eventPublisher: eventPublisher,
		settings:       settings,
		registry:       newDuelRegistry(),
	}
}

// StartDuel opens a duel in configuring state for the challenger
func (m *duelManager) StartDuel(ctx context.Context, challengerID, displayName, originChannelID string) (*entities.Duel, error) {
	linked := m.ledger.IsLinked(ctx, challengerID)

	m.mu.Lock()
	if _, busy := m.registry.lookupByParticipant(challengerID); busy {
		m.mu.Unlock()
		return nil, entities.ErrAlreadyInDuel
	}

	now := m.scheduler.Now()
	m.sequence++
	duel := &entities.Duel{
		ID:    fmt.Sprintf("%d_%d", now.UnixMilli(), m.sequence),
		State: entities.DuelStateConfiguring,
		Challenger: entities.Participant{
			DiscordID:   challengerID,
			DisplayName: displayName,
			Linked:      linked,
		},
		OriginChannelID: originChannelID,
		CreatedAt:       now,
	}
	rec := m.registry.create(duel)
	m.armTimeout(rec)
	snapshot := duel.Clone()
	m.mu.Unlock()

	log.WithFields(log.Fields{
		"duelID":       snapshot.ID,
		"challengerID": challengerID,
		"linked":       linked,
	}).Info("SSP duel started")

	m.publish(events.DuelStartedEvent{
		DuelID:       snapshot.ID,
		ChallengerID: challengerID,
		Linked:       linked,
	})

	return snapshot, nil
}

// SetChallengerWeapon records the challenger's weapon while configuring
func (m *duelManager) SetChallengerWeapon(ctx context.Context, duelID, callerID string, weapon entities.Weapon) error {
	if !weapon.IsValid() {
		return entities.ErrInvalidWeapon
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rec, err := m.challengerRecord(duelID, callerID)
	if err != nil {
		return err
	}
	rec.duel.ChallengerWeapon = weapon
	return nil
}

// SetWager records the stake while configuring
func (m *duelManager) SetWager(ctx context.Context, duelID, callerID string, amount int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, err := m.challengerRecord(duelID, callerID)
	if err != nil {
		return err
	}
	if !m.settings.Tiers.IsAllowed(amount) {
		return fmt.Errorf("%w: %d", entities.ErrInvalidWager, amount)
	}
	if amount > 0 && !rec.duel.Challenger.Linked {
		return entities.ErrWagerRequiresLink
	}
	rec.duel.Wager = amount
	return nil
}

// Confirm publishes the challenge and starts the acceptance timeout
func (m *duelManager) Confirm(ctx context.Context, duelID, callerID string) (*entities.Duel, error) {
	m.mu.Lock()
	rec, err := m.challengerRecord(duelID, callerID)
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}

	duel := rec.duel
	if duel.ChallengerWeapon == "" {
		m.mu.Unlock()
		return nil, entities.ErrWeaponRequired
	}
	if duel.Wager > 0 {
		if !duel.Challenger.Linked {
			m.mu.Unlock()
			return nil, entities.ErrWagerRequiresLink
		}
		if balance := m.ledger.GetBalance(ctx, callerID); balance < duel.Wager {
			m.mu.Unlock()
			return nil, &entities.InsufficientPointsError{Balance: balance, Required: duel.Wager}
		}
	}

	now := m.scheduler.Now()
	duel.State = entities.DuelStatePosted
	duel.PostedAt = &now
	m.armTimeout(rec)
	snapshot := duel.Clone()
	m.mu.Unlock()

	log.WithFields(log.Fields{
		"duelID":       duelID,
		"challengerID": callerID,
		"wager":        snapshot.Wager,
	}).Info("SSP duel posted")

	ref, err := m.presenter.PostOpenChallenge(ctx, snapshot)
	if err != nil {
		log.WithFields(log.Fields{
			"duelID": duelID,
			"error":  err,
		}).Error("Failed to post open challenge")
	} else if ref != nil {
		snapshot.Post = ref
		m.attachPost(ctx, duelID, *ref)
	}

	event := events.DuelPostedEvent{
		DuelID:       duelID,
		ChallengerID: callerID,
		Wager:        snapshot.Wager,
	}
	if ref != nil {
		event.ChannelID = ref.ChannelID
		event.MessageID = ref.MessageID
	}
	m.publish(event)

	return snapshot, nil
}

// attachPost stores the public post reference once the presenter returns it.
// The duel may have moved on while the post was in flight. A duel that is
// gone or already resolved never shows the post, so it is deleted.
func (m *duelManager) attachPost(ctx context.Context, duelID string, ref entities.PostRef) {
	m.mu.Lock()
	rec, ok := m.registry.get(duelID)
	live := ok && rec.duel.State != entities.DuelStateResolved
	var snapshot *entities.Duel
	if live {
		rec.duel.Post = &ref
		snapshot = rec.duel.Clone()
	}
	m.mu.Unlock()

	switch {
	case !live:
		if err := m.presenter.DeletePost(ctx, ref); err != nil {
			log.WithFields(log.Fields{
				"duelID": duelID,
				"error":  err,
			}).Warn("Failed to delete post of finished duel")
		}
	case !snapshot.IsPosted():
		if err := m.presenter.DisablePost(ctx, snapshot); err != nil {
			log.WithFields(log.Fields{
				"duelID": duelID,
				"error":  err,
			}).Warn("Failed to disable post of accepted duel")
		}
	}
}

// Accept binds the caller as opponent and starts the weapon timeout
func (m *duelManager) Accept(ctx context.Context, duelID, callerID, displayName string) (*entities.Duel, error) {
	linked := m.ledger.IsLinked(ctx, callerID)

	m.mu.Lock()
	rec, ok := m.registry.get(duelID)
	if !ok || !rec.duel.IsPosted() {
		m.mu.Unlock()
		return nil, entities.ErrDuelNotActive
	}

	duel := rec.duel
	if duel.IsChallenger(callerID) {
		m.mu.Unlock()
		return nil, entities.ErrSelfAccept
	}
	if _, busy := m.registry.lookupByParticipant(callerID); busy {
		m.mu.Unlock()
		return nil, entities.ErrAlreadyInDuel
	}
	if duel.Wager > 0 {
		if !linked {
			m.mu.Unlock()
			return nil, entities.ErrWagerRequiresLink
		}
		if balance := m.ledger.GetBalance(ctx, callerID); balance < duel.Wager {
			m.mu.Unlock()
			return nil, &entities.InsufficientPointsError{Balance: balance, Required: duel.Wager}
		}
	}

	now := m.scheduler.Now()
	duel.State = entities.DuelStateAccepted
	duel.AcceptedAt = &now
	duel.Opponent = &entities.Participant{
		DiscordID:   callerID,
		DisplayName: displayName,
		Linked:      linked,
	}
	m.registry.index(callerID, duelID)
	m.armTimeout(rec)
	snapshot := duel.Clone()
	m.mu.Unlock()

	log.WithFields(log.Fields{
		"duelID":       duelID,
		"challengerID": snapshot.Challenger.DiscordID,
		"opponentID":   callerID,
		"wager":        snapshot.Wager,
	}).Info("SSP duel accepted")

	if snapshot.Post != nil {
		if err := m.presenter.DisablePost(ctx, snapshot); err != nil {
			log.WithFields(log.Fields{
				"duelID": duelID,
				"error":  err,
			}).Warn("Failed to disable accepted challenge post")
		}
	}

	m.publish(events.DuelAcceptedEvent{
		DuelID:       duelID,
		ChallengerID: snapshot.Challenger.DiscordID,
		OpponentID:   callerID,
		Wager:        snapshot.Wager,
	})

	return snapshot, nil
}

// ChooseOpponentWeapon resolves the duel and settles the wager
func (m *duelManager) ChooseOpponentWeapon(ctx context.Context, duelID, callerID string, weapon entities.Weapon) (*entities.DuelResolution, error) {
	if !weapon.IsValid() {
		return nil, entities.ErrInvalidWeapon
	}

	m.mu.Lock()
	rec, ok := m.registry.get(duelID)
	if !ok {
		m.mu.Unlock()
		return nil, entities.ErrDuelNotActive
	}
	duel := rec.duel
	if !duel.IsOpponent(callerID) {
		m.mu.Unlock()
		return nil, entities.ErrNotYourDuel
	}
	if !duel.IsAccepted() {
		m.mu.Unlock()
		return nil, entities.ErrDuelNotActive
	}

	m.cancelTimeout(rec)
	now := m.scheduler.Now()
	duel.OpponentWeapon = weapon
	duel.State = entities.DuelStateResolved
	duel.ResolvedAt = &now
	snapshot := duel.Clone()
	m.mu.Unlock()

	resolution := &entities.DuelResolution{
		DuelID:           duelID,
		Outcome:          entities.ResolveRound(snapshot.ChallengerWeapon, weapon),
		Challenger:       snapshot.Challenger,
		Opponent:         *snapshot.Opponent,
		ChallengerWeapon: snapshot.ChallengerWeapon,
		OpponentWeapon:   weapon,
		Wager:            snapshot.Wager,
		OriginChannelID:  snapshot.OriginChannelID,
		Post:             snapshot.Post,
	}
	if winner := resolution.Winner(); winner != nil {
		resolution.WinnerID = winner.DiscordID
		resolution.LoserID = resolution.Loser().DiscordID
	}

	if !resolution.IsTie() && resolution.Wager > 0 {
		result, err := m.ledger.Transfer(ctx, resolution.WinnerID, resolution.LoserID, resolution.Wager)
		if err != nil {
			log.WithFields(log.Fields{
				"duelID":   duelID,
				"winnerID": resolution.WinnerID,
				"loserID":  resolution.LoserID,
				"wager":    resolution.Wager,
				"error":    err,
			}).Error("Failed to settle SSP duel wager")
		}
		if result != nil {
			resolution.Transferred = result.Transferred
			resolution.WinnerBalance = result.WinnerBalance
			resolution.LoserBalance = result.LoserBalance
		}
	}

	m.mu.Lock()
	m.registry.remove(duelID)
	m.mu.Unlock()

	log.WithFields(log.Fields{
		"duelID":      duelID,
		"outcome":     resolution.Outcome,
		"winnerID":    resolution.WinnerID,
		"transferred": resolution.Transferred,
	}).Info("SSP duel resolved")

	if resolution.Post != nil {
		if err := m.presenter.DeletePost(ctx, *resolution.Post); err != nil {
			log.WithFields(log.Fields{
				"duelID": duelID,
				"error":  err,
			}).Warn("Failed to delete challenge post")
		}
	}
	if err := m.presenter.PostResult(ctx, resolution); err != nil {
		log.WithFields(log.Fields{
			"duelID": duelID,
			"error":  err,
		}).Error("Failed to post duel result")
	}

	m.publish(events.DuelResolvedEvent{Resolution: *resolution})

	return resolution, nil
}

// GetDuel returns a snapshot of an active duel
func (m *duelManager) GetDuel(duelID string) (*entities.Duel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.registry.get(duelID)
	if !ok {
		return nil, entities.ErrDuelNotFound
	}
	return rec.duel.Clone(), nil
}

// ActiveDuelFor returns the duel indexed under discordID, nil when none
func (m *duelManager) ActiveDuelFor(discordID string) *entities.Duel {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.registry.lookupByParticipant(discordID)
	if !ok {
		return nil
	}
	return rec.duel.Clone()
}

// ActiveDuels returns snapshots of every active duel, oldest first
func (m *duelManager) ActiveDuels() []*entities.Duel {
	m.mu.Lock()
	recs := m.registry.all()
	duels := make([]*entities.Duel, 0, len(recs))
	for _, rec := range recs {
		duels = append(duels, rec.duel.Clone())
	}
	m.mu.Unlock()

	sort.Slice(duels, func(i, j int) bool {
		return duels[i].CreatedAt.Before(duels[j].CreatedAt)
	})
	return duels
}

// WagerTiers returns the allowed stakes
func (m *duelManager) WagerTiers() entities.WagerTiers {
	return m.settings.Tiers
}

// Shutdown cancels every pending timer and drops all duels
func (m *duelManager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	dropped := m.registry.len()
	for _, rec := range m.registry.all() {
		m.cancelTimeout(rec)
	}
	m.registry = newDuelRegistry()

	if dropped > 0 {
		log.WithField("duels", dropped).Info("Dropped in-flight SSP duels on shutdown")
	}
}

// challengerRecord returns the duel if it is still configuring and callerID started it.
// Callers hold m.mu.
func (m *duelManager) challengerRecord(duelID, callerID string) (*duelRecord, error) {
	rec, ok := m.registry.get(duelID)
	if !ok {
		return nil, entities.ErrDuelNotActive
	}
	if !rec.duel.IsChallenger(callerID) {
		return nil, entities.ErrNotYourDuel
	}
	if !rec.duel.IsConfiguring() {
		return nil, entities.ErrDuelNotActive
	}
	return rec, nil
}

// timeoutFor returns how long a duel may sit in state
func (m *duelManager) timeoutFor(state entities.DuelState) time.Duration {
	switch state {
	case entities.DuelStatePosted:
		return m.settings.AcceptTimeout
	case entities.DuelStateAccepted:
		return m.settings.WeaponTimeout
	default:
		return m.settings.ConfigureTimeout
	}
}

// armTimeout replaces the record's timer with one guarding its current state.
// Callers hold m.mu.
func (m *duelManager) armTimeout(rec *duelRecord) {
	m.cancelTimeout(rec)

	m.lastToken++
	token := m.lastToken
	duelID := rec.duel.ID
	guarded := rec.duel.State

	rec.timerToken = token
	rec.timer = m.scheduler.AfterFunc(m.timeoutFor(guarded), func() {
		m.handleTimeout(duelID, token, guarded)
	})
}

// cancelTimeout stops the record's timer. Callers hold m.mu.
func (m *duelManager) cancelTimeout(rec *duelRecord) {
	if rec.timer != nil {
		rec.timer.Stop()
	}
	rec.timer = nil
	rec.timerToken = 0
}

// handleTimeout tears a duel down if it still sits in the state the timer guarded.
// Any other firing is stale and ignored.
func (m *duelManager) handleTimeout(duelID string, token uint64, guarded entities.DuelState) {
	ctx := context.Background()

	m.mu.Lock()
	rec, ok := m.registry.get(duelID)
	if !ok || rec.timerToken != token || rec.duel.State != guarded {
		m.mu.Unlock()
		log.WithFields(log.Fields{
			"duelID": duelID,
			"state":  guarded,
		}).Debug("Ignoring stale SSP timeout")
		return
	}
	rec.timer = nil
	rec.timerToken = 0
	m.registry.remove(duelID)
	snapshot := rec.duel.Clone()
	m.mu.Unlock()

	reason := entities.ExpiryReasonFor(guarded)
	log.WithFields(log.Fields{
		"duelID":       duelID,
		"state":        guarded,
		"reason":       reason,
		"challengerID": snapshot.Challenger.DiscordID,
	}).Info("SSP duel timed out")

	if guarded != entities.DuelStateConfiguring && snapshot.Post != nil {
		if err := m.presenter.EditPostExpired(ctx, snapshot, reason, m.timeoutFor(guarded)); err != nil {
			log.WithFields(log.Fields{
				"duelID": duelID,
				"error":  err,
			}).Warn("Failed to mark challenge post as expired")
		}
	}

	event := events.DuelExpiredEvent{
		DuelID:       duelID,
		State:        guarded,
		Reason:       reason,
		ChallengerID: snapshot.Challenger.DiscordID,
	}
	if snapshot.Opponent != nil {
		event.OpponentID = snapshot.Opponent.DiscordID
	}
	m.publish(event)
}

func (m *duelManager) publish(event events.Event) {
	if m.eventPublisher == nil {
		return
	}
	if err := m.eventPublisher.Publish(event); err != nil {
		log.WithFields(log.Fields{
			"eventType": event.Type(),
			"error":     err,
		}).Error("Failed to publish duel event")
	}
}

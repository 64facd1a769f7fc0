package testhelpers

import (
	"context"
	"time"

	"streambot/domain/entities"
	"streambot/domain/events"
	"streambot/domain/interfaces"

	"github.com/stretchr/testify/mock"
)

// MockPointsLedger is a mock implementation of PointsLedger
type MockPointsLedger struct {
	mock.Mock
}

func (m *MockPointsLedger) IsLinked(ctx context.Context, discordID string) bool {
	args := m.Called(ctx, discordID)
	return args.Bool(0)
}

func (m *MockPointsLedger) GetAccount(ctx context.Context, discordID string) *entities.PointsAccount {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*entities.PointsAccount)
}

func (m *MockPointsLedger) GetBalance(ctx context.Context, discordID string) int64 {
	args := m.Called(ctx, discordID)
	return args.Get(0).(int64)
}

func (m *MockPointsLedger) HasAtLeast(ctx context.Context, discordID string, amount int64) bool {
	args := m.Called(ctx, discordID, amount)
	return args.Bool(0)
}

func (m *MockPointsLedger) SetBalance(ctx context.Context, discordID string, amount int64, reason string) (int64, error) {
	args := m.Called(ctx, discordID, amount, reason)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPointsLedger) Transfer(ctx context.Context, winnerID, loserID string, amount int64) (*entities.TransferResult, error) {
	args := m.Called(ctx, winnerID, loserID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TransferResult), args.Error(1)
}

// MockDuelManager is a mock implementation of DuelManager
type MockDuelManager struct {
	mock.Mock
}

func (m *MockDuelManager) StartDuel(ctx context.Context, challengerID, displayName, originChannelID string) (*entities.Duel, error) {
	args := m.Called(ctx, challengerID, displayName, originChannelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Duel), args.Error(1)
}

func (m *MockDuelManager) SetChallengerWeapon(ctx context.Context, duelID, callerID string, weapon entities.Weapon) error {
	args := m.Called(ctx, duelID, callerID, weapon)
	return args.Error(0)
}

func (m *MockDuelManager) SetWager(ctx context.Context, duelID, callerID string, amount int64) error {
	args := m.Called(ctx, duelID, callerID, amount)
	return args.Error(0)
}

func (m *MockDuelManager) Confirm(ctx context.Context, duelID, callerID string) (*entities.Duel, error) {
	args := m.Called(ctx, duelID, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Duel), args.Error(1)
}

func (m *MockDuelManager) Accept(ctx context.Context, duelID, callerID, displayName string) (*entities.Duel, error) {
	args := m.Called(ctx, duelID, callerID, displayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Duel), args.Error(1)
}

func (m *MockDuelManager) ChooseOpponentWeapon(ctx context.Context, duelID, callerID string, weapon entities.Weapon) (*entities.DuelResolution, error) {
	args := m.Called(ctx, duelID, callerID, weapon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DuelResolution), args.Error(1)
}

func (m *MockDuelManager) GetDuel(duelID string) (*entities.Duel, error) {
	args := m.Called(duelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Duel), args.Error(1)
}

func (m *MockDuelManager) ActiveDuelFor(discordID string) *entities.Duel {
	args := m.Called(discordID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*entities.Duel)
}

func (m *MockDuelManager) ActiveDuels() []*entities.Duel {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]*entities.Duel)
}

func (m *MockDuelManager) WagerTiers() entities.WagerTiers {
	args := m.Called()
	return args.Get(0).(entities.WagerTiers)
}

func (m *MockDuelManager) Shutdown() {
	m.Called()
}

// MockDuelPresenter is a mock implementation of DuelPresenter
type MockDuelPresenter struct {
	mock.Mock
}

func (m *MockDuelPresenter) PostOpenChallenge(ctx context.Context, duel *entities.Duel) (*entities.PostRef, error) {
	args := m.Called(ctx, duel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PostRef), args.Error(1)
}

func (m *MockDuelPresenter) DisablePost(ctx context.Context, duel *entities.Duel) error {
	args := m.Called(ctx, duel)
	return args.Error(0)
}

func (m *MockDuelPresenter) EditPostExpired(ctx context.Context, duel *entities.Duel, reason entities.ExpiryReason, after time.Duration) error {
	args := m.Called(ctx, duel, reason, after)
	return args.Error(0)
}

func (m *MockDuelPresenter) DeletePost(ctx context.Context, ref entities.PostRef) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

func (m *MockDuelPresenter) PostResult(ctx context.Context, resolution *entities.DuelResolution) error {
	args := m.Called(ctx, resolution)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

// MockEventSubscriber is a mock implementation of EventSubscriber
type MockEventSubscriber struct {
	mock.Mock
}

func (m *MockEventSubscriber) Subscribe(eventType events.EventType, handler interfaces.EventHandler) error {
	args := m.Called(eventType, handler)
	return args.Error(0)
}

// MockBattleReporter is a mock implementation of BattleReporter
type MockBattleReporter struct {
	mock.Mock
}

func (m *MockBattleReporter) ReportBattle(ctx context.Context, report *entities.BattleReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

// MockModeProvider is a mock implementation of ModeProvider
type MockModeProvider struct {
	mock.Mock
}

func (m *MockModeProvider) Mode() entities.ConnectionMode {
	args := m.Called()
	return args.Get(0).(entities.ConnectionMode)
}

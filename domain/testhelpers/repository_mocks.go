package testhelpers

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockAccountLinkRepository is a mock implementation of AccountLinkRepository
type MockAccountLinkRepository struct {
	mock.Mock
}

func (m *MockAccountLinkRepository) GetChatUsername(ctx context.Context, discordID string) (string, error) {
	args := m.Called(ctx, discordID)
	return args.String(0), args.Error(1)
}

// MockProfilePointsRepository is a mock implementation of ProfilePointsRepository
type MockProfilePointsRepository struct {
	mock.Mock
}

func (m *MockProfilePointsRepository) GetPoints(ctx context.Context, chatUsername string) (int64, bool, error) {
	args := m.Called(ctx, chatUsername)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockProfilePointsRepository) SetPoints(ctx context.Context, chatUsername string, points int64) (bool, error) {
	args := m.Called(ctx, chatUsername, points)
	return args.Bool(0), args.Error(1)
}

// MockLocalPointsRepository is a mock implementation of LocalPointsRepository
type MockLocalPointsRepository struct {
	mock.Mock
}

func (m *MockLocalPointsRepository) GetPoints(ctx context.Context, discordID string) (int64, error) {
	args := m.Called(ctx, discordID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLocalPointsRepository) SetPoints(ctx context.Context, discordID string, points int64) error {
	args := m.Called(ctx, discordID, points)
	return args.Error(0)
}

package interfaces

import "context"

// AccountLinkRepository resolves Discord identities to linked chat accounts
type AccountLinkRepository interface {
	// GetChatUsername returns the linked chat username, or "" when the identity is not linked
	GetChatUsername(ctx context.Context, discordID string) (string, error)
}

// ProfilePointsRepository reads and writes balances on chat profiles.
// Usernames are matched case-insensitively.
type ProfilePointsRepository interface {
	// GetPoints returns the profile balance and whether the profile exists
	GetPoints(ctx context.Context, chatUsername string) (points int64, found bool, err error)

	// SetPoints stores the balance on an existing profile, found is false when there is none
	SetPoints(ctx context.Context, chatUsername string, points int64) (found bool, err error)
}

// LocalPointsRepository holds balances for Discord identities without a usable profile
type LocalPointsRepository interface {
	// GetPoints returns the stored balance, 0 when no record exists
	GetPoints(ctx context.Context, discordID string) (int64, error)

	// SetPoints creates or replaces the balance record
	SetPoints(ctx context.Context, discordID string, points int64) error
}

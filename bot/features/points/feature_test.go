package points

import (
	"testing"

	"streambot/domain/entities"

	"github.com/stretchr/testify/assert"
)

func TestBuildBalanceMessage(t *testing.T) {
	tests := []struct {
		name     string
		account  *entities.PointsAccount
		contains []string
	}{
		{
			name:     "linked with profile",
			account:  &entities.PointsAccount{Balance: 1200, ChatUsername: "alice_tv", Store: entities.PointsStoreProfile},
			contains: []string{"Alice, you have **1,200 points**.", "Linked to **alice_tv**"},
		},
		{
			name:     "linked without profile",
			account:  &entities.PointsAccount{Balance: 1, ChatUsername: "alice_tv", Store: entities.PointsStoreLocal},
			contains: []string{"**1 point**", "kept locally"},
		},
		{
			name:     "unlinked",
			account:  &entities.PointsAccount{Store: entities.PointsStoreLocal},
			contains: []string{"**0 points**", "/link"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			message := BuildBalanceMessage("Alice", tt.account)
			for _, want := range tt.contains {
				assert.Contains(t, message, want)
			}
		})
	}
}

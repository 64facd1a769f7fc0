package points

import (
	"context"
	"fmt"

	"streambot/bot/common"
	"streambot/domain/entities"
	"streambot/domain/interfaces"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature answers /points with the caller's balance
type Feature struct {
	ledger interfaces.PointsLedger
}

// New creates a new points feature instance
func New(ledger interfaces.PointsLedger) *Feature {
	return &Feature{ledger: ledger}
}

// HandleCommand responds with the invoking user's balance
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	account := f.ledger.GetAccount(context.Background(), common.InteractionUserID(i))

	err := common.RespondEphemeral(s, i, BuildBalanceMessage(common.InteractionDisplayName(i), account), nil)
	if err != nil {
		log.Errorf("Error responding to points command: %v", err)
	}
}

// BuildBalanceMessage formats a balance for its owner
func BuildBalanceMessage(displayName string, account *entities.PointsAccount) string {
	message := fmt.Sprintf("%s, you have **%s**.", displayName, common.PluralPoints(account.Balance))
	if account.IsLinked() {
		message += fmt.Sprintf("\n🔗 Linked to **%s**", account.ChatUsername)
		if account.Store == entities.PointsStoreLocal {
			message += " (no stream profile yet, points are kept locally)"
		}
	} else {
		message += "\n*Link your stream account with `/link` to join points battles.*"
	}
	return message
}

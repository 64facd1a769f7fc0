package ssp

import (
	"streambot/bot/common"
	"streambot/domain/interfaces"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature handles the /ssp command and its duel components
type Feature struct {
	duels interfaces.DuelManager
}

// NewFeature creates a new rock-paper-scissors feature instance
func NewFeature(duels interfaces.DuelManager) *Feature {
	return &Feature{
		duels: duels,
	}
}

// HandleCommand starts a duel for the invoking user
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleStart(s, i)
}

// HandleInteraction routes duel component interactions
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.MessageComponentData()
	action, duelID, ok := ParseCustomID(data.CustomID)
	if !ok {
		log.Warnf("Unknown SSP component: %s", data.CustomID)
		common.RespondWithError(s, i, "Unknown action")
		return
	}

	switch action {
	case ActionChallengerWeapon:
		f.handleChallengerWeapon(s, i, duelID, firstValue(data.Values))
	case ActionWager:
		f.handleWager(s, i, duelID, firstValue(data.Values))
	case ActionConfirm:
		f.handleConfirm(s, i, duelID)
	case ActionAccept:
		f.handleAccept(s, i, duelID)
	case ActionOpponentWeapon:
		f.handleOpponentWeapon(s, i, duelID, firstValue(data.Values))
	}
}

func firstValue(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
